package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dkovchenko/conference-assistant/pkg/agents"
	"github.com/dkovchenko/conference-assistant/pkg/domain"
	"github.com/dkovchenko/conference-assistant/pkg/guardrails"
	"github.com/dkovchenko/conference-assistant/pkg/openai"
	"github.com/dkovchenko/conference-assistant/pkg/render"
	"github.com/dkovchenko/conference-assistant/pkg/tools"
)

const maxToolIterations = 5

// userAgentLabel tags user messages on the wire so the client can tell them
// apart from agent replies.
const userAgentLabel = "User"

type ConversationRepository interface {
	Save(conversation domain.Conversation)
	GetByID(id string) (domain.Conversation, bool)
}

type UserDirectory interface {
	GetByRegistrationID(ctx context.Context, registrationID string) (*domain.User, error)
	GetByQRCode(ctx context.Context, qrCode string) (*domain.User, error)
}

type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.CompletionRequest) (*openai.CompletionResult, error)
}

type ToolDispatcher interface {
	ToolsFor(names []string) []domain.Tool
	InvokeFunction(ctx context.Context, conv *domain.Conversation, name, args string) (string, error)
}

type EventPublisher interface {
	Publish(conversationID string, event StreamEvent)
}

// ChatResponse is the full turn state the web client renders: the latest
// exchange, the agent graph, guardrail results and everything that happened
// behind the scenes.
type ChatResponse struct {
	ConversationID string                   `json:"conversation_id"`
	CurrentAgent   string                   `json:"current_agent"`
	Messages       []domain.Message         `json:"messages"`
	Events         []domain.AgentEvent      `json:"events"`
	Context        domain.Context           `json:"context"`
	Agents         []domain.AgentDescriptor `json:"agents"`
	Guardrails     []domain.GuardrailCheck  `json:"guardrails"`
	CustomerInfo   *domain.CustomerInfo     `json:"customer_info,omitempty"`
}

type chatService struct {
	conversations  ConversationRepository
	users          UserDirectory
	completer      Completer
	dispatcher     ToolDispatcher
	events         EventPublisher
	model          string
	conferenceName string
	agentsByName   map[string]agents.Agent
}

// NewChatService wires the chat pipeline. A nil completer switches the
// service to canned per-agent replies so the API stays usable without an
// upstream model.
func NewChatService(
	conversations ConversationRepository,
	users UserDirectory,
	completer Completer,
	dispatcher ToolDispatcher,
	events EventPublisher,
	model string,
	conferenceName string,
) *chatService {
	byName := map[string]agents.Agent{}
	for _, a := range []agents.Agent{agents.Triage(conferenceName), agents.Schedule(), agents.Networking()} {
		byName[a.Name] = a
	}

	return &chatService{
		conversations:  conversations,
		users:          users,
		completer:      completer,
		dispatcher:     dispatcher,
		events:         events,
		model:          model,
		conferenceName: conferenceName,
		agentsByName:   byName,
	}
}

func (s *chatService) Respond(ctx context.Context, conversationID, accountNumber, message string) (*ChatResponse, error) {
	conv := s.getOrCreateConversation(conversationID, accountNumber)
	s.hydrateUserContext(ctx, &conv, accountNumber)

	eventsStart := len(conv.Events)
	messagesStart := len(conv.Messages)

	conv.Messages = append(conv.Messages, domain.Message{
		Role:      domain.RoleUser,
		Agent:     userAgentLabel,
		Content:   message,
		Timestamp: time.Now(),
	})

	checks := s.runGuardrails(&conv, message)
	if tripped(checks) {
		s.appendAssistantMessage(&conv, guardrails.RefusalMessage)
		return s.finishTurn(conv, messagesStart, eventsStart, checks), nil
	}

	if formArgs, ok := parseBusinessForm(message); ok {
		s.handleBusinessForm(ctx, &conv, formArgs)
		return s.finishTurn(conv, messagesStart, eventsStart, checks), nil
	}

	s.routeMessage(&conv, message)

	content, err := s.respond(ctx, &conv, message)
	if err != nil {
		return nil, err
	}

	s.appendAssistantMessage(&conv, content)
	return s.finishTurn(conv, messagesStart, eventsStart, checks), nil
}

func (s *chatService) getOrCreateConversation(conversationID, accountNumber string) domain.Conversation {
	if conversationID != "" {
		if conv, ok := s.conversations.GetByID(conversationID); ok {
			return conv
		}
	}

	conv := domain.Conversation{
		ID:            conversationID,
		AccountNumber: accountNumber,
		CurrentAgent:  agents.TriageAgentName,
		Context: domain.Context{
			AccountNumber:  accountNumber,
			ConferenceName: s.conferenceName,
		},
	}
	if conv.ID == "" {
		conv.ID = uuid.NewString()
	}

	return conv
}

// hydrateUserContext loads attendee context the first time a turn carries an
// identifier, so a conversation started anonymously picks up the user once
// their badge is scanned.
func (s *chatService) hydrateUserContext(ctx context.Context, conv *domain.Conversation, accountNumber string) {
	if accountNumber == "" || conv.Context.CustomerID != "" {
		return
	}

	if conv.Context.AccountNumber == "" {
		conv.Context.AccountNumber = accountNumber
	}

	if user := s.lookupUser(ctx, accountNumber); user != nil {
		applyUserContext(&conv.Context, user)
	}
}

// lookupUser resolves an identifier first as a registration ID, then as a
// badge QR code. Directory misses are not errors, the chat just proceeds
// without attendee context.
func (s *chatService) lookupUser(ctx context.Context, identifier string) *domain.User {
	if s.users == nil {
		return nil
	}

	user, err := s.users.GetByRegistrationID(ctx, identifier)
	if err == nil {
		return user
	}
	if !errors.Is(err, domain.ErrNotFound) {
		slog.ErrorContext(ctx, "Failed to look up user by registration ID", "identifier", identifier, "err", err)
		return nil
	}

	user, err = s.users.GetByQRCode(ctx, identifier)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.ErrorContext(ctx, "Failed to look up user by QR code", "identifier", identifier, "err", err)
		}
		return nil
	}
	return user
}

func applyUserContext(c *domain.Context, user *domain.User) {
	c.AttendeeName = user.Name
	c.CustomerID = user.ID
	// The request identifier may be a QR code; the directory record holds
	// the real account number.
	if user.AccountNumber != "" {
		c.AccountNumber = user.AccountNumber
	}
	c.CustomerEmail = user.Email
	c.IsConferenceAttendee = user.IsConferenceAttendee
	if user.ConferenceName != "" {
		c.ConferenceName = user.ConferenceName
	}
	c.CompanyName = user.Company
	c.Location = user.Location
	c.RegistrationID = user.RegistrationID
	c.ConferencePackage = user.ConferencePackage
	c.PrimaryStream = user.PrimaryStream
	c.SecondaryStream = user.SecondaryStream
}

func (s *chatService) runGuardrails(conv *domain.Conversation, message string) []domain.GuardrailCheck {
	checks := guardrails.CheckInput(message)
	for _, check := range checks {
		if check.Passed {
			continue
		}
		s.recordEvent(conv, domain.AgentEvent{
			Type:    domain.EventTypeGuardrail,
			Agent:   conv.CurrentAgent,
			Content: check.Name,
			Metadata: map[string]string{
				"reasoning": check.Reasoning,
			},
		})
	}
	return checks
}

func tripped(checks []domain.GuardrailCheck) bool {
	for _, check := range checks {
		if !check.Passed {
			return true
		}
	}
	return false
}

func (s *chatService) routeMessage(conv *domain.Conversation, message string) {
	target := agents.Route(message)
	if target == conv.CurrentAgent {
		return
	}

	s.recordEvent(conv, domain.AgentEvent{
		Type:    domain.EventTypeHandoff,
		Agent:   conv.CurrentAgent,
		Content: fmt.Sprintf("%s -> %s", conv.CurrentAgent, target),
		Metadata: map[string]string{
			"source_agent": conv.CurrentAgent,
			"target_agent": target,
		},
	})
	conv.CurrentAgent = target
}

// incompleteBusinessFormReply answers form submissions that cannot be
// processed; it is a chat reply, never an HTTP error.
const incompleteBusinessFormReply = "I couldn't process your business information. " +
	"Please make sure all required fields are filled out."

var requiredBusinessFormFields = []string{
	"company_name", "industry_sector", "sub_sector", "location",
	"position_title", "legal_structure", "establishment_year",
	"products_or_services", "brief_description",
}

// handleBusinessForm short-circuits form submissions straight into the
// add_business tool so the registration never depends on model output.
func (s *chatService) handleBusinessForm(ctx context.Context, conv *domain.Conversation, args map[string]any) {
	if conv.CurrentAgent != agents.NetworkingAgentName {
		s.recordEvent(conv, domain.AgentEvent{
			Type:    domain.EventTypeHandoff,
			Agent:   conv.CurrentAgent,
			Content: fmt.Sprintf("%s -> %s", conv.CurrentAgent, agents.NetworkingAgentName),
			Metadata: map[string]string{
				"source_agent": conv.CurrentAgent,
				"target_agent": agents.NetworkingAgentName,
			},
		})
		conv.CurrentAgent = agents.NetworkingAgentName
	}

	s.appendAssistantMessage(conv, s.submitBusinessForm(ctx, conv, args))
}

func (s *chatService) submitBusinessForm(ctx context.Context, conv *domain.Conversation, args map[string]any) string {
	for _, field := range requiredBusinessFormFields {
		if _, ok := args[field]; !ok {
			return incompleteBusinessFormReply
		}
	}
	if conv.Context.CustomerID == "" {
		return incompleteBusinessFormReply
	}

	argsJSON, err := json.Marshal(args)
	if err != nil {
		return incompleteBusinessFormReply
	}

	output, err := s.invokeTool(ctx, conv, domain.ToolCall{
		ID:        uuid.NewString(),
		Name:      "add_business",
		Arguments: string(argsJSON),
	})
	if err != nil {
		return fmt.Sprintf("Error adding business: %v", err)
	}
	return output
}

func (s *chatService) invokeTool(ctx context.Context, conv *domain.Conversation, call domain.ToolCall) (string, error) {
	s.recordEvent(conv, domain.AgentEvent{
		Type:    domain.EventTypeToolCall,
		Agent:   conv.CurrentAgent,
		Content: call.Name,
		Metadata: map[string]string{
			"tool_args": call.Arguments,
		},
	})

	output, err := s.dispatcher.InvokeFunction(ctx, conv, call.Name, call.Arguments)
	if err != nil {
		return "", fmt.Errorf("invoking tool %q: %w", call.Name, err)
	}

	s.recordEvent(conv, domain.AgentEvent{
		Type:    domain.EventTypeToolOutput,
		Agent:   conv.CurrentAgent,
		Content: call.Name,
		Metadata: map[string]string{
			"tool_result": output,
		},
	})
	return output, nil
}

func (s *chatService) respond(ctx context.Context, conv *domain.Conversation, message string) (string, error) {
	if s.completer == nil {
		return cannedResponse(conv.CurrentAgent), nil
	}
	return s.runCompletion(ctx, conv)
}

// runCompletion drives the model with the current agent's tools, resolving
// tool calls until the model produces a plain reply.
func (s *chatService) runCompletion(ctx context.Context, conv *domain.Conversation) (string, error) {
	agent, ok := s.agentsByName[conv.CurrentAgent]
	if !ok {
		return "", fmt.Errorf("unknown agent: %q", conv.CurrentAgent)
	}

	messages := []domain.Message{{
		Role:    domain.RoleSystem,
		Content: agent.Instructions(conv.Context),
	}}
	messages = append(messages, conv.Messages...)

	agentTools := s.dispatcher.ToolsFor(agent.ToolNames)

	for i := 0; i < maxToolIterations; i++ {
		result, err := s.completer.CreateChatCompletion(ctx, openai.CompletionRequest{
			Model:    s.model,
			Messages: messages,
			Tools:    agentTools,
			OnDelta: func(delta string) {
				s.publish(conv.ID, StreamEvent{Name: "delta", Data: delta})
			},
		})
		if err != nil {
			return "", fmt.Errorf("running completion: %w", err)
		}

		if len(result.ToolCalls) == 0 {
			return result.Content, nil
		}

		messages = append(messages, domain.Message{
			Role:      domain.RoleAssistant,
			Content:   result.Content,
			ToolCalls: result.ToolCalls,
		})

		for _, call := range result.ToolCalls {
			output, err := s.invokeTool(ctx, conv, call)
			if err != nil {
				return "", err
			}

			// The form marker must reach the client verbatim so it can swap
			// the chat bubble for the registration form.
			if output == tools.BusinessFormMarker {
				return output, nil
			}

			messages = append(messages, domain.Message{
				Role:       domain.RoleTool,
				Content:    output,
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}

	return "", errors.New("tool call limit exceeded")
}

func (s *chatService) appendAssistantMessage(conv *domain.Conversation, content string) {
	msg := domain.Message{
		Role:      domain.RoleAssistant,
		Agent:     conv.CurrentAgent,
		Content:   content,
		HTML:      render.Markdown(content),
		Timestamp: time.Now(),
	}
	conv.Messages = append(conv.Messages, msg)

	s.recordEvent(conv, domain.AgentEvent{
		Type:    domain.EventTypeMessage,
		Agent:   conv.CurrentAgent,
		Content: content,
	})
	s.publish(conv.ID, StreamEvent{Name: "message", Data: msg})
}

func (s *chatService) recordEvent(conv *domain.Conversation, event domain.AgentEvent) {
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	conv.Events = append(conv.Events, event)

	s.publish(conv.ID, StreamEvent{Name: "event", Data: event})
}

func (s *chatService) publish(conversationID string, event StreamEvent) {
	if s.events == nil {
		return
	}
	s.events.Publish(conversationID, event)
}

func (s *chatService) finishTurn(
	conv domain.Conversation,
	messagesStart, eventsStart int,
	checks []domain.GuardrailCheck,
) *ChatResponse {
	conv.LastUpdate = time.Now()
	s.conversations.Save(conv)

	return &ChatResponse{
		ConversationID: conv.ID,
		CurrentAgent:   conv.CurrentAgent,
		Messages:       visibleMessages(conv.Messages[messagesStart:]),
		Events:         append([]domain.AgentEvent{}, conv.Events[eventsStart:]...),
		Context:        conv.Context,
		Agents:         agents.Descriptors(s.conferenceName),
		Guardrails:     checks,
		CustomerInfo:   customerInfo(conv.Context),
	}
}

// visibleMessages filters the turn down to what the client renders; tool
// plumbing stays in the event log.
func visibleMessages(msgs []domain.Message) []domain.Message {
	res := make([]domain.Message, 0, len(msgs))
	for _, m := range msgs {
		if m.Role == domain.RoleUser || m.Role == domain.RoleAssistant {
			if m.Content == "" {
				continue
			}
			res = append(res, m)
		}
	}
	return res
}

func customerInfo(c domain.Context) *domain.CustomerInfo {
	if c.CustomerID == "" {
		return nil
	}
	return &domain.CustomerInfo{
		Customer: domain.Customer{
			Name:                 c.AttendeeName,
			AccountNumber:        c.AccountNumber,
			Email:                c.CustomerEmail,
			IsConferenceAttendee: c.IsConferenceAttendee,
			ConferenceName:       c.ConferenceName,
		},
		Bookings: []any{},
	}
}

func cannedResponse(agentName string) string {
	switch agentName {
	case agents.ScheduleAgentName:
		return "I can help you find conference schedule information. " +
			"What specific session, speaker, or time are you looking for?"
	case agents.NetworkingAgentName:
		return "I can help you connect with other attendees and explore business opportunities. " +
			"Are you looking for specific people, companies, or would you like to add your own business?"
	default:
		return "Hello! I'm your conference assistant. I can help you with:\n\n" +
			"• **Conference Schedule** - Find sessions, speakers, and timings\n" +
			"• **Networking** - Connect with attendees and businesses\n\n" +
			"What would you like to know about the conference?"
	}
}
