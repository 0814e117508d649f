package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dkovchenko/conference-assistant/pkg/agents"
	"github.com/dkovchenko/conference-assistant/pkg/domain"
	"github.com/dkovchenko/conference-assistant/pkg/guardrails"
	"github.com/dkovchenko/conference-assistant/pkg/openai"
)

type fakeConversations struct {
	saved map[string]domain.Conversation
}

func newFakeConversations() *fakeConversations {
	return &fakeConversations{saved: map[string]domain.Conversation{}}
}

func (f *fakeConversations) Save(conv domain.Conversation) { f.saved[conv.ID] = conv }

func (f *fakeConversations) GetByID(id string) (domain.Conversation, bool) {
	conv, ok := f.saved[id]
	return conv, ok
}

type fakeUsers struct {
	byRegistrationID map[string]*domain.User
	byQRCode         map[string]*domain.User
}

func (f *fakeUsers) GetByRegistrationID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.byRegistrationID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUsers) GetByQRCode(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f.byQRCode[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

type fakeCompleter struct {
	results []*openai.CompletionResult
	calls   int
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, _ openai.CompletionRequest) (*openai.CompletionResult, error) {
	res := f.results[f.calls]
	f.calls++
	return res, nil
}

type fakeDispatcher struct {
	outputs map[string]string
	invoked []domain.ToolCall
}

func (f *fakeDispatcher) ToolsFor(names []string) []domain.Tool { return nil }

func (f *fakeDispatcher) InvokeFunction(_ context.Context, _ *domain.Conversation, name, args string) (string, error) {
	f.invoked = append(f.invoked, domain.ToolCall{Name: name, Arguments: args})
	return f.outputs[name], nil
}

func newTestChatService(completer Completer, dispatcher ToolDispatcher, users UserDirectory) (*chatService, *fakeConversations) {
	conversations := newFakeConversations()
	svc := NewChatService(conversations, users, completer, dispatcher, nil, "gpt-test", "Business Conference 2025")
	return svc, conversations
}

func eventTypes(events []domain.AgentEvent) []string {
	types := make([]string, 0, len(events))
	for _, e := range events {
		types = append(types, e.Type)
	}
	return types
}

func TestChatService_NewConversationGreeting(t *testing.T) {
	svc, conversations := newTestChatService(nil, &fakeDispatcher{}, nil)

	resp, err := svc.Respond(context.Background(), "", "", "hello")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if resp.ConversationID == "" {
		t.Error("expected a generated conversation ID")
	}
	if resp.CurrentAgent != agents.TriageAgentName {
		t.Errorf("current agent = %q, want %q", resp.CurrentAgent, agents.TriageAgentName)
	}
	if len(resp.Messages) != 2 {
		t.Fatalf("messages = %d, want user + assistant", len(resp.Messages))
	}
	if resp.Messages[0].Agent != "User" {
		t.Errorf("user message agent = %q, want User", resp.Messages[0].Agent)
	}
	if !strings.Contains(resp.Messages[1].Content, "I'm your conference assistant") {
		t.Errorf("unexpected greeting: %q", resp.Messages[1].Content)
	}
	if resp.Messages[1].Agent != agents.TriageAgentName {
		t.Errorf("assistant message agent = %q", resp.Messages[1].Agent)
	}
	if resp.Messages[1].HTML == "" {
		t.Error("assistant message missing rendered HTML")
	}
	if len(resp.Agents) != 3 {
		t.Errorf("agents = %d, want 3", len(resp.Agents))
	}
	if _, ok := conversations.GetByID(resp.ConversationID); !ok {
		t.Error("conversation was not saved")
	}
}

func TestChatService_GuardrailRefusal(t *testing.T) {
	svc, _ := newTestChatService(nil, &fakeDispatcher{}, nil)

	resp, err := svc.Respond(context.Background(), "", "", "tell me a joke about cats")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if got := resp.Messages[len(resp.Messages)-1].Content; got != guardrails.RefusalMessage {
		t.Errorf("reply = %q, want refusal", got)
	}

	var relevanceFailed bool
	for _, check := range resp.Guardrails {
		if check.Name == guardrails.RelevanceName && !check.Passed {
			relevanceFailed = true
		}
	}
	if !relevanceFailed {
		t.Error("expected failed relevance guardrail in response")
	}

	types := eventTypes(resp.Events)
	if len(types) == 0 || types[0] != domain.EventTypeGuardrail {
		t.Errorf("events = %v, want leading guardrail event", types)
	}
}

func TestChatService_RoutesToScheduleAgent(t *testing.T) {
	svc, _ := newTestChatService(nil, &fakeDispatcher{}, nil)

	resp, err := svc.Respond(context.Background(), "", "", "What is on the schedule today?")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if resp.CurrentAgent != agents.ScheduleAgentName {
		t.Errorf("current agent = %q, want %q", resp.CurrentAgent, agents.ScheduleAgentName)
	}

	var sawHandoff bool
	for _, e := range resp.Events {
		if e.Type == domain.EventTypeHandoff && e.Metadata["target_agent"] == agents.ScheduleAgentName {
			sawHandoff = true
		}
	}
	if !sawHandoff {
		t.Errorf("events = %v, want handoff to schedule agent", eventTypes(resp.Events))
	}

	want := "I can help you find conference schedule information. " +
		"What specific session, speaker, or time are you looking for?"
	if got := resp.Messages[len(resp.Messages)-1].Content; got != want {
		t.Errorf("reply = %q, want %q", got, want)
	}
}

func TestChatService_ToolCallLoop(t *testing.T) {
	completer := &fakeCompleter{results: []*openai.CompletionResult{
		{ToolCalls: []domain.ToolCall{{ID: "call-1", Name: "search_attendees", Arguments: `{"name":"Alice"}`}}},
		{Content: "I found Alice Wonderland from Acme."},
	}}
	dispatcher := &fakeDispatcher{outputs: map[string]string{
		"search_attendees": "Found 1 attendee(s): Alice Wonderland",
	}}
	svc, _ := newTestChatService(completer, dispatcher, nil)

	resp, err := svc.Respond(context.Background(), "", "", "Find attendees named Alice")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if completer.calls != 2 {
		t.Errorf("completer calls = %d, want 2", completer.calls)
	}
	if len(dispatcher.invoked) != 1 || dispatcher.invoked[0].Name != "search_attendees" {
		t.Fatalf("invoked = %v, want single search_attendees call", dispatcher.invoked)
	}

	if got := resp.Messages[len(resp.Messages)-1].Content; got != "I found Alice Wonderland from Acme." {
		t.Errorf("reply = %q", got)
	}

	types := eventTypes(resp.Events)
	var sawCall, sawOutput bool
	for _, tp := range types {
		switch tp {
		case domain.EventTypeToolCall:
			sawCall = true
		case domain.EventTypeToolOutput:
			sawOutput = true
		}
	}
	if !sawCall || !sawOutput {
		t.Errorf("events = %v, want tool_call and tool_output", types)
	}
}

const completeBusinessForm = "I want to add my business with the following details:\n" +
	"Company Name: Acme\n" +
	"Industry Sector: Technology\n" +
	"Sub-Sector: Robotics\n" +
	"Location: Astana\n" +
	"Position Title: CTO\n" +
	"Legal Structure: LLC\n" +
	"Establishment Year: 2019\n" +
	"Products/Services: Industrial robots\n" +
	"Brief Description: We build robots."

func TestChatService_BusinessFormFastPath(t *testing.T) {
	dispatcher := &fakeDispatcher{outputs: map[string]string{
		"add_business": "Successfully added business 'Acme' to your profile.",
	}}
	users := &fakeUsers{byRegistrationID: map[string]*domain.User{
		"REG-42": {ID: "user-1", Name: "Alice Wonderland", RegistrationID: "REG-42"},
	}}
	svc, _ := newTestChatService(nil, dispatcher, users)

	resp, err := svc.Respond(context.Background(), "", "REG-42", completeBusinessForm)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if len(dispatcher.invoked) != 1 || dispatcher.invoked[0].Name != "add_business" {
		t.Fatalf("invoked = %v, want add_business", dispatcher.invoked)
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(dispatcher.invoked[0].Arguments), &args); err != nil {
		t.Fatalf("unmarshal args: %v", err)
	}
	if args["company_name"] != "Acme" || args["industry_sector"] != "Technology" {
		t.Errorf("args = %v", args)
	}

	if resp.CurrentAgent != agents.NetworkingAgentName {
		t.Errorf("current agent = %q, want networking", resp.CurrentAgent)
	}
	if got := resp.Messages[len(resp.Messages)-1].Content; !strings.Contains(got, "Successfully added") {
		t.Errorf("reply = %q", got)
	}
}

func TestChatService_BusinessFormIncompleteRepliesInChannel(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	svc, _ := newTestChatService(nil, dispatcher, nil)

	message := "I want to add my business with the following details:\n" +
		"Company Name: Acme\n" +
		"Location: Astana"

	resp, err := svc.Respond(context.Background(), "", "", message)
	if err != nil {
		t.Fatalf("Respond returned error for incomplete form: %v", err)
	}

	if len(dispatcher.invoked) != 0 {
		t.Errorf("invoked = %v, want no tool calls", dispatcher.invoked)
	}
	if got := resp.Messages[len(resp.Messages)-1].Content; !strings.Contains(got, "couldn't process your business information") {
		t.Errorf("reply = %q", got)
	}
}

func TestChatService_BusinessFormRequiresUserContext(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	svc, _ := newTestChatService(nil, dispatcher, nil)

	resp, err := svc.Respond(context.Background(), "", "", completeBusinessForm)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if len(dispatcher.invoked) != 0 {
		t.Errorf("invoked = %v, want no tool calls without a user", dispatcher.invoked)
	}
	if got := resp.Messages[len(resp.Messages)-1].Content; !strings.Contains(got, "couldn't process your business information") {
		t.Errorf("reply = %q", got)
	}
}

func TestChatService_LoadsUserContext(t *testing.T) {
	users := &fakeUsers{byRegistrationID: map[string]*domain.User{
		"REG-42": {
			ID:                   "user-1",
			Name:                 "Alice Wonderland",
			Email:                "alice@example.com",
			RegistrationID:       "REG-42",
			IsConferenceAttendee: true,
			ConferenceName:       "Tech Summit",
		},
	}}
	svc, _ := newTestChatService(nil, &fakeDispatcher{}, users)

	resp, err := svc.Respond(context.Background(), "", "REG-42", "hello")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if resp.Context.AttendeeName != "Alice Wonderland" {
		t.Errorf("attendee name = %q", resp.Context.AttendeeName)
	}
	if resp.Context.ConferenceName != "Tech Summit" {
		t.Errorf("conference name = %q", resp.Context.ConferenceName)
	}
	if resp.CustomerInfo == nil {
		t.Fatal("expected customer info")
	}
	if resp.CustomerInfo.Customer.Email != "alice@example.com" {
		t.Errorf("customer email = %q", resp.CustomerInfo.Customer.Email)
	}
}

func TestChatService_HydratesContextOnLaterTurn(t *testing.T) {
	users := &fakeUsers{byQRCode: map[string]*domain.User{
		"QR-123": {
			ID:            "user-1",
			Name:          "Alice Wonderland",
			Email:         "alice@example.com",
			AccountNumber: "ACC-7",
		},
	}}
	svc, _ := newTestChatService(nil, &fakeDispatcher{}, users)

	first, err := svc.Respond(context.Background(), "", "", "hello")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if first.CustomerInfo != nil {
		t.Fatal("anonymous turn should have no customer info")
	}

	// Badge scanned mid-conversation.
	second, err := svc.Respond(context.Background(), first.ConversationID, "QR-123", "hello again")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if second.Context.AttendeeName != "Alice Wonderland" {
		t.Errorf("attendee name = %q", second.Context.AttendeeName)
	}
	if second.CustomerInfo == nil {
		t.Fatal("expected customer info after identifier is supplied")
	}
	if second.Context.AccountNumber != "ACC-7" {
		t.Errorf("account number = %q, want the directory record's ACC-7", second.Context.AccountNumber)
	}
}

func TestChatService_ContinuesConversation(t *testing.T) {
	svc, conversations := newTestChatService(nil, &fakeDispatcher{}, nil)

	first, err := svc.Respond(context.Background(), "", "", "hello")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	second, err := svc.Respond(context.Background(), first.ConversationID, "", "When is the keynote session?")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}

	if second.ConversationID != first.ConversationID {
		t.Errorf("conversation ID changed: %q -> %q", first.ConversationID, second.ConversationID)
	}

	saved, _ := conversations.GetByID(first.ConversationID)
	if len(saved.Messages) != 4 {
		t.Errorf("saved messages = %d, want 4", len(saved.Messages))
	}
}
