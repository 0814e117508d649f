package openai

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-retryablehttp"
	openaiapi "github.com/sashabaranov/go-openai"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

const maxCompletionTokens = 4096

type SpeechConfig struct {
	Model  string
	Voice  string
	Format string
}

type client struct {
	api    *openaiapi.Client
	speech SpeechConfig
}

func NewClient(token string, speech SpeechConfig) (*client, error) {
	if token == "" {
		return nil, errors.New("token is empty")
	}

	// Transient upstream failures retry before surfacing to the caller.
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil

	cfg := openaiapi.DefaultConfig(token)
	cfg.HTTPClient = rc.StandardClient()

	return &client{
		api:    openaiapi.NewClientWithConfig(cfg),
		speech: speech,
	}, nil
}

type CompletionRequest struct {
	Model    string
	Messages []domain.Message
	Tools    []domain.Tool

	// OnDelta, when set, switches to the streaming API and receives content
	// fragments as they arrive.
	OnDelta func(delta string)
}

type CompletionResult struct {
	Content   string
	ToolCalls []domain.ToolCall
}

func (c *client) CreateChatCompletion(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	apiReq := openaiapi.ChatCompletionRequest{
		Model:               req.Model,
		MaxCompletionTokens: maxCompletionTokens,
		Messages:            toAPIMessages(req.Messages),
		Tools:               toAPITools(req.Tools),
	}

	if req.OnDelta != nil {
		return c.streamCompletion(ctx, apiReq, req.OnDelta)
	}

	resp, err := c.api.CreateChatCompletion(ctx, apiReq)
	if err != nil {
		return nil, fmt.Errorf("creating chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in response")
	}

	msg := resp.Choices[0].Message
	result := &CompletionResult{Content: msg.Content}
	for _, tc := range msg.ToolCalls {
		result.ToolCalls = append(result.ToolCalls, domain.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return result, nil
}

func (c *client) streamCompletion(
	ctx context.Context,
	apiReq openaiapi.ChatCompletionRequest,
	onDelta func(string),
) (*CompletionResult, error) {
	apiReq.Stream = true

	stream, err := c.api.CreateChatCompletionStream(ctx, apiReq)
	if err != nil {
		return nil, fmt.Errorf("creating chat completion stream: %w", err)
	}
	defer stream.Close()

	var result CompletionResult
	toolCallsByIndex := map[int]*domain.ToolCall{}
	maxIndex := -1

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("receiving stream chunk: %w", err)
		}
		if len(chunk.Choices) == 0 {
			continue
		}

		delta := chunk.Choices[0].Delta
		if delta.Content != "" {
			result.Content += delta.Content
			onDelta(delta.Content)
		}

		// Tool calls arrive fragmented; merge them by index.
		for _, tc := range delta.ToolCalls {
			idx := 0
			if tc.Index != nil {
				idx = *tc.Index
			}
			call, ok := toolCallsByIndex[idx]
			if !ok {
				call = &domain.ToolCall{}
				toolCallsByIndex[idx] = call
				if idx > maxIndex {
					maxIndex = idx
				}
			}
			if tc.ID != "" {
				call.ID = tc.ID
			}
			if tc.Function.Name != "" {
				call.Name = tc.Function.Name
			}
			call.Arguments += tc.Function.Arguments
		}
	}

	for i := 0; i <= maxIndex; i++ {
		if call, ok := toolCallsByIndex[i]; ok {
			result.ToolCalls = append(result.ToolCalls, *call)
		}
	}

	return &result, nil
}

func (c *client) TranscribeAudio(ctx context.Context, audioFilePath string) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openaiapi.AudioRequest{
		Model:    openaiapi.Whisper1,
		FilePath: audioFilePath,
	})
	if err != nil {
		return "", fmt.Errorf("creating transcription: %w", err)
	}

	return resp.Text, nil
}

func (c *client) SynthesizeSpeech(ctx context.Context, text string) ([]byte, string, error) {
	resp, err := c.api.CreateSpeech(ctx, openaiapi.CreateSpeechRequest{
		Model:          openaiapi.SpeechModel(c.speech.Model),
		Input:          text,
		Voice:          openaiapi.SpeechVoice(c.speech.Voice),
		ResponseFormat: openaiapi.SpeechResponseFormat(c.speech.Format),
	})
	if err != nil {
		return nil, "", fmt.Errorf("creating speech: %w", err)
	}
	defer resp.Close()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, "", fmt.Errorf("reading speech response: %w", err)
	}

	return data, c.speech.Format, nil
}

func toAPIMessages(msgs []domain.Message) []openaiapi.ChatCompletionMessage {
	res := make([]openaiapi.ChatCompletionMessage, 0, len(msgs))
	for _, m := range msgs {
		apiMsg := openaiapi.ChatCompletionMessage{
			Role:       m.Role,
			Content:    m.Content,
			Name:       m.ToolName,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			apiMsg.ToolCalls = append(apiMsg.ToolCalls, openaiapi.ToolCall{
				ID:   tc.ID,
				Type: openaiapi.ToolTypeFunction,
				Function: openaiapi.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		res = append(res, apiMsg)
	}
	return res
}

func toAPITools(tools []domain.Tool) []openaiapi.Tool {
	if len(tools) == 0 {
		return nil
	}
	res := make([]openaiapi.Tool, 0, len(tools))
	for _, t := range tools {
		res = append(res, openaiapi.Tool{
			Type: openaiapi.ToolTypeFunction,
			Function: &openaiapi.FunctionDefinition{
				Name:        t.Function.Name,
				Description: t.Function.Description,
				Parameters:  t.Function.Parameters,
			},
		})
	}
	return res
}
