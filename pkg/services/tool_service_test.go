package services

import (
	"context"
	"strings"
	"testing"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type stubTool struct {
	name   string
	params domain.Definition
	fn     any
}

func (s *stubTool) Name() string                  { return s.name }
func (s *stubTool) Description() string           { return "stub" }
func (s *stubTool) Parameters() domain.Definition { return s.params }
func (s *stubTool) Function() any                 { return s.fn }

func newEchoTool() *stubTool {
	return &stubTool{
		name: "echo",
		params: domain.Definition{
			Type: "object",
			Properties: map[string]domain.Definition{
				"text":  {Type: "string"},
				"times": {Type: "integer"},
			},
			Required: []string{"text"},
		},
		fn: func(ctx context.Context, conv *domain.Conversation, args map[string]any) (string, error) {
			text, _ := args["text"].(string)
			times := 1
			if n, ok := args["times"].(float64); ok {
				times = int(n)
			}
			return strings.Repeat(text, times), nil
		},
	}
}

func TestToolService_InvokeFunction(t *testing.T) {
	ts, err := NewToolService([]ToolFunction{newEchoTool()})
	if err != nil {
		t.Fatalf("NewToolService: %v", err)
	}

	tests := []struct {
		name    string
		args    string
		want    string
		wantErr string
	}{
		{
			name: "required only",
			args: `{"text":"hi"}`,
			want: "hi",
		},
		{
			name: "with optional integer",
			args: `{"text":"ab","times":3}`,
			want: "ababab",
		},
		{
			name:    "missing required",
			args:    `{"times":2}`,
			wantErr: `missing required parameter "text"`,
		},
		{
			name:    "wrong type",
			args:    `{"text":42}`,
			wantErr: `parameter "text" has invalid type`,
		},
		{
			name:    "unknown parameter",
			args:    `{"text":"hi","loud":true}`,
			wantErr: `unknown parameter "loud"`,
		},
		{
			name:    "fractional integer",
			args:    `{"text":"hi","times":1.5}`,
			wantErr: `parameter "times" has invalid type`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ts.InvokeFunction(context.Background(), &domain.Conversation{}, "echo", tt.args)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("InvokeFunction: %v", err)
			}
			if got != tt.want {
				t.Errorf("result = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToolService_UnknownTool(t *testing.T) {
	ts, err := NewToolService([]ToolFunction{newEchoTool()})
	if err != nil {
		t.Fatalf("NewToolService: %v", err)
	}

	if _, err := ts.InvokeFunction(context.Background(), &domain.Conversation{}, "nope", "{}"); err == nil {
		t.Fatal("expected error for unknown tool")
	}
}

func TestToolService_ToolsFor(t *testing.T) {
	ts, err := NewToolService([]ToolFunction{
		newEchoTool(),
		&stubTool{name: "other", params: domain.Definition{Type: "object"}, fn: func() {}},
	})
	if err != nil {
		t.Fatalf("NewToolService: %v", err)
	}

	got := ts.ToolsFor([]string{"other", "missing"})
	if len(got) != 1 || got[0].Function.Name != "other" {
		t.Errorf("ToolsFor = %v, want single 'other' tool", got)
	}
}

func TestNewToolService_RejectsNonCallable(t *testing.T) {
	_, err := NewToolService([]ToolFunction{
		&stubTool{name: "bad", fn: "not a func"},
	})
	if err == nil {
		t.Fatal("expected error for non-callable handler")
	}
}
