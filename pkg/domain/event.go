package domain

import "time"

const (
	EventTypeHandoff    = "handoff"
	EventTypeToolCall   = "tool_call"
	EventTypeToolOutput = "tool_output"
	EventTypeGuardrail  = "guardrail"
	EventTypeMessage    = "message"
)

type AgentEvent struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Agent     string            `json:"agent"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}
