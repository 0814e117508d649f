package domain

// AgentDescriptor is the static description of an agent exposed to the client
// so the UI can render the agent graph.
type AgentDescriptor struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Handoffs        []string `json:"handoffs"`
	Tools           []string `json:"tools"`
	InputGuardrails []string `json:"input_guardrails"`
}

type GuardrailCheck struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Input     string `json:"input"`
	Reasoning string `json:"reasoning"`
	Passed    bool   `json:"passed"`
}
