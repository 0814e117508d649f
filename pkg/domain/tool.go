package domain

import "github.com/sashabaranov/go-openai/jsonschema"

// Definition describes a tool's parameters using the OpenAI function-calling
// JSON schema.
type Definition = jsonschema.Definition

const toolTypeFunction = "function"

type Tool struct {
	Type     string
	Function *Function
}

type Function struct {
	Name        string
	Description string
	Parameters  Definition
	Function    any
}

// ToolCall is a model-requested function invocation.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

func NewFunctionTool(name, description string, parameters Definition, fn any) Tool {
	return Tool{
		Type: toolTypeFunction,
		Function: &Function{
			Name:        name,
			Description: description,
			Parameters:  parameters,
			Function:    fn,
		},
	}
}
