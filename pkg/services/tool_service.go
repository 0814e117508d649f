package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"reflect"

	"github.com/dkovchenko/conference-assistant/pkg/domain"
)

type ToolFunction interface {
	Name() string
	Description() string
	Parameters() domain.Definition
	Function() any
}

type toolService struct {
	tools []domain.Tool
}

func NewToolService(toolFunctions []ToolFunction) (*toolService, error) {
	tools := make([]domain.Tool, len(toolFunctions))
	for i, t := range toolFunctions {
		if err := validateFunction(t); err != nil {
			return nil, fmt.Errorf("invalid tool function %q: %w", t.Name(), err)
		}

		tools[i] = domain.NewFunctionTool(t.Name(), t.Description(), t.Parameters(), t.Function())
	}

	return &toolService{tools: tools}, nil
}

func (ts *toolService) Tools() []domain.Tool {
	return ts.tools
}

// ToolsFor resolves an agent's tool names against the registry.
func (ts *toolService) ToolsFor(names []string) []domain.Tool {
	var res []domain.Tool
	for _, name := range names {
		for i := range ts.tools {
			if ts.tools[i].Function.Name == name {
				res = append(res, ts.tools[i])
			}
		}
	}
	return res
}

// InvokeFunction calls a specific tool by name with the provided JSON arguments.
func (ts *toolService) InvokeFunction(ctx context.Context, conv *domain.Conversation, name, args string) (string, error) {
	slog.DebugContext(ctx, "Invoking function", "name", name, "args", args)

	var tool *domain.Tool
	for i := range ts.tools {
		if ts.tools[i].Function.Name == name {
			tool = &ts.tools[i]
			break
		}
	}
	if tool == nil {
		return "", fmt.Errorf("tool not found: %q", name)
	}

	parsedArgs := map[string]any{}
	if args != "" {
		if err := json.Unmarshal([]byte(args), &parsedArgs); err != nil {
			return "", fmt.Errorf("failed to parse arguments: %w", err)
		}
	}

	function := tool.Function
	if err := validateArguments(function.Parameters, parsedArgs); err != nil {
		return "", fmt.Errorf("invalid arguments for function %q: %w", name, err)
	}

	handler := reflect.ValueOf(function.Function)
	if handler.Kind() != reflect.Func {
		return "", fmt.Errorf("function %q is not callable", name)
	}

	funcArgs := []reflect.Value{
		reflect.ValueOf(ctx),
		reflect.ValueOf(conv),
		reflect.ValueOf(parsedArgs),
	}

	results := handler.Call(funcArgs)
	if len(results) != 2 {
		return "", fmt.Errorf("function %q must return (string, error), got %d values", name, len(results))
	}

	result, ok := results[0].Interface().(string)
	if !ok {
		return "", fmt.Errorf("function %q returned non-string result", name)
	}

	var err error
	if results[1].Interface() != nil {
		err, _ = results[1].Interface().(error)
	}

	slog.DebugContext(ctx, "Function executed", "result", result, "err", err)
	return result, err
}

func validateFunction(t ToolFunction) error {
	if t.Name() == "" {
		return errors.New("function name cannot be empty")
	}
	if t.Function() == nil {
		return errors.New("function handler cannot be nil")
	}
	if reflect.TypeOf(t.Function()).Kind() != reflect.Func {
		return errors.New("function handler must be callable")
	}
	return nil
}

func validateArguments(schema domain.Definition, args map[string]any) error {
	for _, required := range schema.Required {
		if _, ok := args[required]; !ok {
			return fmt.Errorf("missing required parameter %q", required)
		}
	}

	for paramName, value := range args {
		paramDef, ok := schema.Properties[paramName]
		if !ok {
			return fmt.Errorf("unknown parameter %q", paramName)
		}
		if !isValidType(value, string(paramDef.Type)) {
			return fmt.Errorf("parameter %q has invalid type: expected %q, got %T", paramName, paramDef.Type, value)
		}
	}
	return nil
}

func isValidType(value any, expectedType string) bool {
	switch expectedType {
	case "string":
		_, ok := value.(string)
		return ok
	case "number":
		_, ok := value.(float64)
		return ok
	case "integer":
		// JSON numbers decode as float64; accept integral values.
		f, ok := value.(float64)
		return ok && f == math.Trunc(f)
	case "boolean":
		_, ok := value.(bool)
		return ok
	default:
		return false
	}
}
