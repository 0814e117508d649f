package domain

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrGuardrailTripped = errors.New("guardrail tripped")
)
