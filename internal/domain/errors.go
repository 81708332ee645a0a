package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound   = errors.New("not found")
	ErrCanceled   = errors.New("request canceled")
	ErrAIDisabled = errors.New("AI assistant is not configured")
)

// ValidationError reports a task field value outside its closed set
type ValidationError struct {
	Field string // "status" or "priority"
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

// NotFoundError is returned by the store in strict mode when an operation
// names a task that does not exist
type NotFoundError struct {
	Op string // "update", "delete", "move", "drop"
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s [%s]: task not found", e.Op, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// GenerationError represents a failed AI plan generation
type GenerationError struct {
	Message string // Human-readable context
	Err     error  // Underlying error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return "generate plan: " + e.Message + ": " + e.Err.Error()
	}
	return "generate plan: " + e.Message
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// EnhancementError represents a failed AI description rewrite
type EnhancementError struct {
	Message string
	Err     error
}

func (e *EnhancementError) Error() string {
	if e.Err != nil {
		return "enhance description: " + e.Message + ": " + e.Err.Error()
	}
	return "enhance description: " + e.Message
}

func (e *EnhancementError) Unwrap() error {
	return e.Err
}
