package service

import (
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
)

// Validatable is implemented by request types that carry their own
// validation rules.
type Validatable interface {
	Validate() error
}

// Validator turns a request object into a list of human-readable validation
// failure messages. An empty list means the request is well formed.
type Validator interface {
	Validate(req any) []string
}

// ValidationError carries every failing field message for a request. It maps
// to a 400 at the HTTP boundary.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Messages)
}

// OzzoValidator adapts ozzo-validation rule sets into the Validator
// capability. Request types declare their rules in a Validate method and
// this adapter flattens the per-field errors into sorted messages.
type OzzoValidator struct{}

func (OzzoValidator) Validate(req any) []string {
	v, ok := req.(Validatable)
	if !ok {
		return nil
	}

	err := v.Validate()
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validation.Errors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrs))
	for field, ferr := range fieldErrs {
		messages = append(messages, fmt.Sprintf("%s: %s", field, ferr.Error()))
	}
	sort.Strings(messages) // deterministic output for callers and tests
	return messages
}
