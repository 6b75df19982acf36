package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorMessageResponse is the envelope every error body is written in
type ErrorMessageResponse struct {
	Response string `json:"response"`
}

// ErrConflict is returned when a compare-and-set update loses to a
// concurrent writer. Callers are expected to re-read and retry.
var ErrConflict = errors.New("record was modified concurrently")

// Violation describes a single schema constraint failure
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries all constraint failures found in a record,
// so a caller sees every problem at once instead of one per request
type ValidationError struct {
	Violations []Violation
}

func (e ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// DuplicateKeyError is returned when a create or update would reuse an
// identifying field value that another record already holds
type DuplicateKeyError struct {
	Field string
	Value string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %s already exists", e.Field, e.Value)
}
