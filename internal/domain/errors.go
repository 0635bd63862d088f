package domain

import "strings"

// FieldError describes a single invalid field: the field path (in the
// serialized snake_case form, e.g. "instructions" or "images[1].order")
// and a human-readable reason. Callers can correct the input and retry;
// these errors are never fatal.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Reason
}

// ValidationErrors collects every invariant violation found in one
// Validate pass rather than stopping at the first one.
type ValidationErrors []FieldError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e))
	for i, fe := range e {
		msgs[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// ErrOrNil returns the collected errors as an error value, or nil when
// the collection is empty. Keeps Validate implementations from returning
// a non-nil interface wrapping an empty slice.
func (e ValidationErrors) ErrOrNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
