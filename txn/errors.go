package txn

import "fmt"

// InputValidationError is returned when a calculation request is malformed
// at its root. It rejects the whole batch before any transaction is processed.
type InputValidationError struct {
	Reason string
	Err    error
}

func (e *InputValidationError) Error() string {
	return "invalid input: " + e.Reason
}

func (e *InputValidationError) Unwrap() error {
	return e.Err
}

// InvalidFieldError is returned by a strict Normalizer when a field cannot be
// used as given. Lenient normalizers coerce the field instead.
type InvalidFieldError struct {
	Field  string
	Value  string
	Reason string
	Pos    Position
}

func (e *InvalidFieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// GetPosition returns the source location of the offending record.
func (e *InvalidFieldError) GetPosition() Position {
	return e.Pos
}
