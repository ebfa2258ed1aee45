package content

import "fmt"

// Reason classifies why an entry failed validation.
type Reason string

const (
	MissingRequiredField Reason = "missing required field"
	TypeMismatch         Reason = "type mismatch"
	MalformedURL         Reason = "malformed URL"
)

// ValidationError reports a single bad field in an entry's front matter.
// Validation is fail-fast: the first error aborts the load, and the build.
type ValidationError struct {
	Collection string // collection name, empty when validating a bare record
	Entry      string // entry id, empty when validating a bare record
	Field      string
	Reason     Reason
	Detail     string
}

func (e *ValidationError) Error() string {
	where := e.Field
	if e.Entry != "" {
		where = e.Entry + ": " + where
	}
	if e.Collection != "" {
		where = e.Collection + "/" + where
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", where, e.Reason, e.Detail)
	}
	return fmt.Sprintf("%s: %s", where, e.Reason)
}
