package quizgen

import "fmt"

// ErrMalformedResponse means the model reply was not parseable as a
// JSON array of question objects, even after fence stripping.
type ErrMalformedResponse struct {
	Content string
	Err     error
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed question response: %v", e.Err)
}

func (e *ErrMalformedResponse) Unwrap() error { return e.Err }

// ErrSchemaViolation means the reply parsed as JSON but one or more
// questions failed structural validation.
type ErrSchemaViolation struct {
	Index  int
	Field  string
	Reason string
}

func (e *ErrSchemaViolation) Error() string {
	return fmt.Sprintf("question %d: %s %s", e.Index, e.Field, e.Reason)
}

// ErrEmptyResponse means the model returned a well-formed but empty
// question array.
type ErrEmptyResponse struct{}

func (e *ErrEmptyResponse) Error() string { return "model returned no questions" }
