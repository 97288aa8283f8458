package spec

import "fmt"

// NotFoundError is returned when a local spec path does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("spec file not found: %s", e.Path)
}

// ParseError is returned when a spec cannot be fetched or decoded.
type ParseError struct {
	Source string
	Msg    string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError is returned when the optional structural validation pass
// rejects a document. It is never produced by the normalizer.
type ValidationError struct {
	Source string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("spec validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
