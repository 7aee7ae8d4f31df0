// Package explorererrors provides sentinel and custom error types for the application.
package explorererrors

// ErrNotFound represents a "not found" error.
// Use when a requested transcript (or its embedding) doesn't exist.
var ErrNotFound = &NotFoundError{}

// NotFoundError is a sentinel error for resources that are not found.
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new NotFoundError with a custom message.
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Resource != "" {
		return e.Resource + " not found"
	}

	return "resource not found"
}

// Is implements the error interface for error comparison.
func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)

	return ok
}

// ErrValidation represents a validation error.
// Use when client input fails validation; no side effects may have happened yet.
var ErrValidation = &ValidationError{}

// ValidationError is a sentinel error for validation failures.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new ValidationError with a custom message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	if e.Field != "" {
		return "validation failed for field: " + e.Field
	}

	return "validation error"
}

// Is implements the error interface for error comparison.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)

	return ok
}

// ErrEmbeddingUnavailable is the sentinel for query embedding failures: provider error,
// timeout, rate limit, or a vector whose dimension does not match the corpus.
var ErrEmbeddingUnavailable = &EmbeddingUnavailableError{}

// EmbeddingUnavailableError reports that the query could not be embedded. Cause is the underlying error.
type EmbeddingUnavailableError struct {
	Message string
	Cause   error
}

// NewEmbeddingUnavailableError creates an EmbeddingUnavailableError wrapping cause.
func NewEmbeddingUnavailableError(message string, cause error) *EmbeddingUnavailableError {
	return &EmbeddingUnavailableError{Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *EmbeddingUnavailableError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "embedding unavailable"
	}

	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *EmbeddingUnavailableError) Unwrap() error {
	return e.Cause
}

// Is implements the error interface for error comparison.
func (e *EmbeddingUnavailableError) Is(target error) bool {
	_, ok := target.(*EmbeddingUnavailableError)

	return ok
}

// ErrCorpusLoad is the sentinel for startup failures reading the corpus datasets.
// It is fatal: the process must not serve with partial data.
var ErrCorpusLoad = &CorpusLoadError{}

// CorpusLoadError reports which dataset failed to load and why.
type CorpusLoadError struct {
	Path    string
	Message string
	Cause   error
}

// NewCorpusLoadError creates a CorpusLoadError for path.
func NewCorpusLoadError(path, message string, cause error) *CorpusLoadError {
	return &CorpusLoadError{Path: path, Message: message, Cause: cause}
}

// Error implements the error interface.
func (e *CorpusLoadError) Error() string {
	msg := "corpus load failed"
	if e.Path != "" {
		msg += " (" + e.Path + ")"
	}

	if e.Message != "" {
		msg += ": " + e.Message
	}

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap returns the underlying cause.
func (e *CorpusLoadError) Unwrap() error {
	return e.Cause
}

// Is implements the error interface for error comparison.
func (e *CorpusLoadError) Is(target error) bool {
	_, ok := target.(*CorpusLoadError)

	return ok
}
