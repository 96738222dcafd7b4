package quiz

import "fmt"

// GenerationFailedMessage is the only message a quiz generation failure shows callers.
const GenerationFailedMessage = "Failed to generate questions. Please try again."

// GenerationError represents any failure to produce a quiz: oracle, extraction,
// schema or count mismatch. Cause keeps the detail for logs.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return GenerationFailedMessage
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// ValidationError represents a caller precondition that does not hold
type ValidationError struct {
	Message string
	Field   string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// SaveError represents a failure to persist an assessment
type SaveError struct {
	Cause error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("Failed to save assessment: %v", e.Cause)
}

func (e *SaveError) Unwrap() error {
	return e.Cause
}
