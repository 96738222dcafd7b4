package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// ErrorKind classifies oracle failures.
type ErrorKind string

const (
	// KindMissingCredential means no API key was configured
	KindMissingCredential ErrorKind = "missing-credential"
	// KindInvalidCredential means the provider rejected the API key
	KindInvalidCredential ErrorKind = "invalid-credential"
	// KindQuota means the provider refused the call for quota or rate reasons
	KindQuota ErrorKind = "quota"
	// KindTimeout means the call did not finish within the configured timeout
	KindTimeout ErrorKind = "timeout"
	// KindUnavailable covers network failures and empty or malformed replies
	KindUnavailable ErrorKind = "unavailable"
)

// OracleError represents a failed call to the generative-language service.
type OracleError struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *OracleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("oracle call failed (%s): %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("oracle call failed (%s): %s", e.Kind, e.Message)
}

func (e *OracleError) Unwrap() error {
	return e.Cause
}

// Retryable reports whether repeating the call could succeed.
// Only timeouts qualify; the core itself never retries.
func (e *OracleError) Retryable() bool {
	return e.Kind == KindTimeout
}

// AsOracleError returns the OracleError in err's chain, if any.
func AsOracleError(err error) (*OracleError, bool) {
	var oe *OracleError
	if errors.As(err, &oe) {
		return oe, true
	}
	return nil, false
}

// classifyError converts a provider error into an OracleError.
func classifyError(ctx context.Context, err error) *OracleError {
	if oe, ok := AsOracleError(err); ok {
		return oe
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &OracleError{Kind: KindTimeout, Message: "request timed out", Cause: err}
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &OracleError{Kind: KindInvalidCredential, Message: "API key rejected", Cause: err}
		case http.StatusTooManyRequests:
			return &OracleError{Kind: KindQuota, Message: "quota exceeded", Cause: err}
		case http.StatusBadRequest:
			if isInvalidKeyMessage(apiErr.Message) {
				return &OracleError{Kind: KindInvalidCredential, Message: "API key not valid", Cause: err}
			}
		}
	}

	// Some transports only surface the provider message as text
	msg := err.Error()
	switch {
	case isInvalidKeyMessage(msg):
		return &OracleError{Kind: KindInvalidCredential, Message: "API key not valid", Cause: err}
	case strings.Contains(msg, "RESOURCE_EXHAUSTED"), strings.Contains(strings.ToLower(msg), "quota"):
		return &OracleError{Kind: KindQuota, Message: "quota exceeded", Cause: err}
	}

	return &OracleError{Kind: KindUnavailable, Message: "failed to generate content", Cause: err}
}

func isInvalidKeyMessage(msg string) bool {
	return strings.Contains(msg, "API key not valid") || strings.Contains(msg, "API_KEY_INVALID")
}
