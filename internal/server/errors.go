package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/career-coach/internal/insights"
	"github.com/jonathan/career-coach/internal/quiz"
	"github.com/jonathan/career-coach/internal/resume"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}

	var (
		emailExists *ErrEmailAlreadyExists
		badLogin    *ErrInvalidCredentials
		notFound    *ErrUserNotFound
		invalid     *ErrValidation
		quizInvalid *quiz.ValidationError
		quizFailed  *quiz.GenerationError
		unsupported *resume.UnsupportedTypeError
		tooLarge    *http.MaxBytesError
	)
	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &badLogin):
		return http.StatusUnauthorized
	case errors.As(err, &notFound), errors.Is(err, insights.ErrUserNotFound):
		return http.StatusNotFound
	case errors.As(err, &invalid), errors.As(err, &quizInvalid), errors.Is(err, insights.ErrNoIndustry):
		return http.StatusBadRequest
	case errors.As(err, &quizFailed):
		return http.StatusBadGateway
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	}

	if se, ok := resume.AsScoreError(err); ok {
		if se.Kind == resume.KindMissingCredential {
			return http.StatusServiceUnavailable
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// publicMessage returns the text shown to clients for err. Internal failures
// are not described.
func publicMessage(err error) string {
	var saveErr *quiz.SaveError
	if errors.As(err, &saveErr) {
		return "Failed to save assessment"
	}
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "Internal server error"
	}
	return err.Error()
}
