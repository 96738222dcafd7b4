package resume

import (
	"errors"
	"fmt"
)

// ScoreErrorKind tells the user what to fix after a failed review.
type ScoreErrorKind string

const (
	KindMissingCredential ScoreErrorKind = "missing-credential"
	KindInvalidCredential ScoreErrorKind = "invalid-credential"
	KindUnparseable       ScoreErrorKind = "unparseable"
	KindOther             ScoreErrorKind = "other"
)

// ScoreError is returned by ScoreResume. Message is safe to show to the user.
type ScoreError struct {
	Kind    ScoreErrorKind
	Message string
	Cause   error
}

func (e *ScoreError) Error() string {
	return e.Message
}

func (e *ScoreError) Unwrap() error {
	return e.Cause
}

// AsScoreError returns the ScoreError in err's chain, if any.
func AsScoreError(err error) (*ScoreError, bool) {
	var se *ScoreError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// UnsupportedTypeError is returned for uploads whose format has no text extractor
type UnsupportedTypeError struct {
	MIMEType string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type: %s", e.MIMEType)
}
