package extract

import (
	"errors"
	"fmt"
	"strings"
)

// Reason explains why an extraction failed.
type Reason string

const (
	// ReasonUnparseable means no JSON object could be recovered
	ReasonUnparseable Reason = "unparseable"
	// ReasonMissingFields means an object was recovered but lacks required fields
	ReasonMissingFields Reason = "missing-fields"
)

var errNoObject = errors.New("no JSON object found")

// Failure is returned by Extract. RawText is kept for diagnostics only.
type Failure struct {
	Reason  Reason
	RawText string
	Missing []string
	Cause   error
}

func (e *Failure) Error() string {
	switch {
	case e.Reason == ReasonMissingFields:
		return fmt.Sprintf("extraction failed (%s): %s", e.Reason, strings.Join(e.Missing, ", "))
	case e.Cause != nil:
		return fmt.Sprintf("extraction failed (%s): %v", e.Reason, e.Cause)
	default:
		return fmt.Sprintf("extraction failed (%s)", e.Reason)
	}
}

func (e *Failure) Unwrap() error {
	return e.Cause
}

// AsFailure returns the Failure in err's chain, if any.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
