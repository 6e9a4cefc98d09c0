package validation

import (
	"errors"
	"fmt"
)

// Sentinel kinds for submission validation failures. Every ValidationError
// matches ErrValidation plus exactly one of the kinds below.
var (
	ErrValidation           = errors.New("submission validation failed")
	ErrUnreadableSubmission = errors.New("submission unreadable")
	ErrProfileCount         = errors.New("profile count mismatch")
	ErrUnknownProfile       = errors.New("unknown profile")
	ErrFieldCount           = errors.New("wrong field count")
	ErrUnknownSituation     = errors.New("unknown situation code")
	ErrScoreNotNumber       = errors.New("score must be a number")
)

// ValidationError describes the first violation found in a submission.
// Record is the 1-based position of the offending profile, or 0 when the
// violation concerns the submission as a whole.
type ValidationError struct {
	Kind      error
	Record    int
	Profile   string
	Situation string

	msg   string
	cause error
}

// NewValidationError builds a ValidationError with a ready message.
func NewValidationError(kind error, record int, profile, situation, msg string) *ValidationError {
	return &ValidationError{Kind: kind, Record: record, Profile: profile, Situation: situation, msg: msg}
}

// Wrap builds a ValidationError of the given kind that also carries cause.
func Wrap(kind error, cause error, msg string) *ValidationError {
	return &ValidationError{Kind: kind, msg: msg, cause: cause}
}

func (e *ValidationError) Error() string {
	if e.Record > 0 {
		return fmt.Sprintf("%s Error occurred at record nbr %d.", e.msg, e.Record)
	}
	return e.msg
}

// Unwrap exposes ErrValidation, the kind, and the underlying cause if any.
func (e *ValidationError) Unwrap() []error {
	errs := []error{ErrValidation, e.Kind}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

// KindName returns a short label for the failure kind, suitable for metrics.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrUnreadableSubmission):
		return "unreadable"
	case errors.Is(err, ErrProfileCount):
		return "profile_count"
	case errors.Is(err, ErrUnknownProfile):
		return "unknown_profile"
	case errors.Is(err, ErrFieldCount):
		return "field_count"
	case errors.Is(err, ErrUnknownSituation):
		return "unknown_situation"
	case errors.Is(err, ErrScoreNotNumber):
		return "score_not_number"
	default:
		return "other"
	}
}
