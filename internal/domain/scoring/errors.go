package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrTooFewProfiles = errors.New("at least two profiles are required to compute a correlation")
	ErrMissingProfile = errors.New("prediction missing for ground-truth profile")
)
