package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrRead               = errors.New("read dataset file failed")
	ErrParse              = errors.New("dataset is not valid JSON")
	ErrInvalidGroundTruth = errors.New("invalid ground truth")
)
