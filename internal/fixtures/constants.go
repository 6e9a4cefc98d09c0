package fixtures

import "errors"

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o644
)

// Stream buffer size and indentation for written files.
const (
	streamBufferSize = 4096
	indentStep       = 2
)

// Identifiers used by injected defects.
const (
	unknownProfileID = "unknown-profile"
	extraFieldCode   = "food"
	profileIDLength  = 16
)

// Per-situation score distributions (mean, standard deviation), in situation order.
var scoreDistributions = [...][2]float64{ //nolint:gochecknoglobals // constant table
	{20, 10}, // acc
	{25, 8},  // it
	{5, 12},  // bank
	{22, 6},  // wait
}

// Sentinel kinds for fixture errors.
var (
	ErrUnknownDefect = errors.New("unknown defect")
	ErrInvalidConfig = errors.New("invalid fixture config")
	ErrWriteFixture  = errors.New("write fixture failed")
)
