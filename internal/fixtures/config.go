package fixtures

import (
	"fmt"
	"strings"
	"time"
)

// Defect names a deliberate flaw injected into a generated submission.
type Defect string

// Supported defects.
const (
	DefectNone           Defect = "none"
	DefectStringScore    Defect = "string_score"
	DefectUnknownProfile Defect = "unknown_profile"
	DefectMissingField   Defect = "missing_field"
	DefectExtraField     Defect = "extra_field"
	DefectMissingProfile Defect = "missing_profile"
)

var defects = []Defect{ //nolint:gochecknoglobals // constant table
	DefectNone, DefectStringScore, DefectUnknownProfile,
	DefectMissingField, DefectExtraField, DefectMissingProfile,
}

// ParseDefect maps a flag value to a Defect. The empty string means none.
func ParseDefect(s string) (Defect, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefectNone, nil
	}
	for _, d := range defects {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDefect, s)
}

// Config holds configuration for fixture generation.
type Config struct {
	Profiles        int     // Number of profiles to generate
	Noise           float64 // Standard deviation of the noise added to submission scores
	Seed            uint64  // Seed for profile ids and scores
	Shuffle         bool    // Write submission profiles in a different order than the ground truth
	Defect          Defect  // Flaw to inject into the submission
	GroundTruthFile string  // Output path for the ground truth
	SubmissionFile  string  // Output path for the submission
}

// Score is one situation score as it will be written. Value is a float64
// except when a defect replaces it.
type Score struct {
	Code  string
	Value any
}

// Row is one profile record in file order.
type Row struct {
	ProfileID string
	Scores    []Score
}

// Stats holds generation statistics.
type Stats struct {
	ProfilesGenerated int
	RowsWritten       int
	Defect            Defect
	StartTime         time.Time
	EndTime           time.Time
	Duration          time.Duration
}
