package fixtures

import "os"

// ShowHelp prints usage information for the fixture generator.
func ShowHelp() {
	os.Stdout.WriteString(`Situation Score Fixture Generator
=================================

Writes a synthetic ground-truth file and a submission derived from it.

Usage:
  go run ./cmd/gen-fixtures [options]

Options:
  -profiles int
        Number of profiles to generate (default 500)
  -noise float
        Standard deviation of the noise added to submission scores (default 5)
  -seed uint
        Seed for profile ids and scores (default 1)
  -shuffle
        Write submission profiles in a different order than the ground truth
  -defect string
        Flaw to inject into the submission: none, string_score, unknown_profile,
        missing_field, extra_field, missing_profile (default "none")
  -gt string
        Output path for the ground truth (default "gt_val.json")
  -submission string
        Output path for the submission (default "my prediction file.json")
  -help
        Show this help message

Examples:
  # Clean submission, moderately noisy
  go run ./cmd/gen-fixtures -profiles 1000 -noise 3

  # Submission the evaluator must reject
  go run ./cmd/gen-fixtures -defect string_score
`)
}
