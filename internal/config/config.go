// Package config defines evaluator configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers defaults, an optional YAML file, and environment variables.
// - External errors are wrapped with this package's sentinel errors.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// GroundTruthPath is the ground-truth JSON file loaded once at startup.
	GroundTruthPath string `koanf:"ground_truth_path"`

	// SubmissionPath is the submission JSON file to evaluate.
	SubmissionPath string `koanf:"submission_path"`

	// ResultFile, if set, receives the evaluation result as JSON.
	ResultFile string `koanf:"result_file"`

	// MetricsFile, if set, receives Prometheus metrics in text format.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		GroundTruthPath: "gt_val.json",
		SubmissionPath:  "my prediction file.json",
	}
}
