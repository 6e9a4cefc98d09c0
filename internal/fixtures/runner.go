package fixtures

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/aware-eval/pkg/logger"
)

// Run generates a ground truth and a matching submission and writes both.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{
		StartTime: time.Now(),
		Defect:    cfg.Defect,
	}

	logger.Get().Info(ctx, "starting fixture generation",
		logger.Int("profiles", cfg.Profiles),
		logger.Float64("noise", cfg.Noise),
		logger.Any("seed", cfg.Seed),
		logger.String("groundTruthFile", cfg.GroundTruthFile),
		logger.String("submissionFile", cfg.SubmissionFile))

	if cfg.GroundTruthFile == "" || cfg.SubmissionFile == "" {
		return nil, fmt.Errorf("%w: output files must be set", ErrInvalidConfig)
	}

	// Step 1: Generate ground truth
	groundTruth, err := GenerateGroundTruth(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("ground truth generation failed: %w", err)
	}
	stats.ProfilesGenerated = len(groundTruth)

	// Step 2: Derive submission
	submission, err := GenerateSubmission(ctx, cfg, groundTruth)
	if err != nil {
		return nil, fmt.Errorf("submission generation failed: %w", err)
	}

	// Step 3: Write both files
	if err := WriteRows(ctx, cfg.GroundTruthFile, groundTruth); err != nil {
		return nil, err
	}
	if err := WriteRows(ctx, cfg.SubmissionFile, submission); err != nil {
		return nil, err
	}
	stats.RowsWritten = len(submission)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, nil
}

// displayFinalStats logs the final generation statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("profilesGenerated", stats.ProfilesGenerated),
		logger.Int("rowsWritten", stats.RowsWritten),
		logger.String("defect", string(stats.Defect)),
		logger.String("duration", stats.Duration.String()))
}
