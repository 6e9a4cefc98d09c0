package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/aware-eval/internal/fixtures"
	"github.com/okian/aware-eval/pkg/logger"
)

// Default configuration constants.
const (
	defaultProfiles       = 500
	defaultNoise          = 5.0
	defaultSeed           = 1
	defaultGroundTruth    = "gt_val.json"
	defaultSubmission     = "my prediction file.json"
	defaultGenerateTimeout = 2 * time.Minute
)

func main() {
	var (
		profiles   = flag.Int("profiles", defaultProfiles, "Number of profiles to generate")
		noise      = flag.Float64("noise", defaultNoise, "Standard deviation of the noise added to submission scores")
		seed       = flag.Uint64("seed", defaultSeed, "Seed for profile ids and scores")
		shuffle    = flag.Bool("shuffle", false, "Write submission profiles in a different order than the ground truth")
		defect     = flag.String("defect", string(fixtures.DefectNone), "Flaw to inject into the submission")
		gtFile     = flag.String("gt", defaultGroundTruth, "Output path for the ground truth")
		submission = flag.String("submission", defaultSubmission, "Output path for the submission")
		verbose    = flag.Bool("verbose", false, "Enable debug logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		fixtures.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	d, err := fixtures.ParseDefect(*defect)
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultGenerateTimeout)
	defer cancel()

	cfg := &fixtures.Config{
		Profiles:        *profiles,
		Noise:           *noise,
		Seed:            *seed,
		Shuffle:         *shuffle,
		Defect:          d,
		GroundTruthFile: *gtFile,
		SubmissionFile:  *submission,
	}

	if _, err := fixtures.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Generation failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1) //nolint:gocritic // cancel called above
	}
}
