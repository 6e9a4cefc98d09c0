package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"

	service "github.com/okian/aware-eval/internal/app"
	"github.com/okian/aware-eval/internal/config"
	"github.com/okian/aware-eval/internal/domain/types"
	"github.com/okian/aware-eval/pkg/logger"
	"github.com/okian/aware-eval/pkg/metrics"
)

const (
	successBanner  = "Your data was successfully validated"
	resultFileMode = 0o644
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // shared codec

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logger: " + err.Error() + "\n")
		}
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout)
	stop()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// run loads configuration, evaluates one submission and prints the result.
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("aware-eval", flag.ContinueOnError)
	gtPath := fs.String("gt", "", "Ground-truth JSON file (overrides config)")
	submissionPath := fs.String("submission", "", "Submission JSON file (overrides config)")
	resultFile := fs.String("result", "", "Write the result JSON to this file (overrides config)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Load configuration (defaults -> optional file -> env -> flags)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	applyFlags(cfg, *gtPath, *submissionPath, *resultFile)

	if cfg.LogFormat != logger.FormatText {
		if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
			return err
		}
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	ev, err := service.New(ctx, cfg.GroundTruthPath, service.WithLogger(log.Named("evaluator")))
	if err != nil {
		exportMetrics(ctx, cfg.MetricsFile)
		return err
	}

	result, err := ev.Evaluate(ctx, cfg.SubmissionPath)
	exportMetrics(ctx, cfg.MetricsFile)
	if err != nil {
		return err
	}

	return report(stdout, cfg.ResultFile, result)
}

func applyFlags(cfg *config.Config, gtPath, submissionPath, resultFile string) {
	if gtPath != "" {
		cfg.GroundTruthPath = gtPath
	}
	if submissionPath != "" {
		cfg.SubmissionPath = submissionPath
	}
	if resultFile != "" {
		cfg.ResultFile = resultFile
	}
}

// report prints the banner and result to stdout and optionally saves it.
func report(stdout io.Writer, resultFile string, result types.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if _, err := fmt.Fprintf(stdout, "%s\n%s\n", successBanner, data); err != nil {
		return fmt.Errorf("print result: %w", err)
	}
	if resultFile == "" {
		return nil
	}
	if err := os.WriteFile(resultFile, append(data, '\n'), resultFileMode); err != nil {
		return fmt.Errorf("write result file: %w", err)
	}
	return nil
}

// exportMetrics writes the metrics textfile if one is configured. Failures
// are logged and never change the evaluation outcome.
func exportMetrics(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logger.Get().Warn(ctx, "metrics export failed", logger.String("path", path), logger.Error(err))
	}
}
