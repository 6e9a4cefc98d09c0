// Package service provides the Evaluator, which loads the ground truth once
// and scores submission files against it.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/okian/aware-eval/internal/adapters/dataset"
	"github.com/okian/aware-eval/internal/domain/model"
	"github.com/okian/aware-eval/internal/domain/scoring"
	"github.com/okian/aware-eval/internal/domain/types"
	"github.com/okian/aware-eval/internal/domain/validation"
	"github.com/okian/aware-eval/pkg/logger"
	"github.com/okian/aware-eval/pkg/metrics"
)

// Evaluation phases used in logs and duration metrics.
const (
	phaseGroundTruth = "load_ground_truth"
	phasePredictions = "load_predictions"
	phasePrimary     = "primary_score"
	phaseSecondary   = "secondary_score"
	phaseTotal       = "evaluate"
)

const millisecondsPerSecond = 1e3

// Evaluator validates submissions and scores them against an immutable
// ground truth. Evaluate keeps all intermediate state local to the call.
type Evaluator struct {
	groundTruth *model.ScoreTable
	primary     scoring.Scorer
	secondary   scoring.Scorer
	logger      logger.Logger
}

// Option applies a configuration option to the Evaluator.
type Option func(*Evaluator)

// WithLogger sets a custom logger for the evaluator.
func WithLogger(l logger.Logger) Option {
	return func(e *Evaluator) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPrimaryScorer replaces the mean Pearson correlation scorer.
func WithPrimaryScorer(s scoring.Scorer) Option {
	return func(e *Evaluator) {
		if s != nil {
			e.primary = s
		}
	}
}

// WithSecondaryScorer replaces the constant 0.0 secondary scorer.
func WithSecondaryScorer(s scoring.Scorer) Option {
	return func(e *Evaluator) {
		if s != nil {
			e.secondary = s
		}
	}
}

// New loads the ground truth at groundTruthPath and returns an Evaluator.
// A missing or malformed ground truth is fatal: nothing can be scored.
func New(ctx context.Context, groundTruthPath string, opts ...Option) (*Evaluator, error) {
	e := &Evaluator{
		primary:   scoring.NewPearsonScorer(),
		secondary: scoring.NewConstantScorer(0),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger.Info(ctx, "loading ground truth", logger.String("path", groundTruthPath))
	start := time.Now()
	gt, err := dataset.ReadGroundTruth(ctx, groundTruthPath)
	if err != nil {
		return nil, fmt.Errorf("load ground truth %q: %w", groundTruthPath, err)
	}
	metrics.RecordPhaseDuration(phaseGroundTruth, sinceMs(start))
	metrics.UpdateGroundTruthProfiles(gt.Len())

	e.groundTruth = gt
	e.logger.Info(ctx, "ground truth loaded", logger.Int("profiles", gt.Len()))
	return e, nil
}

// GroundTruth returns the loaded ground truth. Callers must not modify it.
func (e *Evaluator) GroundTruth() *model.ScoreTable { return e.groundTruth }

// Evaluate validates the submission at submissionPath and scores it.
// Validation is all-or-nothing; the first violation aborts the call.
func (e *Evaluator) Evaluate(ctx context.Context, submissionPath string) (types.Result, error) {
	e.logger.Info(ctx, "evaluate", logger.String("submission", submissionPath))
	start := time.Now()

	result, err := e.evaluate(ctx, submissionPath)
	metrics.RecordPhaseDuration(phaseTotal, sinceMs(start))

	var verr *validation.ValidationError
	switch {
	case err == nil:
		metrics.RecordEvaluation(metrics.OutcomeSuccess)
		metrics.UpdateScores(result.Score, result.ScoreSecondary)
		e.logger.Info(ctx, "evaluation finished",
			logger.Float64("score", result.Score),
			logger.Float64("score_secondary", result.ScoreSecondary))
	case errors.As(err, &verr):
		metrics.RecordEvaluation(metrics.OutcomeInvalid)
		metrics.RecordValidationFailure(validation.KindName(err))
		e.logger.Warn(ctx, "submission rejected",
			logger.Int("record", verr.Record),
			logger.String("profile", verr.Profile),
			logger.String("situation", verr.Situation),
			logger.Error(err))
	default:
		metrics.RecordEvaluation(metrics.OutcomeError)
		e.logger.Error(ctx, "evaluation failed", logger.Error(err))
	}
	return result, err
}

func (e *Evaluator) evaluate(ctx context.Context, submissionPath string) (types.Result, error) {
	predictions, err := e.LoadPredictions(ctx, submissionPath)
	if err != nil {
		return types.Result{}, err
	}
	primary, err := e.ComputePrimaryScore(ctx, predictions)
	if err != nil {
		return types.Result{}, err
	}
	secondary, err := e.ComputeSecondaryScore(ctx, predictions)
	if err != nil {
		return types.Result{}, err
	}
	return types.Result{Score: primary, ScoreSecondary: secondary}, nil
}

// LoadPredictions reads and validates a submission file. Read and parse
// failures are reported as validation errors that still match the
// underlying dataset error.
func (e *Evaluator) LoadPredictions(ctx context.Context, submissionPath string) (*model.ScoreTable, error) {
	e.logger.Info(ctx, "loading predictions", logger.String("path", submissionPath))
	start := time.Now()
	defer func() { metrics.RecordPhaseDuration(phasePredictions, sinceMs(start)) }()

	doc, err := dataset.ReadDocument(ctx, submissionPath)
	if err != nil {
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, validation.Wrap(validation.ErrUnreadableSubmission, err,
			"Error loading submission file. Please make sure your file is formatted as valid JSON. Error: "+err.Error())
	}
	return validation.Validate(doc, e.groundTruth)
}

// ComputePrimaryScore returns the primary score of validated predictions.
func (e *Evaluator) ComputePrimaryScore(ctx context.Context, predictions *model.ScoreTable) (float64, error) {
	e.logger.Info(ctx, "compute primary score")
	start := time.Now()
	defer func() { metrics.RecordPhaseDuration(phasePrimary, sinceMs(start)) }()

	pearson, ok := e.primary.(*scoring.PearsonScorer)
	if !ok {
		return e.primary.Score(ctx, e.groundTruth, predictions)
	}

	breakdown, err := pearson.Breakdown(ctx, e.groundTruth, predictions)
	if err != nil {
		return 0, err
	}
	for _, ss := range breakdown {
		metrics.UpdateSituationCorrelation(ss.Situation.Code(), ss.Correlation)
		e.logger.Debug(ctx, "situation correlation",
			logger.String("situation", ss.Situation.Code()),
			logger.Float64("correlation", ss.Correlation))
	}
	return scoring.Mean(breakdown), nil
}

// ComputeSecondaryScore returns the secondary score of validated predictions.
func (e *Evaluator) ComputeSecondaryScore(ctx context.Context, predictions *model.ScoreTable) (float64, error) {
	e.logger.Info(ctx, "compute secondary score")
	start := time.Now()
	defer func() { metrics.RecordPhaseDuration(phaseSecondary, sinceMs(start)) }()

	return e.secondary.Score(ctx, e.groundTruth, predictions)
}

func sinceMs(start time.Time) float64 {
	return time.Since(start).Seconds() * millisecondsPerSecond
}
