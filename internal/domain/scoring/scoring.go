// Package scoring computes evaluation scores from validated predictions.
package scoring

import (
	"context"
	"fmt"
	"math"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"github.com/okian/aware-eval/internal/domain/model"
)

// minProfiles is the smallest sample a correlation is defined on.
const minProfiles = 2

// Scorer computes a single score for a set of predictions.
type Scorer interface {
	// Score compares predictions with groundTruth, honoring ctx for cancellation.
	Score(ctx context.Context, groundTruth, predictions *model.ScoreTable) (float64, error)
}

// SituationScore is the correlation obtained for one situation.
type SituationScore struct {
	Situation   model.Situation
	Correlation float64
}

// Pearson returns the Pearson correlation coefficient of x and y.
// If either vector has zero variance the result is NaN.
func Pearson(x, y []float64) float64 {
	return stat.Correlation(x, y, nil)
}

// Option applies a configuration option to the PearsonScorer.
type Option func(*PearsonScorer)

// WithSituations restricts scoring to the given situations. Unknown values
// are dropped; an empty result keeps the default of all situations.
func WithSituations(situations ...model.Situation) Option {
	return func(s *PearsonScorer) {
		valid := lo.Uniq(lo.Filter(situations, func(sit model.Situation, _ int) bool { return sit.Valid() }))
		if len(valid) > 0 {
			s.situations = valid
		}
	}
}

// PearsonScorer averages per-situation Pearson correlations between ground
// truth and predictions.
type PearsonScorer struct {
	situations []model.Situation
}

// NewPearsonScorer creates a scorer over all situations.
func NewPearsonScorer(opts ...Option) *PearsonScorer {
	s := &PearsonScorer{situations: model.Situations()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score returns the mean correlation across situations. NaN correlations are
// not filtered and make the mean NaN.
func (s *PearsonScorer) Score(ctx context.Context, groundTruth, predictions *model.ScoreTable) (float64, error) {
	breakdown, err := s.Breakdown(ctx, groundTruth, predictions)
	if err != nil {
		return 0, err
	}
	return Mean(breakdown), nil
}

// Mean averages the correlations of a breakdown.
func Mean(breakdown []SituationScore) float64 {
	if len(breakdown) == 0 {
		return math.NaN()
	}
	sum := lo.SumBy(breakdown, func(ss SituationScore) float64 { return ss.Correlation })
	return sum / float64(len(breakdown))
}

// Breakdown returns one correlation per situation. Vectors are built in
// ground-truth profile order, so predictions may list profiles in any order.
func (s *PearsonScorer) Breakdown(ctx context.Context, groundTruth, predictions *model.ScoreTable) ([]SituationScore, error) {
	if groundTruth.Len() < minProfiles {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewProfiles, groundTruth.Len())
	}
	profiles := groundTruth.Profiles()
	if missing, found := lo.Find(profiles, func(p string) bool { return !predictions.Has(p) }); found {
		return nil, fmt.Errorf("%w: %q", ErrMissingProfile, missing)
	}

	out := make([]SituationScore, 0, len(s.situations))
	for _, sit := range s.situations {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled: %w", err)
		}
		gtValues, _ := groundTruth.Column(sit, profiles)
		predValues, _ := predictions.Column(sit, profiles)
		out = append(out, SituationScore{Situation: sit, Correlation: Pearson(gtValues, predValues)})
	}
	return out, nil
}

// ConstantScorer always returns the same score.
type ConstantScorer struct {
	value float64
}

// NewConstantScorer creates a scorer that returns value.
func NewConstantScorer(value float64) *ConstantScorer {
	return &ConstantScorer{value: value}
}

// Score returns the configured value.
func (c *ConstantScorer) Score(ctx context.Context, _, _ *model.ScoreTable) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context cancelled: %w", err)
	}
	return c.value, nil
}
