// Package fixtures generates synthetic ground-truth and submission files
// for exercising the evaluator.
package fixtures

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/okian/aware-eval/internal/domain/model"
	"github.com/okian/aware-eval/pkg/logger"
)

// Stream identifiers keep ground-truth and submission draws independent.
const (
	groundTruthStream = 1
	submissionStream  = 2
)

// minProfiles is the smallest ground truth a correlation can be computed on.
const minProfiles = 2

// profileNamespace scopes the name-based profile UUIDs.
var profileNamespace = uuid.MustParse("6f1c9a2e-3b7d-4e55-9a61-2c0f8d7b4e10") //nolint:gochecknoglobals // constant

func validateConfig(cfg *Config) error {
	switch {
	case cfg.Profiles < minProfiles:
		return fmt.Errorf("%w: need at least %d profiles, got %d", ErrInvalidConfig, minProfiles, cfg.Profiles)
	case cfg.Noise < 0:
		return fmt.Errorf("%w: noise must not be negative", ErrInvalidConfig)
	}
	return nil
}

// profileID derives a stable 16-character identifier for the i-th profile.
func profileID(seed uint64, i int) string {
	u := uuid.NewSHA1(profileNamespace, []byte(strconv.FormatUint(seed, 10)+"/"+strconv.Itoa(i)))
	return strings.ReplaceAll(u.String(), "-", "")[:profileIDLength]
}

// GenerateGroundTruth creates cfg.Profiles rows with one score per situation.
func GenerateGroundTruth(ctx context.Context, cfg *Config) ([]Row, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	logger.Get().Info(ctx, "generating ground truth", logger.Int("profiles", cfg.Profiles))

	rng := rand.New(rand.NewPCG(cfg.Seed, groundTruthStream)) //nolint:gosec // reproducible fixtures
	rows := make([]Row, cfg.Profiles)
	for i := range rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("context cancelled during generation: %w", err)
			}
		}
		scores := make([]Score, 0, model.SituationCount)
		for _, s := range model.Situations() {
			dist := scoreDistributions[s]
			scores = append(scores, Score{Code: s.Code(), Value: dist[0] + rng.NormFloat64()*dist[1]})
		}
		rows[i] = Row{ProfileID: profileID(cfg.Seed, i), Scores: scores}
	}
	return rows, nil
}

// GenerateSubmission derives a submission from groundTruth: every score gets
// gaussian noise, profiles are optionally shuffled, and cfg.Defect is applied.
func GenerateSubmission(ctx context.Context, cfg *Config, groundTruth []Row) ([]Row, error) {
	logger.Get().Info(ctx, "generating submission",
		logger.Float64("noise", cfg.Noise),
		logger.Bool("shuffle", cfg.Shuffle),
		logger.String("defect", string(cfg.Defect)))

	rng := rand.New(rand.NewPCG(cfg.Seed, submissionStream)) //nolint:gosec // reproducible fixtures
	rows := lo.Map(groundTruth, func(gt Row, _ int) Row {
		scores := lo.Map(gt.Scores, func(sc Score, _ int) Score {
			v, _ := sc.Value.(float64)
			return Score{Code: sc.Code, Value: v + rng.NormFloat64()*cfg.Noise}
		})
		return Row{ProfileID: gt.ProfileID, Scores: scores}
	})

	if cfg.Shuffle {
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
	}
	return applyDefect(cfg.Defect, rows)
}

func applyDefect(defect Defect, rows []Row) ([]Row, error) {
	if len(rows) == 0 {
		return rows, nil
	}
	first := &rows[0]
	switch defect {
	case DefectNone, "":
	case DefectStringScore:
		sc := &first.Scores[model.ITJob]
		sc.Value = strconv.FormatFloat(sc.Value.(float64), 'f', -1, 64)
	case DefectUnknownProfile:
		rows[len(rows)-1].ProfileID = unknownProfileID
	case DefectMissingField:
		first.Scores = first.Scores[:model.SituationCount-1]
	case DefectExtraField:
		first.Scores = append(first.Scores, Score{Code: extraFieldCode, Value: 0.0})
	case DefectMissingProfile:
		rows = rows[:len(rows)-1]
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefect, defect)
	}
	return rows, nil
}
