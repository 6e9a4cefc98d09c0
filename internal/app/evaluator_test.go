package service_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/aware-eval/internal/adapters/dataset"
	service "github.com/okian/aware-eval/internal/app"
	"github.com/okian/aware-eval/internal/domain/model"
	"github.com/okian/aware-eval/internal/domain/scoring"
	"github.com/okian/aware-eval/internal/domain/validation"
	"github.com/okian/aware-eval/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const referenceGroundTruth = `{
	"u1": {"acc": 10, "it": 20, "bank": 30, "wait": 40},
	"u2": {"acc": 20, "it": 10, "bank": 10, "wait": 20}
}`

func writeFile(dir, name, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	return path
}

type fixedScorer float64

func (f fixedScorer) Score(context.Context, *model.ScoreTable, *model.ScoreTable) (float64, error) {
	return float64(f), nil
}

func TestEvaluator_New(t *testing.T) {
	Convey("Given a ground-truth file", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		Convey("When it is well-formed", func() {
			ev, err := service.New(ctx, writeFile(dir, "gt.json", referenceGroundTruth), service.WithLogger(logger.Get()))

			Convey("Then the evaluator should hold every profile", func() {
				So(err, ShouldBeNil)
				So(ev.GroundTruth().Len(), ShouldEqual, 2)
				So(ev.GroundTruth().Profiles(), ShouldResemble, []string{"u1", "u2"})
			})
		})

		Convey("When it is missing", func() {
			ev, err := service.New(ctx, filepath.Join(dir, "nope.json"))

			Convey("Then construction should fail with a read error", func() {
				So(ev, ShouldBeNil)
				So(errors.Is(err, dataset.ErrRead), ShouldBeTrue)
			})
		})

		Convey("When it is not JSON", func() {
			_, err := service.New(ctx, writeFile(dir, "gt.json", "{broken"))
			So(errors.Is(err, dataset.ErrParse), ShouldBeTrue)
		})
	})
}

func TestEvaluator_Evaluate(t *testing.T) {
	Convey("Given an evaluator over the reference ground truth", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		ev, err := service.New(ctx, writeFile(dir, "gt.json", referenceGroundTruth))
		So(err, ShouldBeNil)

		Convey("When the submission equals the ground truth", func() {
			result, err := ev.Evaluate(ctx, writeFile(dir, "sub.json", referenceGroundTruth))

			Convey("Then the primary score should be 1 and the secondary 0", func() {
				So(err, ShouldBeNil)
				So(result.Score, ShouldAlmostEqual, 1.0, 1e-12)
				So(result.ScoreSecondary, ShouldEqual, 0.0)
			})
		})

		Convey("When the same submission is evaluated twice", func() {
			path := writeFile(dir, "sub.json", referenceGroundTruth)
			first, err1 := ev.Evaluate(ctx, path)
			second, err2 := ev.Evaluate(ctx, path)

			Convey("Then both calls should agree", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(second, ShouldResemble, first)
			})
		})

		Convey("When u2 is replaced by an unknown u3", func() {
			_, err := ev.Evaluate(ctx, writeFile(dir, "sub.json", `{
				"u1": {"acc": 10, "it": 20, "bank": 30, "wait": 40},
				"u3": {"acc": 20, "it": 10, "bank": 10, "wait": 20}
			}`))

			Convey("Then it should be rejected as an unknown profile", func() {
				So(errors.Is(err, validation.ErrValidation), ShouldBeTrue)
				So(errors.Is(err, validation.ErrUnknownProfile), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "'u3'")
			})
		})

		Convey("When the submission is not valid JSON", func() {
			_, err := ev.Evaluate(ctx, writeFile(dir, "sub.json", `{"u1": `))

			Convey("Then it should be a validation error carrying the parse message", func() {
				So(errors.Is(err, validation.ErrValidation), ShouldBeTrue)
				So(errors.Is(err, validation.ErrUnreadableSubmission), ShouldBeTrue)
				So(errors.Is(err, dataset.ErrParse), ShouldBeTrue)
				So(err.Error(), ShouldStartWith, "Error loading submission file.")
			})
		})

		Convey("When the submission file is missing", func() {
			_, err := ev.Evaluate(ctx, filepath.Join(dir, "absent.json"))

			Convey("Then it should be a validation error wrapping the read error", func() {
				So(errors.Is(err, validation.ErrUnreadableSubmission), ShouldBeTrue)
				So(errors.Is(err, dataset.ErrRead), ShouldBeTrue)
			})
		})

		Convey("When a score is a quoted number", func() {
			_, err := ev.Evaluate(ctx, writeFile(dir, "sub.json", `{
				"u1": {"acc": "10", "it": 20, "bank": 30, "wait": 40},
				"u2": {"acc": 20, "it": 10, "bank": 10, "wait": 20}
			}`))
			So(errors.Is(err, validation.ErrScoreNotNumber), ShouldBeTrue)
		})

		Convey("When a prediction column is constant", func() {
			result, err := ev.Evaluate(ctx, writeFile(dir, "sub.json", `{
				"u1": {"acc": 10, "it": 20, "bank": 30, "wait": 5},
				"u2": {"acc": 20, "it": 10, "bank": 10, "wait": 5}
			}`))

			Convey("Then the primary score should be NaN", func() {
				So(err, ShouldBeNil)
				So(math.IsNaN(result.Score), ShouldBeTrue)
				So(result.ScoreSecondary, ShouldEqual, 0.0)
			})
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := ev.Evaluate(cctx, writeFile(dir, "sub.json", referenceGroundTruth))

			Convey("Then it should not be reported as a validation error", func() {
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
				So(errors.Is(err, validation.ErrValidation), ShouldBeFalse)
			})
		})
	})
}

func TestEvaluator_Scorers(t *testing.T) {
	Convey("Given an evaluator with custom scorers", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		ev, err := service.New(ctx, writeFile(dir, "gt.json", referenceGroundTruth),
			service.WithPrimaryScorer(fixedScorer(0.42)),
			service.WithSecondaryScorer(fixedScorer(7)),
		)
		So(err, ShouldBeNil)

		Convey("When evaluating a valid submission", func() {
			result, err := ev.Evaluate(ctx, writeFile(dir, "sub.json", referenceGroundTruth))

			Convey("Then the custom scores should be returned", func() {
				So(err, ShouldBeNil)
				So(result.Score, ShouldEqual, 0.42)
				So(result.ScoreSecondary, ShouldEqual, 7.0)
			})
		})

		Convey("When computing phases individually", func() {
			preds, err := ev.LoadPredictions(ctx, writeFile(dir, "sub.json", referenceGroundTruth))
			So(err, ShouldBeNil)

			primary, err := ev.ComputePrimaryScore(ctx, preds)
			So(err, ShouldBeNil)
			So(primary, ShouldEqual, 0.42)

			secondary, err := ev.ComputeSecondaryScore(ctx, preds)
			So(err, ShouldBeNil)
			So(secondary, ShouldEqual, 7.0)
		})
	})

	Convey("Given a single-profile ground truth", t, func() {
		ctx := context.Background()
		dir := t.TempDir()
		single := `{"u1": {"acc": 1, "it": 2, "bank": 3, "wait": 4}}`
		ev, err := service.New(ctx, writeFile(dir, "gt.json", single),
			service.WithPrimaryScorer(scoring.NewPearsonScorer()))
		So(err, ShouldBeNil)

		Convey("When evaluating", func() {
			_, err := ev.Evaluate(ctx, writeFile(dir, "sub.json", single))

			Convey("Then scoring should refuse the undefined correlation", func() {
				So(errors.Is(err, scoring.ErrTooFewProfiles), ShouldBeTrue)
			})
		})
	})
}
