package fixtures_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/aware-eval/internal/adapters/dataset"
	"github.com/okian/aware-eval/internal/domain/scoring"
	"github.com/okian/aware-eval/internal/domain/validation"
	"github.com/okian/aware-eval/internal/fixtures"
	"github.com/okian/aware-eval/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(logger.WithWriter(io.Discard)); err != nil {
		panic(err)
	}
}

func newConfig(dir string, defect fixtures.Defect) *fixtures.Config {
	return &fixtures.Config{
		Profiles:        50,
		Noise:           2,
		Seed:            7,
		Shuffle:         true,
		Defect:          defect,
		GroundTruthFile: filepath.Join(dir, "gt_val.json"),
		SubmissionFile:  filepath.Join(dir, "out", "my prediction file.json"),
	}
}

func runAndValidate(ctx context.Context, cfg *fixtures.Config) error {
	if _, err := fixtures.Run(ctx, cfg); err != nil {
		return err
	}
	gt, err := dataset.ReadGroundTruth(ctx, cfg.GroundTruthFile)
	if err != nil {
		return err
	}
	doc, err := dataset.ReadDocument(ctx, cfg.SubmissionFile)
	if err != nil {
		return err
	}
	_, err = validation.Validate(doc, gt)
	return err
}

func TestParseDefect(t *testing.T) {
	Convey("Given defect flag values", t, func() {
		d, err := fixtures.ParseDefect("")
		So(err, ShouldBeNil)
		So(d, ShouldEqual, fixtures.DefectNone)

		d, err = fixtures.ParseDefect(" String_Score ")
		So(err, ShouldBeNil)
		So(d, ShouldEqual, fixtures.DefectStringScore)

		_, err = fixtures.ParseDefect("bogus")
		So(errors.Is(err, fixtures.ErrUnknownDefect), ShouldBeTrue)
	})
}

func TestGenerateGroundTruth(t *testing.T) {
	Convey("Given a fixture config", t, func() {
		ctx := context.Background()
		cfg := newConfig(t.TempDir(), fixtures.DefectNone)

		Convey("When generating twice with the same seed", func() {
			a, errA := fixtures.GenerateGroundTruth(ctx, cfg)
			b, errB := fixtures.GenerateGroundTruth(ctx, cfg)

			Convey("Then the rows should be identical", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(len(a), ShouldEqual, cfg.Profiles)
				So(a, ShouldResemble, b)
				So(len(a[0].ProfileID), ShouldEqual, 16)
				So(len(a[0].Scores), ShouldEqual, 4)
				So(a[0].Scores[0].Code, ShouldEqual, "acc")
			})
		})

		Convey("When the seed changes", func() {
			a, _ := fixtures.GenerateGroundTruth(ctx, cfg)
			cfg.Seed++
			b, _ := fixtures.GenerateGroundTruth(ctx, cfg)

			Convey("Then the profile ids should differ", func() {
				So(a[0].ProfileID, ShouldNotEqual, b[0].ProfileID)
			})
		})

		Convey("When too few profiles are requested", func() {
			cfg.Profiles = 1
			_, err := fixtures.GenerateGroundTruth(ctx, cfg)
			So(errors.Is(err, fixtures.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the noise is negative", func() {
			cfg.Noise = -1
			_, err := fixtures.GenerateGroundTruth(ctx, cfg)
			So(errors.Is(err, fixtures.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the context is cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := fixtures.GenerateGroundTruth(cctx, cfg)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given generated fixtures", t, func() {
		ctx := context.Background()

		Convey("When no defect is injected", func() {
			cfg := newConfig(t.TempDir(), fixtures.DefectNone)
			stats, err := fixtures.Run(ctx, cfg)

			Convey("Then both files should exist and the submission should validate", func() {
				So(err, ShouldBeNil)
				So(stats.ProfilesGenerated, ShouldEqual, 50)
				So(stats.RowsWritten, ShouldEqual, 50)
				_, err = os.Stat(cfg.SubmissionFile)
				So(err, ShouldBeNil)

				gt, err := dataset.ReadGroundTruth(ctx, cfg.GroundTruthFile)
				So(err, ShouldBeNil)
				doc, err := dataset.ReadDocument(ctx, cfg.SubmissionFile)
				So(err, ShouldBeNil)
				predictions, err := validation.Validate(doc, gt)
				So(err, ShouldBeNil)

				score, err := scoring.NewPearsonScorer().Score(ctx, gt, predictions)
				So(err, ShouldBeNil)
				So(score, ShouldBeGreaterThan, 0.5)
				So(score, ShouldBeLessThanOrEqualTo, 1)
			})
		})

		Convey("When the submission has no noise", func() {
			cfg := newConfig(t.TempDir(), fixtures.DefectNone)
			cfg.Noise = 0
			So(runAndValidate(ctx, cfg), ShouldBeNil)

			gt, _ := dataset.ReadGroundTruth(ctx, cfg.GroundTruthFile)
			doc, _ := dataset.ReadDocument(ctx, cfg.SubmissionFile)
			predictions, _ := validation.Validate(doc, gt)
			score, err := scoring.NewPearsonScorer().Score(ctx, gt, predictions)

			Convey("Then the score should be a perfect correlation", func() {
				So(err, ShouldBeNil)
				So(score, ShouldAlmostEqual, 1.0, 1e-9)
			})
		})

		cases := []struct {
			defect fixtures.Defect
			kind   error
		}{
			{fixtures.DefectStringScore, validation.ErrScoreNotNumber},
			{fixtures.DefectUnknownProfile, validation.ErrUnknownProfile},
			{fixtures.DefectMissingField, validation.ErrFieldCount},
			{fixtures.DefectExtraField, validation.ErrFieldCount},
			{fixtures.DefectMissingProfile, validation.ErrProfileCount},
		}
		for _, tc := range cases {
			Convey("When injecting "+string(tc.defect), func() {
				err := runAndValidate(ctx, newConfig(t.TempDir(), tc.defect))

				Convey("Then validation should reject the submission", func() {
					So(errors.Is(err, validation.ErrValidation), ShouldBeTrue)
					So(errors.Is(err, tc.kind), ShouldBeTrue)
				})
			})
		}

		Convey("When the defect is unknown", func() {
			_, err := fixtures.Run(ctx, newConfig(t.TempDir(), fixtures.Defect("bogus")))
			So(errors.Is(err, fixtures.ErrUnknownDefect), ShouldBeTrue)
		})

		Convey("When an output path is missing", func() {
			cfg := newConfig(t.TempDir(), fixtures.DefectNone)
			cfg.SubmissionFile = ""
			_, err := fixtures.Run(ctx, cfg)
			So(errors.Is(err, fixtures.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}
