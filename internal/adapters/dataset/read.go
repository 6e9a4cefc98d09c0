package dataset

import (
	"context"
	"fmt"
	"os"

	"github.com/okian/aware-eval/internal/domain/model"
)

// ReadDocument reads the file at path and decodes it.
func ReadDocument(ctx context.Context, path string) (*model.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return Decode(data)
}

// ReadGroundTruth reads and converts a ground-truth file. Every record must
// be an object holding a number for each situation code; other fields are
// ignored.
func ReadGroundTruth(ctx context.Context, path string) (*model.ScoreTable, error) {
	doc, err := ReadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	return GroundTruthFromDocument(doc)
}

// GroundTruthFromDocument converts a decoded document into a score table in
// document order.
func GroundTruthFromDocument(doc *model.Document) (*model.ScoreTable, error) {
	table := model.NewScoreTable(doc.Len())
	for _, entry := range doc.Entries {
		if entry.Kind != model.KindObject {
			return nil, fmt.Errorf("%w: profile %q: record is %s, not an object", ErrInvalidGroundTruth, entry.Key, entry.Kind)
		}
		var rec model.ScoreRecord
		var present [model.SituationCount]bool
		for _, f := range entry.Fields {
			s, ok := model.ParseSituation(f.Name)
			if !ok {
				continue
			}
			if f.Kind != model.KindNumber {
				return nil, fmt.Errorf("%w: profile %q: situation %q is %s, not a number", ErrInvalidGroundTruth, entry.Key, f.Name, f.Kind)
			}
			rec[s] = f.Number
			present[s] = true
		}
		for _, s := range model.Situations() {
			if !present[s] {
				return nil, fmt.Errorf("%w: profile %q: missing situation %q", ErrInvalidGroundTruth, entry.Key, s.Code())
			}
		}
		table.Set(entry.Key, rec)
	}
	return table, nil
}
