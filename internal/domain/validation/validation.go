// Package validation checks an untrusted submission against the ground truth
// and turns it into a score table.
package validation

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/okian/aware-eval/internal/domain/model"
)

// situationList renders the situation codes for diagnostics, e.g. ('acc', 'it', 'bank', 'wait').
func situationList() string {
	quoted := lo.Map(model.SituationCodes(), func(code string, _ int) string {
		return "'" + code + "'"
	})
	return "(" + strings.Join(quoted, ", ") + ")"
}

// Validate checks doc against groundTruth and returns the validated scores.
// It stops at the first violation:
//  1. the number of profiles must match the ground truth;
//  2. then, per profile in document order: the profile must exist in the
//     ground truth, the record must hold exactly one field per situation,
//     every field name must be a situation code, and every score must be a
//     JSON number (quoted numbers are rejected).
//
// Nothing is returned for a partially valid submission.
func Validate(doc *model.Document, groundTruth *model.ScoreTable) (*model.ScoreTable, error) {
	if doc.Len() != groundTruth.Len() {
		return nil, NewValidationError(ErrProfileCount, 0, "", "", fmt.Sprintf(
			"Number of user profiles in submission file (%d) not equal to number of user profiles in gt set (%d).",
			doc.Len(), groundTruth.Len()))
	}

	predictions := model.NewScoreTable(doc.Len())
	for i, entry := range doc.Entries {
		rec, err := validateRecord(i+1, entry, groundTruth)
		if err != nil {
			return nil, err
		}
		predictions.Set(entry.Key, rec)
	}
	return predictions, nil
}

func validateRecord(record int, entry model.Entry, groundTruth *model.ScoreTable) (model.ScoreRecord, error) {
	var rec model.ScoreRecord
	profile := entry.Key

	if !groundTruth.Has(profile) {
		return rec, NewValidationError(ErrUnknownProfile, record, profile, "",
			fmt.Sprintf("User profile '%s' does not exist in gt set.", profile))
	}

	if entry.Kind != model.KindObject || len(entry.Fields) != model.SituationCount {
		return rec, NewValidationError(ErrFieldCount, record, profile, "", fmt.Sprintf(
			"User profile '%s' must contain exactly %d key/value pairs where key=situation_code and value=score (Required situation codes: %s).",
			profile, model.SituationCount, situationList()))
	}

	var byCode [model.SituationCount]model.Field
	for _, f := range entry.Fields {
		s, ok := model.ParseSituation(f.Name)
		if !ok {
			return rec, NewValidationError(ErrUnknownSituation, record, profile, f.Name, fmt.Sprintf(
				"Situation code '%s' for user profile '%s' does not exist (Possible situation codes: %s).",
				f.Name, profile, situationList()))
		}
		byCode[s] = f
	}

	// Field names are distinct after decoding, so four known names cover
	// every situation exactly once.
	for _, s := range model.Situations() {
		f := byCode[s]
		if f.Kind != model.KindNumber {
			return rec, NewValidationError(ErrScoreNotNumber, record, profile, s.Code(), fmt.Sprintf(
				"Score for situation code '%s' for user profile '%s' must be a number. In case it is a number make sure that you remove the quotes.",
				s.Code(), profile))
		}
		rec[s] = f.Number
	}
	return rec, nil
}
