// Package types contains common types used across the application
package types

import (
	"math"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // shared codec

// Result is the outcome of one evaluation call.
type Result struct {
	Score          float64 `json:"score"`
	ScoreSecondary float64 `json:"score_secondary"`
}

// resultJSON mirrors Result with nullable scores; NaN and Inf have no JSON form.
type resultJSON struct {
	Score          *float64 `json:"score"`
	ScoreSecondary *float64 `json:"score_secondary"`
}

// MarshalJSON encodes non-finite scores as null.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Score:          finite(r.Score),
		ScoreSecondary: finite(r.ScoreSecondary),
	})
}

// UnmarshalJSON decodes null scores as NaN.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw resultJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Score = orNaN(raw.Score)
	r.ScoreSecondary = orNaN(raw.ScoreSecondary)
	return nil
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func orNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
