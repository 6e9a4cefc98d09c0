package model

// ScoreRecord holds one score per situation, indexed by Situation.
type ScoreRecord [SituationCount]float64

// Get returns the score for s.
func (r ScoreRecord) Get(s Situation) float64 { return r[s] }

// ScoreTable maps profile identifiers to score records and remembers the
// order in which profiles were first inserted. Ground truth and validated
// submissions are both ScoreTables.
type ScoreTable struct {
	profiles []string
	records  map[string]ScoreRecord
}

// NewScoreTable creates an empty table sized for capacity profiles.
func NewScoreTable(capacity int) *ScoreTable {
	if capacity < 0 {
		capacity = 0
	}
	return &ScoreTable{
		profiles: make([]string, 0, capacity),
		records:  make(map[string]ScoreRecord, capacity),
	}
}

// Set stores rec for profile. A profile that is already present keeps its
// original position and gets the new record.
func (t *ScoreTable) Set(profile string, rec ScoreRecord) {
	if _, ok := t.records[profile]; !ok {
		t.profiles = append(t.profiles, profile)
	}
	t.records[profile] = rec
}

// Get returns the record stored for profile.
func (t *ScoreTable) Get(profile string) (ScoreRecord, bool) {
	rec, ok := t.records[profile]
	return rec, ok
}

// Has reports whether profile is present.
func (t *ScoreTable) Has(profile string) bool {
	_, ok := t.records[profile]
	return ok
}

// Len returns the number of distinct profiles.
func (t *ScoreTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.profiles)
}

// Profiles returns the profile identifiers in insertion order.
func (t *ScoreTable) Profiles() []string {
	out := make([]string, len(t.profiles))
	copy(out, t.profiles)
	return out
}

// Column returns the scores of situation s for the given profiles, in the
// given order. ok is false if any profile is missing.
func (t *ScoreTable) Column(s Situation, profiles []string) (values []float64, ok bool) {
	values = make([]float64, 0, len(profiles))
	for _, p := range profiles {
		rec, found := t.records[p]
		if !found {
			return nil, false
		}
		values = append(values, rec[s])
	}
	return values, true
}
