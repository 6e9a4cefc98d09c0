// Package model contains domain models passed between layers.
package model

// Situation identifies one of the fixed user-intent scenarios a profile is scored on.
type Situation int

// Situations in their canonical order. The order is used for every iteration
// and diagnostic; it never affects the computed score.
const (
	Accommodation Situation = iota // acc: accommodation search
	ITJob                          // it: job search in IT
	BankLoan                       // bank: bank loan search
	WaiterJob                      // wait: job search as a waiter
)

// SituationCount is the number of scores every profile record must carry.
const SituationCount = 4

var situationCodes = [SituationCount]string{"acc", "it", "bank", "wait"}

var situationDescriptions = [SituationCount]string{
	"accommodation search",
	"job search in IT",
	"bank loan search",
	"job search as a waiter",
}

// Situations returns all situations in canonical order.
func Situations() []Situation {
	return []Situation{Accommodation, ITJob, BankLoan, WaiterJob}
}

// SituationCodes returns the wire codes in canonical order.
func SituationCodes() []string {
	codes := situationCodes
	return codes[:]
}

// ParseSituation maps a wire code to its Situation.
func ParseSituation(code string) (Situation, bool) {
	for i, c := range situationCodes {
		if c == code {
			return Situation(i), true
		}
	}
	return 0, false
}

// Valid reports whether s is one of the known situations.
func (s Situation) Valid() bool {
	return s >= Accommodation && s <= WaiterJob
}

// Code returns the wire code, e.g. "acc".
func (s Situation) Code() string {
	if !s.Valid() {
		return "unknown"
	}
	return situationCodes[s]
}

// Description returns a human readable name of the scenario.
func (s Situation) Description() string {
	if !s.Valid() {
		return "unknown situation"
	}
	return situationDescriptions[s]
}

func (s Situation) String() string { return s.Code() }
