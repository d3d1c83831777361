// Package fusion implements spec.md §4.4: combining the technical,
// fundamental, sentiment, momentum, and risk SubScores into one
// CompositeScore, renormalizing weights over whichever sub-scores are
// present and capping confidence when the richer inputs are missing.
//
// Grounded on the teacher's internal/modules/scoring/scorers/security.go
// SecurityScorer.ScoreSecurity: a map of named weighted group scores,
// combined by summation after each group independently handles its own
// missing-data fallback.
package fusion

// SubScore is spec.md §3's SubScore record: a named, weighted signal with
// its own confidence and a short human-readable rationale.
type SubScore struct {
	Name       string
	Value      float64
	Confidence float64
	Rationale  string
}

// Inputs holds the five named sub-scores §4.4 fuses. A nil field means
// that sub-score is unavailable for this call; Combine renormalizes the
// remaining weights rather than treating a missing signal as a zero.
type Inputs struct {
	Fundamental *SubScore
	Technical   *SubScore
	Sentiment   *SubScore
	Momentum    *SubScore
	Risk        *SubScore
}
