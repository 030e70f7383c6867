// Package grades predicts the missing grade of a charge. Older dockets often
// omit the grade, and the sealing rules cannot run without one, so a table of
// known charge gradings votes on the likeliest grade for an ungraded charge.
package grades

// ChargeRecord is one known grading of an offense, with a weight saying how
// heavily it should count when guessing.
type ChargeRecord struct {
	ID         int64  `json:"id,omitempty"`
	Offense    string `json:"offense"`
	Title      string `json:"title"`
	Section    string `json:"section"`
	Subsection string `json:"subsection"`
	Grade      string `json:"grade,omitempty"`
	Weight     int    `json:"weight"`
}

// Matches reports whether another record grades the same offense.
func (c ChargeRecord) Matches(other ChargeRecord) bool {
	return c.Offense == other.Offense &&
		c.Section == other.Section &&
		c.Subsection == other.Subsection
}

// GuessGrade returns, for each grade the matching records carry, the
// probability that the target charge has that grade. An empty map means no
// record matched and nothing can be said.
func GuessGrade(target ChargeRecord, records []ChargeRecord) map[string]float64 {
	weights := map[string]int{}
	total := 0
	for _, rec := range records {
		if !target.Matches(rec) {
			continue
		}
		weights[rec.Grade] += rec.Weight
		total += rec.Weight
	}
	probabilities := make(map[string]float64, len(weights))
	if total == 0 {
		return probabilities
	}
	for grade, weight := range weights {
		probabilities[grade] = float64(weight) / float64(total)
	}
	return probabilities
}
