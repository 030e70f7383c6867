package grades

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func simpleAssault(grade string, weight int) ChargeRecord {
	return ChargeRecord{
		Offense:    "Simple Assault",
		Title:      "18",
		Section:    "2701",
		Subsection: "A1",
		Grade:      grade,
		Weight:     weight,
	}
}

func TestGuessGrade(t *testing.T) {
	target := simpleAssault("", 0)
	records := []ChargeRecord{
		simpleAssault("M2", 3),
		simpleAssault("M1", 1),
		// Different subsection, must not count.
		{Offense: "Simple Assault", Section: "2701", Subsection: "B", Grade: "M3", Weight: 10},
		// Different offense entirely.
		{Offense: "Harassment", Section: "2709", Subsection: "A1", Grade: "S", Weight: 10},
	}

	probabilities := GuessGrade(target, records)
	assert.Len(t, probabilities, 2)
	assert.InDelta(t, 0.75, probabilities["M2"], 1e-9)
	assert.InDelta(t, 0.25, probabilities["M1"], 1e-9)
}

func TestGuessGradeNoMatches(t *testing.T) {
	target := ChargeRecord{Offense: "Eating Loudly In Library", Section: "999"}
	probabilities := GuessGrade(target, []ChargeRecord{simpleAssault("M2", 1)})
	assert.Empty(t, probabilities)
}

func TestGuessGradeSingleRecord(t *testing.T) {
	target := simpleAssault("", 0)
	probabilities := GuessGrade(target, []ChargeRecord{simpleAssault("M2", 1)})
	assert.InDelta(t, 1.0, probabilities["M2"], 1e-9)
}
