package crecord

import (
	"regexp"
	"strconv"
	"strings"
)

// Charge is a single charged offense within a case.
type Charge struct {
	Offense         string     `json:"offense"`
	Grade           string     `json:"grade"`
	Statute         string     `json:"statute"`
	Sequence        string     `json:"sequence"`
	Disposition     string     `json:"disposition"`
	DispositionDate Date       `json:"disposition_date"`
	OTN             string     `json:"otn,omitempty"`
	Sentences       []Sentence `json:"sentences,omitempty"`
}

// gradeOrder ranks charge grades from least to most serious. Unknown grades
// rank lowest, which biases rules toward caution elsewhere (rules that need
// certainty check for the empty grade explicitly).
var gradeOrder = []string{"", "S", "M", "IC", "M3", "M2", "M1", "F", "F3", "F2", "F1"}

func gradeIndex(grade string) int {
	grade = strings.TrimSpace(grade)
	for i, g := range gradeOrder {
		if g == grade {
			return i
		}
	}
	return 0
}

// GradeAtLeast reports whether gradeA is the same as or more serious than
// gradeB. GradeAtLeast("M1", "S") is true; GradeAtLeast("S", "") is false
// only when both are unknown.
func GradeAtLeast(gradeA, gradeB string) bool {
	return gradeIndex(gradeA) >= gradeIndex(gradeB)
}

// IsConviction reports whether this charge's disposition indicates a
// conviction. Dispositions beginning "Guilty" (including "Guilty Plea")
// count; everything else, including a missing disposition, does not.
func (c Charge) IsConviction() bool {
	return strings.HasPrefix(strings.TrimSpace(c.Disposition), "Guilty")
}

var (
	statutePattern    = regexp.MustCompile(`^(\d+)\s*§\s*(\d+\.?\d*)`)
	subsectionPattern = regexp.MustCompile(`^(\d+)\s*§\s*(\d+\.?\d*)\s*§§\s*([\(\)A-Za-z0-9\.\*]+)`)
)

// StatuteChapter returns the Pa. code title of this charge's statute
// ("18 § 3127 §§ A1" → 18), or false when the statute is unreadable.
func (c Charge) StatuteChapter() (float64, bool) {
	m := statutePattern.FindStringSubmatch(c.Statute)
	if m == nil {
		return 0, false
	}
	chapter, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return chapter, true
}

// StatuteSection returns the section of this charge's statute
// ("18 § 3127 §§ A1" → 3127), or false when the statute is unreadable.
func (c Charge) StatuteSection() (float64, bool) {
	m := statutePattern.FindStringSubmatch(c.Statute)
	if m == nil {
		return 0, false
	}
	section, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	return section, true
}

// StatuteSubsections returns the subsection suffix, with parentheses
// stripped ("18 § 6301 §§ (A)(1)" → "A1"), or "" when there is none.
func (c Charge) StatuteSubsections() string {
	m := subsectionPattern.FindStringSubmatch(c.Statute)
	if m == nil {
		return ""
	}
	sub := strings.ReplaceAll(m[3], "(", "")
	return strings.ReplaceAll(sub, ")", "")
}

var finalDispositions = regexp.MustCompile(`(?i)nolle|guilt|dismiss|withdraw`)

// CombineWith fills this charge's missing fields from another record of the
// same charge. Dockets repeat a charge once per procedural event; the row
// with a final disposition wins the disposition fields.
func (c *Charge) CombineWith(other Charge) {
	if c.Offense == "" {
		c.Offense = other.Offense
	}
	if strings.TrimSpace(c.Grade) == "" {
		c.Grade = other.Grade
	}
	if c.Statute == "" {
		c.Statute = other.Statute
	}
	if c.Sequence == "" {
		c.Sequence = other.Sequence
	}
	if c.OTN == "" {
		c.OTN = other.OTN
	}
	if len(c.Sentences) == 0 {
		c.Sentences = other.Sentences
	}
	if c.Disposition == "" {
		c.Disposition = other.Disposition
		c.DispositionDate = other.DispositionDate
	} else if finalDispositions.MatchString(other.Disposition) {
		c.Disposition = other.Disposition
		c.DispositionDate = other.DispositionDate
	}
}

// ReduceMerge collapses repeated charge rows into one charge per sequence
// number. Rows without a sequence are kept as-is.
func ReduceMerge(charges []Charge) []Charge {
	var reduced []Charge
	for _, charge := range charges {
		merged := false
		if strings.TrimSpace(charge.Sequence) != "" {
			for i := range reduced {
				if reduced[i].Sequence == charge.Sequence {
					reduced[i].CombineWith(charge)
					merged = true
					break
				}
			}
		}
		if !merged {
			reduced = append(reduced, charge)
		}
	}
	return reduced
}
