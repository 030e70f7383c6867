package crecord

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// SentenceLength is a minimum and maximum term. Dockets express terms as
// pairs like ("90", "days") or ("2", "years").
type SentenceLength struct {
	MinTime time.Duration `json:"-"`
	MaxTime time.Duration `json:"-"`
}

// sentenceLengthJSON is the wire shape used by the frontend: value/unit
// pairs, matching what parsers pull from dockets.
type sentenceLengthJSON struct {
	MinTime string `json:"min_time"`
	MinUnit string `json:"min_unit"`
	MaxTime string `json:"max_time"`
	MaxUnit string `json:"max_unit"`
}

const day = 24 * time.Hour

// termDuration converts a (length, unit) pair to a duration. Months count as
// 30.42 days, matching how the original estimated confinement ends.
func termDuration(length, unit string) (time.Duration, bool) {
	length = strings.TrimSpace(length)
	unit = strings.ToLower(strings.TrimSpace(unit))
	if length == "" || unit == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(length, 64)
	if err != nil {
		return 0, false
	}
	switch {
	case strings.HasPrefix(unit, "day"):
		return time.Duration(n * float64(day)), true
	case strings.HasPrefix(unit, "month"):
		return time.Duration(n * 30.42 * float64(day)), true
	case strings.HasPrefix(unit, "year"):
		return time.Duration(n * 365 * float64(day)), true
	}
	return 0, false
}

// SentenceLengthFromTerms builds a SentenceLength from (length, unit) pairs.
func SentenceLengthFromTerms(minTime, minUnit, maxTime, maxUnit string) SentenceLength {
	var sl SentenceLength
	if d, ok := termDuration(minTime, minUnit); ok {
		sl.MinTime = d
	}
	if d, ok := termDuration(maxTime, maxUnit); ok {
		sl.MaxTime = d
	}
	return sl
}

func (sl SentenceLength) MarshalJSON() ([]byte, error) {
	return json.Marshal(sentenceLengthJSON{
		MinTime: strconv.FormatFloat(sl.MinTime.Hours()/24, 'f', -1, 64),
		MinUnit: "days",
		MaxTime: strconv.FormatFloat(sl.MaxTime.Hours()/24, 'f', -1, 64),
		MaxUnit: "days",
	})
}

func (sl *SentenceLength) UnmarshalJSON(data []byte) error {
	var wire sentenceLengthJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*sl = SentenceLengthFromTerms(wire.MinTime, wire.MinUnit, wire.MaxTime, wire.MaxUnit)
	return nil
}

// Sentence is one sentence imposed on a charge.
type Sentence struct {
	SentenceDate   Date           `json:"sentence_date"`
	SentenceType   string         `json:"sentence_type"`
	SentencePeriod string         `json:"sentence_period"`
	SentenceLength SentenceLength `json:"sentence_length"`
}

// IsConfinement reports whether the sentence put the person in custody.
func (s Sentence) IsConfinement() bool {
	return strings.Contains(strings.ToLower(s.SentenceType), "confine")
}

// CompleteDate estimates when the sentence was fully served.
func (s Sentence) CompleteDate() Date {
	if s.SentenceDate.IsZero() {
		return Date{}
	}
	return Date{s.SentenceDate.Add(s.SentenceLength.MaxTime)}
}
