package crecord

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var asOf = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int { return &v }

func TestParseDate(t *testing.T) {
	assert.Equal(t, NewDate(2010, 3, 4), ParseDate("2010-03-04"))
	assert.Equal(t, NewDate(2010, 3, 4), ParseDate("03/04/2010"))
	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("not a date").IsZero())
}

func TestYearsBetween(t *testing.T) {
	assert.Equal(t, 9, YearsBetween(NewDate(2010, 7, 1), DateOf(asOf)))
	assert.Equal(t, 10, YearsBetween(NewDate(2010, 5, 1), DateOf(asOf)))
	assert.Equal(t, 10, YearsBetween(NewDate(2010, 6, 1), DateOf(asOf)))
	assert.Equal(t, -10, YearsBetween(DateOf(asOf), NewDate(2010, 6, 1)))
	assert.Equal(t, 0, YearsBetween(Date{}, DateOf(asOf)))
}

func TestGradeAtLeast(t *testing.T) {
	assert.True(t, GradeAtLeast("M1", "S"))
	assert.True(t, GradeAtLeast("F3", "M1"))
	assert.True(t, GradeAtLeast("M2", "M2"))
	assert.False(t, GradeAtLeast("S", "M3"))
	assert.False(t, GradeAtLeast("", "S"))
	// Unknown grades rank lowest.
	assert.False(t, GradeAtLeast("X9", "S"))
}

func TestChargeIsConviction(t *testing.T) {
	assert.True(t, Charge{Disposition: "Guilty"}.IsConviction())
	assert.True(t, Charge{Disposition: "Guilty Plea"}.IsConviction())
	assert.False(t, Charge{Disposition: "Nolle Prossed"}.IsConviction())
	assert.False(t, Charge{Disposition: "Not Guilty"}.IsConviction())
	assert.False(t, Charge{}.IsConviction())
}

func TestChargeStatuteParsing(t *testing.T) {
	charge := Charge{Statute: "18 § 3127 §§ (A)(1)"}

	chapter, ok := charge.StatuteChapter()
	require.True(t, ok)
	assert.Equal(t, 18.0, chapter)

	section, ok := charge.StatuteSection()
	require.True(t, ok)
	assert.Equal(t, 3127.0, section)

	assert.Equal(t, "A1", charge.StatuteSubsections())

	_, ok = Charge{Statute: "unreadable"}.StatuteChapter()
	assert.False(t, ok)
}

func TestReduceMerge(t *testing.T) {
	charges := []Charge{
		{Sequence: "1", Offense: "Theft", Grade: "M1"},
		{Sequence: "1", Disposition: "Held for Court"},
		{Sequence: "1", Disposition: "Guilty Plea", DispositionDate: NewDate(2015, 1, 2)},
		{Sequence: "2", Offense: "Harassment"},
	}

	reduced := ReduceMerge(charges)
	require.Len(t, reduced, 2)
	// The final disposition row wins the disposition fields.
	assert.Equal(t, "Guilty Plea", reduced[0].Disposition)
	assert.Equal(t, NewDate(2015, 1, 2), reduced[0].DispositionDate)
	assert.Equal(t, "Theft", reduced[0].Offense)
	assert.Equal(t, "Harassment", reduced[1].Offense)
}

func TestCaseLastAction(t *testing.T) {
	c := Case{
		ArrestDate:      NewDate(2012, 1, 1),
		DispositionDate: NewDate(2013, 5, 5),
	}
	assert.Equal(t, NewDate(2013, 5, 5), c.LastAction())

	onlyArrest := Case{ArrestDate: NewDate(2012, 1, 1)}
	assert.Equal(t, NewDate(2012, 1, 1), onlyArrest.LastAction())

	assert.True(t, Case{}.LastAction().IsZero())
}

func TestCaseFinesRemaining(t *testing.T) {
	c := Case{TotalFines: intPtr(200), FinesPaid: intPtr(150)}
	remaining, ok := c.FinesRemaining()
	require.True(t, ok)
	assert.Equal(t, 50, remaining)

	_, ok = Case{TotalFines: intPtr(200)}.FinesRemaining()
	assert.False(t, ok)

	// A case with zero fines has nothing left to pay even when payments
	// are unrecorded.
	remaining, ok = Case{TotalFines: intPtr(0)}.FinesRemaining()
	require.True(t, ok)
	assert.Equal(t, 0, remaining)
}

func TestCasePartialCopy(t *testing.T) {
	c := Case{
		DocketNumber: "CP-51-CR-0000001-2015",
		Charges:      []Charge{{Offense: "Theft"}},
		TotalFines:   intPtr(100),
	}
	partial := c.PartialCopy()
	assert.Empty(t, partial.Charges)
	assert.Equal(t, c.DocketNumber, partial.DocketNumber)

	partial.Charges = append(partial.Charges, Charge{Offense: "Other"})
	assert.Len(t, c.Charges, 1, "copy must not share the charge slice")
}

func TestRecordAddCaseMergesByDocket(t *testing.T) {
	rec := Record{}
	rec.AddCase(Case{
		DocketNumber: "CP-51-CR-0000001-2015",
		Charges:      []Charge{{Sequence: "1", Offense: "Theft"}},
	})
	rec.AddCase(Case{
		DocketNumber: "CP-51-CR-0000001-2015",
		OTN:          "X123456",
		Charges:      []Charge{{Sequence: "1", Disposition: "Guilty"}},
	})

	require.Len(t, rec.Cases, 1)
	assert.Equal(t, "X123456", rec.Cases[0].OTN)
	require.Len(t, rec.Cases[0].Charges, 1)
	assert.Equal(t, "Guilty", rec.Cases[0].Charges[0].Disposition)
}

func TestRecordHandleTransferredCases(t *testing.T) {
	rec := Record{Cases: []Case{
		{
			DocketNumber: "MJ-05101-CR-0000100-2014",
			OTN:          "X123456",
			Charges:      []Charge{{Sequence: "1", Disposition: "Held for Court"}},
		},
		{
			DocketNumber: "CP-51-CR-0000001-2015",
			OTN:          "X123456",
			Charges:      []Charge{{Sequence: "1", Disposition: "Guilty"}},
		},
	}}

	rec.HandleTransferredCases()

	require.Len(t, rec.Cases, 1)
	assert.Equal(t, "CP-51-CR-0000001-2015", rec.Cases[0].DocketNumber)
	assert.Contains(t, rec.Cases[0].RelatedCases, "MJ-05101-CR-0000100-2014")
}

func TestYearsSinceLastArrestOrProsecution(t *testing.T) {
	t.Run("no cases means forever", func(t *testing.T) {
		assert.Equal(t, YearsForever, Record{}.YearsSinceLastArrestOrProsecution(asOf))
	})

	t.Run("active case means zero", func(t *testing.T) {
		rec := Record{Cases: []Case{{Status: "Active", DispositionDate: NewDate(2005, 1, 1)}}}
		assert.Equal(t, 0, rec.YearsSinceLastArrestOrProsecution(asOf))
	})

	t.Run("closed cases count from last action", func(t *testing.T) {
		rec := Record{Cases: []Case{
			{Status: "Closed", DispositionDate: NewDate(2005, 1, 1)},
			{Status: "Closed", DispositionDate: NewDate(2012, 1, 1)},
		}}
		assert.Equal(t, 8, rec.YearsSinceLastArrestOrProsecution(asOf))
	})

	t.Run("unknown dates mean zero", func(t *testing.T) {
		rec := Record{Cases: []Case{{Status: "Closed"}}}
		assert.Equal(t, 0, rec.YearsSinceLastArrestOrProsecution(asOf))
	})
}

func TestYearsSinceFinalRelease(t *testing.T) {
	t.Run("never confined means forever", func(t *testing.T) {
		rec := Record{Cases: []Case{{DispositionDate: NewDate(2010, 1, 1)}}}
		assert.Equal(t, YearsForever, rec.YearsSinceFinalRelease(asOf))
	})

	t.Run("confinement counts from sentence end", func(t *testing.T) {
		rec := Record{Cases: []Case{{
			Charges: []Charge{{
				Sentences: []Sentence{{
					SentenceDate:   NewDate(2010, 1, 1),
					SentenceType:   "Confinement",
					SentenceLength: SentenceLengthFromTerms("0", "days", "12", "months"),
				}},
			}},
		}}}
		assert.Equal(t, 9, rec.YearsSinceFinalRelease(asOf))
	})
}

func TestRecordJSONRoundTrip(t *testing.T) {
	rec := Record{
		Person: Person{
			FirstName:   "Jane",
			LastName:    "Smith",
			DateOfBirth: NewDate(1980, 4, 15),
		},
		Cases: []Case{{
			DocketNumber:    "CP-51-CR-0000001-2015",
			Status:          "Closed",
			TotalFines:      intPtr(100),
			FinesPaid:       intPtr(100),
			DispositionDate: NewDate(2015, 6, 1),
			Charges: []Charge{{
				Sequence:    "1",
				Offense:     "Theft",
				Grade:       "M1",
				Statute:     "18 § 3921",
				Disposition: "Guilty",
			}},
		}},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded Record
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, rec.Person.FullName(), decoded.Person.FullName())
	require.Len(t, decoded.Cases, 1)
	assert.Equal(t, NewDate(2015, 6, 1), decoded.Cases[0].DispositionDate)
	require.NotNil(t, decoded.Cases[0].TotalFines)
	assert.Equal(t, 100, *decoded.Cases[0].TotalFines)
}
