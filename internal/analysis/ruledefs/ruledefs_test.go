package ruledefs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/internal/analysis"
	"cleanslate/internal/crecord"
	"cleanslate/internal/petition"
)

var asOf = time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC)

func record(cases ...crecord.Case) crecord.Record {
	return crecord.Record{
		Person: crecord.Person{
			FirstName:   "Jane",
			LastName:    "Smith",
			DateOfBirth: crecord.NewDate(1980, 4, 15),
		},
		Cases: cases,
	}
}

func closedCase(docket string, dispositionYear int, charges ...crecord.Charge) crecord.Case {
	zero := 0
	return crecord.Case{
		DocketNumber:    docket,
		Status:          "Closed",
		DispositionDate: crecord.NewDate(dispositionYear, 1, 15),
		TotalFines:      &zero,
		Charges:         charges,
	}
}

func TestFilterTrafficCases(t *testing.T) {
	rec := record(
		closedCase("CP-51-CR-0000001-2015", 2015),
		closedCase("MJ-05101-TR-0000200-2016", 2016),
	)

	remaining, decision := FilterTrafficCases()(rec)

	fd, ok := decision.(analysis.FilterDecision)
	require.True(t, ok)
	require.Len(t, fd.Removed, 1)
	assert.Equal(t, "MJ-05101-TR-0000200-2016", fd.Removed[0].DocketNumber)
	require.Len(t, remaining.Cases, 1)
	assert.Equal(t, "CP-51-CR-0000001-2015", remaining.Cases[0].DocketNumber)
}

func TestExpungeNonconvictions(t *testing.T) {
	rec := record(closedCase("CP-51-CR-0000001-2015", 2015,
		crecord.Charge{Sequence: "1", Offense: "Theft", Disposition: "Nolle Prossed"},
		crecord.Charge{Sequence: "2", Offense: "Harassment", Disposition: "Guilty"},
	))

	remaining, decision := ExpungeNonconvictions()(rec)

	pd, ok := decision.(analysis.PetitionDecision)
	require.True(t, ok)
	require.Len(t, pd.Petitions, 1)
	assert.Equal(t, petition.PartialExpungement, pd.Petitions[0].ExpungementType)
	require.Len(t, pd.Petitions[0].Cases, 1)
	require.Len(t, pd.Petitions[0].Cases[0].Charges, 1)
	assert.Equal(t, "Theft", pd.Petitions[0].Cases[0].Charges[0].Offense)

	// The conviction stays on the remaining record.
	require.Len(t, remaining.Cases, 1)
	require.Len(t, remaining.Cases[0].Charges, 1)
	assert.Equal(t, "Harassment", remaining.Cases[0].Charges[0].Offense)
}

func TestExpungeNonconvictionsLeavesUnresolvedCharges(t *testing.T) {
	rec := record(closedCase("CP-51-CR-0000001-2015", 2015,
		crecord.Charge{Sequence: "1", Offense: "Theft"},
	))

	remaining, decision := ExpungeNonconvictions()(rec)

	pd := decision.(analysis.PetitionDecision)
	assert.Empty(t, pd.Petitions)
	require.Len(t, remaining.Cases, 1)
}

func TestExpungeSummaryConvictions(t *testing.T) {
	t.Run("arrest free", func(t *testing.T) {
		rec := record(closedCase("MJ-05101-CR-0000100-2012", 2012,
			crecord.Charge{Sequence: "1", Offense: "Disorderly Conduct", Grade: "S", Disposition: "Guilty"},
		))

		remaining, decision := ExpungeSummaryConvictions(asOf)(rec)

		pd := decision.(analysis.PetitionDecision)
		require.Len(t, pd.Petitions, 1)
		assert.Equal(t, petition.FullExpungement, pd.Petitions[0].ExpungementType)
		assert.Equal(t, petition.SummaryProcedure, pd.Petitions[0].Procedure)
		assert.Empty(t, remaining.Cases)
	})

	t.Run("too recent", func(t *testing.T) {
		rec := record(closedCase("MJ-05101-CR-0000100-2018", 2018,
			crecord.Charge{Sequence: "1", Offense: "Disorderly Conduct", Grade: "S", Disposition: "Guilty"},
		))

		remaining, decision := ExpungeSummaryConvictions(asOf)(rec)

		pd := decision.(analysis.PetitionDecision)
		assert.Empty(t, pd.Petitions)
		require.Len(t, remaining.Cases, 1)
	})
}

func TestExpungeOver70(t *testing.T) {
	rec := record(closedCase("CP-51-CR-0000001-1990", 1990,
		crecord.Charge{Sequence: "1", Offense: "Theft", Grade: "M1", Disposition: "Guilty"},
	))
	rec.Person.DateOfBirth = crecord.NewDate(1945, 1, 1)

	remaining, decision := ExpungeOver70(asOf)(rec)

	pd := decision.(analysis.PetitionDecision)
	require.Len(t, pd.Petitions, 1)
	assert.Equal(t, petition.FullExpungement, pd.Petitions[0].ExpungementType)
	assert.Empty(t, remaining.Cases)
}

func TestExpungeOver70TooYoung(t *testing.T) {
	rec := record(closedCase("CP-51-CR-0000001-1990", 1990,
		crecord.Charge{Sequence: "1", Offense: "Theft", Grade: "M1", Disposition: "Guilty"},
	))

	remaining, decision := ExpungeOver70(asOf)(rec)

	pd := decision.(analysis.PetitionDecision)
	assert.Empty(t, pd.Petitions)
	assert.Len(t, remaining.Cases, 1)
}

func TestExpungeDeceased(t *testing.T) {
	rec := record(closedCase("CP-51-CR-0000001-1990", 1990,
		crecord.Charge{Sequence: "1", Offense: "Theft", Grade: "M1", Disposition: "Guilty"},
	))
	rec.Person.DateOfDeath = crecord.NewDate(2014, 1, 1)

	remaining, decision := ExpungeDeceased(asOf)(rec)

	pd := decision.(analysis.PetitionDecision)
	require.Len(t, pd.Petitions, 1)
	assert.Empty(t, remaining.Cases)
}

func TestSealConvictions(t *testing.T) {
	rec := record(closedCase("CP-51-CR-0000001-2005", 2005,
		crecord.Charge{Sequence: "1", Offense: "Theft", Grade: "M2", Statute: "18 § 3921", Disposition: "Guilty",
			DispositionDate: crecord.NewDate(2005, 1, 15)},
	))

	remaining, decision := SealConvictions(asOf)(rec)

	pd := decision.(analysis.PetitionDecision)
	require.Len(t, pd.Petitions, 1)
	assert.Equal(t, petition.KindSealing, pd.Petitions[0].Kind)
	assert.Empty(t, remaining.Cases)

	require.NotEmpty(t, pd.Reasoning)
	assert.True(t, pd.Reasoning[0].Granted(), "full record requirements should pass")
}

func TestSealConvictionsBlockedByF1(t *testing.T) {
	rec := record(
		closedCase("CP-51-CR-0000001-2005", 2005,
			crecord.Charge{Sequence: "1", Offense: "Theft", Grade: "M2", Statute: "18 § 3921", Disposition: "Guilty"},
		),
		closedCase("CP-51-CR-0000002-2001", 2001,
			crecord.Charge{Sequence: "1", Offense: "Robbery", Grade: "F1", Statute: "18 § 3701", Disposition: "Guilty"},
		),
	)

	_, decision := SealConvictions(asOf)(rec)

	pd := decision.(analysis.PetitionDecision)
	assert.Empty(t, pd.Petitions)
	assert.False(t, pd.Reasoning[0].Granted())
}

func TestSealConvictionsBlockedByUnpaidFines(t *testing.T) {
	total, paid := 200, 50
	c := crecord.Case{
		DocketNumber:    "CP-51-CR-0000001-2005",
		Status:          "Closed",
		DispositionDate: crecord.NewDate(2005, 1, 15),
		TotalFines:      &total,
		FinesPaid:       &paid,
		Charges: []crecord.Charge{
			{Sequence: "1", Offense: "Theft", Grade: "M2", Statute: "18 § 3921", Disposition: "Guilty"},
		},
	}

	_, decision := SealConvictions(asOf)(record(c))

	pd := decision.(analysis.PetitionDecision)
	assert.Empty(t, pd.Petitions)
}

func TestTenYearsSinceLastConvictionForMOrF(t *testing.T) {
	t.Run("no convictions", func(t *testing.T) {
		d := TenYearsSinceLastConvictionForMOrF(record(), asOf)
		assert.True(t, d.Granted())
	})

	t.Run("recent conviction", func(t *testing.T) {
		rec := record(closedCase("CP-51-CR-0000001-2015", 2015,
			crecord.Charge{Sequence: "1", Grade: "M1", Disposition: "Guilty"},
		))
		assert.False(t, TenYearsSinceLastConvictionForMOrF(rec, asOf).Granted())
	})

	t.Run("old conviction", func(t *testing.T) {
		rec := record(closedCase("CP-51-CR-0000001-2005", 2005,
			crecord.Charge{Sequence: "1", Grade: "M1", Disposition: "Guilty"},
		))
		assert.True(t, TenYearsSinceLastConvictionForMOrF(rec, asOf).Granted())
	})

	t.Run("summary convictions do not count", func(t *testing.T) {
		rec := record(closedCase("MJ-05101-CR-0000100-2019", 2019,
			crecord.Charge{Sequence: "1", Grade: "S", Disposition: "Guilty"},
		))
		assert.True(t, TenYearsSinceLastConvictionForMOrF(rec, asOf).Granted())
	})

	t.Run("missing disposition dates fail safe", func(t *testing.T) {
		rec := record(crecord.Case{
			DocketNumber: "CP-51-CR-0000001-2015",
			Status:       "Closed",
			Charges:      []crecord.Charge{{Sequence: "1", Grade: "M1", Disposition: "Guilty"}},
		})
		assert.False(t, TenYearsSinceLastConvictionForMOrF(rec, asOf).Granted())
	})
}

func TestNotFelony1(t *testing.T) {
	assert.False(t, NotFelony1(crecord.Charge{Grade: "F1", Disposition: "Guilty"}).Granted())
	assert.True(t, NotFelony1(crecord.Charge{Grade: "F1", Disposition: "Not Guilty"}).Granted())
	assert.True(t, NotFelony1(crecord.Charge{Grade: "M2", Disposition: "Guilty"}).Granted())
	// Unknown grades fail safe.
	assert.False(t, NotFelony1(crecord.Charge{Disposition: "Guilty"}).Granted())
}

func TestNotMurder(t *testing.T) {
	assert.False(t, NotMurder(crecord.Charge{Offense: "Murder of the First Degree", Disposition: "Guilty"}).Granted())
	assert.True(t, NotMurder(crecord.Charge{Offense: "Theft", Disposition: "Guilty"}).Granted())
	assert.True(t, NotMurder(crecord.Charge{Offense: "Murder of the First Degree", Disposition: "Not Guilty"}).Granted())
}

func TestStatuteScreens(t *testing.T) {
	t.Run("danger to person", func(t *testing.T) {
		assert.False(t, NoDangerToPersonOffense(crecord.Charge{
			Statute: "18 § 2701", Grade: "M1", Disposition: "Guilty",
		}).Granted())
		assert.True(t, NoDangerToPersonOffense(crecord.Charge{
			Statute: "18 § 2701", Grade: "M2", Disposition: "Guilty",
		}).Granted())
		assert.True(t, NoDangerToPersonOffense(crecord.Charge{
			Statute: "18 § 3921", Grade: "F2", Disposition: "Guilty",
		}).Granted())
		// Unknown grade on an Article B conviction fails safe.
		assert.False(t, NoDangerToPersonOffense(crecord.Charge{
			Statute: "18 § 2701", Disposition: "Guilty",
		}).Granted())
	})

	t.Run("firearms", func(t *testing.T) {
		assert.False(t, NoFirearmsOffense(crecord.Charge{
			Statute: "18 § 6106", Disposition: "Guilty",
		}).Granted())
		assert.True(t, NoFirearmsOffense(crecord.Charge{
			Statute: "18 § 6106", Disposition: "Not Guilty",
		}).Granted())
	})

	t.Run("offense against family", func(t *testing.T) {
		assert.False(t, NoOffenseAgainstFamily(crecord.Charge{
			Statute: "18 § 4304", Disposition: "Guilty",
		}).Granted())
		assert.True(t, NoOffenseAgainstFamily(crecord.Charge{
			Statute: "18 § 3921", Disposition: "Guilty",
		}).Granted())
	})

	t.Run("tiered sexual offenses", func(t *testing.T) {
		assert.False(t, NoSexualOffense(crecord.Charge{
			Statute: "18 § 3126 §§ (A)(1)", Disposition: "Guilty",
		}).Granted())
		assert.False(t, NoSexualOffense(crecord.Charge{
			Statute: "18 § 5903 §§ (A)(3)(II)", Disposition: "Guilty",
		}).Granted())
		assert.True(t, NoSexualOffense(crecord.Charge{
			Statute: "18 § 3925", Disposition: "Guilty",
		}).Granted())
	})

	t.Run("corruption of minors", func(t *testing.T) {
		assert.False(t, NoCorruptionOfMinorsOffense(crecord.Charge{
			Statute: "18 § 6301 §§ (A)(1)", Disposition: "Guilty",
		}).Granted())
		assert.True(t, NoCorruptionOfMinorsOffense(crecord.Charge{
			Statute: "18 § 6301 §§ (A)(2)", Disposition: "Guilty",
		}).Granted())
	})

	t.Run("failure to register", func(t *testing.T) {
		assert.False(t, NoFailureToRegisterCharge(crecord.Charge{
			Statute: "18 § 4915.1", Disposition: "Guilty",
		}).Granted())
		assert.True(t, NoFailureToRegisterCharge(crecord.Charge{
			Statute: "18 § 4915.1", Disposition: "Withdrawn",
		}).Granted())
	})
}

func TestOffensesPunishableByTwoOrMoreYears(t *testing.T) {
	rec := record(
		closedCase("CP-51-CR-0000001-2016", 2016,
			crecord.Charge{Sequence: "1", Grade: "M1", Disposition: "Guilty"},
			crecord.Charge{Sequence: "2", Grade: "M2", Disposition: "Guilty"},
		),
	)
	assert.False(t, OffensesPunishableByTwoOrMoreYears(rec, 2, 15, asOf).Granted())
	assert.True(t, OffensesPunishableByTwoOrMoreYears(rec, 4, 20, asOf).Granted())
}

func TestMoreThanXConvictionsYGradeZYears(t *testing.T) {
	rec := record(
		closedCase("CP-51-CR-0000001-2010", 2010,
			crecord.Charge{Sequence: "1", Grade: "M1", Disposition: "Guilty"},
		),
		closedCase("CP-51-CR-0000002-2012", 2012,
			crecord.Charge{Sequence: "1", Grade: "F3", Disposition: "Guilty"},
		),
	)
	assert.True(t, MoreThanXConvictionsYGradeZYears(rec, 2, "M1", crecord.YearsForever, asOf).Granted())
	assert.False(t, MoreThanXConvictionsYGradeZYears(rec, 3, "M1", crecord.YearsForever, asOf).Granted())
}

func TestAutosealingEligibility(t *testing.T) {
	t.Run("nonconviction is eligible", func(t *testing.T) {
		rec := record(closedCase("CP-51-CR-0000001-2015", 2015,
			crecord.Charge{Sequence: "1", Offense: "Theft", Disposition: "Nolle Prossed"},
		))
		_, decision := AutosealingEligibility(asOf)(rec)
		ed := decision.(analysis.EligibilityDecision)
		require.Len(t, ed.Eligible, 1)
		assert.Empty(t, ed.Ineligible)
	})

	t.Run("old M2 conviction with paid fines is eligible", func(t *testing.T) {
		rec := record(closedCase("CP-51-CR-0000001-2005", 2005,
			crecord.Charge{Sequence: "1", Offense: "Theft", Grade: "M2", Statute: "18 § 3921", Disposition: "Guilty"},
		))
		_, decision := AutosealingEligibility(asOf)(rec)
		ed := decision.(analysis.EligibilityDecision)
		require.Len(t, ed.Eligible, 1)
	})

	t.Run("M1 conviction is ineligible", func(t *testing.T) {
		rec := record(closedCase("CP-51-CR-0000001-2005", 2005,
			crecord.Charge{Sequence: "1", Offense: "Simple Assault", Grade: "M1", Statute: "18 § 2701", Disposition: "Guilty"},
		))
		_, decision := AutosealingEligibility(asOf)(rec)
		ed := decision.(analysis.EligibilityDecision)
		assert.Empty(t, ed.Eligible)
		require.Len(t, ed.Ineligible, 1)
	})

	t.Run("felony on the record excludes everything", func(t *testing.T) {
		rec := record(
			closedCase("CP-51-CR-0000001-2005", 2005,
				crecord.Charge{Sequence: "1", Offense: "Theft", Grade: "M2", Statute: "18 § 3921", Disposition: "Guilty"},
			),
			closedCase("CP-51-CR-0000002-2000", 2000,
				crecord.Charge{Sequence: "1", Offense: "Burglary", Grade: "F2", Statute: "18 § 3502", Disposition: "Guilty"},
			),
		)
		_, decision := AutosealingEligibility(asOf)(rec)
		ed := decision.(analysis.EligibilityDecision)
		for _, chargeDecisions := range ed.Reasoning {
			for _, d := range chargeDecisions {
				assert.False(t, d.Granted())
			}
		}
	})
}

func TestFullAnalysisPipeline(t *testing.T) {
	rec := record(
		closedCase("MJ-05101-TR-0000200-2016", 2016,
			crecord.Charge{Sequence: "1", Offense: "Speeding", Grade: "S", Disposition: "Guilty"},
		),
		closedCase("CP-51-CR-0000001-2015", 2012,
			crecord.Charge{Sequence: "1", Offense: "Theft", Disposition: "Nolle Prossed"},
		),
		closedCase("CP-51-CR-0000002-2005", 2005,
			crecord.Charge{Sequence: "1", Offense: "Theft", Grade: "M2", Statute: "18 § 3921", Disposition: "Guilty",
				DispositionDate: crecord.NewDate(2005, 1, 15)},
		),
	)

	a := analysis.New(rec).
		Rule(FilterTrafficCases()).
		Rule(ExpungeDeceased(asOf)).
		Rule(ExpungeOver70(asOf)).
		Rule(ExpungeNonconvictions()).
		Rule(ExpungeSummaryConvictions(asOf)).
		Rule(SealConvictions(asOf))

	require.Len(t, a.Decisions, 6)
	petitions := a.Petitions()
	require.Len(t, petitions, 2)
	assert.Equal(t, petition.KindExpungement, petitions[0].Kind)
	assert.Equal(t, petition.KindSealing, petitions[1].Kind)
	assert.Empty(t, a.RemainingRecord.Cases)
	// The original record is untouched by the slicing.
	assert.Len(t, a.Record.Cases, 3)
}
