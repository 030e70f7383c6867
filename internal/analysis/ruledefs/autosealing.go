package ruledefs

import (
	"fmt"
	"strings"
	"time"

	"cleanslate/internal/analysis"
	"cleanslate/internal/crecord"
)

// gradeBetween reports whether a charge's grade falls between lo and hi on
// the seriousness ladder, inclusive.
func gradeBetween(grade, lo, hi string) bool {
	return crecord.GradeAtLeast(grade, lo) && crecord.GradeAtLeast(hi, grade)
}

// autosealableCharge decides whether one charge qualifies for automated
// sealing under Act 56. A charge qualifies when it is a nonconviction; or a
// summary conviction with fines paid; or an M, M3, or M2 conviction with
// fines paid, ten conviction-free years, no per-charge exclusion, no M1 or
// worse conviction on the same case, and no record-wide exclusion.
func autosealableCharge(
	charge crecord.Charge,
	c crecord.Case,
	finesPaid, tenYearsFree, recordNotExcluded analysis.Decision,
) analysis.Decision {
	d := analysis.Decision{
		Name:         fmt.Sprintf("Is the charge %s for %s eligible for automated sealing?", charge.Sequence, charge.Offense),
		DocketNumber: c.DocketNumber,
		Sequence:     charge.Sequence,
	}

	conviction := IsConviction(charge)
	if conviction.Value == analysis.No {
		d.Value = analysis.Yes
		d.Reasoning = []analysis.Decision{conviction}
		return d
	}
	if conviction.Value == analysis.Undecided {
		d.Value = analysis.No
		d.Reasoning = []analysis.Decision{conviction}
		return d
	}

	if strings.TrimSpace(charge.Grade) == "S" {
		d.Reasoning = []analysis.Decision{finesPaid, IsSummaryConviction(charge)}
		d.Value = analysis.OutcomeOf(analysis.AllGranted(d.Reasoning))
		return d
	}

	d.Reasoning = []analysis.Decision{
		tenYearsFree,
		finesPaid,
		decide("Is the conviction graded M2, M3, or M?",
			gradeBetween(charge.Grade, "M", "M2"),
			fmt.Sprintf("The charge's grade is %s.", charge.Grade)),
		ChargeIsNotExcludedFromSealing(charge),
		NoM1OrHigherInCase(c),
		recordNotExcluded,
	}
	d.Value = analysis.OutcomeOf(analysis.AllGranted(d.Reasoning))
	return d
}

// AutosealingEligibility classifies every charge on the record as eligible
// or ineligible for automated sealing. Unlike the petition rules, it does
// not slice the record; the record passes through unchanged.
func AutosealingEligibility(asOf time.Time) analysis.Rule {
	return func(rec crecord.Record) (crecord.Record, analysis.RuleDecision) {
		decision := analysis.EligibilityDecision{
			Name:      analysis.NameAutosealing,
			Reasoning: map[string][]analysis.Decision{},
		}

		tenYearsFree := TenYearsSinceLastConvictionForMOrF(rec, asOf)
		recordNotExcluded := RecordFreeOfExcludedConvictions(rec, asOf)

		for _, c := range rec.Cases {
			finesPaid := FinesAndCostsPaid(c)
			eligible := c.PartialCopy()
			ineligible := c.PartialCopy()
			for _, charge := range c.Charges {
				chargeD := autosealableCharge(charge, c, finesPaid, tenYearsFree, recordNotExcluded)
				decision.Reasoning[c.DocketNumber] = append(decision.Reasoning[c.DocketNumber], chargeD)
				if chargeD.Granted() {
					eligible.Charges = append(eligible.Charges, charge)
				} else {
					ineligible.Charges = append(ineligible.Charges, charge)
				}
			}
			if len(eligible.Charges) > 0 {
				decision.Eligible = append(decision.Eligible, eligible)
			}
			if len(ineligible.Charges) > 0 {
				decision.Ineligible = append(decision.Ineligible, ineligible)
			}
		}
		return rec, decision
	}
}
