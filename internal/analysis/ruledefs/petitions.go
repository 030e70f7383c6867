package ruledefs

import (
	"fmt"
	"time"

	"cleanslate/internal/analysis"
	"cleanslate/internal/crecord"
	"cleanslate/internal/petition"
)

// FilterTrafficCases removes traffic court cases from consideration. Their
// expungement process is more difficult, so the analysis sets them aside
// rather than proposing petitions for them.
func FilterTrafficCases() analysis.Rule {
	return func(rec crecord.Record) (crecord.Record, analysis.RuleDecision) {
		decision := analysis.FilterDecision{Name: analysis.NameTrafficFilter}
		remaining := crecord.Record{Person: rec.Person}
		for _, c := range rec.Cases {
			isTraffic := decide(
				fmt.Sprintf("Is %s a traffic case?", c.DocketNumber),
				c.IsTraffic(),
				fmt.Sprintf("The docket number is %s.", c.DocketNumber),
			)
			decision.Reasoning = append(decision.Reasoning, isTraffic)
			if isTraffic.Granted() {
				decision.Removed = append(decision.Removed, c)
			} else {
				remaining.Cases = append(remaining.Cases, c)
			}
		}
		return remaining, decision
	}
}

// ExpungeOver70 proposes expunging a whole record under 18 Pa.C.S.
// § 9122(b)(1): the person is over 70 and has been free of arrest or
// prosecution for ten years following final release from confinement or
// supervision.
func ExpungeOver70(asOf time.Time) analysis.Rule {
	return func(rec crecord.Record) (crecord.Record, analysis.RuleDecision) {
		decision := analysis.PetitionDecision{
			Name: analysis.NameExpungeOver70,
			Reasoning: []analysis.Decision{
				IsOverAge(rec.Person, 70, asOf),
				YearsSinceLastContact(rec, 10, asOf),
				YearsSinceFinalRelease(rec, 10, asOf),
			},
		}
		if !analysis.AllGranted(decision.Reasoning) {
			return rec, decision
		}
		for _, c := range rec.Cases {
			p := petition.NewExpungement(rec.Person, []crecord.Case{c}, petition.FullExpungement,
				"and the Petitioner is over 70 years old and has been free of arrest or prosecution for ten years following completion of the sentence")
			decision.Petitions = append(decision.Petitions, p)
		}
		return crecord.Record{Person: rec.Person}, decision
	}
}

// ExpungeDeceased proposes expunging a whole record under 18 Pa.C.S.
// § 9122(b)(2): the person has been dead for three years.
func ExpungeDeceased(asOf time.Time) analysis.Rule {
	return func(rec crecord.Record) (crecord.Record, analysis.RuleDecision) {
		name := fmt.Sprintf("Has %s been deceased for 3 years?", rec.Person.FirstName)
		var deceased analysis.Decision
		if years, dead := rec.Person.YearsDead(asOf); !dead {
			deceased = decide(name, false,
				fmt.Sprintf("%s is not dead, as far as we know.", rec.Person.FirstName))
		} else {
			deceased = decide(name, years > 3,
				fmt.Sprintf("It has been %d years since %s's death.", years, rec.Person.FirstName))
		}
		decision := analysis.PetitionDecision{
			Name:      analysis.NameExpungeDeceased,
			Reasoning: []analysis.Decision{deceased},
		}
		if !deceased.Granted() {
			return rec, decision
		}
		for _, c := range rec.Cases {
			decision.Petitions = append(decision.Petitions,
				petition.NewExpungement(rec.Person, []crecord.Case{c}, petition.FullExpungement, ""))
		}
		return crecord.Record{Person: rec.Person}, decision
	}
}

// ExpungeSummaryConvictions proposes expunging summary convictions under
// 18 Pa.C.S. § 9122(b)(3): the person has been free of arrest or
// prosecution for five years following the conviction.
func ExpungeSummaryConvictions(asOf time.Time) analysis.Rule {
	return func(rec crecord.Record) (crecord.Record, analysis.RuleDecision) {
		arrestFree := ArrestFreeForNYears(rec, 5, asOf)
		decision := analysis.PetitionDecision{
			Name:      analysis.NameExpungeSummary,
			Reasoning: []analysis.Decision{arrestFree},
		}
		remaining := crecord.Record{Person: rec.Person}
		for _, c := range rec.Cases {
			caseD := analysis.Decision{
				Name:         fmt.Sprintf("Is %s expungeable?", c.DocketNumber),
				DocketNumber: c.DocketNumber,
			}
			expungeable := c.PartialCopy()
			notExpungeable := c.PartialCopy()
			for _, charge := range c.Charges {
				chargeD := IsSummaryConviction(charge)
				chargeD.DocketNumber = c.DocketNumber
				chargeD.Sequence = charge.Sequence
				if arrestFree.Granted() && analysis.AllGranted(chargeD.Reasoning) {
					chargeD.Value = analysis.Yes
					expungeable.Charges = append(expungeable.Charges, charge)
				} else {
					chargeD.Value = analysis.No
					notExpungeable.Charges = append(notExpungeable.Charges, charge)
				}
				caseD.Reasoning = append(caseD.Reasoning, chargeD)
			}
			if len(expungeable.Charges) > 0 {
				caseD.Value = analysis.Yes
				expungementType := petition.PartialExpungement
				if len(expungeable.Charges) == len(c.Charges) {
					expungementType = petition.FullExpungement
				}
				decision.Petitions = append(decision.Petitions,
					petition.NewExpungement(rec.Person, []crecord.Case{expungeable}, expungementType,
						". The petitioner has been arrest free for more than five years since this summary conviction"))
			}
			if len(notExpungeable.Charges) > 0 {
				caseD.Value = analysis.No
				remaining.Cases = append(remaining.Cases, notExpungeable)
			}
			decision.Reasoning = append(decision.Reasoning, caseD)
		}
		return remaining, decision
	}
}

// ExpungeNonconvictions proposes expunging nonconvictions. Under 18 Pa.C.S.
// § 9122(a) they "shall be expunged". A charge with no disposition at all is
// left alone; the case may just be unresolved.
func ExpungeNonconvictions() analysis.Rule {
	return func(rec crecord.Record) (crecord.Record, analysis.RuleDecision) {
		decision := analysis.PetitionDecision{Name: analysis.NameExpungeNonconvictions}
		remaining := crecord.Record{Person: rec.Person}
		for _, c := range rec.Cases {
			caseD := analysis.Decision{
				Name:         fmt.Sprintf("Does %s have expungeable nonconvictions?", c.DocketNumber),
				DocketNumber: c.DocketNumber,
			}
			expungeable := c.PartialCopy()
			unexpungeable := c.PartialCopy()
			for _, charge := range c.Charges {
				chargeD := IsConvictionOrUnresolved(charge)
				chargeD.DocketNumber = c.DocketNumber
				chargeD.Sequence = charge.Sequence
				if chargeD.Value == analysis.No {
					expungeable.Charges = append(expungeable.Charges, charge)
				} else {
					unexpungeable.Charges = append(unexpungeable.Charges, charge)
				}
				caseD.Reasoning = append(caseD.Reasoning, chargeD)
			}
			if len(expungeable.Charges) > 0 {
				caseD.Value = analysis.Yes
				expungementType := petition.PartialExpungement
				if len(expungeable.Charges) == len(c.Charges) {
					expungementType = petition.FullExpungement
				}
				decision.Petitions = append(decision.Petitions,
					petition.NewExpungement(rec.Person, []crecord.Case{expungeable}, expungementType, ""))
			} else {
				caseD.Value = analysis.No
			}
			if len(unexpungeable.Charges) > 0 {
				remaining.Cases = append(remaining.Cases, unexpungeable)
			}
			decision.Reasoning = append(decision.Reasoning, caseD)
		}
		return remaining, decision
	}
}

// SealConvictions proposes sealing convictions by petition under 18 Pa.C.S.
// § 9122.1. The record as a whole must satisfy the full-record requirements;
// each charge must also pass the per-charge exclusion screens and have the
// case's fines paid.
func SealConvictions(asOf time.Time) analysis.Rule {
	return func(rec crecord.Record) (crecord.Record, analysis.RuleDecision) {
		decision := analysis.PetitionDecision{
			Name: analysis.NameSealConvictions,
		}
		fullRecord := FullRecordRequirementsForPetitionSealing(rec, asOf)
		decision.Reasoning = append(decision.Reasoning, fullRecord)

		remaining := crecord.Record{Person: rec.Person}
		for _, c := range rec.Cases {
			caseD := analysis.Decision{
				Name:         fmt.Sprintf("Sealing case %s", c.DocketNumber),
				DocketNumber: c.DocketNumber,
			}
			finesD := FinesAndCostsPaid(c)
			sealable := c.PartialCopy()
			unsealable := c.PartialCopy()

			var chargeDecisions []analysis.Decision
			for _, charge := range c.Charges {
				chargeD := analysis.Decision{
					Name:         fmt.Sprintf("Sealing charge %s, %s", charge.Sequence, charge.Offense),
					DocketNumber: c.DocketNumber,
					Sequence:     charge.Sequence,
					Reasoning: append([]analysis.Decision{finesD},
						SealableByPetitionCharge(charge).Reasoning...),
				}
				if analysis.AllGranted(chargeD.Reasoning) && fullRecord.Granted() {
					chargeD.Value = analysis.Yes
					chargeD.Explanation = "Sealable"
					sealable.Charges = append(sealable.Charges, charge)
				} else {
					chargeD.Value = analysis.No
					chargeD.Explanation = "Not sealable"
					unsealable.Charges = append(unsealable.Charges, charge)
				}
				chargeDecisions = append(chargeDecisions, chargeD)
			}

			switch {
			case len(c.Charges) > 0 && len(unsealable.Charges) == 0:
				caseD.Value = analysis.Yes
				caseD.Explanation = "All charges sealable"
				decision.Petitions = append(decision.Petitions,
					petition.NewSealing(rec.Person, []crecord.Case{sealable}))
			case len(sealable.Charges) > 0:
				caseD.Value = analysis.Yes
				caseD.Explanation = "Some charges sealable"
				remaining.Cases = append(remaining.Cases, unsealable)
				decision.Petitions = append(decision.Petitions,
					petition.NewSealing(rec.Person, []crecord.Case{sealable}))
			default:
				caseD.Value = analysis.No
				caseD.Explanation = "No charges sealable"
				remaining.Cases = append(remaining.Cases, unsealable)
			}
			caseD.Reasoning = chargeDecisions
			decision.Reasoning = append(decision.Reasoning, caseD)
		}
		return remaining, decision
	}
}
