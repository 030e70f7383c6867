package analysis

import (
	"fmt"

	"cleanslate/internal/crecord"
)

// Summary flattens an analysis into a case-by-case and charge-by-charge
// account of what can be done with everything on a record.
type Summary struct {
	ClearableCases   int                     `json:"clearable_cases"`
	ClearableCharges int                     `json:"clearable_charges"`
	Cases            map[string]*CaseSummary `json:"cases"`
}

// CaseSummary is the summary of one case, keyed by docket number.
type CaseSummary struct {
	NextSteps string                    `json:"next_steps"`
	Charges   map[string]*ChargeSummary `json:"charges"`
}

// ChargeSummary is the summary of one charge, keyed by sequence number.
type ChargeSummary struct {
	Offense         string       `json:"offense"`
	IsConviction    bool         `json:"is_conviction"`
	Grade           string       `json:"grade"`
	Disposition     string       `json:"disposition"`
	DispositionDate crecord.Date `json:"disposition_date"`
	NextSteps       string       `json:"next_steps"`
}

func (s *Summary) caseFor(docketNumber string) *CaseSummary {
	cs, ok := s.Cases[docketNumber]
	if !ok {
		cs = &CaseSummary{Charges: map[string]*ChargeSummary{}}
		s.Cases[docketNumber] = cs
	}
	return cs
}

func (s *Summary) addCaseStep(docketNumber, step string) {
	s.caseFor(docketNumber).NextSteps += step
}

func (s *Summary) addChargeStep(docketNumber, sequence, step string) {
	cs := s.caseFor(docketNumber)
	charge, ok := cs.Charges[sequence]
	if !ok {
		charge = &ChargeSummary{}
		cs.Charges[sequence] = charge
	}
	charge.NextSteps += step
}

// Summarize flattens an analysis into a Summary. It also returns a list of
// problems, such as rule decisions it doesn't recognize.
func Summarize(a *Analysis) (*Summary, []string) {
	var errs []string
	summary := &Summary{Cases: map[string]*CaseSummary{}}

	for _, c := range a.Record.Cases {
		cs := summary.caseFor(c.DocketNumber)
		for _, charge := range c.Charges {
			dispositionDate := charge.DispositionDate
			if dispositionDate.IsZero() {
				dispositionDate = c.DispositionDate
			}
			cs.Charges[charge.Sequence] = &ChargeSummary{
				Offense:         charge.Offense,
				IsConviction:    charge.IsConviction(),
				Grade:           charge.Grade,
				Disposition:     charge.Disposition,
				DispositionDate: dispositionDate,
			}
		}
	}

	for _, decision := range a.Decisions {
		switch d := decision.(type) {
		case FilterDecision:
			summarizeTrafficFilter(summary, d)
		case PetitionDecision:
			switch d.Name {
			case NameExpungeOver70, NameExpungeDeceased:
				summarizeWholeRecordExpungement(summary, d)
			case NameExpungeNonconvictions:
				summarizeNonconvictions(summary, d)
			case NameExpungeSummary:
				summarizeSummaryConvictions(summary, d)
			case NameSealConvictions:
				summarizeSealing(summary, d)
			default:
				errs = append(errs, fmt.Sprintf("Decision named %s not recognized in summary.", d.Name))
			}
		case EligibilityDecision:
			summarizeAutosealing(summary, d)
		default:
			errs = append(errs, fmt.Sprintf("Decision named %s not recognized in summary.", decision.DecisionName()))
		}
	}

	// Cases with no next steps but a conviction likely need a pardon first.
	// Charge-less cases are usually shadows of a transfer.
	for _, cs := range summary.Cases {
		if len(cs.Charges) == 0 {
			cs.NextSteps = "This case may be related to another (such as through a transfer), and sealing or expunging the other case may seal or expunge this one as well."
			continue
		}
		if cs.NextSteps != "" {
			continue
		}
		stepless := true
		anyConviction := false
		for _, charge := range cs.Charges {
			if charge.NextSteps != "" {
				stepless = false
			}
			if charge.IsConviction {
				anyConviction = true
			}
		}
		if stepless && anyConviction {
			cs.NextSteps = "You may need a pardon before this can be expunged or sealed. "
		}
	}

	return summary, errs
}

func summarizeTrafficFilter(summary *Summary, d FilterDecision) {
	for _, c := range d.Removed {
		summary.addCaseStep(c.DocketNumber,
			"Our system does not review traffic court cases. You can speak with a lawyer about your options for expunging traffic cases. ")
	}
}

func summarizeWholeRecordExpungement(summary *Summary, d PetitionDecision) {
	for _, c := range d.Cases() {
		summary.addCaseStep(c.DocketNumber, "Case likely expungeable by petition. ")
		summary.ClearableCases++
	}
}

func summarizeNonconvictions(summary *Summary, d PetitionDecision) {
	for _, caseD := range d.Reasoning {
		if caseD.DocketNumber == "" {
			continue
		}
		clearable := false
		for _, chargeD := range caseD.Reasoning {
			// A No outcome means the charge is not a conviction and not
			// unresolved, so it is expungeable.
			if chargeD.Value == No {
				summary.addChargeStep(chargeD.DocketNumber, chargeD.Sequence,
					"Nonconviction likely expungeable by petition. ")
				summary.ClearableCharges++
				clearable = true
			}
		}
		if clearable {
			summary.ClearableCases++
		}
	}
}

func summarizeSummaryConvictions(summary *Summary, d PetitionDecision) {
	if len(d.Reasoning) == 0 {
		return
	}
	arrestFree := d.Reasoning[0]
	for _, caseD := range d.Reasoning[1:] {
		clearable := false
		for _, chargeD := range caseD.Reasoning {
			switch {
			case chargeD.Granted() && arrestFree.Granted():
				summary.addChargeStep(chargeD.DocketNumber, chargeD.Sequence,
					"Charge likely can be expunged. ")
				summary.ClearableCharges++
				clearable = true
			case AllGranted(chargeD.Reasoning):
				// A summary conviction blocked only by the waiting period.
				summary.addChargeStep(chargeD.DocketNumber, chargeD.Sequence,
					"Charge likely cannot be expunged yet. There must be five (5) years since the last arrest for prosecution. "+arrestFree.Explanation)
			}
		}
		if clearable {
			summary.ClearableCases++
		}
	}
}

func summarizeSealing(summary *Summary, d PetitionDecision) {
	if len(d.Reasoning) == 0 {
		return
	}
	fullRecord := d.Reasoning[0]
	var timeLeft Decision
	restOfFullRecordGranted := false
	if len(fullRecord.Reasoning) > 0 {
		timeLeft = fullRecord.Reasoning[0]
		restOfFullRecordGranted = AllGranted(fullRecord.Reasoning[1:])
	}

	for _, caseD := range d.Reasoning[1:] {
		if caseD.Explanation == "All charges sealable" {
			summary.addCaseStep(caseD.DocketNumber, "Case likely sealable by petition. ")
			summary.ClearableCases++
			summary.ClearableCharges += len(caseD.Reasoning)
			continue
		}
		clearable := false
		for _, chargeD := range caseD.Reasoning {
			if chargeD.Explanation == "Sealable" {
				summary.addChargeStep(chargeD.DocketNumber, chargeD.Sequence,
					"Charge is likely sealable by petition. ")
				summary.ClearableCharges++
				clearable = true
				continue
			}
			if len(chargeD.Reasoning) == 0 {
				continue
			}
			finesPaid := chargeD.Reasoning[0]
			restGranted := AllGranted(chargeD.Reasoning[1:])
			explanation := ""
			if restGranted && restOfFullRecordGranted && !timeLeft.Granted() {
				explanation += "You'll need to wait before this may become sealable. "
			}
			if !finesPaid.Granted() {
				if explanation != "" {
					explanation += "Also, it "
				} else {
					explanation += "It "
				}
				explanation += "looks like there are outstanding fines that must be paid before any sealing could be possible. " + finesPaid.Explanation
			}
			summary.addChargeStep(chargeD.DocketNumber, chargeD.Sequence, explanation)
		}
		if clearable {
			summary.ClearableCases++
		}
	}
}

func summarizeAutosealing(summary *Summary, d EligibilityDecision) {
	for docketNumber, chargeDecisions := range d.Reasoning {
		clearable := false
		for _, chargeD := range chargeDecisions {
			if chargeD.Granted() {
				summary.addChargeStep(docketNumber, chargeD.Sequence,
					"This charge may be automatically sealed.")
				summary.ClearableCharges++
				clearable = true
				continue
			}
			r := chargeD.Reasoning
			switch {
			// Fines are the only thing blocking a conviction from sealing.
			case len(r) == 2 && !r[0].Granted() && AllGranted(r[1:]):
				summary.addChargeStep(docketNumber, chargeD.Sequence,
					"This charge may be eligible for automatic sealing once all fines are paid.")
			case len(r) >= 6 && r[0].Granted() && !r[1].Granted() && AllGranted(r[2:]):
				summary.addChargeStep(docketNumber, chargeD.Sequence,
					"This charge may be eligible for automatic sealing once all fines are paid.")
			// The waiting period is the only thing blocking sealing.
			case len(r) >= 6 && !r[0].Granted() && AllGranted(r[1:]):
				summary.addChargeStep(docketNumber, chargeD.Sequence,
					"This charge may become sealable. "+r[0].Explanation)
			}
		}
		if clearable {
			summary.ClearableCases++
		}
	}
}
