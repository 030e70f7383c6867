package analysis

import (
	"cleanslate/internal/crecord"
	"cleanslate/internal/petition"
)

// Rule evaluates one eligibility rule against a record. It returns whatever
// cases and charges remain for later rules, plus the rule's decision.
type Rule func(crecord.Record) (crecord.Record, RuleDecision)

// Names of the standard rules. The summarizer dispatches on these.
const (
	NameTrafficFilter         = "Traffic Court cases removed from consideration."
	NameExpungeOver70         = "Expungements for a person over 70."
	NameExpungeDeceased       = "Expungements for a deceased person, after three years after their death."
	NameExpungeNonconvictions = "Expungements of nonconvictions."
	NameExpungeSummary        = "Expungements for summary convictions."
	NameSealConvictions       = "Sealing some convictions under the Clean Slate reforms."
	NameAutosealing           = "Eligibility for Automated Sealing"
)

// Analysis runs a record through a sequence of rules. Each rule takes
// whatever the previous rules left and slices off the parts it can act on,
// so a charge is only ever claimed by one petition.
type Analysis struct {
	Record          crecord.Record `json:"record"`
	RemainingRecord crecord.Record `json:"remaining_record"`
	Decisions       []RuleDecision `json:"decisions"`
}

// New starts an analysis of a record.
func New(rec crecord.Record) *Analysis {
	return &Analysis{
		Record:          rec,
		RemainingRecord: rec.Copy(),
		Decisions:       []RuleDecision{},
	}
}

// Rule applies a rule to whatever remains of the record and collects its
// decision. It returns the analysis so rules chain.
func (a *Analysis) Rule(rule Rule) *Analysis {
	remaining, decision := rule(a.RemainingRecord)
	a.RemainingRecord = remaining
	a.Decisions = append(a.Decisions, decision)
	return a
}

// Petitions returns every petition proposed across the analysis's decisions.
func (a *Analysis) Petitions() []petition.Petition {
	var petitions []petition.Petition
	for _, decision := range a.Decisions {
		if pd, ok := decision.(PetitionDecision); ok {
			petitions = append(petitions, pd.Petitions...)
		}
	}
	return petitions
}
