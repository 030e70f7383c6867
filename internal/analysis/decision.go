// Package analysis decides what on a criminal record can be expunged or
// sealed. Rules slice a record into the parts that satisfy them and the
// parts that remain, and record their reasoning as a tree of decisions the
// frontend can display verbatim.
package analysis

import (
	"encoding/json"

	"cleanslate/internal/crecord"
	"cleanslate/internal/petition"
)

// Outcome is the result of a Decision. Court records are often missing the
// data a rule needs, so a rule can decline to decide.
type Outcome int

const (
	No Outcome = iota
	Yes
	Undecided
)

// OutcomeOf converts a bool to a decided Outcome.
func OutcomeOf(v bool) Outcome {
	if v {
		return Yes
	}
	return No
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	switch o {
	case Yes:
		return []byte("true"), nil
	case No:
		return []byte("false"), nil
	}
	return []byte("null"), nil
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	var v *bool
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch {
	case v == nil:
		*o = Undecided
	case *v:
		*o = Yes
	default:
		*o = No
	}
	return nil
}

// Decision is one named finding and the reasoning behind it. The reasoning
// is either prose or a list of sub-decisions, so a complex decision carries
// its full explanation with it.
type Decision struct {
	Name        string
	Value       Outcome
	Explanation string
	Reasoning   []Decision

	// DocketNumber and Sequence identify the case or charge a decision is
	// about, when it is about a specific one. The summarizer reads these
	// rather than parsing decision names.
	DocketNumber string
	Sequence     string
}

// Granted reports whether the decision came out Yes. An Undecided decision
// is not granted; missing data never makes a record eligible.
func (d Decision) Granted() bool { return d.Value == Yes }

// AllGranted reports whether every decision came out Yes.
func AllGranted(decisions []Decision) bool {
	for _, d := range decisions {
		if !d.Granted() {
			return false
		}
	}
	return true
}

// AnyGranted reports whether at least one decision came out Yes.
func AnyGranted(decisions []Decision) bool {
	for _, d := range decisions {
		if d.Granted() {
			return true
		}
	}
	return false
}

type decisionJSON struct {
	Name         string          `json:"name"`
	Value        Outcome         `json:"value"`
	Reasoning    json.RawMessage `json:"reasoning"`
	DocketNumber string          `json:"docket_number,omitempty"`
	Sequence     string          `json:"sequence,omitempty"`
}

func (d Decision) MarshalJSON() ([]byte, error) {
	var reasoning json.RawMessage
	var err error
	if len(d.Reasoning) > 0 {
		reasoning, err = json.Marshal(d.Reasoning)
	} else {
		reasoning, err = json.Marshal(d.Explanation)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(decisionJSON{
		Name:         d.Name,
		Value:        d.Value,
		Reasoning:    reasoning,
		DocketNumber: d.DocketNumber,
		Sequence:     d.Sequence,
	})
}

func (d *Decision) UnmarshalJSON(data []byte) error {
	var wire decisionJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	d.Name = wire.Name
	d.Value = wire.Value
	d.Explanation = ""
	d.Reasoning = nil
	d.DocketNumber = wire.DocketNumber
	d.Sequence = wire.Sequence
	if len(wire.Reasoning) > 0 && wire.Reasoning[0] == '[' {
		return json.Unmarshal(wire.Reasoning, &d.Reasoning)
	}
	if len(wire.Reasoning) > 0 && wire.Reasoning[0] == '"' {
		return json.Unmarshal(wire.Reasoning, &d.Explanation)
	}
	return nil
}

// RuleDecision is the top-level outcome of one rule in an analysis.
type RuleDecision interface {
	DecisionName() string
}

// PetitionDecision is a rule outcome whose value is the petitions the rule
// proposes to generate.
type PetitionDecision struct {
	Name      string
	Petitions []petition.Petition
	Reasoning []Decision
}

func (d PetitionDecision) DecisionName() string { return d.Name }

func (d PetitionDecision) MarshalJSON() ([]byte, error) {
	petitions := d.Petitions
	if petitions == nil {
		petitions = []petition.Petition{}
	}
	return json.Marshal(struct {
		Name      string              `json:"name"`
		Value     []petition.Petition `json:"value"`
		Reasoning []Decision          `json:"reasoning"`
	}{d.Name, petitions, d.Reasoning})
}

// Cases returns every case across the decision's petitions.
func (d PetitionDecision) Cases() []crecord.Case {
	var cases []crecord.Case
	for _, p := range d.Petitions {
		cases = append(cases, p.Cases...)
	}
	return cases
}

// FilterDecision is a rule outcome whose value is the cases the rule removed
// from consideration, such as traffic court cases.
type FilterDecision struct {
	Name      string
	Removed   []crecord.Case
	Reasoning []Decision
}

func (d FilterDecision) DecisionName() string { return d.Name }

func (d FilterDecision) MarshalJSON() ([]byte, error) {
	removed := d.Removed
	if removed == nil {
		removed = []crecord.Case{}
	}
	return json.Marshal(struct {
		Name      string         `json:"name"`
		Value     []crecord.Case `json:"value"`
		Reasoning []Decision     `json:"reasoning"`
	}{d.Name, removed, d.Reasoning})
}

// EligibilityDecision is a rule outcome that classifies a record's charges
// as eligible or ineligible without slicing the record, as the automated
// sealing screen does. Reasoning is keyed by docket number, one decision per
// charge.
type EligibilityDecision struct {
	Name       string
	Eligible   []crecord.Case
	Ineligible []crecord.Case
	Reasoning  map[string][]Decision
}

func (d EligibilityDecision) DecisionName() string { return d.Name }

func (d EligibilityDecision) MarshalJSON() ([]byte, error) {
	eligible := d.Eligible
	if eligible == nil {
		eligible = []crecord.Case{}
	}
	ineligible := d.Ineligible
	if ineligible == nil {
		ineligible = []crecord.Case{}
	}
	return json.Marshal(struct {
		Name  string `json:"name"`
		Value struct {
			Eligible   []crecord.Case `json:"eligible"`
			Ineligible []crecord.Case `json:"ineligible"`
		} `json:"value"`
		Reasoning map[string][]Decision `json:"reasoning"`
	}{
		Name: d.Name,
		Value: struct {
			Eligible   []crecord.Case `json:"eligible"`
			Ineligible []crecord.Case `json:"ineligible"`
		}{eligible, ineligible},
		Reasoning: d.Reasoning,
	})
}
