// Package crecord models a Pennsylvania criminal record: a person and their
// cases and charges, along with the date arithmetic the expungement and
// sealing rules depend on.
package crecord

import (
	"regexp"
	"strings"
	"time"
)

// YearsForever stands in for "infinitely many years" in rules that ask how
// long ago something happened when it never happened at all. Any statutory
// waiting period compares well below it.
const YearsForever = 1000

// Record is one person's criminal record.
type Record struct {
	Person Person `json:"person"`
	Cases  []Case `json:"cases"`
}

// Copy returns a deep copy of the record. Rules slice records apart, and the
// analysis must keep the original intact for reporting.
func (r Record) Copy() Record {
	copied := Record{Person: r.Person}
	copied.Person.Aliases = append([]string(nil), r.Person.Aliases...)
	if r.Person.Address != nil {
		addr := *r.Person.Address
		copied.Person.Address = &addr
	}
	copied.Cases = make([]Case, 0, len(r.Cases))
	for _, c := range r.Cases {
		cc := c
		if c.TotalFines != nil {
			v := *c.TotalFines
			cc.TotalFines = &v
		}
		if c.FinesPaid != nil {
			v := *c.FinesPaid
			cc.FinesPaid = &v
		}
		cc.Charges = make([]Charge, len(c.Charges))
		for i, charge := range c.Charges {
			cc.Charges[i] = charge
			cc.Charges[i].Sentences = append([]Sentence(nil), charge.Sentences...)
		}
		cc.RelatedCases = append([]string(nil), c.RelatedCases...)
		copied.Cases = append(copied.Cases, cc)
	}
	return copied
}

// AddCase adds a case to the record, merging it into an existing case with
// the same docket number, then resolves any transferred cases.
func (r *Record) AddCase(newCase Case) {
	merged := false
	for i := range r.Cases {
		if r.Cases[i].DocketNumber == newCase.DocketNumber {
			r.Cases[i].MergeWith(newCase)
			merged = true
			break
		}
	}
	if !merged {
		r.Cases = append(r.Cases, newCase)
	}
	r.HandleTransferredCases()
}

var heldForCourt = regexp.MustCompile(`(?i)held for court`)

// HandleTransferredCases finds charges that were held for court and moves
// them to the case where they concluded, matching by OTN. A case emptied of
// charges is dropped, and the concluding case records it as related.
func (r *Record) HandleTransferredCases() {
	for ci := range r.Cases {
		kept := r.Cases[ci].Charges[:0]
		for _, charge := range r.Cases[ci].Charges {
			if !heldForCourt.MatchString(charge.Disposition) {
				kept = append(kept, charge)
				continue
			}
			otn := r.Cases[ci].OTN
			if otn == "" {
				otn = charge.OTN
			}
			others := r.FindCasesByOTN(otn, r.Cases[ci].DocketNumber)
			if len(others) == 0 {
				kept = append(kept, charge)
				continue
			}
			other := others[0]
			if !containsString(other.RelatedCases, r.Cases[ci].DocketNumber) {
				other.RelatedCases = append(other.RelatedCases, r.Cases[ci].DocketNumber)
			}
		}
		r.Cases[ci].Charges = kept
	}

	remaining := r.Cases[:0]
	for _, c := range r.Cases {
		if len(c.Charges) > 0 || len(c.RelatedCases) > 0 {
			remaining = append(remaining, c)
		}
	}
	r.Cases = remaining
}

// FindCasesByOTN returns pointers to cases matching the OTN on the case or
// any of its charges, excluding the given docket numbers.
func (r *Record) FindCasesByOTN(otn string, exceptDockets ...string) []*Case {
	if otn == "" {
		return nil
	}
	var found []*Case
	for i := range r.Cases {
		if containsString(exceptDockets, r.Cases[i].DocketNumber) {
			continue
		}
		match := r.Cases[i].OTN == otn
		if !match {
			for _, charge := range r.Cases[i].Charges {
				if charge.OTN == otn {
					match = true
					break
				}
			}
		}
		if match {
			found = append(found, &r.Cases[i])
		}
	}
	return found
}

// RemoveCaseByDocketNumber drops the case with the given docket number.
func (r *Record) RemoveCaseByDocketNumber(docketNumber string) {
	remaining := r.Cases[:0]
	for _, c := range r.Cases {
		if c.DocketNumber != docketNumber {
			remaining = append(remaining, c)
		}
	}
	r.Cases = remaining
}

// YearsSinceLastArrestOrProsecution returns whole years since the last
// arrest or disposition anywhere on the record. With no cases the answer is
// YearsForever; with any active case, or when no dates are known, it is 0.
func (r Record) YearsSinceLastArrestOrProsecution(asOf time.Time) int {
	if len(r.Cases) == 0 {
		return YearsForever
	}
	for _, c := range r.Cases {
		if strings.Contains(c.Status, "Active") {
			return 0
		}
	}
	var latest Date
	for _, c := range r.Cases {
		if la := c.LastAction(); la.After(latest) {
			latest = la
		}
	}
	if latest.IsZero() {
		return 0
	}
	years := latest.YearsSince(asOf)
	if years < 0 {
		return 0
	}
	return years
}

// YearsSinceFinalRelease returns whole years since the person's final
// release from confinement. A record with no confinement returns
// YearsForever; unknown confinement dates return 0.
func (r Record) YearsSinceFinalRelease(asOf time.Time) int {
	var latest Date
	confined := false
	for _, c := range r.Cases {
		if !c.WasConfined() {
			continue
		}
		confined = true
		if end := c.EndOfConfinement(); end.After(latest) {
			latest = end
		}
	}
	if !confined {
		return YearsForever
	}
	if latest.IsZero() {
		return 0
	}
	years := latest.YearsSince(asOf)
	if years < 0 {
		return 0
	}
	return years
}
