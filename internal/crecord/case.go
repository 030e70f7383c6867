package crecord

import (
	"sort"
	"strings"
	"time"
)

// Case is one criminal case on a record.
type Case struct {
	Status                 string   `json:"status"`
	County                 string   `json:"county"`
	DocketNumber           string   `json:"docket_number"`
	OTN                    string   `json:"otn"`
	DC                     string   `json:"dc"`
	Charges                []Charge `json:"charges"`
	TotalFines             *int     `json:"total_fines"`
	FinesPaid              *int     `json:"fines_paid"`
	ComplaintDate          Date     `json:"complaint_date"`
	ArrestDate             Date     `json:"arrest_date"`
	DispositionDate        Date     `json:"disposition_date"`
	Judge                  string   `json:"judge"`
	JudgeAddress           string   `json:"judge_address,omitempty"`
	Affiant                string   `json:"affiant,omitempty"`
	ArrestingAgency        string   `json:"arresting_agency,omitempty"`
	ArrestingAgencyAddress string   `json:"arresting_agency_address,omitempty"`
	// RelatedCases holds docket numbers of cases that concluded here, such
	// as a held-for-court case transferred into this one.
	RelatedCases []string `json:"related_cases,omitempty"`
}

// IsTraffic reports whether this is a traffic-court case.
func (c Case) IsTraffic() bool {
	return strings.Contains(c.DocketNumber, "TR")
}

// LastAction returns the later of the arrest and disposition dates. A zero
// Date means neither is known; callers treat that as infinitely long ago.
func (c Case) LastAction() Date {
	if c.ArrestDate.After(c.DispositionDate) {
		return c.ArrestDate
	}
	return c.DispositionDate
}

// YearsPassedDisposition returns whole years since the case's disposition,
// or 0 when the disposition date is unknown.
func (c Case) YearsPassedDisposition(asOf time.Time) int {
	if c.DispositionDate.IsZero() {
		return 0
	}
	return c.DispositionDate.YearsSince(asOf)
}

// WasConfined reports whether any sentence in the case involved confinement.
func (c Case) WasConfined() bool {
	for _, charge := range c.Charges {
		for _, s := range charge.Sentences {
			if s.IsConfinement() {
				return true
			}
		}
	}
	return false
}

// EndOfConfinement estimates when confinement in this case ended. Returns a
// zero Date when the case had no confinement or the dates are unknown.
func (c Case) EndOfConfinement() Date {
	if !c.WasConfined() {
		return Date{}
	}
	var latest Date
	for _, charge := range c.Charges {
		for _, s := range charge.Sentences {
			if end := s.CompleteDate(); end.After(latest) {
				latest = end
			}
		}
	}
	return latest
}

// FinesRemaining returns the unpaid fines on the case. The second return is
// false when the fines fields are too incomplete to tell.
func (c Case) FinesRemaining() (int, bool) {
	if c.TotalFines == nil {
		return 0, false
	}
	if *c.TotalFines == 0 {
		return 0, true
	}
	if c.FinesPaid == nil {
		return 0, false
	}
	return *c.TotalFines - *c.FinesPaid, true
}

// PartialCopy returns a copy of the case's metadata with no charges. Rules
// use this to slice a case into the parts that do and don't satisfy them.
func (c Case) PartialCopy() Case {
	copied := c
	copied.Charges = nil
	copied.RelatedCases = append([]string(nil), c.RelatedCases...)
	return copied
}

// Completeness scores how many of the case's fields are filled in, so a
// merge can prefer the better-parsed of two versions of the same case.
func (c Case) Completeness() int {
	score := 0
	for _, s := range []string{
		c.Status, c.County, c.DocketNumber, c.OTN, c.DC, c.Judge,
		c.JudgeAddress, c.Affiant, c.ArrestingAgency, c.ArrestingAgencyAddress,
	} {
		if strings.TrimSpace(s) != "" {
			score++
		}
	}
	for _, d := range []Date{c.ComplaintDate, c.ArrestDate, c.DispositionDate} {
		if !d.IsZero() {
			score++
		}
	}
	if c.TotalFines != nil {
		score++
	}
	if c.FinesPaid != nil {
		score++
	}
	if len(c.Charges) > 0 {
		score++
	}
	return score
}

// MergeWith folds another parse of the same case into this one, keeping the
// more complete value of each field and merging charges by sequence.
func (c *Case) MergeWith(other Case) {
	if c.Status == "" {
		c.Status = other.Status
	}
	if c.County == "" {
		c.County = other.County
	}
	if c.OTN == "" {
		c.OTN = other.OTN
	}
	if c.DC == "" {
		c.DC = other.DC
	}
	if c.Judge == "" {
		c.Judge = other.Judge
	}
	if c.JudgeAddress == "" {
		c.JudgeAddress = other.JudgeAddress
	}
	if c.Affiant == "" {
		c.Affiant = other.Affiant
	}
	if c.ArrestingAgency == "" {
		c.ArrestingAgency = other.ArrestingAgency
	}
	if c.ArrestingAgencyAddress == "" {
		c.ArrestingAgencyAddress = other.ArrestingAgencyAddress
	}
	if c.TotalFines == nil {
		c.TotalFines = other.TotalFines
	}
	if c.FinesPaid == nil {
		c.FinesPaid = other.FinesPaid
	}
	if c.ComplaintDate.IsZero() {
		c.ComplaintDate = other.ComplaintDate
	}
	if c.ArrestDate.IsZero() {
		c.ArrestDate = other.ArrestDate
	}
	if c.DispositionDate.IsZero() {
		c.DispositionDate = other.DispositionDate
	}
	c.Charges = ReduceMerge(append(c.Charges, other.Charges...))
	for _, related := range other.RelatedCases {
		if !containsString(c.RelatedCases, related) {
			c.RelatedCases = append(c.RelatedCases, related)
		}
	}
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// SortCasesByLastAction orders cases from oldest to newest last action.
// Cases with no known last action sort first.
func SortCasesByLastAction(cases []Case) {
	sort.SliceStable(cases, func(i, j int) bool {
		return cases[i].LastAction().Before(cases[j].LastAction())
	})
}
