// Package ujs searches Pennsylvania's Unified Judicial System public case
// search for a person's dockets.
package ujs

// Court identifies which court system a search runs against.
type Court string

const (
	CourtCP  Court = "CP"
	CourtMDJ Court = "MDJ"
)

// Courts lists every searchable court system.
var Courts = []Court{CourtCP, CourtMDJ}

// Docket is one search hit: a case and the urls of its sheets.
type Docket struct {
	Caption        string `json:"caption"`
	CaseStatus     string `json:"case_status"`
	DOB            string `json:"dob"`
	DocketNumber   string `json:"docket_number"`
	DocketSheetURL string `json:"docket_sheet_url"`
	OTN            string `json:"otn"`
	SummaryURL     string `json:"summary_url"`
}

// CourtResults is one court's answer to a search.
type CourtResults struct {
	Dockets []Docket `json:"dockets"`
	Msg     string   `json:"msg"`
}

// SearchResults maps each court to its results.
type SearchResults map[Court]CourtResults
