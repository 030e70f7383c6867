// Package sourcerecord manages the court documents that carry information
// about a person's criminal record, such as summary sheets and docket sheets
// downloaded from the UJS portal or uploaded by a user.
package sourcerecord

import (
	"regexp"
	"time"

	id "cleanslate/pkg/domain"
)

// Court is the court system a document came from.
type Court string

const (
	CourtCP  Court = "CP"
	CourtMDJ Court = "MDJ"
)

// RecordType is the kind of document a source record points at.
type RecordType string

const (
	SummaryPDF RecordType = "SUMMARY_PDF"
	DocketPDF  RecordType = "DOCKET_PDF"
)

// FetchStatus tracks whether a document has been downloaded yet.
type FetchStatus string

const (
	NotFetched  FetchStatus = "NOT_FETCHED"
	Fetching    FetchStatus = "FETCHING"
	Fetched     FetchStatus = "FETCHED"
	FetchFailed FetchStatus = "FETCH_FAILED"
)

// ParseStatus tracks whether a document could be parsed.
type ParseStatus string

const (
	ParseUnknown ParseStatus = "UNKNOWN"
	ParseSuccess ParseStatus = "SUCCESSFULLY_PARSED"
	ParseFailed  ParseStatus = "PARSE_FAILED"
)

// SourceRecord describes one document about a person's record.
type SourceRecord struct {
	ID           id.SourceRecordID `json:"id"`
	Caption      string            `json:"caption"`
	DocketNumber string            `json:"docket_num"`
	Court        Court             `json:"court"`
	URL          string            `json:"url"`
	RecordType   RecordType        `json:"record_type"`
	FetchStatus  FetchStatus       `json:"fetch_status"`
	ParseStatus  ParseStatus       `json:"parse_status"`
	FileKey      string            `json:"-"`
	Owner        id.UserID         `json:"-"`
	CreatedAt    time.Time         `json:"created_at"`
}

// FileInfo is what a filename alone tells us about an uploaded document.
type FileInfo struct {
	RecordType RecordType
	Court      Court
}

var (
	pdfPattern     = regexp.MustCompile(`(?i)pdf$`)
	summaryPattern = regexp.MustCompile(`(?i)summary`)
	docketPattern  = regexp.MustCompile(`(?i)docket`)
	cpPattern      = regexp.MustCompile(`CP`)
	mdPattern      = regexp.MustCompile(`MD`)
)

// ClassifyFilename guesses the record type and court of an uploaded file
// from its name. The second return is false when the name tells us nothing.
func ClassifyFilename(filename string) (FileInfo, bool) {
	if !pdfPattern.MatchString(filename) {
		return FileInfo{}, false
	}
	var info FileInfo
	switch {
	case summaryPattern.MatchString(filename):
		info.RecordType = SummaryPDF
	case docketPattern.MatchString(filename):
		info.RecordType = DocketPDF
	}
	switch {
	case cpPattern.MatchString(filename):
		info.Court = CourtCP
	case mdPattern.MatchString(filename):
		info.Court = CourtMDJ
	}
	if info.RecordType == "" && info.Court == "" {
		return FileInfo{}, false
	}
	return info, true
}
