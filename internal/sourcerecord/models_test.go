package sourcerecord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     FileInfo
		ok       bool
	}{
		{
			name:     "cp docket sheet",
			filename: "CP-51-CR-0000100-2015_docket_sheet.pdf",
			want:     FileInfo{RecordType: DocketPDF, Court: CourtCP},
			ok:       true,
		},
		{
			name:     "md summary",
			filename: "MD_court_summary.pdf",
			want:     FileInfo{RecordType: SummaryPDF, Court: CourtMDJ},
			ok:       true,
		},
		{
			name:     "summary without court",
			filename: "my_summary.pdf",
			want:     FileInfo{RecordType: SummaryPDF},
			ok:       true,
		},
		{
			name:     "not a pdf",
			filename: "CP-51-CR-0000100-2015_docket_sheet.txt",
			ok:       false,
		},
		{
			name:     "nothing recognizable",
			filename: "vacation_photos.pdf",
			ok:       false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := ClassifyFilename(tt.filename)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, info)
		})
	}
}
