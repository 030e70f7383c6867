package petition

import (
	"archive/zip"
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/internal/crecord"
)

func samplePetition() Petition {
	p := NewExpungement(
		crecord.Person{FirstName: "Jane", LastName: "Smith"},
		[]crecord.Case{{
			DocketNumber: "CP-51-CR-0000001-2015",
			Charges: []crecord.Charge{
				{Sequence: "1", Offense: "Theft", Grade: "M1", Disposition: "Nolle Prossed"},
			},
		}},
		PartialExpungement,
		"The charges were nolle prossed.",
	)
	p.Attorney = crecord.Attorney{
		Organization: "Community Legal Services",
		FullName:     "Sam Jones",
		BarID:        "123456",
	}
	return p
}

func TestRender(t *testing.T) {
	tmpl := DocumentTemplate{
		Name: "test",
		Kind: KindExpungement,
		Body: "Petition of {{ .Client.FullName }} by {{ .Attorney.FullName }} on {{ .Date }}: {{ range .Cases }}{{ .DocketNumber }}{{ end }}",
	}

	body, err := Render(tmpl, samplePetition(), time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "Petition of Jane Smith by Sam Jones on June 1, 2020: CP-51-CR-0000001-2015", string(body))
}

func TestRenderBadTemplate(t *testing.T) {
	tmpl := DocumentTemplate{Name: "broken", Body: "{{ .Client.FullName"}
	_, err := Render(tmpl, samplePetition(), time.Now())
	assert.Error(t, err)
}

func TestRenderUnknownField(t *testing.T) {
	tmpl := DocumentTemplate{Name: "bad-field", Body: "{{ .Client.NoSuchField }}"}
	_, err := Render(tmpl, samplePetition(), time.Now())
	assert.Error(t, err)
}

func TestFileName(t *testing.T) {
	p := samplePetition()
	assert.Equal(t, "Expungement_CP-51-CR-0000001-2015.docx", p.FileName())

	p.Cases = nil
	assert.Equal(t, "Expungement_NoDocket.docx", p.FileName())
}

func TestProcedure(t *testing.T) {
	summaryOnly := []crecord.Case{{Charges: []crecord.Charge{{Grade: "S"}}}}
	assert.Equal(t, SummaryProcedure, NewExpungement(crecord.Person{}, summaryOnly, FullExpungement, "").Procedure)

	mixed := []crecord.Case{{Charges: []crecord.Charge{{Grade: "S"}, {Grade: "M1"}}}}
	assert.Equal(t, NonsummaryProcedure, NewExpungement(crecord.Person{}, mixed, FullExpungement, "").Procedure)
}

func TestPackageName(t *testing.T) {
	assert.Equal(t, "ExpungementsForSmith.zip", PackageName(crecord.Person{LastName: "Smith"}))
	assert.Equal(t, "ExpungementsForVanDyke.zip", PackageName(crecord.Person{LastName: "Van Dyke"}))
	assert.Equal(t, "ExpungementsForClient.zip", PackageName(crecord.Person{}))
}

func TestPackage(t *testing.T) {
	archive, err := Package([]Document{
		{Name: "Expungement_CP-51-CR-0000001-2015.docx", Body: []byte("first")},
		{Name: "Expungement_CP-51-CR-0000001-2015.docx", Body: []byte("second")},
		{Name: "Sealing_CP-51-CR-0000002-2010.docx", Body: []byte("third")},
	})
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	require.Len(t, reader.File, 3)

	names := make([]string, 0, 3)
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "Expungement_CP-51-CR-0000001-2015.docx")
	assert.Contains(t, names, "Expungement_CP-51-CR-0000001-2015_1.docx")
	assert.Contains(t, names, "Sealing_CP-51-CR-0000002-2010.docx")
}
