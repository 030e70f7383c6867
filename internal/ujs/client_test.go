package ujs

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"

	dErrors "cleanslate/pkg/domain-errors"
)

func newTestClient() *Client {
	httpClient := &http.Client{}
	gock.InterceptClient(httpClient)
	return NewClient(httpClient, "https://search.example.com")
}

func TestSearchName(t *testing.T) {
	defer gock.Off()

	gock.New("https://search.example.com").
		Post("/searchName/CP").
		JSON(map[string]string{"first_name": "Jane", "last_name": "Smith"}).
		Reply(200).
		JSON(map[string]any{
			"status": "Success",
			"dockets": []map[string]string{{
				"caption":          "Comm. v. Smith, Jane",
				"case_status":      "Closed",
				"dob":              "4/15/1980",
				"docket_number":    "CP-51-CR-0000100-2015",
				"docket_sheet_url": "https://ujsportal.pacourts.us/docket.pdf",
				"otn":              "T 123456-1",
				"summary_url":      "https://ujsportal.pacourts.us/summary.pdf",
			}},
		})

	results, err := newTestClient().SearchName(context.Background(), CourtCP, "Jane", "Smith", "")
	require.NoError(t, err)

	assert.Equal(t, "Success", results.Msg)
	require.Len(t, results.Dockets, 1)
	assert.Equal(t, "CP-51-CR-0000100-2015", results.Dockets[0].DocketNumber)
	assert.Equal(t, "Comm. v. Smith, Jane", results.Dockets[0].Caption)
	assert.True(t, gock.IsDone())
}

func TestSearchNameAllCourts(t *testing.T) {
	defer gock.Off()

	gock.New("https://search.example.com").
		Post("/searchName/CP").
		Reply(200).
		JSON(map[string]any{
			"status": "Success",
			"dockets": []map[string]string{
				{"docket_number": "CP-51-CR-0000100-2015"},
			},
		})
	gock.New("https://search.example.com").
		Post("/searchName/MDJ").
		Reply(200).
		JSON(map[string]any{"status": "Search completed. No dockets found.", "dockets": []any{}})

	results, err := newTestClient().SearchNameAllCourts(context.Background(), "Jane", "Smith", "1980-04-15")
	require.NoError(t, err)

	require.Contains(t, results, CourtCP)
	require.Contains(t, results, CourtMDJ)
	assert.Len(t, results[CourtCP].Dockets, 1)
	assert.Empty(t, results[CourtMDJ].Dockets)
	assert.True(t, gock.IsDone())
}

func TestSearchNameAllCourtsOneCourtDown(t *testing.T) {
	defer gock.Off()

	gock.New("https://search.example.com").
		Post("/searchName/CP").
		Reply(200).
		JSON(map[string]any{
			"status": "Success",
			"dockets": []map[string]string{
				{"docket_number": "CP-51-CR-0000100-2015"},
			},
		})
	gock.New("https://search.example.com").
		Post("/searchName/MDJ").
		Reply(500)

	results, err := newTestClient().SearchNameAllCourts(context.Background(), "Jane", "Smith", "")
	require.NoError(t, err)

	assert.Len(t, results[CourtCP].Dockets, 1)
	assert.Empty(t, results[CourtMDJ].Dockets)
	assert.Contains(t, results[CourtMDJ].Msg, "status 500")
}

func TestSearchDocket(t *testing.T) {
	defer gock.Off()

	gock.New("https://search.example.com").
		Post("/lookupDocket/CP").
		JSON(map[string]string{"docket_number": "CP-51-CR-0000100-2015"}).
		Reply(200).
		JSON(map[string]any{
			"status": "Success",
			"dockets": []map[string]string{
				{"docket_number": "CP-51-CR-0000100-2015", "case_status": "Closed"},
			},
		})

	results, err := newTestClient().SearchDocket(context.Background(), CourtCP, "CP-51-CR-0000100-2015")
	require.NoError(t, err)
	require.Len(t, results.Dockets, 1)
	assert.Equal(t, "Closed", results.Dockets[0].CaseStatus)
}

func TestSearchDocketUnavailable(t *testing.T) {
	defer gock.Off()

	gock.New("https://search.example.com").
		Post("/lookupDocket/CP").
		Reply(502)

	_, err := newTestClient().SearchDocket(context.Background(), CourtCP, "CP-51-CR-0000100-2015")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}
