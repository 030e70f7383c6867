package fetch

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/h2non/gock.v1"

	dErrors "cleanslate/pkg/domain-errors"
)

func TestDownload(t *testing.T) {
	defer gock.Off()

	gock.New("https://ujsportal.pacourts.us").
		Get("/docketsheet/CP-51-CR-0000100-2015.pdf").
		MatchHeader("User-Agent", "CleanSlateRecordScreening/1.0").
		Reply(200).
		BodyString("%PDF-1.4 docket sheet")

	client := &http.Client{}
	gock.InterceptClient(client)

	body, err := New(client).Download(context.Background(),
		"https://ujsportal.pacourts.us/docketsheet/CP-51-CR-0000100-2015.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 docket sheet", string(body))
	assert.True(t, gock.IsDone())
}

func TestDownloadNotFound(t *testing.T) {
	defer gock.Off()

	gock.New("https://ujsportal.pacourts.us").
		Get("/docketsheet/missing.pdf").
		Reply(404)

	client := &http.Client{}
	gock.InterceptClient(client)

	_, err := New(client).Download(context.Background(),
		"https://ujsportal.pacourts.us/docketsheet/missing.pdf")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}
