package service

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/internal/crecord"
	"cleanslate/internal/petition"
	"cleanslate/internal/petition/store"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/requestcontext"
)

func newTestService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	templates := store.NewMemoryStore()
	return New(templates, slog.New(slog.NewTextHandler(io.Discard, nil)), nil), templates
}

func testPetitions() []petition.Petition {
	return []petition.Petition{
		petition.NewExpungement(
			crecord.Person{FirstName: "Jane", LastName: "Smith"},
			[]crecord.Case{{
				DocketNumber: "CP-51-CR-0000001-2015",
				Charges:      []crecord.Charge{{Sequence: "1", Offense: "Theft", Disposition: "Nolle Prossed"}},
			}},
			petition.PartialExpungement,
			"",
		),
	}
}

func TestRenderPackage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := requestcontext.WithTime(context.Background(), time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC))

	// Seeds the built-in defaults.
	_, _, err := svc.DefaultTemplateIDs(ctx)
	require.NoError(t, err)

	attorney := crecord.Attorney{Organization: "Community Legal Services", FullName: "Sam Jones", BarID: "123456"}
	name, archive, err := svc.RenderPackage(ctx, attorney, testPetitions(), TemplateSelection{})
	require.NoError(t, err)
	assert.Equal(t, "ExpungementsForSmith.zip", name)

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	require.Len(t, reader.File, 1)
	assert.Equal(t, "Expungement_CP-51-CR-0000001-2015.docx", reader.File[0].Name)

	f, err := reader.File[0].Open()
	require.NoError(t, err)
	defer f.Close()
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Jane Smith")
	assert.Contains(t, string(body), "Sam Jones")
	assert.Contains(t, string(body), "June 1, 2020")
}

func TestRenderPackageNoPetitions(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.RenderPackage(context.Background(), crecord.Attorney{}, nil, TemplateSelection{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestRenderPackageMissingDefault(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.RenderPackage(context.Background(), crecord.Attorney{}, testPetitions(), TemplateSelection{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestRenderPackageSelectedTemplate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tmpl, err := svc.CreateTemplate(ctx, "custom", petition.KindExpungement, "Custom for {{ .Client.FullName }}", false)
	require.NoError(t, err)

	_, archive, err := svc.RenderPackage(ctx, crecord.Attorney{}, testPetitions(), TemplateSelection{Expungement: tmpl.ID})
	require.NoError(t, err)

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)
	f, err := reader.File[0].Open()
	require.NoError(t, err)
	defer f.Close()
	body, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "Custom for Jane Smith", string(body))
}

func TestRenderPackageKindMismatch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tmpl, err := svc.CreateTemplate(ctx, "sealing-only", petition.KindSealing, "body", false)
	require.NoError(t, err)

	_, _, err = svc.RenderPackage(ctx, crecord.Attorney{}, testPetitions(), TemplateSelection{Expungement: tmpl.ID})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestDefaultTemplateIDsStable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	exp1, seal1, err := svc.DefaultTemplateIDs(ctx)
	require.NoError(t, err)
	exp2, seal2, err := svc.DefaultTemplateIDs(ctx)
	require.NoError(t, err)

	assert.Equal(t, exp1, exp2)
	assert.Equal(t, seal1, seal2)
	assert.NotEqual(t, exp1, seal1)
}

func TestCreateTemplateReplacesDefault(t *testing.T) {
	svc, templates := newTestService(t)
	ctx := context.Background()

	first, err := svc.CreateTemplate(ctx, "first", petition.KindExpungement, "body one", true)
	require.NoError(t, err)
	second, err := svc.CreateTemplate(ctx, "second", petition.KindExpungement, "body two", true)
	require.NoError(t, err)

	current, err := templates.DefaultTemplate(ctx, petition.KindExpungement)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	previous, err := templates.GetTemplate(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, previous.Default)
}

func TestListTemplatesDefaultsFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTemplate(ctx, "alpha", petition.KindSealing, "body", false)
	require.NoError(t, err)
	preferred, err := svc.CreateTemplate(ctx, "zeta", petition.KindSealing, "body", true)
	require.NoError(t, err)

	listed, err := svc.ListTemplates(ctx, petition.KindSealing)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, preferred.ID, listed[0].ID)
}
