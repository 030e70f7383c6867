package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanslate/internal/sourcerecord"
	id "cleanslate/pkg/domain"
	"cleanslate/pkg/platform/sentinel"
)

func newRecord(owner id.UserID, createdAt time.Time) sourcerecord.SourceRecord {
	record := sourcerecord.SourceRecord{
		ID:          id.NewSourceRecordID(),
		Caption:     "Comm. v. Smith",
		Court:       sourcerecord.CourtCP,
		RecordType:  sourcerecord.DocketPDF,
		FetchStatus: sourcerecord.NotFetched,
		ParseStatus: sourcerecord.ParseUnknown,
		Owner:       owner,
		CreatedAt:   createdAt,
	}
	record.FileKey = "sourcerecords/" + record.ID.String() + ".pdf"
	return record
}

func TestMemoryStoreCRUD(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	owner := id.NewUserID()

	record := newRecord(owner, time.Now())
	require.NoError(t, s.Create(ctx, record))
	require.ErrorIs(t, s.Create(ctx, record), sentinel.ErrAlreadyUsed)

	got, err := s.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record, got)

	record.FetchStatus = sourcerecord.Fetched
	require.NoError(t, s.Update(ctx, record))
	got, err = s.Get(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, sourcerecord.Fetched, got.FetchStatus)

	_, err = s.Get(ctx, id.NewSourceRecordID())
	require.ErrorIs(t, err, sentinel.ErrNotFound)

	missing := newRecord(owner, time.Now())
	require.ErrorIs(t, s.Update(ctx, missing), sentinel.ErrNotFound)
}

func TestMemoryStoreListByOwner(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	owner := id.NewUserID()
	base := time.Date(2020, 6, 1, 12, 0, 0, 0, time.UTC)

	second := newRecord(owner, base.Add(time.Hour))
	first := newRecord(owner, base)
	other := newRecord(id.NewUserID(), base)

	require.NoError(t, s.Create(ctx, second))
	require.NoError(t, s.Create(ctx, first))
	require.NoError(t, s.Create(ctx, other))

	records, err := s.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
}

func TestMemoryFiles(t *testing.T) {
	f := NewMemoryFiles()
	ctx := context.Background()

	require.NoError(t, f.Save(ctx, "sourcerecords/a.pdf", []byte("%PDF")))

	data, err := f.Load(ctx, "sourcerecords/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	// Mutating the returned slice must not touch the stored copy.
	data[0] = 'x'
	again, err := f.Load(ctx, "sourcerecords/a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(again))

	_, err = f.Load(ctx, "sourcerecords/missing.pdf")
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}
