// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdword/pkg/types"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{
		Enabled: true,
		Path:    filepath.Join(t.TempDir(), "ledger", "history.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s, err := NewStore(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, types.ConversionRecord{
		InputPath: "a.md", OutputPath: "a.docx", Format: types.FormatDOCX, Status: types.ConversionDone,
	}))
	require.NoError(t, s.Close())

	s, err = NewStore(types.HistoryConfig{Path: path})
	require.NoError(t, err)
	defer s.Close()

	records, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestRecord_RoundTrip(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	at := time.Date(2025, 12, 23, 8, 0, 0, 0, time.UTC)

	want := types.ConversionRecord{
		InputPath:   "articles/review.md",
		OutputPath:  "articles/review.docx",
		Format:      types.FormatDOCX,
		Status:      types.ConversionDone,
		Digest:      "abc123",
		Counts:      types.ElementCounts{Headings: 3, Paragraphs: 10, CodeBlocks: 2},
		ConvertedAt: at,
	}
	require.NoError(t, s.Record(ctx, want))

	got, err := s.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = uuid.Parse(got[0].ID)
	assert.NoError(t, err, "generated ID should be a UUID")
	want.ID = got[0].ID
	assert.Equal(t, want, got[0])
}

func TestList_NewestFirstWithLimit(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	base := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"one.md", "two.md", "three.md"} {
		require.NoError(t, s.Record(ctx, types.ConversionRecord{
			InputPath:   name,
			OutputPath:  name + ".rtf",
			Format:      types.FormatRTF,
			Status:      types.ConversionFailed,
			Error:       "missing input: " + name,
			ConvertedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	got, err := s.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "three.md", got[0].InputPath)
	assert.Equal(t, "two.md", got[1].InputPath)
	assert.Equal(t, "missing input: three.md", got[0].Error)
}

func TestRecord_DefaultsTime(t *testing.T) {
	s := openStore(t)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	require.NoError(t, s.Record(context.Background(), types.ConversionRecord{
		ID: "fixed-id", InputPath: "x.md", OutputPath: "x.docx",
		Format: types.FormatDOCX, Status: types.ConversionSkipped,
	}))

	got, err := s.List(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fixed-id", got[0].ID)
	assert.True(t, fixed.Equal(got[0].ConvertedAt))
}

func TestRecord_DuplicateID(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	rec := types.ConversionRecord{ID: "dup", InputPath: "a.md", OutputPath: "a.docx", Format: types.FormatDOCX, Status: types.ConversionDone}

	require.NoError(t, s.Record(ctx, rec))
	assert.Error(t, s.Record(ctx, rec))
}
