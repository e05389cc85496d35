package store

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndexed(t *testing.T, path string) *IndexedStore {
	t.Helper()
	s, err := NewIndexedStore(NewCSVStore(path))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestIndexedStore_BehavesLikeCSVStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votes.csv")
	s := newIndexed(t, path)
	ctx := context.Background()

	found, err := s.Contains(ctx, "42")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Append(ctx, Record{Identifier: "42", Candidate: "Eminem"}))

	found, err = s.Contains(ctx, "42")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = s.Contains(ctx, "43")
	require.NoError(t, err)
	assert.False(t, found)

	recs, err := NewCSVStore(path).Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Record{{Identifier: "42", Candidate: "Eminem"}}, recs)
}

func TestIndexedStore_LoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votes.csv")
	require.NoError(t, os.WriteFile(path, []byte("5,Eminem\r\n6,Morgan Wallen\r\n"), 0644))

	s := newIndexed(t, path)
	found, err := s.Contains(context.Background(), "6")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestIndexedStore_SeesExternalAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votes.csv")
	s := newIndexed(t, path)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, Record{Identifier: "1", Candidate: "Eminem"}))
	found, err := s.Contains(ctx, "2")
	require.NoError(t, err)
	require.False(t, found)

	// Another process appends behind our back; the very next check must see it.
	other := NewCSVStore(path)
	require.NoError(t, other.Append(ctx, Record{Identifier: "2", Candidate: "Taylor Swift"}))

	found, err = s.Contains(ctx, "2")
	require.NoError(t, err)
	assert.True(t, found)
}

func TestIndexedStore_ExternalAppendsVisibleImmediately(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votes.csv")
	s := newIndexed(t, path)
	other := NewCSVStore(path)
	ctx := context.Background()

	for i := 0; i < 200; i++ {
		id := strconv.Itoa(i + 1)

		// Load or refresh the index before the other writer runs.
		_, err := s.Contains(ctx, "x")
		require.NoError(t, err)

		require.NoError(t, other.Append(ctx, Record{Identifier: id, Candidate: "Eminem"}))

		found, err := s.Contains(ctx, id)
		require.NoError(t, err)
		require.True(t, found, "identifier %s written by another store was missed", id)
	}
}

func TestIndexedStore_SeesRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "votes.csv")
	s := newIndexed(t, path)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, Record{Identifier: "1", Candidate: "Eminem"}))
	require.NoError(t, os.Remove(path))

	assert.Eventually(t, func() bool {
		found, err := s.Contains(ctx, "1")
		return err == nil && !found
	}, 2*time.Second, 20*time.Millisecond)
}

func TestIndexedStore_CloseIsIdempotent(t *testing.T) {
	s, err := NewIndexedStore(NewCSVStore(filepath.Join(t.TempDir(), "votes.csv")))
	require.NoError(t, err)

	assert.NoError(t, s.Close())
	assert.NoError(t, s.Close())
}
