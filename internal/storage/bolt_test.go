package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaladaranC/TutorTrack/internal/models"
)

func newTestBoltStore(t *testing.T) *BoltStore {
	t.Helper()

	store, err := NewBoltStore(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func boltSession(id, student string) models.Session {
	return models.Session{
		ID:              id,
		StudentName:     student,
		Subject:         "Math",
		StartTime:       time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC),
		DurationMinutes: 60,
		Rate:            45,
		Status:          models.StatusScheduled,
		CreatedAt:       time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestBoltStoreEmptyListIsValid(t *testing.T) {
	store := newTestBoltStore(t)

	sessions, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestBoltStoreCreatePreservesInsertionOrder(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, boltSession("id-1", "Alice"))
	require.NoError(t, err)
	sessions, err := store.Create(ctx, boltSession("id-2", "Bob"))
	require.NoError(t, err)

	require.Len(t, sessions, 2)
	assert.Equal(t, "id-1", sessions[0].ID)
	assert.Equal(t, "id-2", sessions[1].ID)
}

func TestBoltStoreCreateRejectsDuplicateID(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, boltSession("id-1", "Alice"))
	require.NoError(t, err)

	_, err = store.Create(ctx, boltSession("id-1", "Bob"))
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestBoltStoreUpdateReplacesWholeRecord(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, boltSession("id-1", "Alice"))
	require.NoError(t, err)

	updated := boltSession("id-1", "Alice")
	updated.Status = models.StatusCompleted
	updated.Rate = 55

	sessions, err := store.Update(ctx, updated)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, models.StatusCompleted, sessions[0].Status)
	assert.Equal(t, 55.0, sessions[0].Rate)
}

func TestBoltStoreUpdateUnknownIDIsNoOp(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, boltSession("id-1", "Alice"))
	require.NoError(t, err)

	sessions, err := store.Update(ctx, boltSession("missing", "Ghost"))
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "id-1", sessions[0].ID)
	assert.Equal(t, "Alice", sessions[0].StudentName)
}

func TestBoltStoreDeleteRemovesMatchingRecord(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, boltSession("id-1", "Alice"))
	require.NoError(t, err)
	_, err = store.Create(ctx, boltSession("id-2", "Bob"))
	require.NoError(t, err)

	sessions, err := store.Delete(ctx, "id-1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "id-2", sessions[0].ID)
}

func TestBoltStoreDeleteUnknownIDIsNoOp(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	_, err := store.Create(ctx, boltSession("id-1", "Alice"))
	require.NoError(t, err)

	sessions, err := store.Delete(ctx, "missing")
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestBoltStoreRoundTripsNotesAndTimes(t *testing.T) {
	store := newTestBoltStore(t)
	ctx := context.Background()

	notes := "bring past papers"
	session := boltSession("id-1", "Alice")
	session.Notes = &notes

	sessions, err := store.Create(ctx, session)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].Notes)
	assert.Equal(t, notes, *sessions[0].Notes)
	assert.True(t, sessions[0].StartTime.Equal(session.StartTime))
	assert.True(t, sessions[0].CreatedAt.Equal(session.CreatedAt))
}
