package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"ai-receptionist/internal/domain/entities"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteRecordStore {
	t.Helper()
	store, err := OpenSQLiteRecordStore(filepath.Join(t.TempDir(), "call_logs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteRecordStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := entities.CallRecord{
		CallSID:    "CA1234",
		FromNumber: "+15551234567",
		StartTime:  time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2025, 6, 1, 14, 3, 25, 0, time.UTC),
		Transcript: `[{"speaker":"Caller","message":"What are your hours?"}]`,
		Summary:    "Caller asked about business hours.",
	}
	require.NoError(t, store.Save(ctx, record))

	got, err := store.FindByCallSID(ctx, "CA1234")
	require.NoError(t, err)
	require.Equal(t, record.FromNumber, got.FromNumber)
	require.Equal(t, record.Transcript, got.Transcript)
	require.Equal(t, record.Summary, got.Summary)
	require.True(t, record.StartTime.Equal(got.StartTime))
	require.True(t, record.EndTime.Equal(got.EndTime))
}

func TestSQLiteRecordStoreOverwritesByCallSID(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	record := entities.CallRecord{
		CallSID:    "CA5678",
		FromNumber: "+15550000000",
		StartTime:  time.Now().UTC(),
		EndTime:    time.Now().UTC(),
		Summary:    "first",
	}
	require.NoError(t, store.Save(ctx, record))

	record.Summary = "second"
	require.NoError(t, store.Save(ctx, record))

	got, err := store.FindByCallSID(ctx, "CA5678")
	require.NoError(t, err)
	require.Equal(t, "second", got.Summary)

	var count int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM call_logs WHERE call_sid = ?`, "CA5678").Scan(&count))
	require.Equal(t, 1, count)
}

func TestSQLiteRecordStoreFindAll(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, sid := range []string{"CA1", "CA2"} {
		require.NoError(t, store.Save(ctx, entities.CallRecord{
			CallSID:   sid,
			StartTime: time.Now().UTC(),
			EndTime:   time.Now().UTC(),
		}))
	}

	records, err := store.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
}
