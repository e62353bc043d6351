package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreStats(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	require.NoError(t, store.RecordVisit(ctx, "aaaa", "ua", "/", now.Add(-time.Hour)))
	require.NoError(t, store.RecordVisit(ctx, "aaaa", "ua", "/", now.Add(-2*time.Hour)))
	require.NoError(t, store.RecordVisit(ctx, "bbbb", "ua", "/", now.AddDate(0, 0, -3)))
	require.NoError(t, store.RecordVisit(ctx, "cccc", "ua", "/", now.AddDate(0, -2, 0)))

	require.NoError(t, store.RecordMessage(ctx, MessageRecord{
		ID: "m1", Name: "Ada", Email: "ada@example.com", Recipient: "me@example.com",
		Provider: "fake", Delivered: true, CreatedAt: now.Add(-time.Minute),
	}))
	require.NoError(t, store.RecordMessage(ctx, MessageRecord{
		ID: "m2", Name: "Bob", Email: "bob@example.com", Recipient: "me@example.com",
		Provider: "fake", Error: "boom", CreatedAt: now,
	}))

	stats, err := store.Stats(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalVisitors)
	assert.Equal(t, int64(3), stats.UniqueVisitors)
	assert.Equal(t, int64(2), stats.VisitorsToday)
	assert.Equal(t, int64(3), stats.VisitorsThisWeek)
	assert.Equal(t, int64(2), stats.TotalMessages)
	assert.Equal(t, int64(1), stats.FailedMessages)

	require.Len(t, stats.RecentMessages, 2)
	assert.Equal(t, "m2", stats.RecentMessages[0].ID)
	assert.Equal(t, "boom", stats.RecentMessages[0].Error)
	assert.True(t, stats.RecentMessages[1].Delivered)
	assert.True(t, stats.RecentMessages[1].CreatedAt.Equal(now.Add(-time.Minute)))

	require.Len(t, stats.RecentVisitors, 4)
	assert.Equal(t, "aaaa", stats.RecentVisitors[0].HashedIP)
}

func TestStoreCleanupVisitors(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	now := time.Now()

	require.NoError(t, store.RecordVisit(ctx, "old", "ua", "/", now.AddDate(0, -13, 0)))
	require.NoError(t, store.RecordVisit(ctx, "new", "ua", "/", now.AddDate(0, -1, 0)))

	n, err := store.CleanupVisitors(ctx, now.AddDate(0, -12, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	visitors, err := store.RecentVisitors(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visitors, 1)
	assert.Equal(t, "new", visitors[0].HashedIP)
}
