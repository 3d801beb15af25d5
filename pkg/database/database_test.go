package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arnavshah/troop-swap-api-go/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(Options{DataPath: filepath.Join(t.TempDir(), "swap.db"), Silent: true})
	require.NoError(t, err)
	return db
}

func TestRosterStore(t *testing.T) {
	ctx := context.Background()
	s := &RosterStore{DB: openTestDB(t)}

	require.NoError(t, s.Upsert(ctx, models.PlayerEntry{Username: "Ragnar", Group: models.GroupOnline, SendCount: 5, Strength: 100}))
	require.NoError(t, s.Upsert(ctx, models.PlayerEntry{Username: "Bjorn", Group: models.GroupOffline, SendCount: 4}))

	roster, err := s.Roster(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.PlayerEntry{
		{Username: "Ragnar", Group: models.GroupOnline, SendCount: 5, Strength: 100},
		{Username: "Bjorn", Group: models.GroupOffline, SendCount: 4},
	}, roster)

	t.Run("update moves entry to the end", func(t *testing.T) {
		require.NoError(t, s.Upsert(ctx, models.PlayerEntry{Username: "Ragnar", Group: models.GroupOffline, SendCount: 6, Strength: 200}))

		roster, err := s.Roster(ctx)
		require.NoError(t, err)
		require.Len(t, roster, 2)
		assert.Equal(t, "Bjorn", roster[0].Username)
		assert.Equal(t, models.PlayerEntry{Username: "Ragnar", Group: models.GroupOffline, SendCount: 6, Strength: 200}, roster[1])
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, s.Remove(ctx, "Bjorn"))
		assert.ErrorIs(t, s.Remove(ctx, "Bjorn"), ErrNotFound)

		roster, err := s.Roster(ctx)
		require.NoError(t, err)
		assert.Len(t, roster, 1)
	})
}

func TestOrderStore_ReplaceOrders(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := &OrderStore{DB: db}

	first := []models.Assignment{
		{From: "a", FromGroup: models.GroupOnline, To: "b", ToGroup: "Online", Pass: 1},
		{From: "b", FromGroup: models.GroupOnline, To: "a", ToGroup: "Online", Pass: 1},
	}
	require.NoError(t, s.ReplaceOrders(ctx, "run-1", 2, first))

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, orders)

	second := []models.Assignment{
		models.Unmatched(models.PlayerEntry{Username: "c", Group: models.GroupOffline}),
	}
	require.NoError(t, s.ReplaceOrders(ctx, "run-2", 3, second))

	orders, err = s.Orders(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, orders)

	runs, err := s.Runs(ctx, 30)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].RunID)
	assert.Equal(t, 1, runs[0].Unmatched)
	assert.Equal(t, 3, runs[0].Players)

	latest, err := s.LatestRun(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "run-2", latest.RunID)
}

func TestOrderStore_FailedReplaceKeepsPreviousOrders(t *testing.T) {
	ctx := context.Background()
	s := &OrderStore{DB: openTestDB(t)}

	kept := []models.Assignment{{From: "a", FromGroup: models.GroupOnline, To: "b", ToGroup: "Online", Pass: 1}}
	require.NoError(t, s.ReplaceOrders(ctx, "run-1", 2, kept))

	// a duplicate run ID fails the final insert and rolls the whole replace back
	err := s.ReplaceOrders(ctx, "run-1", 2, []models.Assignment{
		{From: "x", FromGroup: models.GroupOffline, To: "y", ToGroup: "Offline", Pass: 1},
	})
	require.Error(t, err)

	orders, err := s.Orders(ctx)
	require.NoError(t, err)
	assert.Equal(t, kept, orders)
}

func TestOrderStore_NoRuns(t *testing.T) {
	s := &OrderStore{DB: openTestDB(t)}

	latest, err := s.LatestRun(context.Background())
	require.NoError(t, err)
	assert.Nil(t, latest)
}

func TestRosterStore_Reset(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	roster := &RosterStore{DB: db}
	orders := &OrderStore{DB: db}

	require.NoError(t, roster.Upsert(ctx, models.PlayerEntry{Username: "a", Group: models.GroupOnline, SendCount: 4}))
	require.NoError(t, orders.ReplaceOrders(ctx, "run-1", 1, []models.Assignment{
		models.Unmatched(models.PlayerEntry{Username: "a", Group: models.GroupOnline}),
	}))

	require.NoError(t, roster.Reset(ctx))

	entries, err := roster.Roster(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	published, err := orders.Orders(ctx)
	require.NoError(t, err)
	assert.Empty(t, published)
}
