package repository

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"plate-service/internal/config"
	"plate-service/internal/db"
	"plate-service/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Environment: "test",
		DB: config.DBConfig{
			Driver: config.DriverSQLite,
			DSN:    filepath.Join(t.TempDir(), "plates.db"),
		},
	}
	database, err := db.New(cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	return database
}

func sampleEntries() []model.PlateEntry {
	return []model.PlateEntry{
		{
			Position: 0,
			Key:      "ABC123",
			Plate:    "ABC-123",
			Rows: []model.PlateRow{
				{Line: 2, Fields: []model.Field{{Name: "Plate", Value: "ABC-123"}, {Name: "Color", Value: "red"}}},
				{Line: 4, Fields: []model.Field{{Name: "Plate", Value: "abc123"}, {Name: "Color", Value: "blue"}}},
			},
		},
		{
			Position: 1,
			Key:      "Q0Q8B8",
			Plate:    "Q0Q-8B8",
			Rows:     []model.PlateRow{{Line: 3, Fields: []model.Field{{Name: "Plate", Value: "Q0Q-8B8"}}}},
		},
	}
}

func TestPlateRepository_ReplaceAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewPlateRepository(newTestDB(t))

	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	loadedAt := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	collection := &model.PlateCollection{Source: "paste", LoadedAt: loadedAt, SavedAt: loadedAt}
	entries := sampleEntries()
	require.NoError(t, repo.Replace(ctx, collection, entries))
	require.NotEqual(t, uuid.Nil, collection.ID)

	latest, err = repo.GetLatest(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, collection.ID, latest.ID)
	assert.Equal(t, "paste", latest.Source)
	assert.True(t, latest.LoadedAt.Equal(loadedAt))

	stored, err := repo.ListEntries(ctx, latest.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "ABC123", stored[0].Key)
	assert.Equal(t, "ABC-123", stored[0].Plate)
	assert.Equal(t, collection.ID, stored[0].CollectionID)
	assert.Equal(t, []model.PlateRow(entries[0].Rows), []model.PlateRow(stored[0].Rows))
	assert.Equal(t, "Q0Q8B8", stored[1].Key)
}

func TestPlateRepository_ReplaceDropsPrevious(t *testing.T) {
	ctx := context.Background()
	repo := NewPlateRepository(newTestDB(t))

	first := &model.PlateCollection{LoadedAt: time.Now(), SavedAt: time.Now()}
	require.NoError(t, repo.Replace(ctx, first, sampleEntries()))

	second := &model.PlateCollection{LoadedAt: time.Now(), SavedAt: time.Now()}
	require.NoError(t, repo.Replace(ctx, second, []model.PlateEntry{{Key: "XYZ999", Plate: "XYZ999"}}))

	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	old, err := repo.ListEntries(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, old)

	current, err := repo.ListEntries(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, current, 1)
	assert.Equal(t, "XYZ999", current[0].Key)
}

func TestPlateRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo := NewPlateRepository(newTestDB(t))

	collection := &model.PlateCollection{LoadedAt: time.Now(), SavedAt: time.Now()}
	require.NoError(t, repo.Replace(ctx, collection, sampleEntries()))
	require.NoError(t, repo.Clear(ctx))

	latest, err := repo.GetLatest(ctx)
	require.NoError(t, err)
	assert.Nil(t, latest)

	entries, err := repo.ListEntries(ctx, collection.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// Clearing an empty store is fine.
	require.NoError(t, repo.Clear(ctx))
}
