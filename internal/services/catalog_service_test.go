package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldside/squadscout/internal/database"
	"github.com/fieldside/squadscout/internal/ingest"
	"github.com/fieldside/squadscout/internal/store"
)

func setupCatalog(t *testing.T, csvPath string) (*CatalogService, *store.PlayerRepository, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test_catalog_*.db")
	require.NoError(t, err)
	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()

	db, err := database.New(database.Config{Path: tmpPath, Name: "players"})
	require.NoError(t, err)

	repo, err := store.NewPlayerRepository(db, zerolog.Nop())
	require.NoError(t, err)

	svc := NewCatalogService(
		ingest.NewLoader(csvPath, zerolog.Nop()),
		ingest.NewGenerator(7),
		repo,
		Config{SampleSize: 25},
		zerolog.Nop(),
	)

	cleanup := func() {
		_ = db.Close()
		_ = os.Remove(tmpPath)
	}

	return svc, repo, cleanup
}

func TestCatalogService_RefreshFallsBackToGenerator(t *testing.T) {
	svc, repo, cleanup := setupCatalog(t, filepath.Join(t.TempDir(), "missing.csv"))
	defer cleanup()

	count, err := svc.Refresh()
	require.NoError(t, err)
	assert.Equal(t, 25, count)

	empty, err := repo.IsEmpty()
	require.NoError(t, err)
	assert.False(t, empty)
}

func TestCatalogService_RefreshFromCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "players.csv")
	csv := "player_id,name,dob,country_name,positions,overall_rating,potential,value\n" +
		"1,Alpha,2000-05-01,Italy,ST,82,86,€12M\n" +
		"2,Beta,1999-02-11,Italy,GK,79,81,€6M\n"
	require.NoError(t, os.WriteFile(csvPath, []byte(csv), 0644))

	svc, repo, cleanup := setupCatalog(t, csvPath)
	defer cleanup()

	count, err := svc.Refresh()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	got, err := repo.GetByID(1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alpha", got.Name)
}

func TestCatalogService_EnsurePopulated(t *testing.T) {
	svc, repo, cleanup := setupCatalog(t, filepath.Join(t.TempDir(), "missing.csv"))
	defer cleanup()

	require.NoError(t, svc.EnsurePopulated())

	empty, err := repo.IsEmpty()
	require.NoError(t, err)
	assert.False(t, empty)

	// Second call must not re-ingest; record count stays stable.
	stats, err := repo.GetStats(nil)
	require.NoError(t, err)
	require.NoError(t, svc.EnsurePopulated())

	again, err := repo.GetStats(nil)
	require.NoError(t, err)
	assert.Equal(t, stats.Count, again.Count)
}
