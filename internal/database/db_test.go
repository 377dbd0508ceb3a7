package database

import (
	"database/sql"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*DB, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "test_database_*.db")
	require.NoError(t, err)
	tmpPath := tmpFile.Name()
	_ = tmpFile.Close()

	db, err := New(Config{Path: tmpPath, Name: "test"})
	require.NoError(t, err)

	_, err = db.Exec(`CREATE TABLE entries (id INTEGER PRIMARY KEY, label TEXT NOT NULL)`)
	require.NoError(t, err)

	cleanup := func() {
		_ = db.Close()
		_ = os.Remove(tmpPath)
	}

	return db, cleanup
}

func countEntries(t *testing.T, db *DB) int {
	t.Helper()

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&count)
	require.NoError(t, err)
	return count
}

func TestWithTransaction(t *testing.T) {
	t.Run("commits when the function succeeds", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
			_, err := tx.Exec(`INSERT INTO entries (label) VALUES (?)`, "a")
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 1, countEntries(t, db))
	})

	t.Run("rolls back when the function fails", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
			if _, err := tx.Exec(`INSERT INTO entries (label) VALUES (?)`, "a"); err != nil {
				return err
			}
			return assert.AnError
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, 0, countEntries(t, db))
	})

	t.Run("recovers a panic and rolls back", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		err := WithTransaction(db.Conn(), func(tx *sql.Tx) error {
			if _, err := tx.Exec(`INSERT INTO entries (label) VALUES (?)`, "a"); err != nil {
				return err
			}
			panic("boom")
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic in transaction")
		assert.Equal(t, 0, countEntries(t, db))
	})

	t.Run("nil connection is rejected", func(t *testing.T) {
		err := WithTransaction(nil, func(tx *sql.Tx) error { return nil })
		assert.Error(t, err)
	})
}
