package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wortschatz/internal/entities"
)

func TestNewDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := NewQuietDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	t.Run("migrates the excluded table", func(t *testing.T) {
		assert.True(t, db.DB.Migrator().HasTable(&entities.ExcludedWord{}))
		assert.True(t, db.DB.Migrator().HasColumn(&entities.ExcludedWord{}, "record_index"))
	})

	t.Run("ping succeeds on an open database", func(t *testing.T) {
		assert.NoError(t, db.Ping())
	})

	t.Run("reopening keeps existing rows", func(t *testing.T) {
		require.NoError(t, db.DB.Create(&entities.ExcludedWord{Index: 12}).Error)

		again, err := NewQuietDatabase(dbPath)
		require.NoError(t, err)
		defer again.Close()

		var count int64
		require.NoError(t, again.DB.Model(&entities.ExcludedWord{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestDatabase_PingAfterClose(t *testing.T) {
	db, err := NewQuietDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping())
}

func TestNewDatabase_InvalidPath(t *testing.T) {
	_, err := NewQuietDatabase(filepath.Join(t.TempDir(), "missing", "dir", "test.db"))
	assert.Error(t, err)
}
