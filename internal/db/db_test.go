package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateIsIdempotent(t *testing.T) {
	d, err := Open(Memory)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, Migrate(d))
	require.NoError(t, Migrate(d))

	var n int
	require.NoError(t, d.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n))
	assert.Equal(t, 2, n)

	for _, table := range []string{"users", "games", "daily_results"} {
		var name string
		err := d.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, table)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.db")
	d, err := OpenMigrated(path)
	require.NoError(t, err)
	defer d.Close()
	require.NoError(t, d.Ping())
}
