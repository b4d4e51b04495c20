package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestOpen_Migrates verifies that Open creates the subscriber tables.
func TestOpen_Migrates(t *testing.T) {
	t.Parallel()

	gdb, err := Open(":memory:")
	require.NoError(t, err)

	for _, table := range []string{"subscribers", "user_settings"} {
		require.True(t, gdb.Migrator().HasTable(table), "expected table %q", table)
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	t.Parallel()

	_, err := Open("/nonexistent-dir/subscribers.db")
	require.Error(t, err)
}
