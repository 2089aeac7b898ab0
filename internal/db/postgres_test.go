package db

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames_SortedSQLOnly(t *testing.T) {
	fsys := fstest.MapFS{
		"002_payouts.sql":   {Data: []byte("SELECT 1")},
		"001_init.sql":      {Data: []byte("SELECT 1")},
		"README.md":         {Data: []byte("docs")},
		"archive/0_old.sql": {Data: []byte("SELECT 1")},
	}

	names, err := migrationNames(fsys)

	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_payouts.sql"}, names)
}
