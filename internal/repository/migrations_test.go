package repository

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ventasbot "github.com/luiscast/ventasbot"
)

// The invoices table is owned by the ingestion side. The shipped up
// migrations may create it idempotently for fresh deployments but must never
// drop or alter it; only down migrations are allowed to remove what up
// created, and startup only ever runs up.
func TestUpMigrationsNeverDropOrAlterTheTable(t *testing.T) {
	names, err := fs.Glob(ventasbot.MigrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	for _, name := range names {
		raw, err := fs.ReadFile(ventasbot.MigrationsFS, name)
		require.NoError(t, err)

		sql := strings.ToLower(string(raw))
		assert.NotContains(t, sql, "drop table", name)
		assert.NotContains(t, sql, "alter table", name)
		assert.NotContains(t, sql, "truncate", name)
		assert.Contains(t, sql, "if not exists", name)
	}
}
