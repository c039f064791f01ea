// AngelaMos | 2026
// db.go

package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/glowguard-api/internal/config"
	"github.com/carterperez-dev/glowguard-api/internal/core"
)

// NewDB returns a migrated in-memory sqlite database that is closed when the
// test finishes.
func NewDB(t testing.TB) *core.Database {
	t.Helper()

	db, err := core.NewDatabase(context.Background(), config.DatabaseConfig{
		URL: ":memory:",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close() //nolint:errcheck // test cleanup
	})

	require.NoError(t, core.Migrate(context.Background(), db))

	return db
}
