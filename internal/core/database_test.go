// AngelaMos | 2026
// database_test.go

package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/glowguard-api/internal/core"
	"github.com/carterperez-dev/glowguard-api/internal/testutil"
)

func TestParseDatabaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		url        string
		wantDriver string
		wantDSN    string
		wantErr    bool
	}{
		{
			name:       "postgres",
			url:        "postgres://u:p@db:5432/glowguard",
			wantDriver: "pgx",
			wantDSN:    "postgres://u:p@db:5432/glowguard",
		},
		{
			name:       "postgresql alias",
			url:        "postgresql://db/glowguard",
			wantDriver: "pgx",
			wantDSN:    "postgresql://db/glowguard",
		},
		{
			name:       "sqlite relative path",
			url:        "sqlite://./glowguard.db",
			wantDriver: "sqlite",
			wantDSN:    "./glowguard.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		},
		{
			name:       "sqlite file uri keeps query",
			url:        "file:test.db?cache=shared",
			wantDriver: "sqlite",
			wantDSN:    "file:test.db?cache=shared&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		},
		{name: "empty sqlite path", url: "sqlite://", wantErr: true},
		{name: "mysql unsupported", url: "mysql://root@db/x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			driver, dsn, _, err := core.ParseDatabaseURL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDriver, driver)
			assert.Equal(t, tt.wantDSN, dsn)
		})
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	require.NoError(t, core.Migrate(context.Background(), db))

	var versions []string
	require.NoError(t, db.DB.Select(&versions,
		"SELECT version FROM schema_migrations ORDER BY version"))
	assert.Equal(t, []string{"0001_init", "0002_products"}, versions)
}

func TestForeignKeysEnforced(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)

	_, err := db.DB.Exec(`
		INSERT INTO recommendations
			(id, prediction_id, category, content, position, created_at)
		VALUES ('r1', 'missing', 'remedies', 'x', 0, ?)`, core.Now())
	assert.Error(t, err)
}

func TestIsDuplicateKeyError(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	insert := `
		INSERT INTO users
			(id, email, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, 'h', ?, ?)`

	now := core.Now()
	_, err := db.DB.Exec(insert, "u1", "a@example.com", "alice", now, now)
	require.NoError(t, err)

	_, err = db.DB.Exec(insert, "u2", "a@example.com", "bob", now, now)
	require.Error(t, err)
	assert.True(t, core.IsDuplicateKeyError(err))

	assert.True(t, core.IsDuplicateKeyError(&pgconn.PgError{Code: "23505"}))
	assert.False(t, core.IsDuplicateKeyError(&pgconn.PgError{Code: "23503"}))
	assert.False(t, core.IsDuplicateKeyError(errors.New("boom")))
	assert.False(t, core.IsDuplicateKeyError(nil))
}

func TestInTxRollsBack(t *testing.T) {
	t.Parallel()

	db := testutil.NewDB(t)
	ctx := context.Background()
	sentinel := errors.New("abort")

	err := core.InTx(ctx, db.DB, func(tx *sqlx.Tx) error {
		now := core.Now()
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO users
				(id, email, username, password_hash, created_at, updated_at)
			VALUES ('u1', 'a@example.com', 'alice', 'h', ?, ?)`, now, now); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	var count int
	require.NoError(t, db.DB.Get(&count, "SELECT COUNT(*) FROM users"))
	assert.Zero(t, count)
}
