//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is the minimal surface fixtures need; both *pgxpool.Pool and pgx.Tx
// satisfy it, so tests can seed inside or outside a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// bcrypt hash of "password123"
const testPasswordHash = "$2a$12$uhAjVE9f92IGYv3E25pJNetg.27lVt0p7jmLWjqjmhOg92ldPS0A."

func CreateTestUser(t *testing.T, db DBLike, phoneNumber, role string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
		INSERT INTO users (id, phone_number, name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
		ON CONFLICT (phone_number) DO NOTHING`,
		userID, phoneNumber, "Test User", testPasswordHash, role)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE phone_number = $1", phoneNumber).Scan(&userID)
	}

	return userID
}

func CreateTestBundle(t *testing.T, db DBLike, name, network string, dataMB int, pricePesewas int64) uuid.UUID {
	t.Helper()

	bundleID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, `
		INSERT INTO bundles (id, name, network, data_mb, price_pesewas, in_stock)
		VALUES ($1, $2, $3, $4, $5, true)
		ON CONFLICT (name, network) DO NOTHING`,
		bundleID, name, network, dataMB, pricePesewas)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM bundles WHERE name = $1 AND network = $2", name, network).Scan(&bundleID)
	}

	return bundleID
}

func WalletBalance(t *testing.T, db DBLike, userID uuid.UUID) int64 {
	t.Helper()

	var pesewas int64
	err := db.QueryRow(context.Background(), "SELECT wallet_pesewas FROM users WHERE id = $1", userID).Scan(&pesewas)
	require.NoError(t, err)
	return pesewas
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO bundles (name, network, data_mb, price_pesewas, in_stock) VALUES
		    ('Starter 1GB', 'mtn', 1024, 500, true),
		    ('Weekly 5GB', 'vodafone', 5120, 2000, true)
		ON CONFLICT (name, network) DO NOTHING;
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
