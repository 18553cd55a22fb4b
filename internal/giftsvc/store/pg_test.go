package store

import (
	"context"
	"os"
	"strings"
	"testing"

	giftdb "github.com/avvvet/giftcard-services/internal/giftsvc/db"
	"github.com/avvvet/giftcard-services/internal/giftsvc/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool opens a pool on POSTGRES_TEST_URL bound to a fresh schema.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	ctx := context.Background()
	schema := "t_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, giftdb.Migrate(ctx, pool))

	t.Cleanup(func() {
		pool.Close()
		admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})
	return pool
}

func TestPgRecordStore(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	s := NewPgRecordStore(pool)

	for i, date := range []string{
		"2024-01-01T10:00:00.000Z",
		"2024-03-01T10:00:00.000Z",
		"2024-02-01T10:00:00.000Z",
	} {
		rec := &models.GiftCardRecord{
			ID:          int64(i + 1),
			CardType:    "Steam",
			CardName:    "Gift",
			FullCode:    "ABCDE-FGHIJ-KLMNO",
			Balance:     42.17,
			CheckDate:   date,
			CheckMethod: models.CheckMethodRealTime,
		}
		require.NoError(t, s.InsertRecord(ctx, rec))
	}

	list, err := s.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, int64(2), list[0].ID)
	assert.Equal(t, "2024-03-01T10:00:00.000Z", list[0].CheckDate)
	assert.Equal(t, 42.17, list[0].Balance)

	require.NoError(t, s.DeleteRecord(ctx, 1))
	assert.ErrorIs(t, s.DeleteRecord(ctx, 1), ErrNotFound)

	n, err := s.CountRecords(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
}

func TestPgAdminStore(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	s := NewPgAdminStore(pool)

	admin, err := s.FindAdmin(ctx)
	require.NoError(t, err)
	assert.Nil(t, admin)

	first := &models.Admin{Email: "a@b.c", Password: "hash", RegisteredAt: "2024-01-01T00:00:00.000Z"}
	require.NoError(t, s.InsertAdmin(ctx, first))

	second := &models.Admin{Email: "x@y.z", Password: "hash", RegisteredAt: "2024-01-02T00:00:00.000Z"}
	assert.ErrorIs(t, s.InsertAdmin(ctx, second), ErrDuplicate)

	admin, err = s.FindAdmin(ctx)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, "a@b.c", admin.Email)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", admin.RegisteredAt)
}
