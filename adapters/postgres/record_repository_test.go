package postgres

import (
	"context"
	"path/filepath"
	"testing"

	"happydash/domain/happiness"
	"happydash/internal/errors"
	"happydash/internal/testkit"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := Connect(context.Background(), "sqlite", filepath.Join(t.TempDir(), "happiness.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(newTestDB(t))

	records := testkit.Drivers().Records()
	records = append(records, happiness.Record{Country: "Chad", Year: 2021, LifeEval: happiness.Some(4.1)})

	n, err := repo.Replace(ctx, records)
	require.NoError(t, err)
	assert.Equal(t, len(records), n)

	got, err := repo.Records(ctx)
	require.NoError(t, err)
	require.Len(t, got, len(records))
	assert.Equal(t, records, got, "source order and missing cells survive the round trip")

	last := got[len(got)-1]
	assert.False(t, last.Get(happiness.FieldGDP).Valid)
}

func TestRecordRepository_ReplaceClearsPreviousRows(t *testing.T) {
	ctx := context.Background()
	repo := NewRecordRepository(newTestDB(t))

	_, err := repo.Replace(ctx, testkit.Drivers().Records())
	require.NoError(t, err)

	dup := happiness.Record{Country: "Kenya", Year: 2020, LifeEval: happiness.Some(4.6)}
	_, err = repo.Replace(ctx, []happiness.Record{dup, dup})
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "duplicates are stored as given")
}

func TestConnect_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "again.db")
	for i := 0; i < 2; i++ {
		db, err := Connect(context.Background(), "sqlite", path)
		require.NoError(t, err)
		db.Close()
	}
}

func TestConnect_RequiresURL(t *testing.T) {
	_, err := Connect(context.Background(), "postgres", "")
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
