package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"happydash/domain/happiness"

	"github.com/jmoiron/sqlx"
)

// recordRow is one row of happiness_records
type recordRow struct {
	Seq           int             `db:"seq"`
	Country       string          `db:"country"`
	Year          int             `db:"year"`
	LifeEval      sql.NullFloat64 `db:"life_eval"`
	GDP           sql.NullFloat64 `db:"gdp"`
	SocialSupport sql.NullFloat64 `db:"social_support"`
	HealthyLife   sql.NullFloat64 `db:"healthy_life"`
	Freedom       sql.NullFloat64 `db:"freedom"`
	Generosity    sql.NullFloat64 `db:"generosity"`
	Corruption    sql.NullFloat64 `db:"corruption"`
}

const selectRecords = `SELECT
	seq, country, year, life_eval, gdp, social_support, healthy_life, freedom, generosity, corruption
FROM happiness_records
ORDER BY seq`

const insertRecord = `INSERT INTO happiness_records (
	seq, country, year, life_eval, gdp, social_support, healthy_life, freedom, generosity, corruption
) VALUES (
	:seq, :country, :year, :life_eval, :gdp, :social_support, :healthy_life, :freedom, :generosity, :corruption
)`

// RecordRepository reads and replaces the happiness panel stored in SQL
type RecordRepository struct {
	db *sqlx.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sqlx.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// Name identifies the table as a dataset source
func (r *RecordRepository) Name() string {
	return "sql:happiness_records"
}

// Records returns every stored row in insertion order
func (r *RecordRepository) Records(ctx context.Context) ([]happiness.Record, error) {
	var rows []recordRow
	if err := r.db.SelectContext(ctx, &rows, selectRecords); err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}

	records := make([]happiness.Record, len(rows))
	for i, row := range rows {
		records[i] = row.record()
	}
	return records, nil
}

// Replace swaps the stored panel for the given records in one transaction
func (r *RecordRepository) Replace(ctx context.Context, records []happiness.Record) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM happiness_records`); err != nil {
		return 0, fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.PrepareNamedContext(ctx, insertRecord)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, newRecordRow(i, rec)); err != nil {
			return 0, fmt.Errorf("failed to insert record %d (%s %d): %w", i, rec.Country, rec.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit records: %w", err)
	}
	return len(records), nil
}

// Count returns the number of stored rows
func (r *RecordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM happiness_records`); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}
	return n, nil
}

func newRecordRow(seq int, rec happiness.Record) recordRow {
	row := recordRow{Seq: seq, Country: rec.Country, Year: rec.Year}
	for _, f := range append([]happiness.Field{happiness.FieldLifeEval}, happiness.Factors...) {
		m := rec.Get(f)
		*row.column(f) = sql.NullFloat64{Float64: m.Value, Valid: m.Valid}
	}
	return row
}

func (row recordRow) record() happiness.Record {
	rec := happiness.Record{Country: row.Country, Year: row.Year}
	for _, f := range append([]happiness.Field{happiness.FieldLifeEval}, happiness.Factors...) {
		if v := row.column(f); v.Valid {
			rec = rec.Set(f, happiness.Some(v.Float64))
		}
	}
	return rec
}

func (row *recordRow) column(f happiness.Field) *sql.NullFloat64 {
	switch f {
	case happiness.FieldLifeEval:
		return &row.LifeEval
	case happiness.FieldGDP:
		return &row.GDP
	case happiness.FieldSocialSupport:
		return &row.SocialSupport
	case happiness.FieldHealthyLife:
		return &row.HealthyLife
	case happiness.FieldFreedom:
		return &row.Freedom
	case happiness.FieldGenerosity:
		return &row.Generosity
	case happiness.FieldCorruption:
		return &row.Corruption
	}
	panic(fmt.Sprintf("no column for field %q", f))
}
