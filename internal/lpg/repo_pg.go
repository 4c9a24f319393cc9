package lpg

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const recordColumns = `id, user_id, consumer_number, provider, state, district, connection_type, subsidy_status, cylinders_consumed, lpg_in_kg, carbon_emitted, notes, created_at`

// Create inserts a new LPG record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO lpg_records (` + recordColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		nullString(rec.ConsumerNumber),
		nullString(rec.Provider),
		nullString(rec.State),
		nullString(rec.District),
		nullString(rec.ConnectionType),
		nullString(rec.SubsidyStatus),
		nullFloat(rec.CylindersConsumed),
		nullFloat(rec.LPGInKg),
		nullFloat(rec.CarbonEmitted),
		nullString(rec.Notes),
		rec.CreatedAt,
	)
	return err
}

// GetByID fetches an LPG record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	const query = `
SELECT ` + recordColumns + `
FROM lpg_records
WHERE id = $1`

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// ListByUser returns a user's LPG records, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Record, error) {
	const query = `
SELECT ` + recordColumns + `
FROM lpg_records
WHERE user_id = $1
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (Record, error) {
	var (
		rec       Record
		consumer  sql.NullString
		provider  sql.NullString
		state     sql.NullString
		district  sql.NullString
		connType  sql.NullString
		subsidy   sql.NullString
		cylinders sql.NullFloat64
		kg        sql.NullFloat64
		carbon    sql.NullFloat64
		notes     sql.NullString
	)
	err := row.Scan(
		&rec.ID, &rec.UserID, &consumer, &provider, &state, &district,
		&connType, &subsidy, &cylinders, &kg, &carbon, &notes, &rec.CreatedAt,
	)
	if err != nil {
		return Record{}, err
	}

	rec.ConsumerNumber = fromNullString(consumer)
	rec.Provider = fromNullString(provider)
	rec.State = fromNullString(state)
	rec.District = fromNullString(district)
	rec.ConnectionType = fromNullString(connType)
	rec.SubsidyStatus = fromNullString(subsidy)
	rec.CylindersConsumed = fromNullFloat(cylinders)
	rec.LPGInKg = fromNullFloat(kg)
	rec.CarbonEmitted = fromNullFloat(carbon)
	rec.Notes = fromNullString(notes)
	return rec, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNullString(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func fromNullFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

var _ Repo = (*PGRepo)(nil)
