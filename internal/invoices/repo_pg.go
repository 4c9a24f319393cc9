package invoices

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const invoiceColumns = `id, file_id, file_name, vendor_name, vendor_address, vendor_tax_id,
	invoice_number, invoice_date, currency, subtotal, tax_percent, total,
	po_number, po_date, line_items, created_at, updated_at`

// Create inserts a new invoice record.
func (r *PGRepo) Create(ctx context.Context, inv Invoice) error {
	const query = `
INSERT INTO invoices (` + invoiceColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	items, err := marshalLineItems(inv.LineItems)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		inv.ID,
		nullString(inv.FileID),
		inv.FileName,
		nullString(inv.VendorName),
		nullString(inv.VendorAddress),
		nullString(inv.VendorTaxID),
		nullString(inv.InvoiceNumber),
		nullString(inv.InvoiceDate),
		nullString(inv.Currency),
		nullFloat(inv.Subtotal),
		nullFloat(inv.TaxPercent),
		nullFloat(inv.Total),
		nullString(inv.PONumber),
		nullString(inv.PODate),
		items,
		inv.CreatedAt,
		nullTime(inv.UpdatedAt),
	)
	return err
}

// GetByID fetches an invoice record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Invoice, error) {
	const query = `
SELECT ` + invoiceColumns + `
FROM invoices
WHERE id = $1`

	inv, err := scanInvoice(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Invoice{}, ErrNotFound
		}
		return Invoice{}, err
	}
	return inv, nil
}

// List returns all invoice records, newest first.
func (r *PGRepo) List(ctx context.Context) ([]Invoice, error) {
	const query = `
SELECT ` + invoiceColumns + `
FROM invoices
ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row rowScanner) (Invoice, error) {
	var (
		inv       Invoice
		fileID    sql.NullString
		vendor    sql.NullString
		address   sql.NullString
		taxID     sql.NullString
		number    sql.NullString
		date      sql.NullString
		currency  sql.NullString
		subtotal  sql.NullFloat64
		taxPct    sql.NullFloat64
		total     sql.NullFloat64
		poNumber  sql.NullString
		poDate    sql.NullString
		items     []byte
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &fileID, &inv.FileName, &vendor, &address, &taxID,
		&number, &date, &currency, &subtotal, &taxPct, &total,
		&poNumber, &poDate, &items, &inv.CreatedAt, &updatedAt,
	)
	if err != nil {
		return Invoice{}, err
	}

	inv.FileID = fromNullString(fileID)
	inv.VendorName = fromNullString(vendor)
	inv.VendorAddress = fromNullString(address)
	inv.VendorTaxID = fromNullString(taxID)
	inv.InvoiceNumber = fromNullString(number)
	inv.InvoiceDate = fromNullString(date)
	inv.Currency = fromNullString(currency)
	inv.Subtotal = fromNullFloat(subtotal)
	inv.TaxPercent = fromNullFloat(taxPct)
	inv.Total = fromNullFloat(total)
	inv.PONumber = fromNullString(poNumber)
	inv.PODate = fromNullString(poDate)
	if updatedAt.Valid {
		t := updatedAt.Time
		inv.UpdatedAt = &t
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.LineItems); err != nil {
			return Invoice{}, fmt.Errorf("decode line items: %w", err)
		}
	}
	return inv, nil
}

func marshalLineItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	out, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}
	return out, nil
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

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

var _ Repo = (*PGRepo)(nil)
