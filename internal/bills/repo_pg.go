package bills

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new bill record.
func (r *PGRepo) Create(ctx context.Context, bill Bill) error {
	const query = `
INSERT INTO bills (
    id,
    file_name,
    mime_type,
    bill_data,
    consumer_name,
    bill_number,
    billing_date,
    billing_month,
    units_consumed,
    total_amount,
    address,
    tariff_type,
    carbon_emitted,
    needs_review,
    uploaded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err := r.DB.ExecContext(
		ctx,
		query,
		bill.ID,
		bill.FileName,
		bill.MimeType,
		bill.Data,
		nullString(bill.Extracted.ConsumerName),
		nullString(bill.Extracted.BillNumber),
		nullString(bill.Extracted.BillingDate),
		nullString(bill.Extracted.BillingMonth),
		nullFloat(bill.Extracted.UnitsConsumed),
		nullFloat(bill.Extracted.TotalAmount),
		nullString(bill.Extracted.Address),
		nullString(bill.Extracted.TariffType),
		bill.CarbonEmitted,
		bill.NeedsReview,
		bill.UploadedAt,
	)
	return err
}

const listColumns = `
SELECT id, file_name, mime_type, consumer_name, bill_number, billing_date, billing_month, units_consumed, total_amount, address, tariff_type, carbon_emitted, needs_review, uploaded_at
FROM bills`

// ListAll returns every bill record, newest first. The raw file bytes are
// not loaded; aggregation never needs them.
func (r *PGRepo) ListAll(ctx context.Context) ([]Bill, error) {
	rows, err := r.DB.QueryContext(ctx, listColumns+`
ORDER BY uploaded_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBills(rows)
}

// ListRecent returns up to limit bill records, newest first.
func (r *PGRepo) ListRecent(ctx context.Context, limit int) ([]Bill, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.DB.QueryContext(ctx, listColumns+`
ORDER BY uploaded_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBills(rows)
}

func scanBills(rows *sql.Rows) ([]Bill, error) {
	var out []Bill
	for rows.Next() {
		var bill Bill
		var consumerName, billNumber, billingDate, billingMonth, address, tariffType sql.NullString
		var unitsConsumed, totalAmount sql.NullFloat64
		if err := rows.Scan(
			&bill.ID,
			&bill.FileName,
			&bill.MimeType,
			&consumerName,
			&billNumber,
			&billingDate,
			&billingMonth,
			&unitsConsumed,
			&totalAmount,
			&address,
			&tariffType,
			&bill.CarbonEmitted,
			&bill.NeedsReview,
			&bill.UploadedAt,
		); err != nil {
			return nil, err
		}
		bill.Extracted = ExtractedFields{
			ConsumerName:  fromNullString(consumerName),
			BillNumber:    fromNullString(billNumber),
			BillingDate:   fromNullString(billingDate),
			BillingMonth:  fromNullString(billingMonth),
			UnitsConsumed: fromNullFloat(unitsConsumed),
			TotalAmount:   fromNullFloat(totalAmount),
			Address:       fromNullString(address),
			TariffType:    fromNullString(tariffType),
		}
		out = append(out, bill)
	}
	return out, rows.Err()
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullFloat(v NullableNumber) sql.NullFloat64 {
	if !v.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v.Value, Valid: true}
}

func fromNullFloat(v sql.NullFloat64) NullableNumber {
	if !v.Valid {
		return NullableNumber{}
	}
	return Number(v.Float64)
}

var _ Repo = (*PGRepo)(nil)
