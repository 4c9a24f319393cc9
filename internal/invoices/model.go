package invoices

import "time"

// LineItem is a single invoice line.
type LineItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// Invoice is a structured record extracted from an invoice document.
// FileID references the stored source document, when one exists.
type Invoice struct {
	ID            string
	FileID        *string
	FileName      string
	VendorName    *string
	VendorAddress *string
	VendorTaxID   *string
	InvoiceNumber *string
	InvoiceDate   *string
	Currency      *string
	Subtotal      *float64
	TaxPercent    *float64
	Total         *float64
	PONumber      *string
	PODate        *string
	LineItems     []LineItem
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
