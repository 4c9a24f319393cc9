package invoices

import (
	"context"
	"errors"
)

// ErrNotFound signals a missing invoice record.
var ErrNotFound = errors.New("not found")

// Repo defines persistence operations for invoice records.
type Repo interface {
	Create(ctx context.Context, inv Invoice) error
	GetByID(ctx context.Context, id string) (Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
}
