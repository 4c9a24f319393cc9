package lpg

import (
	"context"
	"errors"
)

// ErrNotFound signals a missing LPG record.
var ErrNotFound = errors.New("not found")

// Repo defines persistence operations for LPG consumption records.
type Repo interface {
	Create(ctx context.Context, rec Record) error
	GetByID(ctx context.Context, id string) (Record, error)
	ListByUser(ctx context.Context, userID string) ([]Record, error)
}
