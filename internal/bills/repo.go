package bills

import "context"

// Repo defines persistence operations for bill records.
type Repo interface {
	Create(ctx context.Context, bill Bill) error
	// ListAll returns every bill record, newest first, without raw file bytes.
	ListAll(ctx context.Context) ([]Bill, error)
	// ListRecent returns up to limit bill records, newest first, without raw file bytes.
	ListRecent(ctx context.Context, limit int) ([]Bill, error)
}
