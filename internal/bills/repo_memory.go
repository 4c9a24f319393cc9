package bills

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	bills []Bill
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

// Create stores a bill record.
func (r *MemoryRepo) Create(ctx context.Context, bill Bill) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bills = append(r.bills, bill)
	return nil
}

// ListAll returns every bill record, newest first.
func (r *MemoryRepo) ListAll(ctx context.Context) ([]Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.snapshot(), nil
}

// ListRecent returns up to limit bill records, newest first.
func (r *MemoryRepo) ListRecent(ctx context.Context, limit int) ([]Bill, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 5
	}
	out := r.snapshot()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepo) snapshot() []Bill {
	r.mu.RLock()
	out := make([]Bill, len(r.bills))
	copy(out, r.bills)
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	for i := range out {
		out[i].Data = nil
	}
	return out
}

var _ Repo = (*MemoryRepo)(nil)
