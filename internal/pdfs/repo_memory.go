package pdfs

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]PdfFile
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]PdfFile)}
}

// Create stores a PDF record.
func (r *MemoryRepo) Create(ctx context.Context, file PdfFile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[file.ID] = file
	return nil
}

// GetByID returns a PDF record by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, id string) (PdfFile, error) {
	if err := ctx.Err(); err != nil {
		return PdfFile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	file, ok := r.data[id]
	if !ok {
		return PdfFile{}, ErrNotFound
	}
	return file, nil
}

var _ Repo = (*MemoryRepo)(nil)
