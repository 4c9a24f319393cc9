package pdfs

import (
	"context"
	"errors"
)

// ErrNotFound signals a missing PDF record.
var ErrNotFound = errors.New("not found")

// Repo defines persistence operations for raw PDF documents.
type Repo interface {
	Create(ctx context.Context, file PdfFile) error
	GetByID(ctx context.Context, id string) (PdfFile, error)
}
