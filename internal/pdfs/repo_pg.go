package pdfs

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new PDF record.
func (r *PGRepo) Create(ctx context.Context, file PdfFile) error {
	const query = `
INSERT INTO pdf_files (id, file_name, file_data, content_type, uploaded_at)
VALUES ($1, $2, $3, $4, $5)`

	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/pdf"
	}
	_, err := r.DB.ExecContext(ctx, query, file.ID, file.FileName, file.Data, contentType, file.UploadedAt)
	return err
}

// GetByID fetches a PDF record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (PdfFile, error) {
	const query = `
SELECT id, file_name, file_data, content_type, uploaded_at
FROM pdf_files
WHERE id = $1`

	var file PdfFile
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&file.ID,
		&file.FileName,
		&file.Data,
		&file.ContentType,
		&file.UploadedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PdfFile{}, ErrNotFound
		}
		return PdfFile{}, err
	}
	return file, nil
}

var _ Repo = (*PGRepo)(nil)
