package pdfs

import "time"

// PdfFile is a stored raw PDF document. Invoice records reference it by ID.
type PdfFile struct {
	ID          string
	FileName    string
	Data        []byte
	ContentType string
	UploadedAt  time.Time
}
