package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"carbonwise-backend/internal/llm"
)

const mimePDF = "application/pdf"

var imageMimeTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/jpg":  {},
}

// IsSupportedMimeType reports whether the upload gate accepts the media type.
func IsSupportedMimeType(mimeType string) bool {
	normalized := normalizeMimeType(mimeType)
	if normalized == mimePDF {
		return true
	}
	_, ok := imageMimeTypes[normalized]
	return ok
}

// ExtractTextFromBytes extracts plain text from an in-memory payload.
// PDFs are parsed locally via github.com/ledongthuc/pdf; images are sent to
// the AI client for transcription. A document with no extractable text yields
// an empty string, not an error.
func ExtractTextFromBytes(ctx context.Context, ai llm.Client, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := normalizeMimeType(mimeType)
	switch {
	case normalized == mimePDF:
		text, err := extractPDF(data)
		if err != nil {
			return "", fmt.Errorf("extract pdf text: %w", err)
		}
		return text, nil
	case isImage(normalized):
		text, err := ai.TranscribeImage(ctx, normalized, data)
		if err != nil {
			return "", fmt.Errorf("transcribe image mime=%s: %w", normalized, err)
		}
		return text, nil
	default:
		return "", fmt.Errorf("unsupported mime type: %s", normalized)
	}
}

func isImage(mimeType string) bool {
	_, ok := imageMimeTypes[mimeType]
	return ok
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func normalizeMimeType(mimeType string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
}
