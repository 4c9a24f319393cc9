package extract

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubAI struct {
	transcript string
	err        error
	gotMime    string
	gotData    []byte
}

func (s *stubAI) GenerateText(ctx context.Context, prompt string) (string, error) {
	return "", errors.New("unexpected GenerateText call")
}

func (s *stubAI) TranscribeImage(ctx context.Context, mimeType string, data []byte) (string, error) {
	s.gotMime = mimeType
	s.gotData = data
	return s.transcript, s.err
}

func TestExtractTextFromBytesImageUsesAI(t *testing.T) {
	ai := &stubAI{transcript: "MSEB BILL\nUnits: 250"}
	payload := []byte{0xff, 0xd8, 0xff}

	got, err := ExtractTextFromBytes(context.Background(), ai, payload, "image/jpeg")
	if err != nil {
		t.Fatalf("ExtractTextFromBytes: %v", err)
	}
	if got != "MSEB BILL\nUnits: 250" {
		t.Fatalf("unexpected text %q", got)
	}
	if ai.gotMime != "image/jpeg" {
		t.Fatalf("expected image/jpeg passed through, got %s", ai.gotMime)
	}
	if len(ai.gotData) != len(payload) {
		t.Fatalf("expected raw bytes passed through")
	}
}

func TestExtractTextFromBytesImageErrorPropagates(t *testing.T) {
	ai := &stubAI{err: errors.New("model unavailable")}

	_, err := ExtractTextFromBytes(context.Background(), ai, []byte{0x1}, "image/png")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "model unavailable") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextFromBytesMimeNormalization(t *testing.T) {
	ai := &stubAI{transcript: "ok"}

	if _, err := ExtractTextFromBytes(context.Background(), ai, []byte{0x1}, " IMAGE/PNG; charset=binary "); err != nil {
		t.Fatalf("expected normalized mime to be accepted: %v", err)
	}
	if ai.gotMime != "image/png" {
		t.Fatalf("expected normalized mime, got %s", ai.gotMime)
	}
}

func TestExtractTextFromBytesUnsupportedMime(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), &stubAI{}, []byte("hi"), "text/plain")
	if err == nil {
		t.Fatal("expected unsupported mime error")
	}
	if !strings.Contains(err.Error(), "unsupported mime type: text/plain") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestExtractTextFromBytesInvalidPDF(t *testing.T) {
	_, err := ExtractTextFromBytes(context.Background(), &stubAI{}, []byte("not a pdf"), "application/pdf")
	if err == nil {
		t.Fatal("expected error for malformed pdf")
	}
}

func TestIsSupportedMimeType(t *testing.T) {
	tests := []struct {
		mime string
		want bool
	}{
		{"application/pdf", true},
		{"image/jpeg", true},
		{"image/jpg", true},
		{"image/png", true},
		{"application/pdf; charset=binary", true},
		{"application/msword", false},
		{"text/plain", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsSupportedMimeType(tt.mime); got != tt.want {
			t.Fatalf("IsSupportedMimeType(%q) = %v, want %v", tt.mime, got, tt.want)
		}
	}
}
