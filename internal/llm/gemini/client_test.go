package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("GEMINI_API_BASE", srv.URL)
	client, err := NewClient("test-key", "gemini-2.0-flash")
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestGenerateTextReturnsCandidateText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-goog-api-key"); got != "test-key" {
			t.Errorf("expected api key header, got %q", got)
		}
		if !strings.Contains(r.URL.Path, "models/gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "hello" {
			t.Errorf("unexpected request contents: %+v", req.Contents)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"hi "},{"text":"there"}]}}]}`))
	})

	got, err := client.GenerateText(context.Background(), "hello")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "hi there" {
		t.Fatalf("expected joined parts, got %q", got)
	}
}

func TestTranscribeImageSendsInlineData(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) != 2 {
			t.Fatalf("expected 2 content entries, got %d", len(req.Contents))
		}
		inline := req.Contents[0].Parts[0].InlineData
		if inline == nil {
			t.Fatal("expected inlineData part")
		}
		if inline.MimeType != "image/png" {
			t.Errorf("expected image/png, got %s", inline.MimeType)
		}
		if inline.Data != base64.StdEncoding.EncodeToString(raw) {
			t.Errorf("unexpected inline data %q", inline.Data)
		}
		if txt := req.Contents[1].Parts[0].Text; !strings.Contains(txt, "Extract all text") {
			t.Errorf("unexpected instruction %q", txt)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"MSEB BILL 250 units"}]}}]}`))
	})

	got, err := client.TranscribeImage(context.Background(), "image/png", raw)
	if err != nil {
		t.Fatalf("TranscribeImage: %v", err)
	}
	if got != "MSEB BILL 250 units" {
		t.Fatalf("unexpected transcript %q", got)
	}
}

func TestGenerateTextSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := client.GenerateText(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "API key not valid") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateTextMissingCandidates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	_, err := client.GenerateText(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "missing candidates") {
		t.Fatalf("expected missing candidates error, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "gemini-2.0-flash"); err == nil {
		t.Fatal("expected error for empty api key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatal("expected error for empty model")
	}
}
