package bills

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/"))
	return r
}

func multipartBill(t *testing.T, fileName, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="bill"; filename="`+fileName+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadBillSuccess(t *testing.T) {
	repo := NewMemoryRepo()
	ai := &stubAI{
		transcript: "Units Consumed: 250",
		generated:  "```json\n{\"consumerName\":\"A Kumar\",\"billingMonth\":\"Jan\",\"unitsConsumed\":250}\n```",
	}
	router := newTestRouter(&Service{Repo: repo, AI: ai})

	body, contentType := multipartBill(t, "bill.png", "image/png", []byte{0x89, 0x50, 0x4e, 0x47})
	req := httptest.NewRequest(http.MethodPost, "/upload-bill", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var parsed struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    struct {
			ConsumerName  string  `json:"consumerName"`
			BillingMonth  string  `json:"billingMonth"`
			UnitsConsumed float64 `json:"unitsConsumed"`
			CarbonEmitted string  `json:"carbonEmitted"`
			NeedsReview   bool    `json:"needsReview"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !parsed.Success {
		t.Fatal("expected success true")
	}
	if parsed.Data.CarbonEmitted != "205.00" {
		t.Fatalf("expected carbonEmitted 205.00, got %s", parsed.Data.CarbonEmitted)
	}
	if parsed.Data.ConsumerName != "A Kumar" || parsed.Data.BillingMonth != "Jan" {
		t.Fatalf("unexpected extracted fields %+v", parsed.Data)
	}
	if parsed.Data.NeedsReview {
		t.Fatal("expected needsReview false")
	}

	stored, _ := repo.ListAll(context.Background())
	if len(stored) != 1 || stored[0].CarbonEmitted != "205.00" {
		t.Fatalf("expected persisted bill with carbonEmitted 205.00, got %+v", stored)
	}
}

func TestUploadBillMissingFile(t *testing.T) {
	router := newTestRouter(&Service{Repo: NewMemoryRepo(), AI: &stubAI{}})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload-bill", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUploadBillUnsupportedMediaType(t *testing.T) {
	ai := &stubAI{}
	router := newTestRouter(&Service{Repo: NewMemoryRepo(), AI: ai})

	body, contentType := multipartBill(t, "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/upload-bill", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	// The gate runs before extraction: the model must never be called.
	if len(ai.prompts) != 0 {
		t.Fatalf("expected no model calls, got %d", len(ai.prompts))
	}
}

func TestUploadBillTooLarge(t *testing.T) {
	ai := &stubAI{}
	router := newTestRouter(&Service{Repo: NewMemoryRepo(), AI: ai})

	oversized := bytes.Repeat([]byte{0x1}, maxUploadBytes+1)
	body, contentType := multipartBill(t, "huge.png", "image/png", oversized)
	req := httptest.NewRequest(http.MethodPost, "/upload-bill", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.Code)
	}
	if len(ai.prompts) != 0 {
		t.Fatalf("expected no model calls, got %d", len(ai.prompts))
	}
}

func TestUploadBillEmptyAIResponse(t *testing.T) {
	router := newTestRouter(&Service{
		Repo: NewMemoryRepo(),
		AI:   &stubAI{transcript: "text", generated: "  "},
	})

	body, contentType := multipartBill(t, "bill.jpg", "image/jpeg", []byte{0x1})
	req := httptest.NewRequest(http.MethodPost, "/upload-bill", body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "AI returned no JSON text") {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestEmissionsSummaryEndpoint(t *testing.T) {
	repo := NewMemoryRepo()
	now := time.Now().UTC()
	seed := []Bill{
		{ID: "1", CarbonEmitted: "82.00", Extracted: ExtractedFields{BillingMonth: strPtr("Jan")}, UploadedAt: now},
		{ID: "2", CarbonEmitted: "41.00", Extracted: ExtractedFields{BillingMonth: strPtr("Jan")}, UploadedAt: now},
		{ID: "3", CarbonEmitted: "", UploadedAt: now},
	}
	for _, b := range seed {
		if err := repo.Create(context.Background(), b); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	router := newTestRouter(&Service{Repo: repo, AI: &stubAI{}})

	req := httptest.NewRequest(http.MethodGet, "/emissions-summary", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var parsed struct {
		Total   float64            `json:"total"`
		Monthly map[string]float64 `json:"monthly"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if parsed.Total != 123 {
		t.Fatalf("expected total 123, got %v", parsed.Total)
	}
	if parsed.Monthly["Jan"] != 123 {
		t.Fatalf("expected Jan 123, got %v", parsed.Monthly["Jan"])
	}
	if v, ok := parsed.Monthly["Unknown"]; !ok || v != 0 {
		t.Fatalf("expected Unknown 0, got %v (present=%v)", v, ok)
	}
}

func TestCarbonInsightsEndpoint(t *testing.T) {
	repo := NewMemoryRepo()
	if err := repo.Create(context.Background(), Bill{
		ID:            "1",
		CarbonEmitted: "82.00",
		Extracted:     ExtractedFields{BillingMonth: strPtr("Jan")},
		UploadedAt:    time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	router := newTestRouter(&Service{Repo: repo, AI: &stubAI{generated: "Keep it up."}})

	req := httptest.NewRequest(http.MethodGet, "/carbon-insights", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var parsed struct {
		Insights string `json:"insights"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if parsed.Insights != "Keep it up." {
		t.Fatalf("expected verbatim insights, got %q", parsed.Insights)
	}
}

func TestFetchBillReserved(t *testing.T) {
	router := newTestRouter(&Service{Repo: NewMemoryRepo(), AI: &stubAI{}})

	req := httptest.NewRequest(http.MethodPost, "/fetch-bill", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotImplemented {
		t.Fatalf("expected 501, got %d", resp.Code)
	}
}
