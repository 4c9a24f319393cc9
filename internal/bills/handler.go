package bills

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"carbonwise-backend/internal/extract"
	"carbonwise-backend/internal/shared/server/respond"
)

// maxUploadBytes caps uploaded bill files at 25 MiB.
const maxUploadBytes = 25 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches bill routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/upload-bill", h.upload)
	rg.GET("/emissions-summary", h.summary)
	rg.GET("/carbon-insights", h.insights)
	rg.POST("/fetch-bill", h.fetchBill)
}

func (h *Handler) upload(c *gin.Context) {
	// Multipart framing adds overhead beyond the file itself; the per-file
	// limit is enforced against the reported file size below.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+(1<<20))

	fileHeader, err := c.FormFile("bill")
	if err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "File exceeds the 25 MiB limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file uploaded", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "payload_too_large", "File exceeds the 25 MiB limit", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if !extract.IsSupportedMimeType(mimeType) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Only PDF, JPG, PNG allowed", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Unable to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Unable to read file", nil)
		return
	}

	result, err := h.Svc.Ingest(c.Request.Context(), fileHeader.Filename, mimeType, data)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyAIResponse):
			respond.Error(c, http.StatusInternalServerError, "extraction_failed", ErrEmptyAIResponse.Error(), nil)
		case errors.Is(err, ErrInvalidAIJSON):
			respond.Error(c, http.StatusInternalServerError, "extraction_failed", ErrInvalidAIJSON.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to process bill", nil)
		}
		return
	}

	c.Set("billId", result.BillID)
	respond.OK(c, toUploadResponse(result))
}

func (h *Handler) summary(c *gin.Context) {
	result, err := h.Svc.Summary(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch summary", nil)
		return
	}
	respond.OK(c, summaryResponse{Total: result.Total, Monthly: result.Monthly})
}

func (h *Handler) insights(c *gin.Context) {
	insights, err := h.Svc.Insights(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to generate insights", nil)
		return
	}
	respond.OK(c, insightsResponse{Insights: insights})
}

// fetchBill is reserved for consumer-number lookups.
func (h *Handler) fetchBill(c *gin.Context) {
	respond.Error(c, http.StatusNotImplemented, "not_implemented", "fetch-bill is not implemented", nil)
}
