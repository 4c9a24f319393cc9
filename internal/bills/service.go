package bills

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"carbonwise-backend/internal/extract"
	"carbonwise-backend/internal/llm"
	"carbonwise-backend/internal/shared/metrics"
	"carbonwise-backend/internal/shared/telemetry"
)

const (
	recentBillCount = 5
	unknownMonth    = "Unknown"

	insightsPromptHeader = "Analyze the following monthly carbon usage:"
	insightsPromptFooter = "Give short insights and 3 actionable suggestions to reduce electricity-based emissions."
)

// Service contains the bill ingestion pipeline and aggregation reads.
type Service struct {
	Repo Repo
	AI   llm.Client
}

// IngestResult is the outcome of one processed upload.
type IngestResult struct {
	BillID        string
	Fields        ExtractedFields
	CarbonEmitted string
	NeedsReview   bool
}

// SummaryResult folds every stored bill into per-month and total emissions.
type SummaryResult struct {
	Total   float64
	Monthly map[string]float64
}

// Ingest runs the pipeline for one uploaded file: text extraction,
// structured-field extraction, emission calculation, persistence. Each step
// depends on the previous succeeding; nothing is retried or rolled back.
func (s *Service) Ingest(ctx context.Context, fileName, mimeType string, data []byte) (IngestResult, error) {
	start := metrics.NowMillis()
	result, err := s.ingest(ctx, fileName, mimeType, data)
	metrics.ObserveIngestDurationMs(metrics.NowMillis() - start)
	if err != nil {
		metrics.IncBillsIngestFailed()
		return IngestResult{}, err
	}
	metrics.IncBillsIngested()
	return result, nil
}

func (s *Service) ingest(ctx context.Context, fileName, mimeType string, data []byte) (IngestResult, error) {
	text, err := extract.ExtractTextFromBytes(ctx, s.AI, data, mimeType)
	if err != nil {
		return IngestResult{}, fmt.Errorf("ingest %s: %w", fileName, err)
	}

	raw, err := s.AI.GenerateText(ctx, BuildFieldsPrompt(text))
	if err != nil {
		return IngestResult{}, fmt.Errorf("ingest %s: structured extraction: %w", fileName, err)
	}

	fields, err := ParseFields(raw)
	if err != nil {
		return IngestResult{}, err
	}

	// Absent or non-numeric unitsConsumed yields a zero emission and flags
	// the record for review instead of persisting a NaN.
	units := 0.0
	needsReview := !fields.UnitsConsumed.Valid
	if fields.UnitsConsumed.Valid {
		units = fields.UnitsConsumed.Value
	}
	carbon := CalcCarbon(units)

	bill := Bill{
		ID:            uuid.NewString(),
		FileName:      fileName,
		MimeType:      mimeType,
		Data:          data,
		Extracted:     fields,
		CarbonEmitted: carbon,
		NeedsReview:   needsReview,
		UploadedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, bill); err != nil {
		return IngestResult{}, fmt.Errorf("ingest %s: persist: %w", fileName, err)
	}

	if needsReview {
		telemetry.Warn("bill.needs_review", map[string]any{
			"bill_id":   bill.ID,
			"file_name": fileName,
		})
	}
	telemetry.Info("bill.ingested", map[string]any{
		"bill_id":        bill.ID,
		"file_name":      fileName,
		"mime_type":      mimeType,
		"carbon_emitted": carbon,
	})

	return IngestResult{
		BillID:        bill.ID,
		Fields:        fields,
		CarbonEmitted: carbon,
		NeedsReview:   needsReview,
	}, nil
}

// Summary reads every stored bill and folds emissions into a total plus a
// per-month map. Unparseable emission values count as zero; bills without a
// billing month accumulate under "Unknown".
func (s *Service) Summary(ctx context.Context) (SummaryResult, error) {
	records, err := s.Repo.ListAll(ctx)
	if err != nil {
		return SummaryResult{}, fmt.Errorf("summary: %w", err)
	}

	out := SummaryResult{Monthly: make(map[string]float64)}
	for _, bill := range records {
		month := unknownMonth
		if bill.Extracted.BillingMonth != nil && *bill.Extracted.BillingMonth != "" {
			month = *bill.Extracted.BillingMonth
		}
		emitted, err := strconv.ParseFloat(strings.TrimSpace(bill.CarbonEmitted), 64)
		if err != nil {
			emitted = 0
		}
		out.Monthly[month] += emitted
		out.Total += emitted
	}
	return out, nil
}

// Insights formats the five most recent bills into a usage digest and asks
// the model for reduction advice. The model's text is returned verbatim.
func (s *Service) Insights(ctx context.Context) (string, error) {
	records, err := s.Repo.ListRecent(ctx, recentBillCount)
	if err != nil {
		return "", fmt.Errorf("insights: %w", err)
	}

	lines := make([]string, 0, len(records))
	for _, bill := range records {
		month := unknownMonth
		if bill.Extracted.BillingMonth != nil && *bill.Extracted.BillingMonth != "" {
			month = *bill.Extracted.BillingMonth
		}
		emitted := bill.CarbonEmitted
		if strings.TrimSpace(emitted) == "" {
			emitted = "0"
		}
		lines = append(lines, fmt.Sprintf("%s: %s kg CO2", month, emitted))
	}

	prompt := fmt.Sprintf("%s\n%s\n%s", insightsPromptHeader, strings.Join(lines, "\n"), insightsPromptFooter)
	insights, err := s.AI.GenerateText(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("insights: %w", err)
	}
	return insights, nil
}
