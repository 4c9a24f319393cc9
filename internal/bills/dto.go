package bills

// billData merges the extracted fields with the computed emission, matching
// the upload response shape.
type billData struct {
	ExtractedFields
	CarbonEmitted string `json:"carbonEmitted"`
	NeedsReview   bool   `json:"needsReview"`
}

type uploadResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    billData `json:"data"`
}

type summaryResponse struct {
	Total   float64            `json:"total"`
	Monthly map[string]float64 `json:"monthly"`
}

type insightsResponse struct {
	Insights string `json:"insights"`
}

func toUploadResponse(result IngestResult) uploadResponse {
	return uploadResponse{
		Success: true,
		Message: "Bill processed successfully",
		Data: billData{
			ExtractedFields: result.Fields,
			CarbonEmitted:   result.CarbonEmitted,
			NeedsReview:     result.NeedsReview,
		},
	}
}
