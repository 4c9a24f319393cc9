package bills

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Bill represents one processed utility-bill upload, raw bytes included.
type Bill struct {
	ID            string
	FileName      string
	MimeType      string
	Data          []byte
	Extracted     ExtractedFields
	CarbonEmitted string
	NeedsReview   bool
	UploadedAt    time.Time
}

// ExtractedFields is the fixed-shape object produced by structured-field
// extraction. Every field is optional; whatever the model omits stays unset.
type ExtractedFields struct {
	ConsumerName  *string        `json:"consumerName"`
	BillNumber    *string        `json:"billNumber"`
	BillingDate   *string        `json:"billingDate"`
	BillingMonth  *string        `json:"billingMonth"`
	UnitsConsumed NullableNumber `json:"unitsConsumed"`
	TotalAmount   NullableNumber `json:"totalAmount"`
	Address       *string        `json:"address"`
	TariffType    *string        `json:"tariffType"`
}

// NullableNumber is a numeric field tolerant of sloppy model output: JSON
// numbers, numeric strings, null, and junk all decode without failing the
// surrounding document. Junk and null simply leave the value unset.
type NullableNumber struct {
	Value float64
	Valid bool
}

// Number returns a set NullableNumber, for literals in tests and fixtures.
func Number(v float64) NullableNumber {
	return NullableNumber{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableNumber) UnmarshalJSON(data []byte) error {
	n.Value, n.Valid = 0, false
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return nil
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil
		}
		n.Value, n.Valid = parsed, true
		return nil
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil
	}
	n.Value, n.Valid = f, true
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n NullableNumber) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}
