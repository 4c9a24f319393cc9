package bills

import (
	"encoding/json"
	"fmt"
	"strings"
)

const fieldsPromptTemplate = `
Extract this text into JSON:
{
  "consumerName": "",
  "billNumber": "",
  "billingDate": "",
  "billingMonth": "",
  "unitsConsumed": 0,
  "totalAmount": 0,
  "address": "",
  "tariffType": ""
}
Here is the text:
%s`

// BuildFieldsPrompt embeds the raw bill text into the fixed extraction prompt.
func BuildFieldsPrompt(rawText string) string {
	return fmt.Sprintf(fieldsPromptTemplate, rawText)
}

// ParseFields parses a model response into ExtractedFields. Markdown code
// fences around the JSON are tolerated. Extra keys are ignored and missing
// keys stay unset; the only hard requirements are a non-blank response and
// parseable JSON.
func ParseFields(raw string) (ExtractedFields, error) {
	if strings.TrimSpace(raw) == "" {
		return ExtractedFields{}, ErrEmptyAIResponse
	}

	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return ExtractedFields{}, ErrEmptyAIResponse
	}

	var fields ExtractedFields
	if err := json.Unmarshal([]byte(cleaned), &fields); err != nil {
		return ExtractedFields{}, fmt.Errorf("%w: %v", ErrInvalidAIJSON, err)
	}
	return fields, nil
}
