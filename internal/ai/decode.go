package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kent242/moneychat/internal/domain"
)

// rawDraft is the wire shape of one extracted transaction. Amounts use
// json.Number because some models emit them as floats.
type rawDraft struct {
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Merchant    *string     `json:"merchant"`
	Confidence  *float64    `json:"confidence"`
	Reasoning   string      `json:"reasoning"`
}

// decodeDrafts parses the model response into drafts. The response is
// either a single draft object or an envelope with a "transactions"
// array; missing fields fall back to defaults the same way for both.
func decodeDrafts(raw, input string, defaultConfidence float64) ([]Draft, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	var rawDrafts []rawDraft
	if arr, ok := probe["transactions"]; ok {
		if err := json.Unmarshal(arr, &rawDrafts); err != nil {
			return nil, fmt.Errorf("unmarshal transactions array: %w", err)
		}
	} else {
		var single rawDraft
		if err := json.Unmarshal([]byte(raw), &single); err != nil {
			return nil, fmt.Errorf("unmarshal transaction object: %w", err)
		}
		rawDrafts = []rawDraft{single}
	}

	if len(rawDrafts) == 0 {
		return nil, fmt.Errorf("no transactions in response")
	}

	drafts := make([]Draft, 0, len(rawDrafts))
	for _, r := range rawDrafts {
		drafts = append(drafts, r.toDraft(input, defaultConfidence))
	}
	return drafts, nil
}

func (r rawDraft) toDraft(input string, defaultConfidence float64) Draft {
	d := Draft{
		Description: r.Description,
		Kind:        domain.Kind(r.Type),
		Category:    r.Category,
		Confidence:  defaultConfidence,
		Reasoning:   r.Reasoning,
	}
	if d.Description == "" {
		d.Description = input
	}
	if r.Amount != "" {
		// Tolerate float amounts; VND has no subunits so truncation
		// only drops model noise.
		if f, err := r.Amount.Float64(); err == nil {
			d.Amount = int64(f)
		}
	}
	if d.Kind == "" {
		d.Kind = domain.KindExpense
	}
	if d.Category == "" {
		d.Category = domain.CategoryOther
	}
	if r.Merchant != nil {
		d.Merchant = *r.Merchant
	}
	if r.Confidence != nil {
		d.Confidence = *r.Confidence
	}
	return d
}

// decodeClassification parses a classify response.
func decodeClassification(raw string, defaultConfidence float64) (Classification, error) {
	var wire struct {
		Category   string   `json:"category"`
		Confidence *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return Classification{}, fmt.Errorf("unmarshal response: %w", err)
	}

	cls := Classification{Category: wire.Category, Confidence: defaultConfidence}
	if cls.Category == "" {
		cls.Category = domain.CategoryOther
	}
	if wire.Confidence != nil {
		cls.Confidence = *wire.Confidence
	}
	return cls, nil
}

// cleanModelJSON strips Markdown fences and any stray text around the
// JSON payload when the model ignores formatting instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// If there is still junk around the JSON object, keep only from the
	// first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
