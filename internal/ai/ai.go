// Package ai turns natural-language chat messages into transaction
// drafts and classifies free-text descriptions into categories using
// Gemini. Callers depend on the Parser and Classifier interfaces so
// tests can substitute deterministic fakes.
package ai

import (
	"context"

	"github.com/kent242/moneychat/internal/domain"
)

// Draft is one transaction the model extracted from a chat message.
// Amounts are whole VND.
type Draft struct {
	Description string      `json:"description"`
	Amount      int64       `json:"amount"`
	Kind        domain.Kind `json:"type"`
	Category    string      `json:"category"`
	Merchant    string      `json:"merchant,omitempty"`
	Confidence  float64     `json:"confidence"`
	Reasoning   string      `json:"reasoning,omitempty"`
}

// Classification is the model's category pick for one description.
type Classification struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
}

// Parser extracts transaction drafts from a free-form chat message.
// The category names constrain what the model may pick.
type Parser interface {
	ParseMessage(ctx context.Context, message string, names domain.CategoryNames) ([]Draft, error)
}

// Classifier picks a category for a transaction description.
type Classifier interface {
	Classify(ctx context.Context, description string, categories []string) (Classification, error)
}
