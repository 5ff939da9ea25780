package domain

import (
	"fmt"
	"time"
)

// Kind is the direction of a transaction. Exactly one of the two values
// applies to every record; aggregation code switches exhaustively on it.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Transaction is one money record owned by a single user. Amounts are
// whole VND units (the currency has no subdivision), always positive;
// the direction lives in Kind, never in the sign.
type Transaction struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`

	Description string `json:"description"`
	Amount      int64  `json:"amount"`
	Kind        Kind   `json:"type"`
	Category    string `json:"category"`
	Merchant    string `json:"merchant,omitempty"`

	// OccurredAt is the economically relevant point in time, distinct
	// from CreatedAt which the store maintains.
	OccurredAt time.Time `json:"date"`

	AICategorized bool    `json:"aiCategorized"`
	AIConfidence  float64 `json:"aiConfidence,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate checks the invariants enforced at creation and at edit.
func (t *Transaction) Validate() error {
	if t.UserID == "" {
		return fmt.Errorf("transaction: user id is required")
	}
	if t.Description == "" {
		return fmt.Errorf("transaction: description is required")
	}
	if t.Amount <= 0 {
		return fmt.Errorf("transaction: amount must be greater than 0, got %d", t.Amount)
	}
	if !t.Kind.Valid() {
		return fmt.Errorf("transaction: invalid kind %q", t.Kind)
	}
	if t.AIConfidence < 0 || t.AIConfidence > 1 {
		return fmt.Errorf("transaction: confidence %v out of [0,1]", t.AIConfidence)
	}
	return nil
}
