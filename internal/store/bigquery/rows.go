package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/kent242/moneychat/internal/domain"
)

// TransactionRow mirrors the moneychat.transactions table schema.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED
	UserID        string `bigquery:"user_id"`        // REQUIRED

	Description string `bigquery:"description"` // REQUIRED
	Amount      int64  `bigquery:"amount"`      // REQUIRED INT64, whole VND
	Kind        string `bigquery:"kind"`        // REQUIRED, income|expense
	Category    string `bigquery:"category"`    // REQUIRED

	Merchant bigquery.NullString `bigquery:"merchant"` // NULLABLE

	OccurredAt time.Time `bigquery:"occurred_at"` // REQUIRED TIMESTAMP

	AICategorized bool    `bigquery:"ai_categorized"`
	AIConfidence  float64 `bigquery:"ai_confidence"`

	CreatedTS time.Time              `bigquery:"created_ts"` // REQUIRED
	UpdatedTS bigquery.NullTimestamp `bigquery:"updated_ts"` // NULLABLE
}

// CategoryRow mirrors the moneychat.categories table schema.
type CategoryRow struct {
	CategoryID string `bigquery:"category_id"` // REQUIRED
	Name       string `bigquery:"name"`        // REQUIRED
	Type       string `bigquery:"type"`        // REQUIRED, income|expense|both

	Icon  bigquery.NullString `bigquery:"icon"`
	Color bigquery.NullString `bigquery:"color"`

	IsDefault bool                `bigquery:"is_default"`
	UserID    bigquery.NullString `bigquery:"user_id"` // NULLABLE for defaults

	CreatedTS time.Time `bigquery:"created_ts"`
}

func toTransactionRow(tx domain.Transaction) *TransactionRow {
	row := &TransactionRow{
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		Description:   tx.Description,
		Amount:        tx.Amount,
		Kind:          string(tx.Kind),
		Category:      tx.Category,
		OccurredAt:    tx.OccurredAt,
		AICategorized: tx.AICategorized,
		AIConfidence:  tx.AIConfidence,
		CreatedTS:     tx.CreatedAt,
	}
	if tx.Merchant != "" {
		row.Merchant = bigquery.NullString{StringVal: tx.Merchant, Valid: true}
	}
	if !tx.UpdatedAt.IsZero() {
		row.UpdatedTS = bigquery.NullTimestamp{Timestamp: tx.UpdatedAt, Valid: true}
	}
	return row
}

func (r *TransactionRow) toDomain() domain.Transaction {
	tx := domain.Transaction{
		ID:            r.TransactionID,
		UserID:        r.UserID,
		Description:   r.Description,
		Amount:        r.Amount,
		Kind:          domain.Kind(r.Kind),
		Category:      r.Category,
		OccurredAt:    r.OccurredAt,
		AICategorized: r.AICategorized,
		AIConfidence:  r.AIConfidence,
		CreatedAt:     r.CreatedTS,
	}
	if r.Merchant.Valid {
		tx.Merchant = r.Merchant.StringVal
	}
	if r.UpdatedTS.Valid {
		tx.UpdatedAt = r.UpdatedTS.Timestamp
	}
	return tx
}

func toCategoryRow(cat domain.Category) *CategoryRow {
	row := &CategoryRow{
		CategoryID: cat.ID,
		Name:       cat.Name,
		Type:       string(cat.Type),
		IsDefault:  cat.IsDefault,
		CreatedTS:  cat.CreatedAt,
	}
	if cat.Icon != "" {
		row.Icon = bigquery.NullString{StringVal: cat.Icon, Valid: true}
	}
	if cat.Color != "" {
		row.Color = bigquery.NullString{StringVal: cat.Color, Valid: true}
	}
	if cat.UserID != "" {
		row.UserID = bigquery.NullString{StringVal: cat.UserID, Valid: true}
	}
	return row
}

func (r *CategoryRow) toDomain() domain.Category {
	cat := domain.Category{
		ID:        r.CategoryID,
		Name:      r.Name,
		Type:      domain.CategoryType(r.Type),
		IsDefault: r.IsDefault,
		CreatedAt: r.CreatedTS,
	}
	if r.Icon.Valid {
		cat.Icon = r.Icon.StringVal
	}
	if r.Color.Valid {
		cat.Color = r.Color.StringVal
	}
	if r.UserID.Valid {
		cat.UserID = r.UserID.StringVal
	}
	return cat
}
