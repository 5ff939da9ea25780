// Package store defines the persistence contracts the service depends
// on. Two backends implement them: inmemory for tests and local runs,
// bigquery for the real deployment.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/kent242/moneychat/internal/domain"
)

// ErrNotFound is returned when a record does not exist or belongs to a
// different user. Callers cannot distinguish the two cases.
var ErrNotFound = errors.New("record not found")

// ListFilter narrows a paginated transaction listing. Zero values mean
// "no constraint" for the optional fields.
type ListFilter struct {
	UserID   string
	Category string
	Kind     domain.Kind
	From     *time.Time
	To       *time.Time
	Page     int
	Limit    int
}

// TransactionUpdate carries the mutable fields of a transaction. Nil
// pointers leave the stored value untouched.
type TransactionUpdate struct {
	Description *string
	Amount      *int64
	Kind        *domain.Kind
	Category    *string
	OccurredAt  *time.Time
}

// Page is one page of a transaction listing plus enough metadata for
// the client to keep paging.
type Page struct {
	Transactions []domain.Transaction
	Total        int
	Page         int
	Limit        int
}

// TransactionStore persists transactions. All reads and writes are
// scoped to a single user; an operation on another user's record
// behaves as if the record did not exist.
type TransactionStore interface {
	Insert(ctx context.Context, tx domain.Transaction) error
	Get(ctx context.Context, userID, id string) (domain.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error)
	List(ctx context.Context, filter ListFilter) (Page, error)
	Update(ctx context.Context, userID, id string, upd TransactionUpdate) (domain.Transaction, error)
	Delete(ctx context.Context, userID, id string) error
	DistinctCategories(ctx context.Context, userID string) ([]string, error)
}

// CategoryStore persists the category taxonomy: the shared defaults
// plus any per-user additions.
type CategoryStore interface {
	Insert(ctx context.Context, cat domain.Category) error
	ListForUser(ctx context.Context, userID string) ([]domain.Category, error)
}
