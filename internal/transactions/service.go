// Package transactions implements the direct transaction operations:
// create with optional AI categorization, paginated listing, updates
// and deletes scoped to the owning user.
package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kent242/moneychat/internal/ai"
	"github.com/kent242/moneychat/internal/domain"
	"github.com/kent242/moneychat/internal/store"
)

// ErrInvalid marks a caller mistake; handlers map it to a 400.
var ErrInvalid = errors.New("invalid input")

// Listing bounds.
const (
	maxPageSize     = 100
	defaultPageSize = 10
)

// Service wires the transaction store to the classifier.
type Service struct {
	store      store.TransactionStore
	categories store.CategoryStore
	classifier ai.Classifier
	log        zerolog.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a transaction service. classifier may be nil when
// AI categorization is disabled.
func NewService(txStore store.TransactionStore, catStore store.CategoryStore, classifier ai.Classifier, log zerolog.Logger) *Service {
	return &Service{
		store:      txStore,
		categories: catStore,
		classifier: classifier,
		log:        log,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// CreateInput carries the caller-supplied fields of a new transaction.
type CreateInput struct {
	Description string
	Amount      int64
	Kind        domain.Kind
	Category    string
	Merchant    string
	OccurredAt  time.Time
}

// Create validates and persists a new transaction. When the category
// is empty and useAI is set, the classifier picks one; a classifier
// failure falls back to "Other" and never blocks the write.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput, useAI bool) (domain.Transaction, error) {
	now := s.now()
	tx := domain.Transaction{
		ID:          s.newID(),
		UserID:      userID,
		Description: in.Description,
		Amount:      in.Amount,
		Kind:        in.Kind,
		Category:    in.Category,
		Merchant:    in.Merchant,
		OccurredAt:  in.OccurredAt,
		CreatedAt:   now,
	}
	if tx.Kind == "" {
		tx.Kind = domain.KindExpense
	}
	if tx.OccurredAt.IsZero() {
		tx.OccurredAt = now
	}

	if tx.Category == "" {
		tx.Category = domain.CategoryOther
		if useAI && s.classifier != nil {
			s.categorize(ctx, &tx)
		}
	}

	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := s.store.Insert(ctx, tx); err != nil {
		return domain.Transaction{}, fmt.Errorf("transactions: create: %w", err)
	}

	s.log.Info().
		Str("transaction_id", tx.ID).
		Str("category", tx.Category).
		Bool("ai_categorized", tx.AICategorized).
		Msg("transaction created")

	return tx, nil
}

// categorize asks the classifier for a category and resolves it against
// the user's taxonomy. Any failure leaves the fallback in place.
func (s *Service) categorize(ctx context.Context, tx *domain.Transaction) {
	names, err := s.categoryNames(ctx, tx.UserID, tx.Kind)
	if err != nil {
		s.log.Warn().Err(err).Msg("loading categories for classification failed")
		return
	}

	cls, err := s.classifier.Classify(ctx, tx.Description, names)
	if err != nil {
		s.log.Warn().Err(err).Str("description", tx.Description).Msg("classification failed, using fallback category")
		return
	}

	tx.Category = ai.ResolveCategory(cls.Category, names)
	tx.AICategorized = true
	tx.AIConfidence = cls.Confidence
}

func (s *Service) categoryNames(ctx context.Context, userID string, kind domain.Kind) ([]string, error) {
	cats, err := s.categories.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := domain.NamesByType(cats)
	if kind == domain.KindIncome {
		return names.Income, nil
	}
	return names.Expense, nil
}

// List returns one page of the user's transactions. Page must be at
// least 1; limit is clamped to [1, 100] with a default of 20.
func (s *Service) List(ctx context.Context, filter store.ListFilter) (store.Page, error) {
	if filter.Page < 1 {
		return store.Page{}, fmt.Errorf("%w: page must be at least 1", ErrInvalid)
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit < 1 || filter.Limit > maxPageSize {
		return store.Page{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalid, maxPageSize)
	}
	if filter.Kind != "" && !filter.Kind.Valid() {
		return store.Page{}, fmt.Errorf("%w: unknown type %q", ErrInvalid, filter.Kind)
	}

	page, err := s.store.List(ctx, filter)
	if err != nil {
		return store.Page{}, fmt.Errorf("transactions: list: %w", err)
	}
	return page, nil
}

// Update applies the provided fields to an owned transaction.
func (s *Service) Update(ctx context.Context, userID, id string, upd store.TransactionUpdate) (domain.Transaction, error) {
	if upd.Amount != nil && *upd.Amount <= 0 {
		return domain.Transaction{}, fmt.Errorf("%w: amount must be positive", ErrInvalid)
	}
	if upd.Kind != nil && !upd.Kind.Valid() {
		return domain.Transaction{}, fmt.Errorf("%w: unknown type %q", ErrInvalid, *upd.Kind)
	}
	if upd.Description != nil && *upd.Description == "" {
		return domain.Transaction{}, fmt.Errorf("%w: description must not be empty", ErrInvalid)
	}
	if upd.Category != nil && *upd.Category == "" {
		return domain.Transaction{}, fmt.Errorf("%w: category must not be empty", ErrInvalid)
	}

	tx, err := s.store.Update(ctx, userID, id, upd)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Transaction{}, err
		}
		return domain.Transaction{}, fmt.Errorf("transactions: update: %w", err)
	}

	s.log.Info().Str("transaction_id", id).Msg("transaction updated")
	return tx, nil
}

// Delete removes an owned transaction.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.store.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return err
		}
		return fmt.Errorf("transactions: delete: %w", err)
	}

	s.log.Info().Str("transaction_id", id).Msg("transaction deleted")
	return nil
}

// DistinctCategories lists the category names the user has actually
// used, for filter dropdowns.
func (s *Service) DistinctCategories(ctx context.Context, userID string) ([]string, error) {
	names, err := s.store.DistinctCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("transactions: distinct categories: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}
