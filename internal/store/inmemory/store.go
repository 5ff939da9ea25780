// Package inmemory keeps transactions and categories in process memory.
// It backs tests and local development; data is lost on restart.
package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/kent242/moneychat/internal/domain"
	"github.com/kent242/moneychat/internal/store"
)

// Store is an in-memory implementation of both TransactionStore and
// CategoryStore. Safe for concurrent use.
type Store struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction
	categories   map[string]*domain.Category

	now func() time.Time
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		transactions: make(map[string]*domain.Transaction),
		categories:   make(map[string]*domain.Category),
		now:          time.Now,
	}
}

// Insert implements TransactionStore.
func (s *Store) Insert(ctx context.Context, tx domain.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Store a copy to avoid external modifications
	txCopy := tx
	s.transactions[tx.ID] = &txCopy

	return nil
}

// Get implements TransactionStore. A record owned by another user is
// reported as not found.
func (s *Store) Get(ctx context.Context, userID, id string) (domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, exists := s.transactions[id]
	if !exists || tx.UserID != userID {
		return domain.Transaction{}, store.ErrNotFound
	}

	return *tx, nil
}

// ListByUser implements TransactionStore. Results come back ordered by
// occurred-at descending.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Transaction
	for _, tx := range s.transactions {
		if tx.UserID != userID {
			continue
		}
		result = append(result, *tx)
	}

	sortByDateDesc(result)
	return result, nil
}

// List implements TransactionStore with filtering and pagination.
func (s *Store) List(ctx context.Context, filter store.ListFilter) (store.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Transaction
	for _, tx := range s.transactions {
		if tx.UserID != filter.UserID {
			continue
		}
		if filter.Category != "" && tx.Category != filter.Category {
			continue
		}
		if filter.Kind != "" && tx.Kind != filter.Kind {
			continue
		}
		if filter.From != nil && tx.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && tx.OccurredAt.After(*filter.To) {
			continue
		}
		result = append(result, *tx)
	}

	sortByDateDesc(result)

	page := store.Page{Total: len(result), Page: filter.Page, Limit: filter.Limit}

	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(result) {
		page.Transactions = []domain.Transaction{}
		return page, nil
	}
	result = result[offset:]
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	page.Transactions = result

	return page, nil
}

// Update implements TransactionStore. Only non-nil fields change; the
// stored UpdatedAt always advances.
func (s *Store) Update(ctx context.Context, userID, id string, upd store.TransactionUpdate) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, exists := s.transactions[id]
	if !exists || tx.UserID != userID {
		return domain.Transaction{}, store.ErrNotFound
	}

	if upd.Description != nil {
		tx.Description = *upd.Description
	}
	if upd.Amount != nil {
		tx.Amount = *upd.Amount
	}
	if upd.Kind != nil {
		tx.Kind = *upd.Kind
	}
	if upd.Category != nil {
		tx.Category = *upd.Category
	}
	if upd.OccurredAt != nil {
		tx.OccurredAt = *upd.OccurredAt
	}
	tx.UpdatedAt = s.now()

	return *tx, nil
}

// Delete implements TransactionStore.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, exists := s.transactions[id]
	if !exists || tx.UserID != userID {
		return store.ErrNotFound
	}

	delete(s.transactions, id)
	return nil
}

// DistinctCategories implements TransactionStore. Names come back
// sorted alphabetically.
func (s *Store) DistinctCategories(ctx context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool)
	var names []string
	for _, tx := range s.transactions {
		if tx.UserID != userID || seen[tx.Category] {
			continue
		}
		seen[tx.Category] = true
		names = append(names, tx.Category)
	}

	sort.Strings(names)
	return names, nil
}

// InsertCategory implements CategoryStore.
func (s *Store) InsertCategory(ctx context.Context, cat domain.Category) error {
	if cat.ID == "" {
		return fmt.Errorf("category ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	catCopy := cat
	s.categories[cat.ID] = &catCopy

	return nil
}

// ListCategoriesForUser implements CategoryStore. It returns the
// default taxonomy plus the user's own categories, defaults first,
// each group sorted by name.
func (s *Store) ListCategoriesForUser(ctx context.Context, userID string) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Category
	for _, cat := range s.categories {
		if !cat.IsDefault && cat.UserID != userID {
			continue
		}
		result = append(result, *cat)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].IsDefault != result[j].IsDefault {
			return result[i].IsDefault
		}
		return result[i].Name < result[j].Name
	})

	return result, nil
}

func sortByDateDesc(txs []domain.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].OccurredAt.After(txs[j].OccurredAt)
	})
}

// categoryStoreAdapter exposes the Store's category methods under the
// CategoryStore method names.
type categoryStoreAdapter struct{ s *Store }

// Categories returns a CategoryStore view of the store.
func (s *Store) Categories() store.CategoryStore {
	return categoryStoreAdapter{s: s}
}

func (a categoryStoreAdapter) Insert(ctx context.Context, cat domain.Category) error {
	return a.s.InsertCategory(ctx, cat)
}

func (a categoryStoreAdapter) ListForUser(ctx context.Context, userID string) ([]domain.Category, error) {
	return a.s.ListCategoriesForUser(ctx, userID)
}

// Ensure Store implements TransactionStore.
var _ store.TransactionStore = (*Store)(nil)
