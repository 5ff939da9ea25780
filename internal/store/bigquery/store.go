// Package bigquery persists transactions and categories in BigQuery.
// The store holds one shared client; create it once at startup and
// Close it on shutdown.
package bigquery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/kent242/moneychat/internal/config"
	"github.com/kent242/moneychat/internal/domain"
	"github.com/kent242/moneychat/internal/store"
)

const (
	transactionsTable = "transactions"
	categoriesTable   = "categories"
)

// Store implements store.TransactionStore and store.CategoryStore on
// top of BigQuery.
type Store struct {
	client  *bigquery.Client
	project string
	dataset string
}

// NewStore creates a Store with a shared BigQuery client.
func NewStore(ctx context.Context, cfg config.BigQueryConfig) (*Store, error) {
	client, err := bigquery.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery store: creating client: %w", err)
	}
	return &Store{client: client, project: cfg.ProjectID, dataset: cfg.Dataset}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *Store) qualified(table string) string {
	return "`" + s.project + "." + s.dataset + "." + table + "`"
}

// Insert implements TransactionStore via the streaming inserter.
func (s *Store) Insert(ctx context.Context, tx domain.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("bigquery store: transaction ID is required")
	}

	table := s.client.DatasetInProject(s.project, s.dataset).Table(transactionsTable)
	if err := table.Inserter().Put(ctx, []*TransactionRow{toTransactionRow(tx)}); err != nil {
		return fmt.Errorf("bigquery store: inserting transaction: %w", err)
	}
	return nil
}

// Get implements TransactionStore.
func (s *Store) Get(ctx context.Context, userID, id string) (domain.Transaction, error) {
	q := s.client.Query(`
		SELECT *
		FROM ` + s.qualified(transactionsTable) + `
		WHERE transaction_id = @id
		  AND user_id = @user_id
		LIMIT 1
	`)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "id", Value: id},
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("bigquery store: get transaction: %w", err)
	}

	var row TransactionRow
	if err := it.Next(&row); err == iterator.Done {
		return domain.Transaction{}, store.ErrNotFound
	} else if err != nil {
		return domain.Transaction{}, fmt.Errorf("bigquery store: get transaction: %w", err)
	}
	return row.toDomain(), nil
}

// ListByUser implements TransactionStore. Rows come back ordered by
// occurred-at descending.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]domain.Transaction, error) {
	q := s.client.Query(`
		SELECT *
		FROM ` + s.qualified(transactionsTable) + `
		WHERE user_id = @user_id
		ORDER BY occurred_at DESC, created_ts DESC
	`)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	return s.readTransactions(ctx, q)
}

// List implements TransactionStore with filtering and pagination. The
// total count comes from a separate COUNT query over the same filter.
func (s *Store) List(ctx context.Context, filter store.ListFilter) (store.Page, error) {
	where, params := buildFilter(filter)

	countQ := s.client.Query(`
		SELECT COUNT(*) AS total
		FROM ` + s.qualified(transactionsTable) + `
		WHERE ` + where)
	countQ.Parameters = params

	it, err := countQ.Read(ctx)
	if err != nil {
		return store.Page{}, fmt.Errorf("bigquery store: count transactions: %w", err)
	}
	var countRow struct {
		Total int64 `bigquery:"total"`
	}
	if err := it.Next(&countRow); err != nil && err != iterator.Done {
		return store.Page{}, fmt.Errorf("bigquery store: count transactions: %w", err)
	}

	q := s.client.Query(`
		SELECT *
		FROM ` + s.qualified(transactionsTable) + `
		WHERE ` + where + `
		ORDER BY occurred_at DESC, created_ts DESC
		LIMIT @limit OFFSET @offset
	`)
	q.Parameters = append(params,
		bigquery.QueryParameter{Name: "limit", Value: int64(filter.Limit)},
		bigquery.QueryParameter{Name: "offset", Value: int64((filter.Page - 1) * filter.Limit)},
	)

	txs, err := s.readTransactions(ctx, q)
	if err != nil {
		return store.Page{}, err
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}

	return store.Page{
		Transactions: txs,
		Total:        int(countRow.Total),
		Page:         filter.Page,
		Limit:        filter.Limit,
	}, nil
}

func buildFilter(filter store.ListFilter) (string, []bigquery.QueryParameter) {
	conds := []string{"user_id = @user_id"}
	params := []bigquery.QueryParameter{
		{Name: "user_id", Value: filter.UserID},
	}
	if filter.Category != "" {
		conds = append(conds, "category = @category")
		params = append(params, bigquery.QueryParameter{Name: "category", Value: filter.Category})
	}
	if filter.Kind != "" {
		conds = append(conds, "kind = @kind")
		params = append(params, bigquery.QueryParameter{Name: "kind", Value: string(filter.Kind)})
	}
	if filter.From != nil {
		conds = append(conds, "occurred_at >= @from")
		params = append(params, bigquery.QueryParameter{Name: "from", Value: *filter.From})
	}
	if filter.To != nil {
		conds = append(conds, "occurred_at <= @to")
		params = append(params, bigquery.QueryParameter{Name: "to", Value: *filter.To})
	}
	return strings.Join(conds, "\n\t\t  AND "), params
}

// Update implements TransactionStore via DML. Only the provided fields
// change; updated_ts always advances.
func (s *Store) Update(ctx context.Context, userID, id string, upd store.TransactionUpdate) (domain.Transaction, error) {
	sets := []string{"updated_ts = @updated_ts"}
	params := []bigquery.QueryParameter{
		{Name: "updated_ts", Value: time.Now().UTC()},
		{Name: "id", Value: id},
		{Name: "user_id", Value: userID},
	}
	if upd.Description != nil {
		sets = append(sets, "description = @description")
		params = append(params, bigquery.QueryParameter{Name: "description", Value: *upd.Description})
	}
	if upd.Amount != nil {
		sets = append(sets, "amount = @amount")
		params = append(params, bigquery.QueryParameter{Name: "amount", Value: *upd.Amount})
	}
	if upd.Kind != nil {
		sets = append(sets, "kind = @kind")
		params = append(params, bigquery.QueryParameter{Name: "kind", Value: string(*upd.Kind)})
	}
	if upd.Category != nil {
		sets = append(sets, "category = @category")
		params = append(params, bigquery.QueryParameter{Name: "category", Value: *upd.Category})
	}
	if upd.OccurredAt != nil {
		sets = append(sets, "occurred_at = @occurred_at")
		params = append(params, bigquery.QueryParameter{Name: "occurred_at", Value: *upd.OccurredAt})
	}

	q := s.client.Query(`
		UPDATE ` + s.qualified(transactionsTable) + `
		SET ` + strings.Join(sets, ", ") + `
		WHERE transaction_id = @id
		  AND user_id = @user_id
	`)
	q.Parameters = params

	n, err := s.runDML(ctx, q)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("bigquery store: update transaction: %w", err)
	}
	if n == 0 {
		return domain.Transaction{}, store.ErrNotFound
	}

	return s.Get(ctx, userID, id)
}

// Delete implements TransactionStore via DML scoped to the owner.
func (s *Store) Delete(ctx context.Context, userID, id string) error {
	q := s.client.Query(`
		DELETE FROM ` + s.qualified(transactionsTable) + `
		WHERE transaction_id = @id
		  AND user_id = @user_id
	`)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "id", Value: id},
		{Name: "user_id", Value: userID},
	}

	n, err := s.runDML(ctx, q)
	if err != nil {
		return fmt.Errorf("bigquery store: delete transaction: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DistinctCategories implements TransactionStore.
func (s *Store) DistinctCategories(ctx context.Context, userID string) ([]string, error) {
	q := s.client.Query(`
		SELECT DISTINCT category
		FROM ` + s.qualified(transactionsTable) + `
		WHERE user_id = @user_id
		ORDER BY category
	`)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("bigquery store: distinct categories: %w", err)
	}

	var names []string
	for {
		var row struct {
			Category string `bigquery:"category"`
		}
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bigquery store: distinct categories: %w", err)
		}
		names = append(names, row.Category)
	}
	return names, nil
}

// InsertCategory implements CategoryStore.
func (s *Store) InsertCategory(ctx context.Context, cat domain.Category) error {
	if cat.ID == "" {
		return fmt.Errorf("bigquery store: category ID is required")
	}

	table := s.client.DatasetInProject(s.project, s.dataset).Table(categoriesTable)
	if err := table.Inserter().Put(ctx, []*CategoryRow{toCategoryRow(cat)}); err != nil {
		return fmt.Errorf("bigquery store: inserting category: %w", err)
	}
	return nil
}

// ListCategoriesForUser implements CategoryStore: defaults plus the
// user's own, defaults first.
func (s *Store) ListCategoriesForUser(ctx context.Context, userID string) ([]domain.Category, error) {
	q := s.client.Query(`
		SELECT *
		FROM ` + s.qualified(categoriesTable) + `
		WHERE is_default
		   OR user_id = @user_id
		ORDER BY is_default DESC, name
	`)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("bigquery store: list categories: %w", err)
	}

	var cats []domain.Category
	for {
		var row CategoryRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bigquery store: list categories: %w", err)
		}
		cats = append(cats, row.toDomain())
	}
	return cats, nil
}

// Categories returns a CategoryStore view of the store.
func (s *Store) Categories() store.CategoryStore {
	return categoryStoreAdapter{s: s}
}

type categoryStoreAdapter struct{ s *Store }

func (a categoryStoreAdapter) Insert(ctx context.Context, cat domain.Category) error {
	return a.s.InsertCategory(ctx, cat)
}

func (a categoryStoreAdapter) ListForUser(ctx context.Context, userID string) ([]domain.Category, error) {
	return a.s.ListCategoriesForUser(ctx, userID)
}

func (s *Store) readTransactions(ctx context.Context, q *bigquery.Query) ([]domain.Transaction, error) {
	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("bigquery store: query read: %w", err)
	}

	var txs []domain.Transaction
	for {
		var row TransactionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bigquery store: iterating rows: %w", err)
		}
		txs = append(txs, row.toDomain())
	}
	return txs, nil
}

// runDML runs a mutation and returns the number of affected rows.
func (s *Store) runDML(ctx context.Context, q *bigquery.Query) (int64, error) {
	job, err := q.Run(ctx)
	if err != nil {
		return 0, fmt.Errorf("run query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return 0, fmt.Errorf("wait for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return 0, fmt.Errorf("job error: %w", err)
	}

	if qs, ok := status.Statistics.Details.(*bigquery.QueryStatistics); ok {
		return qs.NumDMLAffectedRows, nil
	}
	return 0, nil
}

// Ensure Store implements TransactionStore.
var _ store.TransactionStore = (*Store)(nil)
