// Package analytics computes the derived facets of a user's transaction
// history: summary totals, category breakdown, adaptive trend series and
// the recent-transactions list. Every function here is pure; time enters
// only through explicit parameters.
package analytics

import (
	"time"

	"github.com/kent242/moneychat/internal/domain"
)

// FilterRange returns the transactions whose occurred-at falls inside
// the inclusive [from, to] window. An inverted range (to before from)
// yields an empty result, not an error.
func FilterRange(txs []domain.Transaction, from, to time.Time) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.OccurredAt.Before(from) || tx.OccurredAt.After(to) {
			continue
		}
		out = append(out, tx)
	}
	return out
}
