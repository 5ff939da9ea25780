package analytics

import (
	"sort"

	"github.com/kent242/moneychat/internal/domain"
)

// Recent returns the subset ordered by occurred-at descending,
// truncated to limit. Equal timestamps keep their input order.
func Recent(txs []domain.Transaction, limit int) []domain.Transaction {
	out := make([]domain.Transaction, len(txs))
	copy(out, txs)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.After(out[j].OccurredAt)
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
