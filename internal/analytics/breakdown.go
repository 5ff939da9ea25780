package analytics

import (
	"sort"

	"github.com/kent242/moneychat/internal/domain"
)

// CategoryShare is one row of the expense breakdown: how much a
// category absorbed and its share of total expense.
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     int64   `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Breakdown groups expense transactions by category label and computes
// each group's share of the total expense in the subset. Income records
// are excluded: the breakdown answers "where did spending go". Groups
// come back sorted by amount descending; equal amounts keep the order
// their categories were first encountered in. When total expense is
// zero every percentage is zero.
func Breakdown(txs []domain.Transaction) []CategoryShare {
	sums := make(map[string]int64)
	var order []string
	var totalExpense int64

	for _, tx := range txs {
		if tx.Kind != domain.KindExpense {
			continue
		}
		if _, seen := sums[tx.Category]; !seen {
			order = append(order, tx.Category)
		}
		sums[tx.Category] += tx.Amount
		totalExpense += tx.Amount
	}

	shares := make([]CategoryShare, 0, len(order))
	for _, cat := range order {
		amount := sums[cat]
		var pct float64
		if totalExpense > 0 {
			pct = float64(amount) / float64(totalExpense) * 100
		}
		shares = append(shares, CategoryShare{Category: cat, Amount: amount, Percentage: pct})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount > shares[j].Amount
	})

	return shares
}

// CollapseTop keeps the n largest shares and folds the remainder into a
// synthetic "Other" row whose percentage is recomputed from the summed
// amount. A zero-amount remainder is dropped entirely.
func CollapseTop(shares []CategoryShare, n int) []CategoryShare {
	if n <= 0 || len(shares) <= n {
		return shares
	}

	var total int64
	for _, s := range shares {
		total += s.Amount
	}

	out := make([]CategoryShare, 0, n+1)
	out = append(out, shares[:n]...)

	var rest int64
	for _, s := range shares[n:] {
		rest += s.Amount
	}
	if rest == 0 {
		return out
	}

	other := CategoryShare{Category: domain.CategoryOther, Amount: rest}
	if total > 0 {
		other.Percentage = float64(rest) / float64(total) * 100
	}
	return append(out, other)
}
