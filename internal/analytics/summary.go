package analytics

import "github.com/kent242/moneychat/internal/domain"

// Summary is the totals facet of an analytics response.
type Summary struct {
	TotalIncome  int64 `json:"totalIncome"`
	TotalExpense int64 `json:"totalExpense"`
	Balance      int64 `json:"balance"`
	Count        int   `json:"transactionCount"`
}

// Summarize sums a transaction subset. Order-independent; an empty
// input yields all zeros.
func Summarize(txs []domain.Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Kind {
		case domain.KindIncome:
			s.TotalIncome += tx.Amount
		case domain.KindExpense:
			s.TotalExpense += tx.Amount
		}
	}
	s.Balance = s.TotalIncome - s.TotalExpense
	s.Count = len(txs)
	return s
}
