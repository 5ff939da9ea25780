package analytics

import (
	"testing"

	"github.com/kent242/moneychat/internal/domain"
)

func TestSummarize(t *testing.T) {
	at := date(2024, 1, 5, 10)
	txs := []domain.Transaction{
		tx(domain.KindIncome, 10_000_000, "Salary", at),
		tx(domain.KindExpense, 45_000, "Food & Dining", at),
		tx(domain.KindExpense, 30_000, "Transportation", at),
		tx(domain.KindIncome, 2_000_000, "Freelance", at),
	}

	s := Summarize(txs)

	if s.TotalIncome != 12_000_000 {
		t.Errorf("TotalIncome = %d, want 12000000", s.TotalIncome)
	}
	if s.TotalExpense != 75_000 {
		t.Errorf("TotalExpense = %d, want 75000", s.TotalExpense)
	}
	if s.Balance != s.TotalIncome-s.TotalExpense {
		t.Errorf("Balance = %d, want income minus expense", s.Balance)
	}
	if s.Count != 4 {
		t.Errorf("Count = %d, want 4", s.Count)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s != (Summary{}) {
		t.Errorf("Summarize(nil) = %+v, want zero value", s)
	}
}

func TestSummarizeOrderIndependent(t *testing.T) {
	at := date(2024, 3, 1, 9)
	a := []domain.Transaction{
		tx(domain.KindIncome, 500, "Salary", at),
		tx(domain.KindExpense, 200, "Shopping", at),
		tx(domain.KindExpense, 100, "Shopping", at),
	}
	b := []domain.Transaction{a[2], a[0], a[1]}

	if Summarize(a) != Summarize(b) {
		t.Error("summary must not depend on input order")
	}
}

func TestSummarizeExpenseDay(t *testing.T) {
	// One expense-only day nets negative.
	s := Summarize([]domain.Transaction{
		tx(domain.KindExpense, 45_000, "Food & Dining", date(2024, 1, 1, 8)),
	})
	if s.Balance != -45_000 {
		t.Errorf("Balance = %d, want -45000", s.Balance)
	}
}
