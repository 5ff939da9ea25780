package analytics

import (
	"context"
	"testing"

	"github.com/kent242/moneychat/internal/domain"
)

func TestEngineAnalyze(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.KindIncome, 1_000_000, "Salary", date(2024, 1, 2, 9)),
		tx(domain.KindExpense, 45_000, "Food & Dining", date(2024, 1, 3, 12)),
		tx(domain.KindExpense, 30_000, "Transportation", date(2024, 1, 4, 8)),
		// Outside the requested range, must not leak into any facet.
		tx(domain.KindExpense, 999_999, "Shopping", date(2023, 12, 25, 12)),
	}

	engine := NewEngine(20)
	res, err := engine.Analyze(context.Background(), txs, date(2024, 1, 1, 0), date(2024, 1, 7, 0), date(2024, 6, 1, 0))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if res.Summary.TotalIncome != 1_000_000 || res.Summary.TotalExpense != 75_000 {
		t.Errorf("summary = %+v", res.Summary)
	}
	if res.Summary.Balance != 925_000 || res.Summary.Count != 3 {
		t.Errorf("summary = %+v", res.Summary)
	}
	if len(res.Breakdown) != 2 || res.Breakdown[0].Category != "Food & Dining" {
		t.Errorf("breakdown = %v", res.Breakdown)
	}
	if len(res.Trend) != 7 {
		t.Errorf("got %d trend buckets, want 7 daily", len(res.Trend))
	}
	if len(res.Recent) != 3 || res.Recent[0].Category != "Transportation" {
		t.Errorf("recent = %v", res.Recent)
	}
}

func TestEngineAnalyzeEmpty(t *testing.T) {
	engine := NewEngine(20)
	res, err := engine.Analyze(context.Background(), nil, date(2024, 1, 1, 0), date(2024, 1, 31, 0), date(2024, 6, 1, 0))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if res.Summary.Count != 0 || res.Summary.Balance != 0 {
		t.Errorf("summary = %+v, want zeros", res.Summary)
	}
	if len(res.Breakdown) != 0 || len(res.Recent) != 0 {
		t.Errorf("breakdown/recent must be empty, got %v / %v", res.Breakdown, res.Recent)
	}
	if len(res.Trend) == 0 {
		t.Error("trend must still emit zero buckets for the elapsed range")
	}
}

func TestEngineRecentLimit(t *testing.T) {
	var txs []domain.Transaction
	for d := 1; d <= 10; d++ {
		txs = append(txs, tx(domain.KindExpense, int64(d), "Shopping", date(2024, 1, d, 10)))
	}

	engine := NewEngine(5)
	res, err := engine.Analyze(context.Background(), txs, date(2024, 1, 1, 0), date(2024, 1, 31, 0), date(2024, 6, 1, 0))
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if len(res.Recent) != 5 {
		t.Errorf("got %d recent, want limit of 5", len(res.Recent))
	}
	if res.Summary.Count != 10 {
		t.Errorf("summary count = %d, want 10 (limit applies to recent only)", res.Summary.Count)
	}
}
