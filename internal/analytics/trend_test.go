package analytics

import (
	"testing"
	"time"

	"github.com/kent242/moneychat/internal/domain"
)

func TestTrendSingleDay(t *testing.T) {
	from := date(2024, 1, 1, 0)
	to := date(2024, 1, 1, 23)
	now := date(2024, 6, 1, 0)
	txs := []domain.Transaction{
		tx(domain.KindExpense, 45_000, "Food & Dining", date(2024, 1, 1, 8)),
	}

	got := Trend(txs, from, to, now)

	if len(got) != 1 {
		t.Fatalf("single-day range must yield one bucket, got %d", len(got))
	}
	b := got[0]
	if b.Label != "01 Jan 2024" {
		t.Errorf("Label = %q, want %q", b.Label, "01 Jan 2024")
	}
	if b.Expense != 45_000 || b.Income != 0 || b.Net != -45_000 {
		t.Errorf("bucket = %+v, want expense 45000 net -45000", b)
	}
}

func TestTrendDaily(t *testing.T) {
	from := date(2024, 1, 1, 0)
	to := date(2024, 1, 5, 0) // 4 whole days
	now := date(2024, 6, 1, 0)
	txs := []domain.Transaction{
		tx(domain.KindExpense, 10_000, "Food & Dining", date(2024, 1, 1, 9)),
		tx(domain.KindExpense, 20_000, "Transportation", date(2024, 1, 3, 18)),
		tx(domain.KindIncome, 1_000_000, "Salary", date(2024, 1, 5, 10)),
	}

	got := Trend(txs, from, to, now)

	wantLabels := []string{"01/01", "02/01", "03/01", "04/01", "05/01"}
	if len(got) != len(wantLabels) {
		t.Fatalf("got %d buckets, want %d", len(got), len(wantLabels))
	}
	for i, label := range wantLabels {
		if got[i].Label != label {
			t.Errorf("bucket[%d].Label = %q, want %q", i, got[i].Label, label)
		}
	}
	if got[0].Expense != 10_000 {
		t.Errorf("day one expense = %d, want 10000", got[0].Expense)
	}
	if got[1].Expense != 0 || got[1].Income != 0 {
		t.Errorf("empty day must be a zero bucket, got %+v", got[1])
	}
	if got[2].Expense != 20_000 {
		t.Errorf("day three expense = %d, want 20000", got[2].Expense)
	}
	if got[4].Income != 1_000_000 {
		t.Errorf("day five income = %d, want 1000000", got[4].Income)
	}
}

func TestTrendDailyStopsAtNow(t *testing.T) {
	from := date(2024, 1, 1, 0)
	to := date(2024, 1, 7, 0)
	now := date(2024, 1, 3, 12)

	got := Trend(nil, from, to, now)

	if len(got) != 3 {
		t.Fatalf("expected buckets through today only, got %d", len(got))
	}
	if got[len(got)-1].Label != "03/01" {
		t.Errorf("last bucket = %q, want 03/01", got[len(got)-1].Label)
	}
}

func TestTrendWeekly(t *testing.T) {
	from := date(2024, 1, 1, 0) // a Monday
	to := date(2024, 1, 10, 0)  // 9 days, weekly granularity
	now := date(2024, 6, 1, 0)
	txs := []domain.Transaction{
		tx(domain.KindExpense, 30_000, "Shopping", date(2024, 1, 2, 14)),
		tx(domain.KindExpense, 70_000, "Shopping", date(2024, 1, 9, 14)),
	}

	got := Trend(txs, from, to, now)

	if len(got) != 2 {
		t.Fatalf("got %d buckets, want 2 weeks", len(got))
	}
	if got[0].Label != "01/01" || got[1].Label != "08/01" {
		t.Errorf("week labels = %q, %q; want 01/01, 08/01", got[0].Label, got[1].Label)
	}
	if got[0].Expense != 30_000 || got[1].Expense != 70_000 {
		t.Errorf("week expenses = %d, %d; want 30000, 70000", got[0].Expense, got[1].Expense)
	}
}

func TestTrendWeeklyAlignsToMonday(t *testing.T) {
	from := date(2024, 1, 3, 0) // a Wednesday
	to := date(2024, 1, 20, 0)
	now := date(2024, 6, 1, 0)

	got := Trend(nil, from, to, now)

	if got[0].Label != "01/01" {
		t.Errorf("first week must start on the preceding Monday, got %q", got[0].Label)
	}
}

func TestTrendMonthlyClipsAtNow(t *testing.T) {
	from := date(2024, 1, 15, 0)
	to := date(2024, 6, 30, 0) // > 90 days, monthly granularity
	now := date(2024, 3, 15, 0)
	txs := []domain.Transaction{
		tx(domain.KindIncome, 500_000, "Salary", date(2024, 1, 20, 9)),
		tx(domain.KindExpense, 40_000, "Bills & Utilities", date(2024, 3, 10, 9)),
		// Falls after now inside March: the started month is clipped.
		tx(domain.KindExpense, 99_000, "Shopping", date(2024, 3, 20, 9)),
	}

	got := Trend(txs, from, to, now)

	wantLabels := []string{"Jan 2024", "Feb 2024", "Mar 2024"}
	if len(got) != len(wantLabels) {
		t.Fatalf("got %d buckets, want %d (no future months)", len(got), len(wantLabels))
	}
	for i, label := range wantLabels {
		if got[i].Label != label {
			t.Errorf("bucket[%d].Label = %q, want %q", i, got[i].Label, label)
		}
	}
	if got[0].Income != 500_000 {
		t.Errorf("January income = %d, want 500000", got[0].Income)
	}
	if got[2].Expense != 40_000 {
		t.Errorf("clipped March expense = %d, want 40000", got[2].Expense)
	}
}

func TestTrendSteppedFutureRangeIsEmpty(t *testing.T) {
	now := date(2024, 1, 1, 0)
	from := date(2024, 3, 1, 0)
	to := date(2024, 3, 20, 0)

	if got := Trend(nil, from, to, now); len(got) != 0 {
		t.Errorf("entirely future range must yield no buckets, got %v", got)
	}
}

func TestTrendChronologicalNoDuplicates(t *testing.T) {
	now := date(2025, 1, 1, 0)
	ranges := []struct {
		name string
		from time.Time
		to   time.Time
	}{
		{"daily", date(2024, 4, 1, 0), date(2024, 4, 6, 0)},
		{"weekly", date(2024, 4, 1, 0), date(2024, 5, 15, 0)},
		{"monthly", date(2024, 1, 1, 0), date(2024, 8, 1, 0)},
	}

	for _, r := range ranges {
		t.Run(r.name, func(t *testing.T) {
			got := Trend(nil, r.from, r.to, now)
			seen := make(map[string]bool)
			for _, b := range got {
				if seen[b.Label] {
					t.Errorf("duplicate bucket %q", b.Label)
				}
				seen[b.Label] = true
			}
		})
	}
}

func TestTrendConservesTotals(t *testing.T) {
	from := date(2024, 1, 1, 0)
	to := date(2024, 2, 15, 0) // weekly granularity
	now := date(2024, 6, 1, 0)
	txs := []domain.Transaction{
		tx(domain.KindIncome, 2_000_000, "Salary", date(2024, 1, 5, 9)),
		tx(domain.KindExpense, 120_000, "Food & Dining", date(2024, 1, 12, 12)),
		tx(domain.KindExpense, 80_000, "Transportation", date(2024, 2, 1, 7)),
		tx(domain.KindExpense, 55_000, "Entertainment", date(2024, 2, 14, 21)),
	}

	sum := Summarize(txs)
	var income, expense int64
	for _, b := range Trend(txs, from, to, now) {
		income += b.Income
		expense += b.Expense
	}

	if income != sum.TotalIncome {
		t.Errorf("bucketed income = %d, want %d", income, sum.TotalIncome)
	}
	if expense != sum.TotalExpense {
		t.Errorf("bucketed expense = %d, want %d", expense, sum.TotalExpense)
	}
}
