package analytics

import (
	"testing"
	"time"

	"github.com/kent242/moneychat/internal/domain"
)

func tx(kind domain.Kind, amount int64, category string, at time.Time) domain.Transaction {
	return domain.Transaction{
		ID:          "tx-" + at.Format("20060102150405") + "-" + category,
		UserID:      "user-1",
		Description: category,
		Amount:      amount,
		Kind:        kind,
		Category:    category,
		OccurredAt:  at,
	}
}

func date(y int, m time.Month, d, hh int) time.Time {
	return time.Date(y, m, d, hh, 0, 0, 0, time.UTC)
}

func TestFilterRange(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.KindExpense, 100, "Shopping", date(2024, 1, 1, 8)),
		tx(domain.KindExpense, 200, "Shopping", date(2024, 1, 15, 12)),
		tx(domain.KindIncome, 300, "Salary", date(2024, 2, 1, 0)),
	}

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int
	}{
		{
			name: "covers everything",
			from: date(2024, 1, 1, 0),
			to:   date(2024, 3, 1, 0),
			want: 3,
		},
		{
			name: "mid window",
			from: date(2024, 1, 10, 0),
			to:   date(2024, 1, 31, 0),
			want: 1,
		},
		{
			name: "boundaries are inclusive",
			from: date(2024, 1, 1, 8),
			to:   date(2024, 2, 1, 0),
			want: 3,
		},
		{
			name: "nothing inside",
			from: date(2023, 1, 1, 0),
			to:   date(2023, 12, 31, 0),
			want: 0,
		},
		{
			name: "inverted range is empty not an error",
			from: date(2024, 2, 1, 0),
			to:   date(2024, 1, 1, 0),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterRange(txs, tt.from, tt.to)
			if len(got) != tt.want {
				t.Errorf("FilterRange() returned %d transactions, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFilterRangeEmptyInput(t *testing.T) {
	got := FilterRange(nil, date(2024, 1, 1, 0), date(2024, 2, 1, 0))
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d", len(got))
	}
}
