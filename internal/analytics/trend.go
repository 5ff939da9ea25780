package analytics

import (
	"time"

	"github.com/kent242/moneychat/internal/domain"
)

// Bucket is one point of the trend series. The label field is named
// "month" on the wire regardless of granularity; chart consumers bound
// to that name before the binner became adaptive.
type Bucket struct {
	Label   string `json:"month"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Net     int64  `json:"net"`
}

// Granularity thresholds, in whole days of requested range.
const (
	singleBucketMaxDays = 1
	dailyMaxDays        = 7
	weeklyMaxDays       = 90
)

// Bucket label formats.
const (
	labelFull     = "02 Jan 2006"
	labelDayMonth = "02/01"
	labelMonth    = "Jan 2006"
)

// Trend bins the filtered subset into a chronological series whose
// bucket width adapts to the requested range length: one bucket for a
// single day, daily for up to a week, calendar weeks (Monday start) for
// up to ninety days, calendar months beyond that. Buckets whose nominal
// start is after now are never emitted, and a started week or month is
// clipped at now so it only covers elapsed time. Labels always come
// from the nominal (unclipped) bucket start. now must be injected by
// the caller so clipping is deterministic under test.
func Trend(txs []domain.Transaction, from, to, now time.Time) []Bucket {
	daysDiff := int(to.Sub(from) / (24 * time.Hour))

	switch {
	case daysDiff <= singleBucketMaxDays:
		return []Bucket{sumBucket(txs, from.Format(labelFull))}
	case daysDiff <= dailyMaxDays:
		return dailyTrend(txs, from, daysDiff, now)
	case daysDiff <= weeklyMaxDays:
		return steppedTrend(txs, startOfWeek(from), to, now, addWeek, labelDayMonth)
	default:
		return steppedTrend(txs, startOfMonth(from), to, now, addMonth, labelMonth)
	}
}

// dailyTrend emits one bucket per calendar day from the range start,
// stopping at the first day after now rather than padding the tail with
// empty future days.
func dailyTrend(txs []domain.Transaction, from time.Time, daysDiff int, now time.Time) []Bucket {
	var buckets []Bucket
	for i := 0; i <= daysDiff; i++ {
		day := from.AddDate(0, 0, i)
		if day.After(now) {
			break
		}
		start := startOfDay(day)
		end := start.AddDate(0, 0, 1)
		b := sumBucket(between(txs, start, end), day.Format(labelDayMonth))
		buckets = append(buckets, b)
	}
	return buckets
}

// steppedTrend walks bucket boundaries forward from start at the given
// step, emitting [cur, min(next, now)) buckets until cur passes either
// the range end or now.
func steppedTrend(txs []domain.Transaction, start, to, now time.Time, step func(time.Time) time.Time, layout string) []Bucket {
	var buckets []Bucket
	for cur := start; !cur.After(to); cur = step(cur) {
		if cur.After(now) {
			break
		}
		end := step(cur)
		if end.After(now) {
			end = now
		}
		b := sumBucket(between(txs, cur, end), cur.Format(layout))
		buckets = append(buckets, b)
	}
	return buckets
}

// between returns the transactions in the half-open [start, end) window.
func between(txs []domain.Transaction, start, end time.Time) []domain.Transaction {
	var out []domain.Transaction
	for _, tx := range txs {
		if tx.OccurredAt.Before(start) || !tx.OccurredAt.Before(end) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func sumBucket(txs []domain.Transaction, label string) Bucket {
	b := Bucket{Label: label}
	for _, tx := range txs {
		switch tx.Kind {
		case domain.KindIncome:
			b.Income += tx.Amount
		case domain.KindExpense:
			b.Expense += tx.Amount
		}
	}
	b.Net = b.Income - b.Expense
	return b
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfMonth returns the last instant of t's month; used for the
// default analytics range.
func EndOfMonth(t time.Time) time.Time {
	return startOfMonth(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// StartOfMonth returns midnight on the first of t's month.
func StartOfMonth(t time.Time) time.Time {
	return startOfMonth(t)
}

func addWeek(t time.Time) time.Time  { return t.AddDate(0, 0, 7) }
func addMonth(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
