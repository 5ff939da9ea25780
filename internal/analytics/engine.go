package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kent242/moneychat/internal/domain"
)

// Result is the combined output of one analytics call. Entirely
// derived; it lives only as long as the response it feeds.
type Result struct {
	Summary   Summary
	Breakdown []CategoryShare
	Trend     []Bucket
	Recent    []domain.Transaction
}

// Engine fans the analytics facets out over a filtered transaction set
// and joins them into one Result.
type Engine struct {
	recentLimit int
}

// NewEngine creates an engine; recentLimit caps the recent facet.
func NewEngine(recentLimit int) *Engine {
	return &Engine{recentLimit: recentLimit}
}

// Analyze filters txs to the inclusive [from, to] window and computes
// all facets concurrently. The facets are independent pure functions of
// the filtered set; none blocks another, and if any fails the whole
// result does. A partial response is never returned.
func (e *Engine) Analyze(ctx context.Context, txs []domain.Transaction, from, to, now time.Time) (*Result, error) {
	filtered := FilterRange(txs, from, to)

	res := &Result{}
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		res.Summary = Summarize(filtered)
		return nil
	})
	g.Go(func() error {
		res.Breakdown = Breakdown(filtered)
		return nil
	})
	g.Go(func() error {
		res.Trend = Trend(filtered, from, to, now)
		return nil
	})
	g.Go(func() error {
		res.Recent = Recent(filtered, e.recentLimit)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
