package handlers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/kent242/moneychat/internal/analytics"
	"github.com/kent242/moneychat/internal/api/middleware"
	"github.com/kent242/moneychat/internal/domain"
	"github.com/kent242/moneychat/internal/store"
)

// AnalyticsHandler serves the combined analytics view.
type AnalyticsHandler struct {
	store  store.TransactionStore
	engine *analytics.Engine
	topN   int
	log    zerolog.Logger

	now func() time.Time
}

// NewAnalyticsHandler creates the analytics handler. topN caps the
// category breakdown rows before the remainder folds into "Other".
func NewAnalyticsHandler(txStore store.TransactionStore, engine *analytics.Engine, topN int, log zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		store:  txStore,
		engine: engine,
		topN:   topN,
		log:    log,
		now:    time.Now,
	}
}

// statsPayload carries the summary plus its legacy aliases. The
// month-prefixed fields predate custom ranges and now mirror the
// range totals.
type statsPayload struct {
	TotalIncome      int64 `json:"totalIncome"`
	TotalExpense     int64 `json:"totalExpense"`
	Balance          int64 `json:"balance"`
	MonthIncome      int64 `json:"monthIncome"`
	MonthExpense     int64 `json:"monthExpense"`
	MonthBalance     int64 `json:"monthBalance"`
	TransactionCount int   `json:"transactionCount"`
}

// Get handles GET /api/analytics. Without startDate/endDate parameters
// the range defaults to the current calendar month.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.UserID(ctx)
	now := h.now()

	from := analytics.StartOfMonth(now)
	to := analytics.EndOfMonth(now)

	var err error
	if v := r.URL.Query().Get("startDate"); v != "" {
		if from, err = parseDate(v); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
	}
	if v := r.URL.Query().Get("endDate"); v != "" {
		if to, err = parseDate(v); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
	}

	txs, err := h.store.ListByUser(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to load transactions for analytics")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}

	res, err := h.engine.Analyze(ctx, txs, from, to, now)
	if err != nil {
		h.log.Error().Err(err).Msg("Analytics computation failed")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}

	recent := res.Recent
	if recent == nil {
		recent = []domain.Transaction{}
	}
	breakdown := analytics.CollapseTop(res.Breakdown, h.topN)
	if breakdown == nil {
		breakdown = []analytics.CategoryShare{}
	}
	trend := res.Trend
	if trend == nil {
		trend = []analytics.Bucket{}
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"stats": statsPayload{
			TotalIncome:      res.Summary.TotalIncome,
			TotalExpense:     res.Summary.TotalExpense,
			Balance:          res.Summary.Balance,
			MonthIncome:      res.Summary.TotalIncome,
			MonthExpense:     res.Summary.TotalExpense,
			MonthBalance:     res.Summary.Balance,
			TransactionCount: res.Summary.Count,
		},
		"categoryBreakdown":  breakdown,
		"trendData":          trend,
		"recentTransactions": recent,
		"dateRange": map[string]string{
			"from": from.Format(time.RFC3339),
			"to":   to.Format(time.RFC3339),
		},
	})
}

// parseDate accepts a bare date or a full RFC 3339 timestamp.
func parseDate(v string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", v); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, v)
}
