package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/kent242/moneychat/internal/api/middleware"
	"github.com/kent242/moneychat/internal/domain"
	"github.com/kent242/moneychat/internal/store"
	"github.com/kent242/moneychat/internal/transactions"
)

// TransactionsHandler serves the direct transaction CRUD endpoints.
type TransactionsHandler struct {
	svc *transactions.Service
	log zerolog.Logger
}

// NewTransactionsHandler creates a transactions handler.
func NewTransactionsHandler(svc *transactions.Service, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{svc: svc, log: log}
}

// List handles GET /api/transactions.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	category := q.Get("category")
	if category == "all" {
		category = ""
	}
	filter := store.ListFilter{
		UserID:   middleware.UserID(ctx),
		Category: category,
		Kind:     domain.Kind(q.Get("type")),
		Page:     1,
	}

	var err error
	if v := q.Get("page"); v != "" {
		if filter.Page, err = strconv.Atoi(v); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid pagination parameters")
			return
		}
	}
	if v := q.Get("limit"); v != "" {
		if filter.Limit, err = strconv.Atoi(v); err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid pagination parameters")
			return
		}
	}
	if v := q.Get("startDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
		filter.From = &t
	}
	if v := q.Get("endDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
		filter.To = &t
	}

	page, err := h.svc.List(ctx, filter)
	if err != nil {
		if errors.Is(err, transactions.ErrInvalid) {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid pagination parameters")
			return
		}
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	totalPages := 0
	if page.Limit > 0 {
		totalPages = (page.Total + page.Limit - 1) / page.Limit
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": page.Transactions,
		"total":        page.Total,
		"page":         page.Page,
		"totalPages":   totalPages,
		"hasMore":      page.Page < totalPages,
	})
}

// Create handles POST /api/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Description string      `json:"description"`
		Amount      int64       `json:"amount"`
		Type        domain.Kind `json:"type"`
		Category    string      `json:"category"`
		Merchant    string      `json:"merchant"`
		Date        string      `json:"date"`
		UseAI       *bool       `json:"useAI"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	in := transactions.CreateInput{
		Description: req.Description,
		Amount:      req.Amount,
		Kind:        req.Type,
		Category:    req.Category,
		Merchant:    req.Merchant,
	}
	if req.Date != "" {
		t, err := parseDate(req.Date)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		in.OccurredAt = t
	}

	useAI := req.UseAI == nil || *req.UseAI

	tx, err := h.svc.Create(ctx, middleware.UserID(ctx), in, useAI)
	if err != nil {
		if errors.Is(err, transactions.ErrInvalid) {
			middleware.WriteError(w, http.StatusBadRequest, strings.TrimPrefix(err.Error(), "invalid input: "))
			return
		}
		h.log.Error().Err(err).Msg("Failed to create transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"transaction": tx,
	})
}

// Update handles PATCH /api/transactions/{id}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	var req struct {
		Description *string      `json:"description"`
		Amount      *int64       `json:"amount"`
		Type        *domain.Kind `json:"type"`
		Category    *string      `json:"category"`
		Date        *string      `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	upd := store.TransactionUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		Kind:        req.Type,
		Category:    req.Category,
	}
	if req.Date != nil {
		t, err := parseDate(*req.Date)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid date")
			return
		}
		upd.OccurredAt = &t
	}

	tx, err := h.svc.Update(ctx, middleware.UserID(ctx), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, transactions.ErrInvalid):
			middleware.WriteError(w, http.StatusBadRequest, "Số tiền phải lớn hơn 0")
		case errors.Is(err, store.ErrNotFound):
			middleware.WriteError(w, http.StatusNotFound, "Không tìm thấy giao dịch")
		default:
			h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to update transaction")
			middleware.WriteError(w, http.StatusInternalServerError, "Failed to process transaction")
		}
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"transaction": tx,
	})
}

// Delete handles DELETE /api/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	if err := h.svc.Delete(ctx, middleware.UserID(ctx), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.WriteError(w, http.StatusNotFound, "Không tìm thấy giao dịch")
			return
		}
		h.log.Error().Err(err).Str("transaction_id", id).Msg("Failed to delete transaction")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to process transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// Categories handles GET /api/transactions/categories: the category
// names the user has actually used.
func (h *TransactionsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names, err := h.svc.DistinctCategories(ctx, middleware.UserID(ctx))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list used categories")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{"categories": names})
}
