package handlers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/kent242/moneychat/internal/api/middleware"
	"github.com/kent242/moneychat/internal/store"
)

// CategoriesHandler serves the category taxonomy.
type CategoriesHandler struct {
	store store.CategoryStore
	log   zerolog.Logger
}

// NewCategoriesHandler creates a categories handler.
func NewCategoriesHandler(catStore store.CategoryStore, log zerolog.Logger) *CategoriesHandler {
	return &CategoriesHandler{store: catStore, log: log}
}

// List handles GET /api/categories: the defaults plus the caller's own
// categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cats, err := h.store.ListForUser(ctx, middleware.UserID(ctx))
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list categories")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to fetch categories")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": cats,
		"count":      len(cats),
	})
}
