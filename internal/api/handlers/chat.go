package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/kent242/moneychat/internal/api/middleware"
	"github.com/kent242/moneychat/internal/chat"
)

// ChatHandler serves the natural-language entry endpoint.
type ChatHandler struct {
	svc *chat.Service
	log zerolog.Logger
}

// NewChatHandler creates a chat handler.
func NewChatHandler(svc *chat.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: log}
}

// Post handles POST /api/chat.
func (h *ChatHandler) Post(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := h.svc.HandleMessage(ctx, middleware.UserID(ctx), req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrInvalidAmount) {
			middleware.WriteJSON(w, http.StatusBadRequest, map[string]string{
				"error":   "Invalid amount",
				"message": chat.InvalidAmountMessage,
			})
			return
		}
		h.log.Error().Err(err).Msg("Chat message processing failed")
		middleware.WriteJSON(w, http.StatusInternalServerError, map[string]string{
			"error":   "Failed to process transaction",
			"details": err.Error(),
		})
		return
	}

	resp := map[string]interface{}{
		"success":      true,
		"message":      reply.Message,
		"transactions": reply.Transactions,
		"parsed":       reply.Parsed,
		"count":        reply.Count,
	}
	if reply.Failed > 0 {
		resp["failed"] = reply.Failed
	}
	middleware.WriteJSON(w, http.StatusOK, resp)
}
