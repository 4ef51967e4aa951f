package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kavyanair/mindhaven/backend/internal/domain"
	chatmodel "github.com/kavyanair/mindhaven/backend/internal/model/chat"
	chatservice "github.com/kavyanair/mindhaven/backend/internal/service/chat"
	"github.com/kavyanair/mindhaven/backend/pkg/utils"
)

// Handler exposes the chat pipeline over HTTP.
type Handler struct {
	pipeline *chatservice.Pipeline
}

func New(pipeline *chatservice.Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/chat", h.handleChat)
	r.Get("/chat-history/{userID}", h.handleHistory)
}

func (h *Handler) handleChat(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID  int64  `json:"user_id"`
		Message string `json:"message"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.pipeline.Process(r.Context(), chatmodel.Message{
		UserID: payload.UserID,
		Text:   payload.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage):
			utils.RespondError(w, http.StatusBadRequest, "message is required")
		case errors.Is(err, domain.ErrUserNotFound):
			utils.RespondError(w, http.StatusBadRequest, "unknown user")
		default:
			slog.Error("chat turn failed", "user_id", payload.UserID, "error", err)
			utils.RespondError(w, http.StatusInternalServerError, "database error")
		}
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{
		"ai_response": result.Response,
		"mood":        string(result.Mood),
	})
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	entries, err := h.pipeline.History(r.Context(), userID)
	if err != nil {
		slog.Error("history lookup failed", "user_id", userID, "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "database error")
		return
	}

	// An empty history is an empty array, never null or an error.
	utils.RespondJSON(w, http.StatusOK, entries)
}
