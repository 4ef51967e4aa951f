package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kavyanair/mindhaven/backend/internal/domain"
	userservice "github.com/kavyanair/mindhaven/backend/internal/service/user"
	"github.com/kavyanair/mindhaven/backend/pkg/utils"
)

// Handler exposes account registration and login.
type Handler struct {
	accounts *userservice.Service
}

func New(accounts *userservice.Service) *Handler {
	return &Handler{accounts: accounts}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.handleRegister)
	r.Post("/login", h.handleLogin)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.accounts.Register(r.Context(), payload.Username, payload.Password, payload.Name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingField):
			utils.RespondError(w, http.StatusBadRequest, "username, password and name are required")
		case errors.Is(err, domain.ErrUserExists):
			utils.RespondError(w, http.StatusBadRequest, "user already exists")
		default:
			slog.Error("registration failed", "error", err)
			utils.RespondError(w, http.StatusInternalServerError, "database error")
		}
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]any{
		"message": "Registration successful",
		"user_id": id,
	})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.accounts.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			utils.RespondError(w, http.StatusBadRequest, "invalid credentials")
			return
		}
		slog.Error("login failed", "error", err)
		utils.RespondError(w, http.StatusInternalServerError, "database error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user_id": u.ID,
		"name":    u.Name,
	})
}
