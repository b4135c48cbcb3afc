package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ireporter/ireporter/internal/adapter/http/response"
	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/service/logger"
	"github.com/ireporter/ireporter/internal/usecase"
)

// AuthHandler handles account registration and login
type AuthHandler struct {
	auth   *usecase.AuthUseCase
	logger logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *usecase.AuthUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: log}
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/v1/auth/signup", h.SignUp).Methods("POST")
	router.HandleFunc("/api/v1/auth/login", h.Login).Methods("POST")
}

// SignUp registers a new account
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req usecase.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	res, err := h.auth.SignUp(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			response.Conflict(w, "Username or email is already taken")
			return
		}
		writeDomainError(w, h.logger, err)
		return
	}

	h.logger.Info("user registered", map[string]interface{}{
		"user_id": res.User.ID,
	})
	response.Success(w, http.StatusCreated, "Account created", res)
}

// Login authenticates an account
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usecase.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	res, err := h.auth.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			response.Unauthorized(w, "Invalid email or password")
			return
		}
		writeDomainError(w, h.logger, err)
		return
	}

	response.Success(w, http.StatusOK, "Login successful", res)
}
