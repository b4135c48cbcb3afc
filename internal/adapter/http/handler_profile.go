package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ireporter/ireporter/internal/adapter/http/middleware"
	"github.com/ireporter/ireporter/internal/adapter/http/response"
	"github.com/ireporter/ireporter/internal/service/logger"
	"github.com/ireporter/ireporter/internal/usecase"
)

// ProfileHandler handles the profile and notification endpoints the dashboard
// depends on
type ProfileHandler struct {
	profiles      *usecase.ProfileUseCase
	notifications *usecase.NotificationUseCase
	logger        logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *usecase.ProfileUseCase, notifications *usecase.NotificationUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, notifications: notifications, logger: log}
}

// RegisterRoutes registers profile routes
func (h *ProfileHandler) RegisterRoutes(router *mux.Router, auth *middleware.AuthMiddleware) {
	router.HandleFunc("/api/v1/profile", auth.RequireAuth(h.GetProfile)).Methods("GET")
	router.HandleFunc("/api/v1/profile", auth.RequireAuth(h.UpdateProfile)).Methods("PUT")
	router.HandleFunc("/api/v1/notifications", auth.RequireAuth(h.ListNotifications)).Methods("GET")
}

// GetProfile retrieves the actor's own profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	profile, err := h.profiles.Get(r.Context(), actor)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusOK, "Profile retrieved", profile)
}

type updateProfileRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// UpdateProfile updates the actor's phone number
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	profile, err := h.profiles.UpdatePhoneNumber(r.Context(), actor, req.PhoneNumber)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusOK, "Profile updated", profile)
}

// ListNotifications retrieves the actor's notifications
func (h *ProfileHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	notifications, err := h.notifications.ListOwn(r.Context(), actor)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusOK, "Notifications retrieved", notifications)
}
