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

// CommentHandler handles HTTP requests for record comments
type CommentHandler struct {
	comments *usecase.CommentUseCase
	logger   logger.Logger
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(comments *usecase.CommentUseCase, log logger.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, logger: log}
}

// RegisterRoutes registers comment routes
func (h *CommentHandler) RegisterRoutes(router *mux.Router, auth *middleware.AuthMiddleware) {
	router.HandleFunc("/api/v1/records/{id}/comments", h.ListComments).Methods("GET")
	router.HandleFunc("/api/v1/records/{id}/comments", auth.RequireAuth(h.AddComment)).Methods("POST")
}

type addCommentRequest struct {
	Content string `json:"content"`
}

// AddComment leaves a comment on a record
func (h *CommentHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFromContext(r.Context())

	var req addCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.comments.Add(r.Context(), actor, mux.Vars(r)["id"], req.Content)
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusCreated, "Comment added", comment)
}

// ListComments retrieves a record's comments
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListForRecord(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeDomainError(w, h.logger, err)
		return
	}
	response.Success(w, http.StatusOK, "Comments retrieved", comments)
}
