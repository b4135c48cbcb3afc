package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ireporter/ireporter/internal/adapter/http/middleware"
	"github.com/ireporter/ireporter/internal/adapter/persistence"
	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/service/jwt"
	"github.com/ireporter/ireporter/internal/service/logger"
	"github.com/ireporter/ireporter/internal/usecase"
)

type memoryCommentRepo struct {
	comments []*domain.Comment
}

func (m *memoryCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	m.comments = append(m.comments, comment)
	return nil
}

func (m *memoryCommentRepo) FindByRecordID(_ context.Context, recordID string) ([]*domain.Comment, error) {
	var out []*domain.Comment
	for _, c := range m.comments {
		if c.RecordID == recordID {
			out = append(out, c)
		}
	}
	return out, nil
}

func newCommentTestServer(t *testing.T) (*testServer, *domain.Record) {
	t.Helper()

	repo := persistence.NewInMemoryRecordRepository()
	comments := usecase.NewCommentUseCase(&memoryCommentRepo{}, repo)
	tokens := jwt.NewService("test-secret", time.Hour)
	log := logger.NewStructuredLogger(logger.Config{Level: "error", Format: "text", ServiceName: "test"})

	router := mux.NewRouter()
	NewCommentHandler(comments, log).RegisterRoutes(router, middleware.NewAuthMiddleware(tokens))

	record, err := domain.NewRecord("Bribery at checkpoint", "Officers demanding payment", "Lagos", domain.TypeRedFlag, "owner-1")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), record))

	return &testServer{router: router, repo: repo, tokens: tokens}, record
}

func TestAddCommentEndpoint(t *testing.T) {
	srv, record := newCommentTestServer(t)
	token := srv.tokenFor(t, domain.Actor{ID: "user-1", Role: domain.RoleUser})
	path := "/api/v1/records/" + record.ID + "/comments"

	rr := srv.do(t, http.MethodPost, path, token, map[string]string{"content": "I saw this too"})
	require.Equal(t, http.StatusCreated, rr.Code)

	var comment domain.Comment
	decodeData(t, rr, &comment)
	assert.Equal(t, "I saw this too", comment.Content)
	assert.Equal(t, "user-1", comment.UserID)

	// Listing is public
	rr = srv.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var comments []domain.Comment
	decodeData(t, rr, &comments)
	require.Len(t, comments, 1)
	assert.Equal(t, comment.ID, comments[0].ID)
}

func TestAddCommentRequiresAuth(t *testing.T) {
	srv, record := newCommentTestServer(t)

	rr := srv.do(t, http.MethodPost, "/api/v1/records/"+record.ID+"/comments", "", map[string]string{"content": "anonymous remark"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestAddCommentEmptyContent(t *testing.T) {
	srv, record := newCommentTestServer(t)
	token := srv.tokenFor(t, domain.Actor{ID: "user-1", Role: domain.RoleUser})

	rr := srv.do(t, http.MethodPost, "/api/v1/records/"+record.ID+"/comments", token, map[string]string{"content": "  "})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestListCommentsUnknownRecord(t *testing.T) {
	srv, _ := newCommentTestServer(t)

	rr := srv.do(t, http.MethodGet, "/api/v1/records/missing/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
