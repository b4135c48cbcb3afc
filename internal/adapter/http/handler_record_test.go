package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
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
	"github.com/ireporter/ireporter/internal/service/ratelimit"
	"github.com/ireporter/ireporter/internal/usecase"
)

type noopNotificationRepo struct{}

func (noopNotificationRepo) Create(context.Context, *domain.Notification) error { return nil }
func (noopNotificationRepo) FindByUserID(context.Context, string) ([]*domain.Notification, error) {
	return nil, nil
}

type testServer struct {
	router *mux.Router
	repo   *persistence.InMemoryRecordRepository
	tokens *jwt.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	return newTestServerWithLimiter(t, noopLimiter{}, 10, time.Minute)
}

func newTestServerWithLimiter(t *testing.T, limiter ratelimit.Service, limit int, window time.Duration) *testServer {
	t.Helper()

	repo := persistence.NewInMemoryRecordRepository()
	records := usecase.NewRecordUseCase(repo, noopNotificationRepo{}, nil)
	tokens := jwt.NewService("test-secret", time.Hour)
	log := logger.NewStructuredLogger(logger.Config{Level: "error", Format: "text", ServiceName: "test"})

	router := mux.NewRouter()
	handler := NewRecordHandler(records, log)
	handler.RegisterRoutes(router, middleware.NewAuthMiddleware(tokens), limiter, limit, window)

	return &testServer{router: router, repo: repo, tokens: tokens}
}

type noopLimiter struct{}

func (noopLimiter) Allow(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}

// captureLimiter records the limit and window it was asked to enforce
type captureLimiter struct {
	limit  int
	window time.Duration
	allow  bool
}

func (c *captureLimiter) Allow(_ context.Context, _ string, limit int, window time.Duration) (bool, error) {
	c.limit = limit
	c.window = window
	return c.allow, nil
}

func (s *testServer) tokenFor(t *testing.T, actor domain.Actor) string {
	t.Helper()
	token, err := s.tokens.GenerateAccessToken(actor)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder, out interface{}) {
	t.Helper()

	var envelope struct {
		Status  bool            `json:"status"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
	if out != nil {
		require.NoError(t, json.Unmarshal(envelope.Data, out))
	}
}

func TestCreateRecordEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token := srv.tokenFor(t, domain.Actor{ID: "user-1", Role: domain.RoleUser})

	rr := srv.do(t, http.MethodPost, "/api/v1/records", token, map[string]string{
		"title":       "Bribery at checkpoint",
		"description": "Officers demanding payment to pass",
		"location":    "Lagos",
		"record_type": "red-flag",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var record domain.Record
	decodeData(t, rr, &record)
	assert.Equal(t, domain.StatusDraft, record.Status)
	assert.Equal(t, "user-1", record.OwnerID)
}

func TestCreateRecordRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodPost, "/api/v1/records", "", map[string]string{
		"title": "t", "description": "d", "location": "l", "record_type": "red-flag",
	})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateRecordValidationError(t *testing.T) {
	srv := newTestServer(t)
	token := srv.tokenFor(t, domain.Actor{ID: "user-1", Role: domain.RoleUser})

	rr := srv.do(t, http.MethodPost, "/api/v1/records", token, map[string]string{
		"title": "", "description": "d", "location": "l", "record_type": "red-flag",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestGetRecordNotFound(t *testing.T) {
	srv := newTestServer(t)

	rr := srv.do(t, http.MethodGet, "/api/v1/records/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatusWorkflowEndpoint(t *testing.T) {
	srv := newTestServer(t)
	userToken := srv.tokenFor(t, domain.Actor{ID: "user-1", Role: domain.RoleUser})
	adminToken := srv.tokenFor(t, domain.Actor{ID: "admin-1", Role: domain.RoleAdmin})

	rr := srv.do(t, http.MethodPost, "/api/v1/records", userToken, map[string]string{
		"title": "t", "description": "d", "location": "l", "record_type": "red-flag",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var record domain.Record
	decodeData(t, rr, &record)
	statusPath := fmt.Sprintf("/api/v1/records/%s/status", record.ID)

	// Non-admin is rejected at the router
	rr = srv.do(t, http.MethodPut, statusPath, userToken, map[string]string{
		"status": "resolved", "comment": "done",
	})
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Empty comment is rejected without changing the record
	rr = srv.do(t, http.MethodPut, statusPath, adminToken, map[string]string{
		"status": "resolved", "comment": " ",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = srv.do(t, http.MethodPut, statusPath, adminToken, map[string]string{
		"status": "under investigation", "comment": "Assigned to field officer",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var updated domain.Record
	decodeData(t, rr, &updated)
	assert.Equal(t, domain.StatusUnderInvestigation, updated.Status)
	require.Len(t, updated.StatusHistory, 1)
	assert.Equal(t, "Assigned to field officer", updated.StatusHistory[0].Comment)

	// Content edits are now locked for the owner
	rr = srv.do(t, http.MethodPut, "/api/v1/records/"+record.ID, userToken, map[string]string{
		"title": "x", "description": "y", "location": "z", "record_type": "red-flag",
	})
	assert.Equal(t, http.StatusConflict, rr.Code)

	// Deletion is still the owner's right
	rr = srv.do(t, http.MethodDelete, "/api/v1/records/"+record.ID, userToken, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestListRecordsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	token := srv.tokenFor(t, domain.Actor{ID: "user-1", Role: domain.RoleUser})

	for i := 0; i < 3; i++ {
		rr := srv.do(t, http.MethodPost, "/api/v1/records", token, map[string]string{
			"title":       fmt.Sprintf("Pothole %d", i),
			"description": "d",
			"location":    "l",
			"record_type": "intervention",
		})
		require.Equal(t, http.StatusCreated, rr.Code)
	}

	rr := srv.do(t, http.MethodGet, "/api/v1/records?type=intervention&q=pothole", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var page struct {
		Records     []domain.Record `json:"records"`
		CurrentPage int             `json:"current_page"`
		Pages       int             `json:"pages"`
		Total       int             `json:"total"`
	}
	decodeData(t, rr, &page)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.Pages)
	assert.Len(t, page.Records, 3)
}

func TestCreateRecordUsesConfiguredRateLimit(t *testing.T) {
	limiter := &captureLimiter{allow: true}
	srv := newTestServerWithLimiter(t, limiter, 3, 30*time.Second)
	token := srv.tokenFor(t, domain.Actor{ID: "user-1", Role: domain.RoleUser})

	rr := srv.do(t, http.MethodPost, "/api/v1/records", token, map[string]string{
		"title": "t", "description": "d", "location": "l", "record_type": "red-flag",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	assert.Equal(t, 3, limiter.limit)
	assert.Equal(t, 30*time.Second, limiter.window)
}

func TestCreateRecordOverRateLimit(t *testing.T) {
	limiter := &captureLimiter{allow: false}
	srv := newTestServerWithLimiter(t, limiter, 1, time.Minute)
	token := srv.tokenFor(t, domain.Actor{ID: "user-1", Role: domain.RoleUser})

	rr := srv.do(t, http.MethodPost, "/api/v1/records", token, map[string]string{
		"title": "t", "description": "d", "location": "l", "record_type": "red-flag",
	})
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}

func TestUserStatsScopedToActor(t *testing.T) {
	srv := newTestServer(t)
	aliceToken := srv.tokenFor(t, domain.Actor{ID: "alice", Role: domain.RoleUser})
	bobToken := srv.tokenFor(t, domain.Actor{ID: "bob", Role: domain.RoleUser})

	for i := 0; i < 2; i++ {
		rr := srv.do(t, http.MethodPost, "/api/v1/records", aliceToken, map[string]string{
			"title": "t", "description": "d", "location": "l", "record_type": "red-flag",
		})
		require.Equal(t, http.StatusCreated, rr.Code)
	}
	rr := srv.do(t, http.MethodPost, "/api/v1/records", bobToken, map[string]string{
		"title": "t", "description": "d", "location": "l", "record_type": "intervention",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = srv.do(t, http.MethodGet, "/api/v1/user_records/stats", aliceToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var stats struct {
		Total    int            `json:"total"`
		ByType   map[string]int `json:"by_type"`
		ByStatus map[string]int `json:"by_status"`
	}
	decodeData(t, rr, &stats)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.ByType["red-flag"])
	assert.Zero(t, stats.ByType["intervention"])

	rr = srv.do(t, http.MethodGet, "/api/v1/user_records/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUserRecordsScopedToActor(t *testing.T) {
	srv := newTestServer(t)
	aliceToken := srv.tokenFor(t, domain.Actor{ID: "alice", Role: domain.RoleUser})
	bobToken := srv.tokenFor(t, domain.Actor{ID: "bob", Role: domain.RoleUser})

	rr := srv.do(t, http.MethodPost, "/api/v1/records", aliceToken, map[string]string{
		"title": "t", "description": "d", "location": "l", "record_type": "red-flag",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = srv.do(t, http.MethodGet, "/api/v1/user_records", bobToken, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var page struct {
		Total int `json:"total"`
	}
	decodeData(t, rr, &page)
	assert.Equal(t, 0, page.Total)
}
