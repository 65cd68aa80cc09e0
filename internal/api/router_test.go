package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capstone-archive/backend-go/internal/api"
	"github.com/capstone-archive/backend-go/internal/config"
	"github.com/capstone-archive/backend-go/internal/database"
	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/database/repository"
	"github.com/capstone-archive/backend-go/internal/database/service"
	"github.com/capstone-archive/backend-go/internal/handler"
	"github.com/capstone-archive/backend-go/internal/middleware"
	"github.com/capstone-archive/backend-go/internal/response"
	"github.com/capstone-archive/backend-go/internal/testutil"
)

const adminPassword = "admin-password-1"

type envelope struct {
	Status  int                 `json:"status"`
	Error   *response.ErrorBody `json:"error"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	cfg    *config.Config
	users  repository.UserRepository
	redis  *miniredis.Miniredis
}

// newTestServer wires the real stack over SQLite and miniredis
func newTestServer(t *testing.T, opts ...func(*config.Config)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testutil.TestConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	logger := testutil.TestLogger()
	db := testutil.NewTestDB(t)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	cache := database.NewRedisClientForTesting(client, cfg, logger)
	limiter := middleware.NewRateLimiter(client, cfg.AuthRateLimit, time.Duration(cfg.AuthRateWindow)*time.Second, logger)

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	savedRepo := repository.NewSavedProjectRepository(db)

	authService := service.NewAuthService(userRepo, cfg, logger)
	handlers := api.Handlers{
		Auth:         handler.NewAuthHandler(authService, cfg, logger),
		Project:      handler.NewProjectHandler(service.NewCatalogService(projectRepo, cache, logger), cfg, logger),
		SavedProject: handler.NewSavedProjectHandler(service.NewBookmarkService(savedRepo, projectRepo, cache, logger), cfg, logger),
		About:        handler.NewAboutHandler(service.NewAboutService(repository.NewAboutRepository(db), logger), cfg, logger),
		Analytics:    handler.NewAnalyticsHandler(service.NewAnalyticsService(repository.NewAnalyticsRepository(db), cache, logger), cfg, logger),
		Upload:       handler.NewUploadHandler(nil, cfg, logger),
	}

	router := api.SetupRouter(cfg, handlers, middleware.NewAuthMiddleware(authService, logger), limiter, logger)
	return &testServer{t: t, router: router, cfg: cfg, users: userRepo, redis: mr}
}

func (s *testServer) do(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (s *testServer) createAdmin(email string) {
	s.t.Helper()
	_, err := service.CreateAdmin(context.Background(), s.users, s.cfg.BcryptCost, service.AdminInput{
		FullName: "Archive Admin",
		Email:    email,
		Password: adminPassword,
	})
	require.NoError(s.t, err)
}

func (s *testServer) login(path, email, password string) string {
	s.t.Helper()
	w, env := s.do(http.MethodPost, path, "", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var data handler.LoginResponse
	require.NoError(s.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(s.t, data.Token)
	return data.Token
}

func (s *testServer) registerStudent(email string) {
	s.t.Helper()
	w, _ := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"fullName": "Student " + email,
		"email":    email,
		"password": testutil.TestPassword,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
}

func decodeInto[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

func TestRouter_CatalogLifecycle(t *testing.T) {
	s := newTestServer(t)
	s.createAdmin("admin@example.edu")
	s.registerStudent("student@example.edu")

	adminToken := s.login("/api/auth/admin/login", "admin@example.edu", adminPassword)
	studentToken := s.login("/api/auth/login", "student@example.edu", testutil.TestPassword)

	// Portals are separate
	w, env := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "admin@example.edu", "password": adminPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, response.CodeUnauthorized, env.Error.Code)

	// Students cannot write to the catalog
	project := map[string]any{
		"title":   "Smart Irrigation",
		"author":  "J. Cruz",
		"year":    2021,
		"field":   "IoT",
		"fileUrl": "https://files.example.edu/smart-irrigation.pdf",
	}
	w, _ = s.do(http.MethodPost, "/api/projects", studentToken, project)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(http.MethodPost, "/api/projects", adminToken, project)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decodeInto[handler.ProjectResponse](t, env)
	projectPath := "/api/projects/" + jsonNumber(created.ID)

	w, env = s.do(http.MethodPost, "/api/projects", adminToken, project)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeConflict, env.Error.Code)

	w, env = s.do(http.MethodPost, "/api/projects", adminToken, map[string]any{
		"title": "Crop Disease Detection", "author": "A. Reyes", "year": 2023, "field": "AI/ML",
		"fileUrl": "https://files.example.edu/crop-disease.pdf",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Anonymous browsing with filters
	w, env = s.do(http.MethodGet, "/api/projects?field=iot", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodeInto[service.Page[handler.ProjectResponse]](t, env)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Smart Irrigation", page.Items[0].Title)

	w, env = s.do(http.MethodGet, "/api/projects?yearFrom=2022", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = decodeInto[service.Page[handler.ProjectResponse]](t, env)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Crop Disease Detection", page.Items[0].Title)

	// Bookmark
	w, _ = s.do(http.MethodPost, "/api/saved-projects", studentToken, map[string]any{"projectId": created.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = s.do(http.MethodPost, "/api/saved-projects", studentToken, map[string]any{"projectId": created.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeConflict, env.Error.Code)

	w, env = s.do(http.MethodGet, "/api/saved-projects/"+jsonNumber(created.ID)+"/check", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"projectId":`+jsonNumber(created.ID)+`,"saved":true}`, string(env.Data))

	w, env = s.do(http.MethodGet, "/api/analytics/top-saved", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	top := decodeInto[[]models.SavedCount](t, env)
	require.NotEmpty(t, top)
	assert.Equal(t, created.ID, top[0].ProjectID)
	assert.Equal(t, int64(1), top[0].Count)

	// Soft delete hides the project from students and the saved list
	w, _ = s.do(http.MethodDelete, projectPath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodDelete, projectPath, adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeInvalidState, env.Error.Code)

	w, _ = s.do(http.MethodGet, projectPath, studentToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(http.MethodGet, projectPath, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeInto[handler.ProjectResponse](t, env).IsDeleted)

	w, env = s.do(http.MethodGet, "/api/saved-projects", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decodeInto[service.Page[handler.SavedProjectResponse]](t, env).Items)

	w, env = s.do(http.MethodGet, "/api/projects/trash", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeInto[service.Page[handler.ProjectResponse]](t, env).Items, 1)

	w, _ = s.do(http.MethodGet, "/api/projects?includeDeleted=true", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Restore brings the bookmark back
	w, _ = s.do(http.MethodPost, projectPath+"/restore", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, "/api/saved-projects", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeInto[service.Page[handler.SavedProjectResponse]](t, env).Items, 1)

	// Permanent delete removes the bookmark
	w, _ = s.do(http.MethodDelete, projectPath+"?permanent=true", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodGet, "/api/saved-projects/"+jsonNumber(created.ID)+"/check", studentToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"projectId":`+jsonNumber(created.ID)+`,"saved":false}`, string(env.Data))

	w, env = s.do(http.MethodGet, "/api/analytics/overview", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	overview := decodeInto[models.AnalyticsOverview](t, env)
	assert.Equal(t, int64(1), overview.ActiveProjects)
	assert.Equal(t, int64(0), overview.TrashedProjects)
	assert.Equal(t, int64(1), overview.Students)
	assert.Equal(t, int64(1), overview.Admins)
	assert.Equal(t, int64(0), overview.SavedProjects)
}

func TestRouter_AnalyticsCacheInvalidation(t *testing.T) {
	s := newTestServer(t)
	s.createAdmin("admin@example.edu")
	adminToken := s.login("/api/auth/admin/login", "admin@example.edu", adminPassword)

	w, env := s.do(http.MethodGet, "/api/analytics/projects-by-field", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	w, _ = s.do(http.MethodPost, "/api/projects", adminToken, map[string]any{
		"title": "IoT Weather Station", "author": "M. Lim", "year": 2023, "field": "IoT",
		"fileUrl": "https://files.example.edu/weather.pdf",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = s.do(http.MethodGet, "/api/analytics/projects-by-field", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"field":"IoT","count":1}]`, string(env.Data))
}

func TestRouter_PasswordReset(t *testing.T) {
	s := newTestServer(t)
	s.registerStudent("student@example.edu")

	w, env := s.do(http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "nobody@example.edu"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Data)

	w, env = s.do(http.MethodPost, "/api/auth/forgot-password", "", map[string]string{"email": "student@example.edu"})
	require.Equal(t, http.StatusOK, w.Code)
	resetToken := decodeInto[map[string]string](t, env)["resetToken"]
	require.NotEmpty(t, resetToken)

	w, _ = s.do(http.MethodPost, "/api/auth/reset-password", "", map[string]string{"token": resetToken, "password": "brand-new-pass"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(http.MethodPost, "/api/auth/reset-password", "", map[string]string{"token": resetToken, "password": "another-pass-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeInvalidToken, env.Error.Code)

	w, _ = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": "student@example.edu", "password": testutil.TestPassword})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login("/api/auth/login", "student@example.edu", "brand-new-pass")

	// A reset token is not a session token
	w, _ = s.do(http.MethodGet, "/api/auth/me", resetToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decodeInto[map[string]models.User](t, env)["user"]
	assert.Equal(t, "student@example.edu", me.Email)
}

func TestRouter_LoginRateLimit(t *testing.T) {
	s := newTestServer(t)
	s.registerStudent("student@example.edu")

	body := map[string]string{"email": "student@example.edu", "password": "wrong-password"}
	for i := int64(0); i < s.cfg.AuthRateLimit; i++ {
		w, _ := s.do(http.MethodPost, "/api/auth/login", "", body)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w, env := s.do(http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, response.CodeRateLimited, env.Error.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	// Registration is not limited
	s.registerStudent("second@example.edu")
}

func TestRouter_LoginRateLimitBehindProxy(t *testing.T) {
	// httptest requests come from 192.0.2.1
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.TrustedProxies = []string{"192.0.2.0/24"}
	})
	s.registerStudent("student@example.edu")

	login := func(clientIP string) int {
		raw, err := json.Marshal(map[string]string{"email": "student@example.edu", "password": "wrong-password"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", clientIP)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w.Code
	}

	for i := int64(0); i < s.cfg.AuthRateLimit; i++ {
		require.Equal(t, http.StatusUnauthorized, login("203.0.113.10"))
	}
	assert.Equal(t, http.StatusTooManyRequests, login("203.0.113.10"))

	// another client behind the same proxy keeps its own bucket
	assert.Equal(t, http.StatusUnauthorized, login("203.0.113.20"))
	assert.True(t, s.redis.Exists("rate:login:203.0.113.10"))
	assert.False(t, s.redis.Exists("rate:login:192.0.2.1"))
}

func TestRouter_PublicSurface(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, string(env.Data))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w, env = s.do(http.MethodGet, "/api/about", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Capstone Project Archive", decodeInto[models.AboutContent](t, env).Title)

	w, _ = s.do(http.MethodPut, "/api/about", "", map[string]string{"title": "New"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/api/analytics/overview", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(http.MethodGet, "/api/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.CodeNotFound, env.Error.Code)

	w, env = s.do(http.MethodPatch, "/api/about", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, response.CodeMethodNotAllowed, env.Error.Code)

	w, _ = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "capstone_http_requests_total")
}

func TestRouter_AboutUpdate(t *testing.T) {
	s := newTestServer(t)
	s.createAdmin("admin@example.edu")
	adminToken := s.login("/api/auth/admin/login", "admin@example.edu", adminPassword)

	w, _ := s.do(http.MethodPut, "/api/about", adminToken, map[string]string{"mission": "Keep every capstone findable."})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(http.MethodGet, "/api/about", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	about := decodeInto[models.AboutContent](t, env)
	assert.Equal(t, "Keep every capstone findable.", about.Mission)
	assert.Equal(t, "Capstone Project Archive", about.Title)
}

func TestRouter_UploadDisabled(t *testing.T) {
	s := newTestServer(t)
	s.createAdmin("admin@example.edu")
	adminToken := s.login("/api/auth/admin/login", "admin@example.edu", adminPassword)

	w, env := s.do(http.MethodPost, "/api/projects/upload-url", adminToken, map[string]string{"fileName": "a.pdf", "contentType": "application/pdf"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, response.CodeStorageUnavailable, env.Error.Code)
}

func jsonNumber(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
