package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/capstone-archive/backend-go/internal/database/models"
	"github.com/capstone-archive/backend-go/internal/handler"
	"github.com/capstone-archive/backend-go/internal/middleware"
	"github.com/capstone-archive/backend-go/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	handler.RegisterValidator()
}

// envelope mirrors response.Envelope with the data left undecoded
type envelope struct {
	Status  int                 `json:"status"`
	Error   *response.ErrorBody `json:"error"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
}

// asUser attaches an identity the way the auth middleware does
func asUser(id uint, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, id)
		c.Set(middleware.ContextUserRole, role)
		c.Set(middleware.ContextUser, &models.User{ID: id, FullName: "Test User", Email: "user@example.edu", Role: role})
		c.Next()
	}
}

// anonymous leaves the request without identity
func anonymous(c *gin.Context) {
	c.Next()
}

func performRequest(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch v := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(v)
	default:
		raw, _ := json.Marshal(v)
		reader = bytes.NewBuffer(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, target any) envelope {
	t.Helper()
	env := decode(t, w)
	require.NoError(t, json.Unmarshal(env.Data, target), string(env.Data))
	return env
}

// assertError checks status, envelope code and optionally the first detail field
func assertError(t *testing.T, w *httptest.ResponseRecorder, status int, code, field string) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	env := decode(t, w)
	require.NotNil(t, env.Error)
	require.Equal(t, code, env.Error.Code)
	require.Equal(t, status, env.Status)
	if field != "" {
		require.NotEmpty(t, env.Error.Details)
		require.Equal(t, field, env.Error.Details[0].Field)
	}
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }
