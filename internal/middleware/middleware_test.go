package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essaycoach-be/config"
	"essaycoach-be/internal/logger"
	"essaycoach-be/internal/utils"
)

const secret = "test-secret"

func newRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Recovery(), CORS(cfg))
	protected := r.Group("/api", AuthMiddleware(cfg))
	protected.GET("/whoami", func(c *gin.Context) {
		fields := logger.GetLogFields(c.Request.Context())
		logged := ""
		if fields.UserID != nil {
			logged = *fields.UserID
		}
		c.JSON(http.StatusOK, gin.H{
			"userID": c.GetString("userID"),
			"email":  c.GetString("email"),
			"logged": logged,
		})
	})
	r.GET("/panic", func(*gin.Context) { panic("boom") })
	return r
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: secret, FrontendURL: "http://localhost:3000, https://coach.example.com/"}
}

func TestAuthMiddlewareAcceptsAccessToken(t *testing.T) {
	r := newRouter(testConfig())
	token, err := utils.GenerateAccessToken("u1", "u1@example.com", secret, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userID":"u1","email":"u1@example.com","logged":"u1"}`, w.Body.String())
}

func TestAuthMiddlewareRejects(t *testing.T) {
	refresh, err := utils.GenerateRefreshToken("u1", "u1@example.com", secret, time.Minute)
	require.NoError(t, err)
	foreign, err := utils.GenerateAccessToken("u1", "u1@example.com", "other-secret", time.Minute)
	require.NoError(t, err)
	expired, err := utils.GenerateAccessToken("u1", "u1@example.com", secret, -time.Minute)
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"no bearer":      refresh,
		"refresh token":  "Bearer " + refresh,
		"wrong secret":   "Bearer " + foreign,
		"expired":        "Bearer " + expired,
		"empty bearer":   "Bearer ",
		"garbage":        "Bearer not-a-jwt",
	}
	r := newRouter(testConfig())
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"error":"unauthorized"`)
		})
	}
}

func TestCORS(t *testing.T) {
	r := newRouter(testConfig())

	req := httptest.NewRequest(http.MethodOptions, "/api/whoami", nil)
	req.Header.Set("Origin", "https://coach.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://coach.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Statistics-Source")

	req = httptest.NewRequest(http.MethodOptions, "/api/whoami", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecovery(t *testing.T) {
	r := newRouter(testConfig())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "server_error")
}

func TestLoggerPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Logger("/api/health"))
	r.GET("/api/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
