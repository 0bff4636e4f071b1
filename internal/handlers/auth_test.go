package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"essaycoach-be/config"
	"essaycoach-be/internal/handlers"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/utils"
)

var _ = Describe("AuthHandler", func() {
	var (
		router *gin.Engine
		users  *mockUserStore
		cfg    *config.Config
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		users = newMockUserStore()
		cfg = &config.Config{
			JWTSecret:            "test-secret",
			JWTAccessExpiration:  time.Minute,
			JWTRefreshExpiration: time.Hour,
		}
		h := handlers.NewAuthHandler(cfg, users)
		router.POST("/signup", h.Signup)
		router.POST("/login", h.Login)
		router.POST("/refresh", h.RefreshToken)
	})

	post := func(path string, body any) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	signup := func() models.AuthResponse {
		w := post("/signup", map[string]string{"email": "ada@example.com", "password": "secret123", "name": "Ada"})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp models.AuthResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		return resp
	}

	It("signs up and issues an access token", func() {
		resp := signup()
		claims, err := utils.ValidateToken(resp.AccessToken, cfg.JWTSecret)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.TokenType).To(Equal(utils.TokenTypeAccess))
		Expect(users.users["ada@example.com"].RefreshToken).To(Equal(resp.RefreshToken))
		Expect(users.users["ada@example.com"].Password).NotTo(Equal("secret123"))
	})

	It("rejects a duplicate signup", func() {
		signup()
		w := post("/signup", map[string]string{"email": "ada@example.com", "password": "secret123", "name": "Ada"})
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("logs in with the right password only", func() {
		signup()
		Expect(post("/login", map[string]string{"email": "ada@example.com", "password": "secret123"}).Code).To(Equal(http.StatusOK))
		Expect(post("/login", map[string]string{"email": "ada@example.com", "password": "wrong-password"}).Code).To(Equal(http.StatusUnauthorized))
		Expect(post("/login", map[string]string{"email": "bob@example.com", "password": "secret123"}).Code).To(Equal(http.StatusUnauthorized))
	})

	It("rotates refresh tokens", func() {
		first := signup()

		w := post("/refresh", map[string]string{"refreshToken": first.RefreshToken})
		Expect(w.Code).To(Equal(http.StatusOK))
		var second models.AuthResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &second)).To(Succeed())
		Expect(second.RefreshToken).NotTo(Equal(first.RefreshToken))

		// the old token was revoked by the rotation
		Expect(post("/refresh", map[string]string{"refreshToken": first.RefreshToken}).Code).To(Equal(http.StatusUnauthorized))
	})

	It("refuses an access token as refresh token", func() {
		resp := signup()
		w := post("/refresh", map[string]string{"refreshToken": resp.AccessToken})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("invalid_token_type"))
	})
})
