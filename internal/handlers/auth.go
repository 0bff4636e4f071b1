package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"essaycoach-be/config"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/repository"
	"essaycoach-be/internal/utils"
)

// UserStore is the subset of the user repository the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	UpdateRefreshToken(ctx context.Context, userID, refreshToken string) error
}

type AuthHandler struct {
	cfg   *config.Config
	users UserStore
}

func NewAuthHandler(cfg *config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{
		cfg:   cfg,
		users: users,
	}
}

// Signup godoc
// @Summary Register with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.SignupRequest true "Account"
// @Success 201 {object} models.AuthResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	existing, err := h.users.FindByEmail(ctx, req.Email)
	if err == nil && existing != nil {
		respondError(c, http.StatusConflict, "user_exists", "User with this email already exists")
		return
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		slog.ErrorContext(ctx, "signup lookup failed", "error", err)
		respondError(c, http.StatusInternalServerError, codeServer, "Failed to find user")
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		respondError(c, http.StatusInternalServerError, codeServer, "Failed to process password")
		return
	}

	user := &models.User{
		Email:    req.Email,
		Password: hashedPassword,
		Name:     req.Name,
	}
	if err := h.users.Create(ctx, user); err != nil {
		slog.ErrorContext(ctx, "create user failed", "error", err)
		respondError(c, http.StatusInternalServerError, codeServer, "Failed to create user")
		return
	}

	resp, ok := h.issueTokens(ctx, c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Credentials"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}
	if err != nil {
		slog.ErrorContext(ctx, "login lookup failed", "error", err)
		respondError(c, http.StatusInternalServerError, codeServer, "Failed to find user")
		return
	}

	if err := utils.CheckPassword(user.Password, req.Password); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
		return
	}

	resp, ok := h.issueTokens(ctx, c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RefreshToken godoc
// @Summary Rotate the refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} models.AuthResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.cfg.JWTSecret)
	if err != nil {
		slog.DebugContext(c.Request.Context(), "refresh token rejected", "error", err)
		respondError(c, http.StatusUnauthorized, "invalid_refresh_token", "Invalid or expired refresh token")
		return
	}
	if claims.TokenType != utils.TokenTypeRefresh {
		respondError(c, http.StatusUnauthorized, "invalid_token_type", "Token is not a refresh token")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.FindByID(ctx, claims.UserID)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_refresh_token", "User not found")
		return
	}
	if user.RefreshToken != req.RefreshToken {
		slog.WarnContext(ctx, "refresh token mismatch", "user_id", claims.UserID)
		respondError(c, http.StatusUnauthorized, "invalid_refresh_token", "Refresh token not found or revoked")
		return
	}

	resp, ok := h.issueTokens(ctx, c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Revoke the refresh token
// @Tags auth
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.users.UpdateRefreshToken(ctx, id, ""); err != nil {
		respondError(c, http.StatusInternalServerError, codeServer, "Failed to logout")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// GetMe godoc
// @Summary Current user profile
// @Tags auth
// @Security ApiKeyAuth
// @Success 200 {object} models.User
// @Failure 404 {object} models.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.FindByID(ctx, id)
	if err != nil {
		respondServiceError(c, err, "find user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// issueTokens generates a new token pair and stores the refresh token (rotation).
func (h *AuthHandler) issueTokens(ctx context.Context, c *gin.Context, user *models.User) (models.AuthResponse, bool) {
	id := user.ID.Hex()
	accessToken, err := utils.GenerateAccessToken(id, user.Email, h.cfg.JWTSecret, h.cfg.JWTAccessExpiration)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_generation_failed", "Failed to generate access token")
		return models.AuthResponse{}, false
	}
	refreshToken, err := utils.GenerateRefreshToken(id, user.Email, h.cfg.JWTSecret, h.cfg.JWTRefreshExpiration)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_generation_failed", "Failed to generate refresh token")
		return models.AuthResponse{}, false
	}
	if err := h.users.UpdateRefreshToken(ctx, id, refreshToken); err != nil {
		slog.ErrorContext(ctx, "store refresh token failed", "error", err, "user_id", id)
		respondError(c, http.StatusInternalServerError, codeServer, "Failed to store refresh token")
		return models.AuthResponse{}, false
	}
	user.RefreshToken = refreshToken
	return models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, true
}
