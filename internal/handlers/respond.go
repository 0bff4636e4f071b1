package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"essaycoach-be/internal/essay"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/repository"
	"essaycoach-be/internal/services"
)

// Error codes returned in models.ErrorResponse
const (
	codeValidation   = "validation_error"
	codeUnauthorized = "unauthorized"
	codeNotFound     = "not_found"
	codeConflict     = "conflict"
	codeServer       = "server_error"
)

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{Error: code, Message: message})
}

// userID reads the id set by the auth middleware. It writes a 401 when missing.
func userID(c *gin.Context) (string, bool) {
	id := c.GetString("userID")
	if id == "" {
		respondError(c, http.StatusUnauthorized, codeUnauthorized, "User not authenticated")
		return "", false
	}
	return id, true
}

// respondServiceError maps domain errors to HTTP statuses.
func respondServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrInvalidSectionType),
		errors.Is(err, essay.ErrInvalidSection),
		errors.Is(err, essay.ErrNotBodySection):
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, essay.ErrSectionNotFound):
		respondError(c, http.StatusNotFound, codeNotFound, err.Error())
	case errors.Is(err, essay.ErrLastBodySection),
		errors.Is(err, services.ErrEmptyEssay):
		respondError(c, http.StatusConflict, codeConflict, err.Error())
	default:
		slog.ErrorContext(c.Request.Context(), "request failed", "action", action, "error", err)
		respondError(c, http.StatusInternalServerError, codeServer, "Failed to "+action)
	}
}
