package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"essaycoach-be/internal/models"
)

// EssayService manages the current draft and submitted essays.
type EssayService interface {
	Sections(ctx context.Context, userID string) ([]models.EssaySection, error)
	SaveSections(ctx context.Context, userID string, sections []models.EssaySection) ([]models.EssaySection, error)
	UpdateContent(ctx context.Context, userID, sectionID, content string) (models.EssaySection, error)
	AddBodySection(ctx context.Context, userID string) ([]models.EssaySection, models.EssaySection, error)
	DeleteBodySection(ctx context.Context, userID, sectionID string) ([]models.EssaySection, error)
	Submit(ctx context.Context, userID, username string, req models.SubmitEssayRequest) (*models.Post, error)
	ListPosts(ctx context.Context, userID string, page, perPage int) ([]models.Post, int, error)
}

type EssayHandler struct {
	essays EssayService
	users  UserStore
}

func NewEssayHandler(essays EssayService, users UserStore) *EssayHandler {
	return &EssayHandler{essays: essays, users: users}
}

// GetSections godoc
// @Summary Sections of the current draft
// @Tags essay
// @Security ApiKeyAuth
// @Success 200 {object} map[string][]models.EssaySection
// @Router /essay/sections [get]
func (h *EssayHandler) GetSections(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	sections, err := h.essays.Sections(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "load sections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// SaveSections godoc
// @Summary Replace the section list of the current draft
// @Tags essay
// @Security ApiKeyAuth
// @Accept json
// @Param body body models.SaveSectionsRequest true "Sections"
// @Success 200 {object} map[string][]models.EssaySection
// @Failure 400 {object} models.ErrorResponse
// @Router /essay/sections [put]
func (h *EssayHandler) SaveSections(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req models.SaveSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	sections, err := h.essays.SaveSections(c.Request.Context(), id, req.Sections)
	if err != nil {
		respondServiceError(c, err, "save sections")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// UpdateSection godoc
// @Summary Update the text of a section
// @Tags essay
// @Security ApiKeyAuth
// @Accept json
// @Param sectionId path string true "Section ID"
// @Param body body models.SectionContentRequest true "Content"
// @Success 200 {object} models.EssaySection
// @Failure 404 {object} models.ErrorResponse
// @Router /essay/sections/{sectionId} [put]
func (h *EssayHandler) UpdateSection(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req models.SectionContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	section, err := h.essays.UpdateContent(c.Request.Context(), id, c.Param("sectionId"), req.Content)
	if err != nil {
		respondServiceError(c, err, "update section")
		return
	}
	c.JSON(http.StatusOK, section)
}

// AddBodySection godoc
// @Summary Add a body paragraph before the conclusion
// @Tags essay
// @Security ApiKeyAuth
// @Success 201 {object} map[string]interface{}
// @Router /essay/sections/body [post]
func (h *EssayHandler) AddBodySection(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	sections, added, err := h.essays.AddBodySection(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "add body paragraph")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sections": sections, "section": added})
}

// DeleteBodySection godoc
// @Summary Remove a body paragraph
// @Tags essay
// @Security ApiKeyAuth
// @Param sectionId path string true "Section ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /essay/sections/{sectionId} [delete]
func (h *EssayHandler) DeleteBodySection(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	sections, err := h.essays.DeleteBodySection(c.Request.Context(), id, c.Param("sectionId"))
	if err != nil {
		respondServiceError(c, err, "remove body paragraph")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": sections})
}

// Submit godoc
// @Summary Submit the current draft as an essay
// @Description Composes the draft, stores it with a statistics snapshot and clears the draft.
// @Tags essay
// @Security ApiKeyAuth
// @Accept json
// @Param body body models.SubmitEssayRequest true "Essay"
// @Success 201 {object} models.Post
// @Failure 409 {object} models.ErrorResponse
// @Router /essays/submit [post]
func (h *EssayHandler) Submit(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req models.SubmitEssayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}

	ctx := c.Request.Context()
	username := c.GetString("email")
	if user, err := h.users.FindByID(ctx, id); err == nil && user.Name != "" {
		username = user.Name
	}

	post, err := h.essays.Submit(ctx, id, username, req)
	if err != nil {
		respondServiceError(c, err, "submit essay")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ListPosts godoc
// @Summary Submitted essays, newest first
// @Tags essay
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} models.PostListResponse
// @Router /essays [get]
func (h *EssayHandler) ListPosts(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page = max(page, 1)
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	posts, total, err := h.essays.ListPosts(c.Request.Context(), id, page, perPage)
	if err != nil {
		respondServiceError(c, err, "list essays")
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	c.JSON(http.StatusOK, models.PostListResponse{
		Posts:       posts,
		Total:       total,
		Page:        page,
		PerPage:     perPage,
		HasNextPage: page*perPage < total,
	})
}
