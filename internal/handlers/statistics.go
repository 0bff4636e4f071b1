package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"essaycoach-be/internal/models"
)

// StatisticsHeader names the source of a rollup response: live, cache or empty.
const StatisticsHeader = "X-Statistics-Source"

// StatisticsService records analysis results and serves aggregated statistics.
type StatisticsService interface {
	Rollup(ctx context.Context, userID string) (models.RollupStatistics, string)
	SectionSummary(ctx context.Context, userID, sectionID string) (models.SectionSummary, error)
	RecordErrorStat(ctx context.Context, userID string, req models.RecordErrorStatRequest) (*models.ErrorStatRecord, error)
	RecordCompleteness(ctx context.Context, userID string, req models.RecordCompletenessRequest) (*models.CompletenessStatRecord, error)
	PutStyleAnalysis(ctx context.Context, userID, sectionID string, analysis models.WritingStyleAnalysis) (models.WritingStyleAnalysis, error)
	GetStyleAnalysis(ctx context.Context, userID, sectionID string) (*models.WritingStyleAnalysis, error)
	RefreshStyleAnalyses(ctx context.Context, userID string) (int, error)
}

// ProgressService builds the long-term progress report over submitted essays.
type ProgressService interface {
	MonthlyReport(ctx context.Context, userID string) (models.ProgressReport, error)
}

type StatisticsHandler struct {
	stats    StatisticsService
	progress ProgressService
}

func NewStatisticsHandler(stats StatisticsService, progress ProgressService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats, progress: progress}
}

// GetRollup godoc
// @Summary Writing dashboard statistics
// @Description Aggregates every recorded section of the current essay. Never fails: when the record store is unavailable the last cached rollup or empty statistics are returned, see the X-Statistics-Source header.
// @Tags statistics
// @Security ApiKeyAuth
// @Produce json
// @Success 200 {object} models.RollupStatistics
// @Header 200 {string} X-Statistics-Source "live, cache or empty"
// @Failure 401 {object} models.ErrorResponse
// @Router /statistics/rollup [get]
func (h *StatisticsHandler) GetRollup(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	rollup, source := h.stats.Rollup(c.Request.Context(), id)
	c.Header(StatisticsHeader, source)
	c.JSON(http.StatusOK, rollup)
}

// GetSectionSummary godoc
// @Summary Normalized statistics of one section
// @Tags statistics
// @Security ApiKeyAuth
// @Param sectionId path string true "Section ID"
// @Success 200 {object} models.SectionSummary
// @Failure 404 {object} models.ErrorResponse
// @Router /statistics/sections/{sectionId} [get]
func (h *StatisticsHandler) GetSectionSummary(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	summary, err := h.stats.SectionSummary(c.Request.Context(), id, c.Param("sectionId"))
	if err != nil {
		respondServiceError(c, err, "load section statistics")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// RecordErrors godoc
// @Summary Record an error check result
// @Tags statistics
// @Security ApiKeyAuth
// @Accept json
// @Param body body models.RecordErrorStatRequest true "Error check result"
// @Success 201 {object} models.ErrorStatRecord
// @Failure 400 {object} models.ErrorResponse
// @Router /statistics/errors [post]
func (h *StatisticsHandler) RecordErrors(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req models.RecordErrorStatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	rec, err := h.stats.RecordErrorStat(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "record error statistics")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// RecordCompleteness godoc
// @Summary Record a completeness verdict
// @Tags statistics
// @Security ApiKeyAuth
// @Accept json
// @Param body body models.RecordCompletenessRequest true "Completeness verdict"
// @Success 201 {object} models.CompletenessStatRecord
// @Failure 400 {object} models.ErrorResponse
// @Router /statistics/completeness [post]
func (h *StatisticsHandler) RecordCompleteness(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var req models.RecordCompletenessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	rec, err := h.stats.RecordCompleteness(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "record completeness")
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// PutStyleAnalysis godoc
// @Summary Store the style analysis of a section
// @Tags statistics
// @Security ApiKeyAuth
// @Accept json
// @Param sectionId path string true "Section ID"
// @Param body body models.WritingStyleAnalysis true "Style analysis"
// @Success 200 {object} models.WritingStyleAnalysis
// @Router /statistics/analysis/{sectionId} [put]
func (h *StatisticsHandler) PutStyleAnalysis(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	var analysis models.WritingStyleAnalysis
	if err := c.ShouldBindJSON(&analysis); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return
	}
	stored, err := h.stats.PutStyleAnalysis(c.Request.Context(), id, c.Param("sectionId"), analysis)
	if err != nil {
		respondServiceError(c, err, "store style analysis")
		return
	}
	c.JSON(http.StatusOK, stored)
}

// GetStyleAnalysis godoc
// @Summary Latest style analysis of a section
// @Tags statistics
// @Security ApiKeyAuth
// @Param sectionId path string true "Section ID"
// @Success 200 {object} models.WritingStyleAnalysis
// @Failure 404 {object} models.ErrorResponse
// @Router /statistics/analysis/{sectionId} [get]
func (h *StatisticsHandler) GetStyleAnalysis(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	analysis, err := h.stats.GetStyleAnalysis(c.Request.Context(), id, c.Param("sectionId"))
	if err != nil {
		respondServiceError(c, err, "load style analysis")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// RefreshStyleAnalyses godoc
// @Summary Re-run style analysis for every drafted section
// @Tags statistics
// @Security ApiKeyAuth
// @Success 200 {object} map[string]int
// @Router /statistics/analysis/refresh [post]
func (h *StatisticsHandler) RefreshStyleAnalyses(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	n, err := h.stats.RefreshStyleAnalyses(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "refresh style analyses")
		return
	}
	c.JSON(http.StatusOK, gin.H{"refreshed": n})
}

// GetMonthlyReport godoc
// @Summary Progress over the essays submitted in the last three months
// @Tags statistics
// @Security ApiKeyAuth
// @Success 200 {object} models.ProgressReport
// @Failure 500 {object} models.ErrorResponse
// @Router /statistics/monthly [get]
func (h *StatisticsHandler) GetMonthlyReport(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}
	report, err := h.progress.MonthlyReport(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "build progress report")
		return
	}
	c.JSON(http.StatusOK, report)
}
