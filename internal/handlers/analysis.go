package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"essaycoach-be/internal/logger"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/services"
)

// AnalysisRecorder stores the outcome of a server-side analysis.
type AnalysisRecorder interface {
	RecordErrorCheck(ctx context.Context, userID, sectionID string, sectionType models.SectionType, result models.ErrorCheckResult) (*models.ErrorStatRecord, error)
	RecordCompletenessVerdict(ctx context.Context, userID, sectionID string, sectionType models.SectionType, v models.CompletenessVerdict) (*models.CompletenessStatRecord, error)
	PutStyleAnalysis(ctx context.Context, userID, sectionID string, analysis models.WritingStyleAnalysis) (models.WritingStyleAnalysis, error)
}

// AnalysisHandler runs the section checkers and records their results.
// Fallback results are returned to the client but never recorded.
type AnalysisHandler struct {
	analysis services.AnalysisService
	recorder AnalysisRecorder
}

func NewAnalysisHandler(analysis services.AnalysisService, recorder AnalysisRecorder) *AnalysisHandler {
	return &AnalysisHandler{analysis: analysis, recorder: recorder}
}

// CheckErrors godoc
// @Summary Check a section for errors
// @Tags analysis
// @Security ApiKeyAuth
// @Accept json
// @Param body body models.AnalyzeSectionRequest true "Section"
// @Success 200 {object} models.ErrorCheckResult
// @Failure 400 {object} models.ErrorResponse
// @Router /analysis/errors [post]
func (h *AnalysisHandler) CheckErrors(c *gin.Context) {
	ctx, id, req, sectionType, ok := h.bind(c, services.KindErrors)
	if !ok {
		return
	}
	result := h.analysis.CheckErrors(ctx, req.Content, sectionType)
	if !result.Fallback {
		if _, err := h.recorder.RecordErrorCheck(ctx, id, req.SectionID, sectionType, result); err != nil {
			slog.WarnContext(ctx, "failed to record error check", "error", err)
		}
	}
	c.JSON(http.StatusOK, result)
}

// CheckCompleteness godoc
// @Summary Check a section against its rubric
// @Tags analysis
// @Security ApiKeyAuth
// @Accept json
// @Param body body models.AnalyzeSectionRequest true "Section"
// @Success 200 {object} models.CompletenessVerdict
// @Failure 400 {object} models.ErrorResponse
// @Router /analysis/completeness [post]
func (h *AnalysisHandler) CheckCompleteness(c *gin.Context) {
	ctx, id, req, sectionType, ok := h.bind(c, services.KindCompleteness)
	if !ok {
		return
	}
	verdict := h.analysis.CheckCompleteness(ctx, req.Content, sectionType, req.PreviousFeedback)
	if !verdict.Fallback {
		if _, err := h.recorder.RecordCompletenessVerdict(ctx, id, req.SectionID, sectionType, verdict); err != nil {
			slog.WarnContext(ctx, "failed to record completeness", "error", err)
		}
	}
	c.JSON(http.StatusOK, verdict)
}

// AnalyzeStyle godoc
// @Summary Analyze the writing style of a section
// @Tags analysis
// @Security ApiKeyAuth
// @Accept json
// @Param body body models.AnalyzeSectionRequest true "Section"
// @Success 200 {object} models.StyleResult
// @Failure 400 {object} models.ErrorResponse
// @Router /analysis/style [post]
func (h *AnalysisHandler) AnalyzeStyle(c *gin.Context) {
	ctx, id, req, _, ok := h.bind(c, services.KindStyle)
	if !ok {
		return
	}
	result := h.analysis.AnalyzeStyle(ctx, req.Content)
	if !result.Fallback {
		stored, err := h.recorder.PutStyleAnalysis(ctx, id, req.SectionID, result.Analysis)
		if err != nil {
			slog.WarnContext(ctx, "failed to record style analysis", "error", err)
		} else {
			result.Analysis = stored
		}
	}
	c.JSON(http.StatusOK, result)
}

func (h *AnalysisHandler) bind(c *gin.Context, kind string) (context.Context, string, models.AnalyzeSectionRequest, models.SectionType, bool) {
	var req models.AnalyzeSectionRequest
	id, ok := userID(c)
	if !ok {
		return nil, "", req, "", false
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, codeValidation, err.Error())
		return nil, "", req, "", false
	}
	sectionType, ok := models.ParseSectionType(req.SectionType)
	if !ok {
		respondError(c, http.StatusBadRequest, codeValidation, "unknown section type "+req.SectionType)
		return nil, "", req, "", false
	}
	ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
		SectionID:    logger.Ptr(req.SectionID),
		AnalysisKind: logger.Ptr(kind),
	})
	return ctx, id, req, sectionType, true
}
