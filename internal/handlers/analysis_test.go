package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"essaycoach-be/internal/handlers"
	"essaycoach-be/internal/models"
)

var _ = Describe("AnalysisHandler", func() {
	var (
		router   *gin.Engine
		analysis *mockAnalysisService
		recorder *mockStatisticsService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		analysis = &mockAnalysisService{}
		recorder = &mockStatisticsService{}
		h := handlers.NewAnalysisHandler(analysis, recorder)
		g := router.Group("/analysis", asUser("u1"))
		g.POST("/errors", h.CheckErrors)
		g.POST("/completeness", h.CheckCompleteness)
		g.POST("/style", h.AnalyzeStyle)
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

	section := map[string]any{
		"sectionId":   "body-1",
		"sectionType": "Body Paragraph 1",
		"content":     "Public libraries give everyone access to books.",
	}

	It("records a successful error check", func() {
		analysis.errorsFn = func(_ context.Context, text string, t models.SectionType) models.ErrorCheckResult {
			Expect(t).To(Equal(models.SectionBody))
			return models.ErrorCheckResult{Errors: models.CategorizedErrors{
				Spelling: []models.ErrorDetail{{Type: "capital_letters", Text: "i"}},
			}}
		}
		recorded := false
		recorder.recordErrorCheckFn = func(_ context.Context, userID, sectionID string, _ models.SectionType, r models.ErrorCheckResult) (*models.ErrorStatRecord, error) {
			recorded = true
			Expect(userID).To(Equal("u1"))
			Expect(sectionID).To(Equal("body-1"))
			Expect(r.Errors.Total()).To(Equal(1))
			return &models.ErrorStatRecord{}, nil
		}

		w := post("/analysis/errors", section)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(recorded).To(BeTrue())
		Expect(w.Body.String()).To(ContainSubstring(`"fallback":false`))
	})

	It("does not record fallback results", func() {
		recorder.recordErrorCheckFn = func(context.Context, string, string, models.SectionType, models.ErrorCheckResult) (*models.ErrorStatRecord, error) {
			Fail("fallback result must not be recorded")
			return nil, nil
		}
		recorder.recordVerdictFn = func(context.Context, string, string, models.SectionType, models.CompletenessVerdict) (*models.CompletenessStatRecord, error) {
			Fail("fallback verdict must not be recorded")
			return nil, nil
		}
		recorder.putStyleFn = func(context.Context, string, string, models.WritingStyleAnalysis) (models.WritingStyleAnalysis, error) {
			Fail("fallback style must not be recorded")
			return models.WritingStyleAnalysis{}, nil
		}

		Expect(post("/analysis/errors", section).Code).To(Equal(http.StatusOK))
		w := post("/analysis/completeness", section)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Section analysis failed"))
		Expect(post("/analysis/style", section).Code).To(Equal(http.StatusOK))
	})

	It("passes previous feedback to the completeness check", func() {
		analysis.completenessFn = func(_ context.Context, _ string, _ models.SectionType, previous []string) models.CompletenessVerdict {
			Expect(previous).To(ConsistOf("Add evidence"))
			return models.CompletenessVerdict{IsComplete: true, CompletionStatus: models.CompletenessDetails{Met: []string{"Topic sentence"}, Missing: []string{}}}
		}
		var verdict models.CompletenessVerdict
		recorder.recordVerdictFn = func(_ context.Context, _, _ string, _ models.SectionType, v models.CompletenessVerdict) (*models.CompletenessStatRecord, error) {
			verdict = v
			return &models.CompletenessStatRecord{}, nil
		}

		body := map[string]any{}
		for k, v := range section {
			body[k] = v
		}
		body["previousFeedback"] = []string{"Add evidence"}
		w := post("/analysis/completeness", body)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(verdict.IsComplete).To(BeTrue())
	})

	It("returns the stored style analysis", func() {
		analysis.styleFn = func(context.Context, string) models.StyleResult {
			return models.StyleResult{Analysis: models.WritingStyleAnalysis{Clarity: models.Clarity{Score: 80}}}
		}
		recorder.putStyleFn = func(_ context.Context, _, _ string, a models.WritingStyleAnalysis) (models.WritingStyleAnalysis, error) {
			a.Clarity.Level = "High"
			return a, nil
		}
		w := post("/analysis/style", section)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"level":"High"`))
	})

	It("rejects unknown section types", func() {
		w := post("/analysis/errors", map[string]any{"sectionId": "x", "sectionType": "Appendix", "content": "text"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects an empty body", func() {
		w := post("/analysis/style", map[string]any{})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
