package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"essaycoach-be/internal/essay"
	"essaycoach-be/internal/handlers"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/repository"
	"essaycoach-be/internal/services"
)

var _ = Describe("StatisticsHandler", func() {
	var (
		router   *gin.Engine
		stats    *mockStatisticsService
		progress *mockProgressService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		stats = &mockStatisticsService{}
		progress = &mockProgressService{}
		h := handlers.NewStatisticsHandler(stats, progress)

		g := router.Group("/statistics", asUser("u1"))
		g.GET("/rollup", h.GetRollup)
		g.GET("/sections/:sectionId", h.GetSectionSummary)
		g.POST("/errors", h.RecordErrors)
		g.POST("/completeness", h.RecordCompleteness)
		g.POST("/analysis/refresh", h.RefreshStyleAnalyses)
		g.PUT("/analysis/:sectionId", h.PutStyleAnalysis)
		g.GET("/analysis/:sectionId", h.GetStyleAnalysis)
		g.GET("/monthly", h.GetMonthlyReport)

		router.GET("/anonymous/rollup", h.GetRollup)
	})

	serve := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&buf).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	Describe("GET /rollup", func() {
		It("returns the rollup and names its source", func() {
			stats.rollupFn = func(_ context.Context, userID string) (models.RollupStatistics, string) {
				Expect(userID).To(Equal("u1"))
				return models.RollupStatistics{WritingMetrics: models.WritingMetrics{TotalSections: 3}}, "cache"
			}

			w := serve(http.MethodGet, "/statistics/rollup", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get(handlers.StatisticsHeader)).To(Equal("cache"))
			var resp models.RollupStatistics
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp.WritingMetrics.TotalSections).To(Equal(3))
		})

		It("returns 401 without a user", func() {
			w := serve(http.MethodGet, "/anonymous/rollup", nil)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("GET /sections/:sectionId", func() {
		It("returns 404 for an unknown section", func() {
			stats.sectionSummaryFn = func(context.Context, string, string) (models.SectionSummary, error) {
				return models.SectionSummary{}, fmt.Errorf("section x: %w", repository.ErrNotFound)
			}
			w := serve(http.MethodGet, "/statistics/sections/x", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns the summary", func() {
			stats.sectionSummaryFn = func(_ context.Context, _, sectionID string) (models.SectionSummary, error) {
				return models.SectionSummary{SectionID: sectionID, WordCount: 12}, nil
			}
			w := serve(http.MethodGet, "/statistics/sections/intro", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"sectionId":"intro"`))
		})
	})

	Describe("POST /errors", func() {
		It("records the result", func() {
			var got models.RecordErrorStatRequest
			stats.recordErrorStatFn = func(_ context.Context, _ string, req models.RecordErrorStatRequest) (*models.ErrorStatRecord, error) {
				got = req
				return &models.ErrorStatRecord{ID: "r1", SectionID: req.SectionID}, nil
			}

			w := serve(http.MethodPost, "/statistics/errors", map[string]any{
				"sectionId":        "intro",
				"sectionType":      "Introduction",
				"totalErrors":      2,
				"errorsByCategory": map[string]int{"spelling": 2},
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(got.SectionID).To(Equal("intro"))
			Expect(got.ErrorsByCategory).To(HaveKeyWithValue("spelling", 2))
		})

		It("returns 400 when required fields are missing", func() {
			w := serve(http.MethodPost, "/statistics/errors", map[string]any{"totalErrors": 1})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 400 for an unknown section type", func() {
			stats.recordErrorStatFn = func(context.Context, string, models.RecordErrorStatRequest) (*models.ErrorStatRecord, error) {
				return nil, fmt.Errorf("%w: appendix", services.ErrInvalidSectionType)
			}
			w := serve(http.MethodPost, "/statistics/errors", map[string]any{"sectionId": "a", "sectionType": "appendix"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("validation_error"))
		})

		It("returns 500 when the store fails", func() {
			stats.recordErrorStatFn = func(context.Context, string, models.RecordErrorStatRequest) (*models.ErrorStatRecord, error) {
				return nil, errors.New("boom")
			}
			w := serve(http.MethodPost, "/statistics/errors", map[string]any{"sectionId": "a", "sectionType": "body"})
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
			Expect(w.Body.String()).NotTo(ContainSubstring("boom"))
		})
	})

	Describe("POST /completeness", func() {
		It("records the verdict", func() {
			stats.recordCompletenessFn = func(_ context.Context, _ string, req models.RecordCompletenessRequest) (*models.CompletenessStatRecord, error) {
				return &models.CompletenessStatRecord{
					SectionID:           req.SectionID,
					MetRequirements:     len(req.Details.Met),
					MissingRequirements: len(req.Details.Missing),
				}, nil
			}
			w := serve(http.MethodPost, "/statistics/completeness", map[string]any{
				"sectionId":   "conclusion",
				"sectionType": "conclusion",
				"details":     map[string]any{"met": []string{"Summary"}, "missing": []string{"Call to action"}},
			})
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Body.String()).To(ContainSubstring(`"missingRequirements":1`))
		})
	})

	Describe("style analysis", func() {
		It("returns 404 when nothing was stored", func() {
			w := serve(http.MethodGet, "/statistics/analysis/intro", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("stores an analysis", func() {
			stats.putStyleFn = func(_ context.Context, _, sectionID string, a models.WritingStyleAnalysis) (models.WritingStyleAnalysis, error) {
				Expect(sectionID).To(Equal("intro"))
				a.Clarity.Level = "High"
				return a, nil
			}
			w := serve(http.MethodPut, "/statistics/analysis/intro", models.WritingStyleAnalysis{Clarity: models.Clarity{Score: 90}})
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"level":"High"`))
		})

		It("reports how many sections were refreshed", func() {
			stats.refreshFn = func(context.Context, string) (int, error) { return 2, nil }
			w := serve(http.MethodPost, "/statistics/analysis/refresh", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(`{"refreshed":2}`))
		})
	})

	Describe("GET /monthly", func() {
		It("returns the report", func() {
			progress.monthlyFn = func(context.Context, string) (models.ProgressReport, error) {
				return models.ProgressReport{Period: "3m"}, nil
			}
			w := serve(http.MethodGet, "/statistics/monthly", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"period":"3m"`))
		})

		It("returns 500 when posts cannot be read", func() {
			progress.monthlyFn = func(context.Context, string) (models.ProgressReport, error) {
				return models.ProgressReport{}, errors.New("mongo down")
			}
			w := serve(http.MethodGet, "/statistics/monthly", nil)
			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})

	It("maps section errors", func() {
		stats.sectionSummaryFn = func(context.Context, string, string) (models.SectionSummary, error) {
			return models.SectionSummary{}, essay.ErrSectionNotFound
		}
		w := serve(http.MethodGet, "/statistics/sections/missing", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
