package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"essaycoach-be/internal/essay"
	"essaycoach-be/internal/handlers"
	"essaycoach-be/internal/models"
	"essaycoach-be/internal/services"
)

var _ = Describe("EssayHandler", func() {
	var (
		router *gin.Engine
		essays *mockEssayService
		users  *mockUserStore
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		essays = &mockEssayService{}
		users = newMockUserStore()
		h := handlers.NewEssayHandler(essays, users)
		g := router.Group("", asUser("u1"))
		g.GET("/essay/sections", h.GetSections)
		g.PUT("/essay/sections", h.SaveSections)
		g.POST("/essay/sections/body", h.AddBodySection)
		g.PUT("/essay/sections/:sectionId", h.UpdateSection)
		g.DELETE("/essay/sections/:sectionId", h.DeleteBodySection)
		g.POST("/essays/submit", h.Submit)
		g.GET("/essays", h.ListPosts)
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

	It("lists the draft sections", func() {
		essays.sectionsFn = func(context.Context, string) ([]models.EssaySection, error) {
			return []models.EssaySection{{ID: "intro", Type: models.SectionIntroduction}}, nil
		}
		w := serve(http.MethodGet, "/essay/sections", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"id":"intro"`))
	})

	It("returns 400 for an invalid section list", func() {
		essays.saveSectionsFn = func(context.Context, string, []models.EssaySection) ([]models.EssaySection, error) {
			return nil, fmt.Errorf("%w: duplicate section id %q", essay.ErrInvalidSection, "intro")
		}
		w := serve(http.MethodPut, "/essay/sections", map[string]any{"sections": []map[string]string{{"id": "intro"}}})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("updates a section", func() {
		w := serve(http.MethodPut, "/essay/sections/intro", map[string]string{"content": "Hello there."})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Hello there."))
	})

	It("adds a body paragraph", func() {
		essays.addBodyFn = func(context.Context, string) ([]models.EssaySection, models.EssaySection, error) {
			added := models.EssaySection{ID: "b2", Type: models.SectionBody, Title: "Body Paragraph 2"}
			return []models.EssaySection{added}, added, nil
		}
		w := serve(http.MethodPost, "/essay/sections/body", nil)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Body.String()).To(ContainSubstring("Body Paragraph 2"))
	})

	DescribeTable("maps body paragraph removal errors",
		func(err error, status int) {
			essays.deleteBodyFn = func(context.Context, string, string) ([]models.EssaySection, error) {
				return nil, err
			}
			w := serve(http.MethodDelete, "/essay/sections/x", nil)
			Expect(w.Code).To(Equal(status))
		},
		Entry("not a body paragraph", fmt.Errorf("remove %q: %w", "x", essay.ErrNotBodySection), http.StatusBadRequest),
		Entry("unknown section", fmt.Errorf("remove %q: %w", "x", essay.ErrSectionNotFound), http.StatusNotFound),
		Entry("last body paragraph", essay.ErrLastBodySection, http.StatusConflict),
	)

	Describe("POST /essays/submit", func() {
		It("uses the account name as username", func() {
			Expect(users.Create(context.Background(), &models.User{Email: "ada@example.com", Name: "Ada"})).To(Succeed())
			ada := users.users["ada@example.com"]
			router = gin.New()
			h := handlers.NewEssayHandler(essays, users)
			router.POST("/essays/submit", asUser(ada.ID.Hex()), h.Submit)

			essays.submitFn = func(_ context.Context, _, username string, req models.SubmitEssayRequest) (*models.Post, error) {
				Expect(username).To(Equal("Ada"))
				return &models.Post{Title: req.Title, PostType: req.PostType}, nil
			}
			w := serve(http.MethodPost, "/essays/submit", map[string]string{"title": "Libraries", "postType": "advice"})
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Body.String()).To(ContainSubstring(`"title":"Libraries"`))
		})

		It("returns 409 for an empty essay", func() {
			essays.submitFn = func(context.Context, string, string, models.SubmitEssayRequest) (*models.Post, error) {
				return nil, services.ErrEmptyEssay
			}
			w := serve(http.MethodPost, "/essays/submit", map[string]string{"title": "Empty", "postType": "discussion"})
			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("validates the post type", func() {
			w := serve(http.MethodPost, "/essays/submit", map[string]string{"title": "x", "postType": "poem"})
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	It("paginates submitted essays", func() {
		essays.listPostsFn = func(_ context.Context, _ string, page, perPage int) ([]models.Post, int, error) {
			Expect(page).To(Equal(2))
			Expect(perPage).To(Equal(20))
			return []models.Post{{Title: "a"}}, 41, nil
		}
		w := serve(http.MethodGet, "/essays?page=2&limit=500", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp models.PostListResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Total).To(Equal(41))
		Expect(resp.HasNextPage).To(BeTrue())
	})
})
