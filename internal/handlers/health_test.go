package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"essaycoach-be/internal/handlers"
)

var _ = Describe("HealthHandler", func() {
	serve := func(deps map[string]handlers.Pinger) *httptest.ResponseRecorder {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/health", handlers.NewHealthHandler(deps).Health)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		return w
	}

	It("is ok when every dependency answers", func() {
		w := serve(map[string]handlers.Pinger{"mongodb": mockPinger{}, "redis": nil})
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"mongodb":"ok"`))
		Expect(w.Body.String()).NotTo(ContainSubstring("redis"))
	})

	It("is degraded when a dependency fails", func() {
		w := serve(map[string]handlers.Pinger{"mongodb": mockPinger{err: errors.New("no reachable servers")}})
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(w.Body.String()).To(ContainSubstring("degraded"))
	})
})
