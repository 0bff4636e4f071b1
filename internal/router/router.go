package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"essaycoach-be/config"
	"essaycoach-be/internal/handlers"
	"essaycoach-be/internal/middleware"
)

type RouterConfig struct {
	Config     *config.Config
	Auth       *handlers.AuthHandler
	Essay      *handlers.EssayHandler
	Analysis   *handlers.AnalysisHandler
	Statistics *handlers.StatisticsHandler
	Health     *handlers.HealthHandler
	// Metrics serves /metrics when set.
	Metrics http.Handler
}

// SetupRoutes builds the engine with middleware and every API route.
func SetupRoutes(rc RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recovery(),
		otelgin.Middleware(rc.Config.OTel.ServiceName),
		middleware.Logger("/api/health", "/metrics"),
		middleware.CORS(rc.Config),
	)

	if rc.Metrics != nil {
		r.GET("/metrics", gin.WrapH(rc.Metrics))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := r.Group("/api")
	public.GET("/health", rc.Health.Health)
	AuthRouter(public.Group("/auth"), rc.Auth)

	protected := r.Group("/api", middleware.AuthMiddleware(rc.Config))
	ProtectedAuthRouter(protected.Group("/auth"), rc.Auth)
	EssayRouter(protected, rc.Essay)
	AnalysisRouter(protected.Group("/analysis"), rc.Analysis)
	StatisticsRouter(protected.Group("/statistics"), rc.Statistics)

	return r
}

func AuthRouter(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	rg.POST("/signup", h.Signup)
	rg.POST("/login", h.Login)
	rg.POST("/refresh", h.RefreshToken)
}

func ProtectedAuthRouter(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	rg.POST("/logout", h.Logout)
	rg.GET("/me", h.GetMe)
}

func EssayRouter(rg *gin.RouterGroup, h *handlers.EssayHandler) {
	rg.GET("/essay/sections", h.GetSections)
	rg.PUT("/essay/sections", h.SaveSections)
	rg.POST("/essay/sections/body", h.AddBodySection)
	rg.PUT("/essay/sections/:sectionId", h.UpdateSection)
	rg.DELETE("/essay/sections/:sectionId", h.DeleteBodySection)

	rg.POST("/essays/submit", h.Submit)
	rg.GET("/essays", h.ListPosts)
}

func AnalysisRouter(rg *gin.RouterGroup, h *handlers.AnalysisHandler) {
	rg.POST("/errors", h.CheckErrors)
	rg.POST("/completeness", h.CheckCompleteness)
	rg.POST("/style", h.AnalyzeStyle)
}

func StatisticsRouter(rg *gin.RouterGroup, h *handlers.StatisticsHandler) {
	rg.GET("/rollup", h.GetRollup)
	rg.GET("/sections/:sectionId", h.GetSectionSummary)
	rg.POST("/errors", h.RecordErrors)
	rg.POST("/completeness", h.RecordCompleteness)
	rg.POST("/analysis/refresh", h.RefreshStyleAnalyses)
	rg.PUT("/analysis/:sectionId", h.PutStyleAnalysis)
	rg.GET("/analysis/:sectionId", h.GetStyleAnalysis)
	rg.GET("/monthly", h.GetMonthlyReport)
}
