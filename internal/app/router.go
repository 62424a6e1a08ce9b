package app

import (
	"satbank_backend/internal/config"
	"satbank_backend/internal/controller"
	"satbank_backend/internal/middleware"
	"satbank_backend/internal/model"
	"satbank_backend/pkg/monitoring"
	"satbank_backend/pkg/security"
	"satbank_backend/pkg/tracing"

	_ "satbank_backend/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func SetupRouter(
	cfg *config.Config,
	authController *controller.AuthController,
	questionController *controller.QuestionController,
	worksheetController *controller.WorksheetController,
	analyticsController *controller.AnalyticsController,
	responseController *controller.ResponseController,
	healthController *controller.HealthController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(security.CORS(cfg.CORS.AllowedOrigins))
	r.Use(security.Secure())
	r.Use(monitoring.MetricsMiddleware())
	if cfg.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}
	if cfg.RateLimit.Enabled {
		r.Use(security.RateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.GET("/health", healthController.Check)
	r.GET("/metrics", monitoring.PrometheusHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.Storage.Provider == "local" || cfg.Storage.Provider == "" {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.LocalPath)
	}

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/me", middleware.AuthMiddleware(cfg.JWT.Secret), authController.Me)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg.JWT.Secret))

	// Question bank and worksheet generation are instructor operations.
	instructor := authed.Group("")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		questions := instructor.Group("/questions")
		{
			questions.POST("", questionController.Create)
			questions.PUT("/:id", questionController.Update)
			questions.DELETE("/:id", questionController.Delete)
			questions.POST("/images", questionController.UploadImage)
		}

		worksheets := instructor.Group("/worksheets")
		{
			worksheets.POST("/generate", worksheetController.Generate)
			worksheets.POST("/generate-from-filters", worksheetController.GenerateFromFilters)
			worksheets.POST("/preview", worksheetController.Preview)
		}

		analytics := instructor.Group("/analytics")
		{
			analytics.GET("/students", analyticsController.Students)
			analytics.GET("/students/:studentId", analyticsController.StudentPerformance)
			analytics.GET("/students/:studentId/mastery", analyticsController.Mastery)
			analytics.GET("/questions/:id", analyticsController.QuestionPerformance)
			analytics.GET("/worksheets/:id", analyticsController.WorksheetPerformance)
			analytics.GET("/comparative", analyticsController.Comparative)
		}

		instructor.GET("/responses/ungraded", responseController.Ungraded)
		instructor.POST("/responses/:id/grade", responseController.Grade)
		instructor.DELETE("/responses/students/:studentId/worksheets/:worksheetId", responseController.ClearResponses)
	}

	// Browsing and answering are open to students and instructors alike.
	{
		authed.GET("/questions", questionController.List)
		authed.GET("/questions/:id", questionController.Get)

		authed.GET("/worksheets", worksheetController.List)
		authed.GET("/worksheets/:id", worksheetController.Get)

		responses := authed.Group("/responses")
		{
			responses.POST("", responseController.RecordResponse)
			responses.POST("/answers", responseController.RecordAnswer)
			responses.POST("/answers/bulk", responseController.RecordBulkAnswers)
			responses.GET("/worksheets", responseController.AvailableWorksheets)
			responses.GET("/worksheets/:worksheetId/questions", responseController.WorksheetQuestions)
			responses.GET("/students/:studentId/worksheets/:worksheetId/status", responseController.WorksheetStatus)
		}
	}

	return r
}
