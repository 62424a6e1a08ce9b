package app

import (
	"context"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"satbank_backend/internal/config"
	"satbank_backend/internal/controller"
	"satbank_backend/internal/repository"
	"satbank_backend/internal/service"
	"satbank_backend/pkg/database"
	"satbank_backend/pkg/logger"
	"satbank_backend/pkg/monitoring"
	"satbank_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	tracerShutdown func(context.Context) error
}

func New(cfg *config.Config) (*App, error) {
	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
			redisClient = nil
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRate)
		if err != nil {
			logger.Log.Warn("Tracing unavailable", zap.Error(err))
		} else {
			app.tracerShutdown = tp.Shutdown
		}
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	worksheetRepo := repository.NewWorksheetRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	responseRepo := repository.NewResponseRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWT)
	questionService := service.NewQuestionService(questionRepo)
	worksheetService := service.NewWorksheetService(questionRepo, worksheetRepo, rand.New(rand.NewSource(time.Now().UnixNano())))
	scoringService := service.NewScoringService(scoreRepo, responseRepo, questionRepo, worksheetRepo, redisClient)

	provider, err := service.NewStorageProvider(cfg.Storage)
	if err != nil {
		return nil, err
	}
	storageService := service.NewStorageService(provider)

	// Controllers
	authController := controller.NewAuthController(authService)
	questionController := controller.NewQuestionController(questionService, storageService)
	worksheetController := controller.NewWorksheetController(worksheetService, worksheetRepo)
	analyticsController := controller.NewAnalyticsController(scoringService)
	responseController := controller.NewResponseController(scoringService)
	healthController := controller.NewHealthController(db, redisClient)

	app.Router = SetupRouter(cfg,
		authController,
		questionController,
		worksheetController,
		analyticsController,
		responseController,
		healthController,
	)

	return app, nil
}

// Run serves HTTP until SIGINT/SIGTERM, then drains within the configured
// shutdown timeout.
func (a *App) Run() error {
	srv := &http.Server{
		Addr:         ":" + a.Config.Server.Port,
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
	}

	go func() {
		logger.Log.Info("Server starting", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	if a.tracerShutdown != nil {
		if err := a.tracerShutdown(ctx); err != nil {
			logger.Log.Warn("Tracer shutdown failed", zap.Error(err))
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Warn("Redis close failed", zap.Error(err))
		}
	}

	return srv.Shutdown(ctx)
}
