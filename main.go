// @title SAT Question Bank API
// @version 1.0
// @description 题库管理、练习卷生成与成绩分析后端服务。

// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"
	"satbank_backend/internal/app"
	"satbank_backend/internal/config"
	"satbank_backend/pkg/configwatcher"
	"satbank_backend/pkg/database"
	"satbank_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "配置文件路径")
	migrateOnly := flag.Bool("migrate-only", false, "只执行数据库迁移，完成后退出")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		db, err := database.InitDB(&cfg.Database)
		if err != nil {
			logger.Log.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Migration failed", zap.Error(err))
		}
		logger.Log.Info("Migration completed")
		return
	}

	application, err := app.New(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize application", zap.Error(err))
	}

	go configwatcher.WatchConfig(*configPath, func(newCfg *config.Config) {
		logger.Log.Info("Applying reloaded log configuration")
		logger.InitLogger(newCfg)
	})

	if err := application.Run(); err != nil {
		logger.Log.Fatal("Server exited with error", zap.Error(err))
	}
}
