package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/fleetops/driver-training-api/api/swagger"
	"github.com/fleetops/driver-training-api/internal/handler"
	"github.com/fleetops/driver-training-api/internal/middleware"
	"github.com/fleetops/driver-training-api/internal/repository"
	"github.com/fleetops/driver-training-api/internal/service"
	"github.com/fleetops/driver-training-api/pkg/cache"
	"github.com/fleetops/driver-training-api/pkg/config"
	"github.com/fleetops/driver-training-api/pkg/database"
	"github.com/fleetops/driver-training-api/pkg/logger"
	corsmiddleware "github.com/fleetops/driver-training-api/pkg/middleware/cors"
	reqidmiddleware "github.com/fleetops/driver-training-api/pkg/middleware/requestid"
)

// @title Driver Training API
// @version 1.0.0
// @description Fleet driver training and certification compliance tracker
// @BasePath /api
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var redisClient *redis.Client
	cacheEnabled := cfg.Redis.Enabled
	if cacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
			cacheEnabled = false
		}
	}

	metricsSvc := service.NewMetricsService()

	driverRepo := repository.NewDriverRepository(db)
	moduleRepo := repository.NewTrainingModuleRepository(db)
	progressRepo := repository.NewTrainingProgressRepository(db)
	certRepo := repository.NewCertificationRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cacheEnabled)
	driverSvc := service.NewDriverService(driverRepo, cacheSvc, logr)
	moduleSvc := service.NewTrainingModuleService(moduleRepo, cacheSvc, logr)
	progressSvc := service.NewTrainingProgressService(progressRepo, driverRepo, moduleRepo, cacheSvc, logr)
	certSvc := service.NewCertificationService(certRepo, driverRepo, cacheSvc, logr)
	dashboardSvc := service.NewDashboardService(driverRepo, moduleRepo, progressRepo, certRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)
	analyticsSvc := service.NewAnalyticsService(driverRepo, moduleRepo, progressRepo, certRepo, cacheSvc, cfg.Analytics.CacheTTL, logr)
	reportSvc := service.NewReportService(driverRepo, moduleRepo, progressRepo, certRepo, cacheSvc, cfg.Reports.CacheTTL, logr)

	driverHandler := handler.NewDriverHandler(driverSvc)
	moduleHandler := handler.NewTrainingModuleHandler(moduleSvc)
	progressHandler := handler.NewTrainingProgressHandler(progressSvc)
	certHandler := handler.NewCertificationHandler(certSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/drivers", driverHandler.List)
		api.POST("/drivers", driverHandler.Create)
		api.GET("/drivers/:id", driverHandler.Get)
		api.PUT("/drivers/:id", driverHandler.Update)
		api.DELETE("/drivers/:id", driverHandler.Delete)

		api.GET("/training-modules", moduleHandler.List)
		api.POST("/training-modules", moduleHandler.Create)
		api.POST("/training-modules/initialize-defaults", moduleHandler.InitializeDefaults)
		api.GET("/training-modules/:id", moduleHandler.Get)

		api.GET("/training-progress", progressHandler.List)
		api.POST("/training-progress", progressHandler.Assign)
		api.PUT("/training-progress/:id", progressHandler.Update)

		api.GET("/certifications", certHandler.List)
		api.POST("/certifications", certHandler.Create)
		api.GET("/certifications/expiring", certHandler.ListExpiring)

		api.GET("/dashboard/summary", dashboardHandler.Summary)

		api.GET("/analytics/driver-progress/:driverId", analyticsHandler.DriverProgress)
		api.GET("/analytics/module-performance/:moduleId", analyticsHandler.ModulePerformance)
		api.GET("/analytics/compliance-report", reportHandler.Compliance)

		api.GET("/metrics/summary", metricsHandler.Snapshot)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "cache_enabled", cacheEnabled)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
