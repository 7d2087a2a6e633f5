package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/calmari/studio-booking-api/api/swagger"
	"github.com/calmari/studio-booking-api/internal/handler"
	appmiddleware "github.com/calmari/studio-booking-api/internal/middleware"
	"github.com/calmari/studio-booking-api/internal/repository"
	"github.com/calmari/studio-booking-api/internal/service"
	"github.com/calmari/studio-booking-api/pkg/cache"
	"github.com/calmari/studio-booking-api/pkg/config"
	"github.com/calmari/studio-booking-api/pkg/database"
	"github.com/calmari/studio-booking-api/pkg/logger"
	corsmiddleware "github.com/calmari/studio-booking-api/pkg/middleware/cors"
	reqidmiddleware "github.com/calmari/studio-booking-api/pkg/middleware/requestid"
)

// @title Studio Booking API
// @version 0.1.0
// @description Schedule management and conflict detection for studio bookings
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	// Redis is optional: without it day summaries fall back to the database
	// on every request.
	var cacheRepo service.CacheRepository
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo = repository.NewCacheRepository(redisClient, logr)
	}

	cacheSvc := service.NewCacheService(
		cacheRepo,
		metricsSvc,
		cfg.DaySummary.CacheTTL,
		logr,
		cfg.DaySummary.CacheEnabled && cacheRepo != nil,
	)

	scheduleRepo := repository.NewScheduleRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	venueRepo := repository.NewVenueRepository(db)

	conflictSvc := service.NewConflictService(scheduleRepo, teacherRepo, venueRepo, logr, metricsSvc)
	summarySvc := service.NewDaySummaryService(scheduleRepo, cacheSvc, logr)
	scheduleSvc := service.NewScheduleService(scheduleRepo, conflictSvc, summarySvc, validator.New(), logr)
	directorySvc := service.NewDirectoryService(teacherRepo, venueRepo)

	conflictHandler := handler.NewConflictHandler(conflictSvc, summarySvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	directoryHandler := handler.NewDirectoryHandler(directorySvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(appmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/schedule-conflicts", conflictHandler.Check)
		api.GET("/schedule-duplicates/:day", conflictHandler.DaySummary)

		api.GET("/schedules", scheduleHandler.List)
		api.POST("/schedules", scheduleHandler.Create)
		api.GET("/schedules/:type/:id", scheduleHandler.Get)
		api.PUT("/schedules/:type/:id", scheduleHandler.Update)
		api.DELETE("/schedules/:type/:id", scheduleHandler.Delete)

		api.GET("/teachers", directoryHandler.ListTeachers)
		api.GET("/venues", directoryHandler.ListVenues)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
