package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kestrel-academy/booking-api/api/swagger"
	"github.com/kestrel-academy/booking-api/internal/handler"
	"github.com/kestrel-academy/booking-api/internal/middleware"
	"github.com/kestrel-academy/booking-api/internal/repository"
	"github.com/kestrel-academy/booking-api/internal/service"
	"github.com/kestrel-academy/booking-api/pkg/cache"
	"github.com/kestrel-academy/booking-api/pkg/config"
	"github.com/kestrel-academy/booking-api/pkg/database"
	"github.com/kestrel-academy/booking-api/pkg/export"
	"github.com/kestrel-academy/booking-api/pkg/logger"
	corsmiddleware "github.com/kestrel-academy/booking-api/pkg/middleware/cors"
	reqidmiddleware "github.com/kestrel-academy/booking-api/pkg/middleware/requestid"
)

// @title Academy Booking API
// @version 1.3.0
// @description 1:1 lesson booking matcher for the academy platform
// @BasePath /
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

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.DefaultTTL, logr, cfg.Cache.Enabled && redisClient != nil)

	teacherRepo := repository.NewTeacherRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	userRepo := repository.NewUserRepository(db)

	directory := service.NewDirectoryService(studentRepo, teacherRepo, courseRepo, bookingRepo, cacheSvc, cfg.Cache, logr)

	var availability service.AvailabilityProvider
	if cfg.Matching.UseSyntheticSchedule {
		availability = service.NewSyntheticAvailability(cfg.Matching.SyntheticScheduleSeed)
	} else {
		availability = service.NewScheduleAvailability(scheduleRepo)
	}

	conflicts := service.NewBookingConflictChecker(bookingRepo)
	matcher := service.NewMatchingService(directory, availability, conflicts, bookingRepo, metricsSvc, logr, cfg.Matching)
	bookingSvc := service.NewBookingService(directory, export.NewConfirmationExporter(), logr)
	authSvc := service.NewAuthService(userRepo, validator.New(), logr, cfg.JWT)

	bookingHandler := handler.NewBookingHandler(matcher, bookingSvc)
	teacherHandler := handler.NewTeacherHandler(directory)
	authHandler := handler.NewAuthHandler(authSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Scrape)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	protected.POST("/bookings/match", bookingHandler.Match)
	protected.POST("/bookings/preview", bookingHandler.Preview)
	protected.GET("/bookings/:id", bookingHandler.Get)
	protected.GET("/bookings/:id/confirmation", bookingHandler.Confirmation)
	protected.GET("/teachers", teacherHandler.List)
	protected.GET("/teachers/:id", teacherHandler.Get)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
