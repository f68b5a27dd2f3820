package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/fieldhouse/sports-cms-api/api/swagger"
	"github.com/fieldhouse/sports-cms-api/internal/handler"
	"github.com/fieldhouse/sports-cms-api/internal/middleware"
	"github.com/fieldhouse/sports-cms-api/internal/repository"
	"github.com/fieldhouse/sports-cms-api/internal/service"
	"github.com/fieldhouse/sports-cms-api/pkg/cache"
	"github.com/fieldhouse/sports-cms-api/pkg/config"
	"github.com/fieldhouse/sports-cms-api/pkg/database"
	"github.com/fieldhouse/sports-cms-api/pkg/logger"
	corsmiddleware "github.com/fieldhouse/sports-cms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/fieldhouse/sports-cms-api/pkg/middleware/requestid"
	"github.com/fieldhouse/sports-cms-api/pkg/objectstore"
)

// @title Sports CMS API
// @version 1.0.0
// @description Content management backend for the sports services site
// @BasePath /api/v1
// @schemes http https

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()
	validate := validator.New()

	var cacheSvc *service.CacheService
	if cfg.Listing.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, listing cache disabled", "error", err)
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metrics, cfg.Listing.CacheTTL, logr, true)
			defer cacheRepo.Close() //nolint:errcheck
		}
	}

	var store *objectstore.Client
	if cfg.Storage.Bucket != "" {
		store, err = objectstore.New(ctx, cfg.Storage)
		if err != nil {
			logr.Sugar().Fatalw("failed to init object storage", "error", err)
		}
	} else {
		logr.Warn("object storage not configured, uploads disabled")
	}

	academyRepo := repository.NewAcademyRepository(db)
	batchRepo := repository.NewBatchRepository(db)
	infraRepo := repository.NewInfrastructureRepository(db)
	jobRepo := repository.NewJobRepository(db)
	teamMemberRepo := repository.NewTeamMemberRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	enquiryRepo := repository.NewEnquiryRepository(db)
	imageRefRepo := repository.NewImageRefRepository(db)

	var uploadSvc *service.UploadService
	var images *service.UploadService
	if store != nil {
		uploadSvc = service.NewUploadService(store, cfg.Uploads, metrics, logr)
		images = uploadSvc
	}

	academySvc := service.NewAcademyService(academyRepo, imageRemoverOrNil(images), cacheSvc, validate, logr)
	batchSvc := service.NewBatchService(batchRepo, academyRepo, cacheSvc, validate, logr)
	publicSvc := service.NewPublicService(academyRepo, cacheSvc, cfg.Listing.CacheTTL, logr)
	infraSvc := service.NewInfrastructureService(infraRepo, imageRemoverOrNil(images), validate, logr)
	jobSvc := service.NewJobService(jobRepo, validate, logr)
	teamMemberSvc := service.NewTeamMemberService(teamMemberRepo, imageRemoverOrNil(images), validate, logr)
	testimonialSvc := service.NewTestimonialService(testimonialRepo, imageRemoverOrNil(images), validate, logr)
	enquirySvc := service.NewEnquiryService(enquiryRepo, validate, logr)

	if cfg.Cleanup.Enabled && store != nil {
		cleanupSvc := service.NewCleanupService(imageRefRepo, store, cfg.Cleanup, metrics, logr)
		cleanupSvc.Start(ctx)
		defer cleanupSvc.Stop()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

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
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	academyHandler := handler.NewAcademyHandler(academySvc)
	api.GET("/academies", academyHandler.Get)
	api.POST("/academies", academyHandler.Create)
	api.PUT("/academies", academyHandler.Update)
	api.DELETE("/academies", academyHandler.Delete)

	batchHandler := handler.NewBatchHandler(batchSvc)
	api.POST("/academies/batches", batchHandler.Create)
	api.PUT("/academies/batches", batchHandler.Update)
	api.DELETE("/academies/batches", batchHandler.Delete)

	publicHandler := handler.NewPublicHandler(publicSvc)
	api.GET("/public/academies", publicHandler.ListAcademies)

	if uploadSvc != nil {
		uploadHandler := handler.NewUploadHandler(uploadSvc)
		api.POST("/uploads", uploadHandler.Upload)
		api.DELETE("/uploads", uploadHandler.Delete)
	}

	infraHandler := handler.NewInfrastructureHandler(infraSvc)
	api.GET("/infrastructures", infraHandler.Get)
	api.POST("/infrastructures", infraHandler.Create)
	api.PUT("/infrastructures", infraHandler.Update)
	api.DELETE("/infrastructures", infraHandler.Delete)

	jobHandler := handler.NewJobHandler(jobSvc)
	api.GET("/jobs", jobHandler.Get)
	api.POST("/jobs", jobHandler.Create)
	api.PUT("/jobs", jobHandler.Update)
	api.DELETE("/jobs", jobHandler.Delete)

	teamMemberHandler := handler.NewTeamMemberHandler(teamMemberSvc)
	api.GET("/team-members", teamMemberHandler.Get)
	api.POST("/team-members", teamMemberHandler.Create)
	api.PUT("/team-members", teamMemberHandler.Update)
	api.DELETE("/team-members", teamMemberHandler.Delete)

	testimonialHandler := handler.NewTestimonialHandler(testimonialSvc)
	api.GET("/testimonials", testimonialHandler.Get)
	api.POST("/testimonials", testimonialHandler.Create)
	api.PUT("/testimonials", testimonialHandler.Update)
	api.DELETE("/testimonials", testimonialHandler.Delete)

	enquiryHandler := handler.NewEnquiryHandler(enquirySvc)
	api.GET("/enquiries", enquiryHandler.List)
	api.POST("/enquiries", enquiryHandler.Create)
	api.DELETE("/enquiries", enquiryHandler.Delete)
	api.GET("/enquiries/export", enquiryHandler.Export)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}

// imageRemoverOrNil keeps the typed nil out of the interface value when
// storage is not configured.
func imageRemoverOrNil(uploads *service.UploadService) service.ImageRemover {
	if uploads == nil {
		return nil
	}
	return uploads
}
