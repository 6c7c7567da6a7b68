package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/purchase-req-api/api/swagger"
	"github.com/noah-isme/purchase-req-api/internal/correlation"
	"github.com/noah-isme/purchase-req-api/internal/handler"
	"github.com/noah-isme/purchase-req-api/internal/middleware"
	"github.com/noah-isme/purchase-req-api/internal/repository"
	"github.com/noah-isme/purchase-req-api/internal/service"
	"github.com/noah-isme/purchase-req-api/pkg/cache"
	"github.com/noah-isme/purchase-req-api/pkg/config"
	"github.com/noah-isme/purchase-req-api/pkg/database"
	"github.com/noah-isme/purchase-req-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/purchase-req-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/purchase-req-api/pkg/middleware/requestid"
	"github.com/noah-isme/purchase-req-api/pkg/storage"
)

// @title Purchase Requisition API
// @version 1.0.0
// @description Purchase request drafting, submission, and approval workflow.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	var corrStore correlation.Store = correlation.NewMemoryStore()
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, correlation ids held in memory", "error", err)
		redisClient = nil
	} else {
		defer redisClient.Close() //nolint:errcheck
		corrStore = correlation.NewRedisStore(redisClient, "")
	}

	fileStorage, err := storage.NewLocalStorage(cfg.Attachments.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init attachment storage", "error", err)
	}

	lineItemRepo := repository.NewLineItemRepository(db)
	sequenceRepo := repository.NewSequenceRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(userRepo, service.AuthConfig{
		Secret: cfg.JWT.Secret,
		Expiry: cfg.JWT.Expiration,
		Issuer: cfg.JWT.Issuer,
	}, logr)
	draftSvc := service.NewDraftService(sequenceRepo, corrStore, logr)
	attachmentSvc := service.NewAttachmentService(attachmentRepo, fileStorage, metricsSvc, logr, service.AttachmentServiceConfig{
		MaxFileSize:  cfg.Attachments.MaxFileSizeBytes,
		AllowedMIMEs: cfg.Attachments.AllowedMIMEs,
	})
	approvalSvc := service.NewApprovalService(lineItemRepo, attachmentRepo, corrStore, cacheRepo, metricsSvc, logr, service.ApprovalServiceConfig{
		TruncateLength: cfg.Approvals.TruncateLength,
		CacheTTL:       cfg.Approvals.CacheTTL,
	})
	submissionSvc := service.NewSubmissionService(draftSvc, attachmentSvc, lineItemRepo, sequenceRepo, approvalSvc, metricsSvc, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	draftHandler := handler.NewDraftHandler(draftSvc)
	attachmentHandler := handler.NewAttachmentHandler(attachmentSvc)
	submissionHandler := handler.NewSubmissionHandler(submissionSvc)
	approvalHandler := handler.NewApprovalHandler(approvalSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))
	{
		protected.POST("/getReqID", draftHandler.IssueLineID)
		protected.POST("/createNewID", draftHandler.IssueLineID)
		protected.POST("/draft/items", draftHandler.AddItem)
		protected.GET("/draft/items", draftHandler.List)
		protected.DELETE("/draft/items/:id", draftHandler.Remove)

		protected.POST("/upload", attachmentHandler.Upload)
		protected.GET("/attachments", attachmentHandler.List)
		protected.POST("/deleteFile", attachmentHandler.Delete)

		protected.POST("/sendToPurchaseReq", submissionHandler.Submit)

		protected.GET("/getApprovalData", approvalHandler.Queue)
		protected.GET("/getApprovalData/:lineId", approvalHandler.Detail)
		protected.POST("/assignReqID", approvalHandler.AssignTracking)
		protected.POST("/assignIRQ1_ID", approvalHandler.AssignTracking)
		protected.POST("/approveDenyRequest", approvalHandler.ApproveDeny)
		protected.GET("/requisitions/:id/csv", approvalHandler.ExportCSV)
		protected.GET("/requisitions/:id/pdf", approvalHandler.ExportPDF)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
