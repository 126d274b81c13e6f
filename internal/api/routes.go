package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"hiregate/internal/account"
	"hiregate/internal/api/middleware"
	"hiregate/internal/auth"
	"hiregate/internal/config"
	"hiregate/internal/lifecycle"
	"hiregate/internal/record"
	"hiregate/internal/sheetstore"
	"hiregate/internal/storage"
)

// RegisterRoutes 注册 API 路由。
func RegisterRoutes(
	router *gin.Engine,
	cfg *config.Config,
	store sheetstore.Store,
	accounts *account.Service,
	lifecycleService *lifecycle.Service,
	authService *auth.AuthService,
	asynqClient *asynq.Client,
	redisClient redis.UniversalClient,
	storageClient *storage.Client,
	logger *slog.Logger,
) {
	authHandler := NewAuthHandler(
		accounts,
		authService,
		redisClient,
		logger,
		cfg.Auth.LoginRateLimitPerHour,
		cfg.Auth.LoginLockThreshold,
		cfg.Auth.LoginLockTTL,
		cfg.Auth.CookieDomain,
	)
	resumeHandler := NewResumeHandler(lifecycleService, asynqClient, storageClient, redisClient, logger)
	reviewHandler := NewReviewHandler(lifecycleService, accounts, asynqClient, cfg.API.LoginURL, logger)
	settingsHandler := NewSettingsHandler(store, logger, cfg.Clamd.Addr)
	wsHandler := NewWsHandler(redisClient, authService, logger, cfg.API.AllowedOrigins)

	authMiddleware := middleware.AuthMiddleware(authService)
	candidateOnly := middleware.RequireRole(record.RoleCandidate)
	reviewerOnly := middleware.RequireRole(record.RolePM, record.RoleAdmin)
	adminOnly := middleware.RequireRole(record.RoleAdmin)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
		}

		resumeGroup := v1.Group("/resume")
		resumeGroup.Use(authMiddleware, candidateOnly)
		{
			resumeGroup.GET("", resumeHandler.GetMyResume)
			resumeGroup.PUT("/draft", resumeHandler.SaveDraft)
			resumeGroup.POST("/submit", resumeHandler.Submit)
			resumeGroup.POST("/export", resumeHandler.Export)
			resumeGroup.GET("/export/link", resumeHandler.GetDownloadLink)
		}

		reviewGroup := v1.Group("/review")
		reviewGroup.Use(authMiddleware, reviewerOnly)
		{
			reviewGroup.GET("/resumes", reviewHandler.ListResumes)
			reviewGroup.GET("/resumes/:email", reviewHandler.GetResume)
			reviewGroup.POST("/resumes/:email/decision", reviewHandler.Review)
			reviewGroup.POST("/invitations", reviewHandler.InviteCandidate)
		}

		adminGroup := v1.Group("/admin")
		adminGroup.Use(authMiddleware, adminOnly)
		{
			adminGroup.POST("/staff", reviewHandler.CreateStaff)
			adminGroup.POST("/settings/logo", settingsHandler.UploadLogo)
		}

		v1.GET("/settings/logo", authMiddleware, settingsHandler.GetLogo)
	}
}
