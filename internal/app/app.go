package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	controllerHTTP "vidtube/internal/controller/http"
	"vidtube/internal/repo/persistent"
	"vidtube/internal/usecase"
	"vidtube/pkg/cache"
	"vidtube/pkg/config"
	"vidtube/pkg/database"
	"vidtube/pkg/jwt"
	"vidtube/pkg/logger"
	"vidtube/pkg/middleware"
	"vidtube/pkg/queue"
	"vidtube/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "vidtube/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (rate limiting disabled)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("Failed to connect to RabbitMQ: %v (continuing without notifications)", err)
		queueClient = nil
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o750); err != nil {
		log.Error("Failed to create upload directory %s: %v", cfg.UploadDir, err)
		return nil, err
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwt.NewService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	userRepo := persistent.NewUserRepository(a.db)
	videoRepo := persistent.NewVideoRepository(a.db)
	subscriptionRepo := persistent.NewSubscriptionRepository(a.db)
	commentRepo := persistent.NewCommentRepository(a.db)
	channelRepo := persistent.NewChannelRepository(a.db)

	// A nil *queue.Client must not reach the usecases as a non-nil interface.
	var notifier usecase.Notifier
	if a.queueClient != nil {
		notifier = a.queueClient
	}

	sessionUseCase := usecase.NewSessionUseCase(userRepo, a.jwtService, a.s3Client, a.log)
	accountUseCase := usecase.NewAccountUseCase(userRepo, videoRepo, a.s3Client, a.log)
	channelUseCase := usecase.NewChannelUseCase(channelRepo, userRepo, subscriptionRepo, notifier, a.log)
	commentUseCase := usecase.NewCommentUseCase(commentRepo, videoRepo, notifier, a.log)

	sessionHandler := controllerHTTP.NewSessionHandler(sessionUseCase, controllerHTTP.CookieConfig{
		Secure:     a.cfg.CookieSecure,
		AccessTTL:  a.cfg.AccessTokenTTL,
		RefreshTTL: a.cfg.RefreshTokenTTL,
	}, a.cfg.UploadDir)
	accountHandler := controllerHTTP.NewAccountHandler(accountUseCase, a.cfg.UploadDir)
	channelHandler := controllerHTTP.NewChannelHandler(channelUseCase)
	commentHandler := controllerHTTP.NewCommentHandler(commentUseCase)

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	r.Use(middleware.MetricsMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRequired := middleware.AuthMiddleware(a.jwtService)
	authOptional := middleware.OptionalAuthMiddleware(a.jwtService)
	limited := a.rateLimit()

	api := r.Group("/api/v1")
	{
		users := api.Group("/users")
		users.POST("/register", sessionHandler.Register)
		users.POST("/login", limited, sessionHandler.Login)
		users.POST("/refresh-token", limited, sessionHandler.RefreshToken)
		users.GET("/channel/:username", authOptional, channelHandler.GetChannelProfile)

		protected := users.Group("")
		protected.Use(authRequired)
		{
			protected.POST("/logout", sessionHandler.Logout)
			protected.POST("/change-password", sessionHandler.ChangePassword)
			protected.GET("/current-user", accountHandler.CurrentUser)
			protected.PATCH("/update-account", accountHandler.UpdateAccount)
			protected.PATCH("/avatar", accountHandler.UpdateAvatar)
			protected.PATCH("/cover-image", accountHandler.UpdateCoverImage)
			protected.GET("/watch-history", channelHandler.GetWatchHistory)
			protected.POST("/channel/:username/subscription", channelHandler.Subscribe)
			protected.DELETE("/channel/:username/subscription", channelHandler.Unsubscribe)
		}

		api.GET("/video/:videoId/comments", commentHandler.GetVideoComments)
		api.POST("/video/:videoId/comments", authRequired, commentHandler.AddComment)
		api.POST("/video/:videoId/view", authRequired, accountHandler.RecordView)
		api.PATCH("/comment/:commentId", authRequired, commentHandler.UpdateComment)
		api.DELETE("/comment/:commentId", authRequired, commentHandler.DeleteComment)
	}

	a.httpServer = &http.Server{
		Addr:              ":" + a.cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		a.log.Info("vidtube service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

// rateLimit guards the credential endpoints when Redis is reachable and is a
// pass-through otherwise.
func (a *App) rateLimit() gin.HandlerFunc {
	if a.redisClient == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimit, a.cfg.RateLimitWindow)
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down vidtube service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	a.log.Info("vidtube service exited")
	return nil
}
