package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	authHTTP "rentdesk/internal/auth/controller/http"
	authRepo "rentdesk/internal/auth/repo/persistent"
	authUC "rentdesk/internal/auth/usecase"
	notificationHTTP "rentdesk/internal/notification/controller/http"
	notificationRepo "rentdesk/internal/notification/repo/persistent"
	notificationUC "rentdesk/internal/notification/usecase"
	paymentHTTP "rentdesk/internal/payment/controller/http"
	paymentRepo "rentdesk/internal/payment/repo/persistent"
	paymentUC "rentdesk/internal/payment/usecase"
	taxreturnHTTP "rentdesk/internal/taxreturn/controller/http"
	taxreturnRepo "rentdesk/internal/taxreturn/repo/persistent"
	taxreturnUC "rentdesk/internal/taxreturn/usecase"
	profileHTTP "rentdesk/internal/tenantprofile/controller/http"
	profileRepo "rentdesk/internal/tenantprofile/repo/persistent"
	profileUC "rentdesk/internal/tenantprofile/usecase"

	"rentdesk/pkg/cache"
	"rentdesk/pkg/config"
	"rentdesk/pkg/database"
	"rentdesk/pkg/jwt"
	"rentdesk/pkg/logger"
	"rentdesk/pkg/middleware"
	"rentdesk/pkg/queue"
	"rentdesk/pkg/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "rentdesk/docs" // Swagger docs
)

type App struct {
	cfg           *config.Config
	log           *logger.Logger
	db            *gorm.DB
	redisClient   *redis.Client
	storageClient *storage.Client
	jwtService    *jwt.Service
	queueClient   *queue.Client
	httpServer    *http.Server
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
		log.Error("Failed to connect to redis: %v (continuing without cache)", err)
		redisClient = nil
	}

	storageClient, err := storage.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create storage client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:           cfg,
		log:           log,
		db:            db,
		redisClient:   redisClient,
		storageClient: storageClient,
		jwtService:    jwtService,
		queueClient:   queueClient,
	}, nil
}

func (a *App) Run() error {
	// Repositories
	userRepository := authRepo.NewUserRepository(a.db)
	notificationRepository := notificationRepo.NewNotificationRepository(a.db)
	paymentRepository := paymentRepo.NewPaymentRepository(a.db)
	profileRepository := profileRepo.NewProfileRepository(a.db)
	taxReturnRepository := taxreturnRepo.NewTaxReturnRepository(a.db)

	// Use cases
	authUseCase := authUC.NewAuthUseCase(userRepository, a.jwtService, a.log)
	notificationUseCase := notificationUC.NewNotificationUseCase(notificationRepository, a.redisClient, a.log)
	paymentUseCase := paymentUC.NewPaymentUseCase(paymentRepository, a.queueClient, a.log)
	profileUseCase := profileUC.NewProfileUseCase(profileRepository, a.log)
	taxReturnUseCase := taxreturnUC.NewTaxReturnUseCase(taxReturnRepository, a.queueClient, a.log)

	// HTTP handlers
	authHandler := authHTTP.NewAuthHandler(authUseCase, a.log)
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, a.log)
	paymentHandler := paymentHTTP.NewPaymentHandler(paymentUseCase, a.log)
	profileHandler := profileHTTP.NewProfileHandler(profileUseCase, a.log)
	taxReturnHandler := taxreturnHTTP.NewTaxReturnHandler(taxReturnUseCase, a.storageClient, a.log)

	// Domain events become notification rows
	if a.queueClient != nil {
		if err := a.queueClient.ConsumeEvents(notificationUseCase.HandleDomainEvent); err != nil {
			a.log.Error("Failed to start event consumer: %v", err)
		}
	}

	r := gin.Default()
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.AuthMiddleware(a.jwtService), authHandler.Me)
		}

		protected := api.Group("", middleware.AuthMiddleware(a.jwtService))
		if a.redisClient != nil {
			protected.Use(middleware.RateLimitMiddleware(a.redisClient, 300, time.Minute))
		}
		{
			notifications := protected.Group("/notifications")
			{
				notifications.GET("", notificationHandler.GetNotifications)
				notifications.GET("/unread/count", notificationHandler.GetUnreadCount)
				notifications.GET("/type/:type", notificationHandler.GetNotificationsByType)
				notifications.PATCH("/read-all", notificationHandler.MarkAllAsRead)
				notifications.PATCH("/:id/read", notificationHandler.MarkAsRead)
				notifications.DELETE("/:id", notificationHandler.DeleteNotification)
				notifications.POST("", notificationHandler.CreateNotification)
			}

			payments := protected.Group("/payments")
			{
				payments.GET("/tenant/:tenantId", paymentHandler.GetTenantPayments)
				payments.GET("/tenant/:tenantId/stats", paymentHandler.GetTenantPaymentStats)
				payments.POST("", paymentHandler.CreatePayment)
				payments.PUT("/:id/status", paymentHandler.UpdatePaymentStatus)
			}

			profiles := protected.Group("/tenant-profile")
			{
				profiles.GET("/:tenantId", profileHandler.GetProfile)
				profiles.POST("", profileHandler.CreateProfile)
				profiles.PATCH("/:tenantId", profileHandler.UpdateProfile)
				profiles.POST("/:tenantId/completeness", profileHandler.RecomputeCompleteness)
			}

			taxReturns := protected.Group("/tax-returns", middleware.RequireLandlord())
			{
				taxReturns.GET("", taxReturnHandler.GetTaxReturns)
				taxReturns.POST("", taxReturnHandler.CreateTaxReturn)
				taxReturns.GET("/:id", taxReturnHandler.GetTaxReturn)
				taxReturns.PATCH("/:id", taxReturnHandler.UpdateTaxReturn)
				taxReturns.DELETE("/:id", taxReturnHandler.DeleteTaxReturn)
				taxReturns.POST("/:id/submit", taxReturnHandler.SubmitTaxReturn)
				taxReturns.POST("/:id/documents", taxReturnHandler.UploadDocument)
			}
		}
	}

	a.httpServer = &http.Server{
		Addr:         ":" + a.cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		a.log.Info("Server starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down...")
}

func (a *App) Shutdown() error {
	// The server gets 5 seconds to finish in-flight requests
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Server exited")
	return nil
}
