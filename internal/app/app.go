package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homefind/internal/capability"
	listingHTTP "homefind/internal/controller/http"
	"homefind/internal/repo/persistent"
	"homefind/internal/search"
	"homefind/internal/usecase"
	"homefind/pkg/config"
	"homefind/pkg/jwt"
	"homefind/pkg/logger"
	"homefind/pkg/middleware"
	"homefind/pkg/queue"
	"homefind/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	authority := capability.NewAuthority()
	engine := search.NewEngine(search.Weights{
		Title:       cfg.SearchWeightTitle,
		Address:     cfg.SearchWeightAddress,
		City:        cfg.SearchWeightCity,
		State:       cfg.SearchWeightState,
		Landmark:    cfg.SearchWeightLandmark,
		LGA:         cfg.SearchWeightLGA,
		Description: cfg.SearchWeightDescription,
	})

	// Initialize repositories
	propertyRepo := persistent.NewPropertyRepository(db)
	userRepo := persistent.NewUserRepository(db)

	// Initialize use cases
	var publisher usecase.ResultPublisher
	if queueClient != nil {
		publisher = queueClient
	}
	listingCache := usecase.NewRedisListingCache(redisClient)
	propertyUseCase := usecase.NewPropertyUseCase(propertyRepo, userRepo, authority, s3Client, listingCache, log)
	verificationUseCase := usecase.NewVerificationUseCase(propertyRepo, userRepo, authority, publisher, listingCache, log)
	searchUseCase := usecase.NewSearchUseCase(propertyRepo, engine, log)
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, authority, log)

	// Initialize HTTP handlers
	propertyHandler := listingHTTP.NewPropertyHandler(propertyUseCase, searchUseCase, log)
	adminHandler := listingHTTP.NewAdminHandler(verificationUseCase, log)
	authHandler := listingHTTP.NewAuthHandler(authUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	// Public routes. Optional auth lets owners see their own unverified
	// listings in search results.
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware(jwtService))
	{
		public.GET("/listings", propertyHandler.SearchListings)
		public.GET("/listings/:id", propertyHandler.GetListing)
	}

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/admin/login", authHandler.AdminLogin)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtService))
	{
		authed.GET("/auth/me", authHandler.Me)
		authed.POST("/auth/phone/request", authHandler.RequestPhoneVerification)
		authed.POST("/auth/phone/verify", authHandler.VerifyPhone)

		authed.POST("/listings", propertyHandler.CreateListing)
		authed.GET("/listings/mine", propertyHandler.GetMyListings)
		authed.PUT("/listings/:id", propertyHandler.UpdateListing)
		authed.PUT("/listings/:id/images", propertyHandler.ReplaceImages)
		authed.PUT("/listings/:id/documents", propertyHandler.SubmitDocuments)
		authed.DELETE("/listings/:id", propertyHandler.DeleteListing)

		authed.GET("/admin/listings/pending", adminHandler.ListPendingListings)
		authed.POST("/admin/listings/:id/review", adminHandler.ReviewListing)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Listing service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down listing service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Listing service exited")
}
