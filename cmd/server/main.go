package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aioutlet/sku-service/internal/config"
	"github.com/aioutlet/sku-service/internal/generator"
	"github.com/aioutlet/sku-service/internal/handlers"
	"github.com/aioutlet/sku-service/internal/middleware"
	"github.com/aioutlet/sku-service/internal/repository"
	"github.com/aioutlet/sku-service/internal/services"
	"github.com/aioutlet/sku-service/internal/settings"
	"github.com/aioutlet/sku-service/pkg/logger"
	"github.com/aioutlet/sku-service/pkg/redis"
	"github.com/aioutlet/sku-service/pkg/tracing"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title SKU Service API
// @version 1.0
// @description A microservice generating product and variant SKUs
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.aioutlet.com/support
// @contact.email support@aioutlet.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:1012
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter 'Bearer ' followed by your JWT token

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log := logger.New(cfg.Log)
	defer log.Sync()

	// Initialize distributed tracing
	tp, err := tracing.InitTracing(tracing.FromConfig(cfg), log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer tracing.Shutdown(context.Background(), tp, log)

	// Initialize Redis client
	redisClient, err := redis.NewClient(context.Background(), cfg.Redis)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))

	// Initialize repositories
	productRepo := repository.NewProductRepository(redisClient, log)
	skuRepo := repository.NewSKURepository(redisClient, log)
	optionsRepo := repository.NewOptionsRepository(redisClient, cfg.SKU.SettingsKey, log)

	// Settings
	defaults := settings.DefaultsFromConfig(cfg.SKU, log)
	if cfg.SKU.RunMigrationsOnStartup {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		migrator := settings.NewMigrator(optionsRepo, settings.DefaultMigrations(), defaults, log)
		if _, err := migrator.Run(ctx); err != nil {
			cancel()
			log.Fatal("Failed to migrate sku settings", zap.Error(err))
		}
		cancel()
	}
	provider := settings.NewProvider(optionsRepo, defaults, log)

	hooks := generator.Hooks{}
	if cfg.SKU.Uppercase {
		hooks = generator.UppercaseHooks()
	}

	// Initialize services
	skuService := services.NewSKUService(productRepo, skuRepo, provider, hooks, cfg, log)

	// Initialize handlers
	skuHandler := handlers.NewSKUHandler(skuService, log)
	settingsHandler := handlers.NewSettingsHandler(skuService, log)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Name))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.CorrelationIDHeader, "traceparent", "tracestate"},
		ExposeHeaders:    []string{middleware.CorrelationIDHeader, "traceparent", "tracestate"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.CorrelationID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorLogger(log))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.Name,
			"timestamp": time.Now().UTC(),
			"version":   cfg.Version,
		})
	})

	registerRoutes(router, cfg, skuHandler, settingsHandler, log)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting SKU Service",
			zap.String("port", cfg.Server.Port),
			zap.String("environment", cfg.Environment))

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down SKU Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("SKU Service stopped")
}

func registerRoutes(router *gin.Engine, cfg *config.Config, skuHandler *handlers.SKUHandler, settingsHandler *handlers.SettingsHandler, log *zap.Logger) {
	auth := middleware.AuthMiddleware(cfg.JWT.SecretKey, log)

	v1 := router.Group("/api/v1")
	{
		// Read-only routes, a token is optional
		public := v1.Group("")
		public.Use(middleware.OptionalAuthMiddleware(cfg.JWT.SecretKey))
		{
			public.POST("/skus/preview", skuHandler.Preview)
			public.GET("/products/:productId/skus", skuHandler.GetSKUs)
		}

		// Routes that write to the stores
		admin := v1.Group("")
		admin.Use(auth)
		{
			admin.PUT("/products/:productId", skuHandler.SaveProduct)
			admin.POST("/products/:productId/skus", skuHandler.Generate)
			admin.DELETE("/products/:productId/skus", skuHandler.DeleteSKUs)
			admin.POST("/skus/bulk", skuHandler.BulkGenerate)
			admin.GET("/settings", settingsHandler.GetSettings)
			admin.PUT("/settings", settingsHandler.UpdateSettings)
		}
	}
}
