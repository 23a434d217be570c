package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-service/controllers"
	"storefront-service/database"
	"storefront-service/logger"
	"storefront-service/middleware"
	aws_pkg "storefront-service/pkg/aws"
	"storefront-service/repository"
	"storefront-service/routes"
	"storefront-service/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const serviceName = "storefront-service"

func main() {
	// Load .env file (optional, falls back to system env)
	_ = godotenv.Load()

	log := logger.Initialize(getEnv("APP_ENV", "development"))
	defer func() { _ = log.Sync() }()

	cfg, err := LoadConfig()
	if err != nil {
		zap.L().Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// --- 1. Initialization ---
	store, err := database.Connect(context.Background(), cfg.MongoConnectionURI(), cfg.MongoDB)
	if err != nil {
		zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.EnsureIndexes(indexCtx, store.DB())
	cancelIndexes()
	if err != nil {
		// Cart and category uniqueness depend on these indexes. Duplicate
		// documents left by older writers must be merged before starting.
		_ = store.Close()
		zap.L().Fatal("Failed to ensure indexes", zap.Error(err))
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			zap.L().Warn("Failed to parse REDIS_URL, product cache disabled", zap.Error(err))
		} else {
			redisClient = redis.NewClient(redisOpts)
		}
	}

	var (
		snsClient *aws_pkg.SNSClient
		metrics   *aws_pkg.MetricsClient
		presigner *aws_pkg.ImagePresigner
	)
	if needsAWS(cfg) {
		awsCfg, err := aws_pkg.LoadAWSConfig(context.Background())
		if err != nil {
			zap.L().Warn("Failed to load AWS config, AWS features disabled", zap.Error(err))
		} else {
			if cfg.CheckoutTopicARN != "" {
				snsClient = aws_pkg.NewSNSClient(awsCfg)
			}
			if cfg.CloudWatchEnabled {
				metrics = aws_pkg.NewMetricsClient(awsCfg, cfg.CloudWatchNS, true)
			}
			if cfg.S3Bucket != "" {
				presigner = aws_pkg.NewImagePresigner(awsCfg, cfg.S3Bucket, cfg.S3Prefix, cfg.CloudFrontDomain, cfg.S3ForcePathStyle)
			}
		}
	}

	// --- 2. Dependency Injection ---
	db := store.DB()
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	checkoutOpts := []services.CheckoutOption{}
	if cfg.MongoCheckoutTransaction {
		checkoutOpts = append(checkoutOpts, services.WithTransactions(store))
	}
	if snsClient != nil {
		checkoutOpts = append(checkoutOpts, services.WithCheckoutEvents(snsClient, cfg.CheckoutTopicARN))
	}
	if metrics != nil {
		checkoutOpts = append(checkoutOpts, services.WithCheckoutMetrics(metrics))
	}

	productService := services.NewProductService(productRepo, log)
	categoryService := services.NewCategoryService(categoryRepo, log)
	cartService := services.NewCartService(cartRepo, log)
	reviewService := services.NewReviewService(reviewRepo, log)
	paymentService := services.NewPaymentService(paymentRepo, services.NewStripeGateway(cfg.StripeSecretKey), cfg.StripeCurrency, log)
	checkoutService := services.NewCheckoutService(paymentRepo, cartRepo, log, checkoutOpts...)

	// A typed nil presigner must not reach the handler's nil check.
	var uploads *controllers.PresignedURLHandler
	if presigner != nil {
		uploads = controllers.NewPresignedURLHandler(presigner)
	} else {
		uploads = controllers.NewPresignedURLHandler(nil)
	}

	// --- 3. HTTP Server & Middleware ---
	limiter := middleware.NewRateLimiter(rate.Limit(20), 40, 3*time.Minute)
	stopCleanup := make(chan struct{})
	go limiter.Run(stopCleanup)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(middleware.RequestLogger(zap.L()))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware(middleware.ParseAllowedOrigins(cfg.AllowedOrigins)))
	r.Use(middleware.RateLimitMiddleware(limiter))
	r.Use(middleware.Timeout(30 * time.Second))
	if metrics != nil {
		r.Use(middleware.MetricsMiddleware(metrics, serviceName))
	}

	// --- 4. Route Registration ---
	routes.Register(r, routes.Controllers{
		Health:     controllers.NewHealthController(store),
		Products:   controllers.NewProductController(productService, controllers.NewCacheManager(redisClient)),
		Uploads:    uploads,
		Categories: controllers.NewCategoryController(categoryService),
		Carts:      controllers.NewCartController(cartService),
		Reviews:    controllers.NewReviewController(reviewService),
		Payments:   controllers.NewPaymentController(paymentService, checkoutService),
	})

	// --- 5. Graceful Shutdown ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("Storefront service starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down storefront service...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Server forced to shutdown", zap.Error(err))
	}
	close(stopCleanup)

	if err := store.Close(); err != nil {
		zap.L().Error("Failed to disconnect MongoDB", zap.Error(err))
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			zap.L().Error("Failed to close Redis", zap.Error(err))
		}
	}

	zap.L().Info("Storefront service stopped gracefully")
}

func needsAWS(cfg *Config) bool {
	return cfg.CheckoutTopicARN != "" || cfg.CloudWatchEnabled || cfg.S3Bucket != ""
}
