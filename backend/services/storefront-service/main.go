package main

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	aws_pkg "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/pkg/aws"
	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/logger"
	commonmw "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/middleware"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/cache"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/controllers"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/database"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/events"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/routes"
	servicepkg "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/services"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/telegram"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const serviceName = "storefront-service"

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	loc := cfg.Location()

	// AWS clients (non-fatal)
	awsCfg, awsErr := aws_pkg.LoadAWSConfig(context.Background())

	var cwWriter io.Writer
	if cfg.CloudWatchEnabled && awsErr == nil {
		if cw, err := aws_pkg.NewCloudWatchLogsClient(context.Background(), awsCfg, cfg.CloudWatchLogGroup, serviceName); err == nil {
			cwWriter = cw
			defer cw.Close() //nolint:errcheck
		} else {
			log.Printf("CloudWatch logs client init failed (non-fatal): %v", err)
		}
	}
	zl := logger.InitializeWithWriter(cfg.AppEnv, cwWriter)
	defer zl.Sync() //nolint:errcheck

	if awsErr != nil {
		zl.Warn("AWS config unavailable, SNS, S3 and metrics disabled", zap.Error(awsErr))
	}

	// MongoDB
	mongoClient, db, err := database.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		zl.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer database.Disconnect(mongoClient) //nolint:errcheck
	if err := database.EnsureIndexes(context.Background(), db); err != nil {
		zl.Fatal("Failed to create indexes", zap.Error(err))
	}

	// Redis (optional)
	var redisClient *redis.Client
	var catalogCache servicepkg.CatalogCache
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			zl.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close() //nolint:errcheck
			catalogCache = cache.NewCatalogCache(redisClient, cfg.CatalogCacheTTL, zl)
		}
	}

	var (
		snsClient     aws_pkg.SNSPublisher
		objectStore   servicepkg.ObjectStore
		metricsClient *aws_pkg.MetricsClient
		counter       events.Counter
		recorder      commonmw.MetricsRecorder
	)
	if awsErr == nil {
		if cfg.OrderEventsTopicARN != "" {
			snsClient = aws_pkg.NewSNSClient(awsCfg)
		}
		if cfg.MediaBucket != "" {
			objectStore = aws_pkg.NewS3Storage(awsCfg, cfg.MediaBucket)
		}
		metricsClient = aws_pkg.NewMetricsClient(awsCfg, cfg.MetricsNamespace, cfg.CloudWatchEnabled)
		counter = metricsClient
		recorder = metricsClient
	}
	publisher := events.NewPublisher(snsClient, cfg.OrderEventsTopicARN, counter, zl)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	contactRepo := repository.NewContactRepository(db)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Seed(seedCtx, userRepo, categoryRepo, productRepo, database.SeedOptions{
		AdminEmail:    cfg.SeedAdminEmail,
		AdminPassword: cfg.SeedAdminPassword,
		SampleCatalog: cfg.SeedSampleData,
	}, zl)
	seedCancel()
	if err != nil {
		zl.Fatal("Failed to seed database", zap.Error(err))
	}

	reportService := servicepkg.NewReportService(orderRepo, productRepo, loc, zl)

	// Telegram gateway
	notifier, err := telegram.New(telegram.Config{
		Token:           cfg.TelegramBotToken,
		ChatID:          cfg.TelegramChatID,
		Polling:         cfg.TelegramPolling,
		ConversationTTL: cfg.TelegramConversationTTL,
		Location:        loc,
	}, telegram.Deps{
		Orders:  orderRepo,
		Users:   userRepo,
		Reports: reportService,
		Events:  publisher,
		Logger:  zl.Named("telegram"),
	})
	if err != nil {
		zl.Warn("Telegram gateway unavailable, order notifications disabled", zap.Error(err))
		notifier = telegram.Disabled{}
	}
	if err := notifier.Start(context.Background()); err != nil {
		zl.Warn("Failed to start telegram gateway", zap.Error(err))
	}

	// Services
	tokenService := servicepkg.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTTTL)
	authService := servicepkg.NewAuthService(userRepo, tokenService, zl)
	userService := servicepkg.NewUserService(userRepo, zl)
	adminService := servicepkg.NewAdminService(userRepo, productRepo, orderRepo, zl)
	catalogService := servicepkg.NewCatalogService(productRepo, categoryRepo, catalogCache, zl)
	cartService := servicepkg.NewCartService(cartRepo, zl)
	contactService := servicepkg.NewContactService(contactRepo, zl)
	mediaService := servicepkg.NewMediaService(objectStore, cfg.MediaFolder, cfg.MediaPublicBaseURL, zl)
	orderService := servicepkg.NewOrderService(
		orderRepo,
		productRepo,
		userRepo,
		notifier,
		publisher,
		servicepkg.OrderPolicy{
			EnforcePurchaseLimits: cfg.EnforcePurchaseLimits,
			RejectUnknownProducts: cfg.RejectUnknownProducts,
		},
		loc,
		zl,
	)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	limiter := commonmw.NewPerMinuteLimiter(cfg.RateLimitPerMinute)
	defer limiter.Close()

	r.Use(gin.Recovery())
	r.Use(logger.RequestID())
	r.Use(commonmw.RequestLogger(zl, "/api/health"))
	r.Use(commonmw.MetricsMiddleware(recorder, serviceName))
	r.Use(commonmw.SecurityHeaders())
	r.Use(commonmw.CORSMiddleware(cfg.CORSOrigins))
	r.Use(commonmw.RateLimitMiddleware(limiter))
	r.Use(commonmw.Timeout(30 * time.Second))
	r.Use(apperrors.ErrorMiddleware(zl))

	routes.RegisterRoutes(r, routes.Controllers{
		Auth:     controllers.NewAuthController(authService),
		User:     controllers.NewUserController(userService),
		Admin:    controllers.NewAdminController(adminService, userService),
		Product:  controllers.NewProductController(catalogService),
		Category: controllers.NewCategoryController(catalogService),
		Cart:     controllers.NewCartController(cartService),
		Order:    controllers.NewOrderController(orderService),
		Contact:  controllers.NewContactController(contactService),
		Upload:   controllers.NewUploadController(mediaService),
		Report:   controllers.NewReportController(reportService),
		Export:   controllers.NewExportController(orderService, loc),
	}, tokenService, userRepo)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zl.Fatal("Server failed", zap.Error(err))
		}
	}()

	zl.Info("Storefront service started", zap.String("port", cfg.Port), zap.String("timezone", loc.String()))
	<-quit
	zl.Info("Shutting down storefront service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("Server forced to shutdown", zap.Error(err))
	}
	notifier.Stop()
	zl.Info("Server exited cleanly")
}
