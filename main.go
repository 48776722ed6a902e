package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Atlas00000/productvisualizer/awsclient"
	"github.com/Atlas00000/productvisualizer/config"
	"github.com/Atlas00000/productvisualizer/controllers"
	"github.com/Atlas00000/productvisualizer/database"
	"github.com/Atlas00000/productvisualizer/kafka"
	"github.com/Atlas00000/productvisualizer/logger"
	"github.com/Atlas00000/productvisualizer/middleware"
	"github.com/Atlas00000/productvisualizer/repository"
	"github.com/Atlas00000/productvisualizer/routes"
	"github.com/Atlas00000/productvisualizer/services"
	"github.com/Atlas00000/productvisualizer/storefront"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("Config load failed", zap.Error(err))
	}

	log := logger.Initialize(cfg.AppEnv)
	defer logger.Sync()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// --- AWS (needed by the dynamodb driver, presigned uploads and the SNS sink) ---
	awsCfg, awsErr := awsclient.LoadAWSConfig(rootCtx, awsclient.Options{
		Region:          cfg.AWSRegion,
		Endpoint:        cfg.AWSEndpoint,
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
	}, log)
	if awsErr != nil {
		log.Warn("AWS config unavailable (non-fatal)", zap.Error(awsErr))
	}

	// --- Stores ---
	// A store that cannot be reached is replaced by an Unavailable repository so
	// the process keeps serving /health and answers 503 elsewhere.
	mongoConn, err := database.ConnectMongo(rootCtx, cfg.MongoURI, cfg.MongoDB, log)
	if err != nil {
		log.Warn("MongoDB not connected, serving degraded", zap.Error(err))
	}

	var (
		productRepo       repository.ProductRepo       = repository.Unavailable{Reason: err}
		customizationRepo repository.CustomizationRepo = repository.UnavailableCustomizations{}
	)
	if mongoConn != nil {
		productRepo = repository.NewProductRepository(mongoConn.DB)
		custRepo := repository.NewCustomizationRepository(mongoConn.DB)
		if err := custRepo.EnsureIndexes(rootCtx); err != nil {
			log.Warn("Failed to create customization indexes", zap.Error(err))
		}
		customizationRepo = custRepo
	}
	if cfg.StoreDriver == config.DriverDynamo {
		productRepo = dynamoProducts(rootCtx, cfg, awsCfg, awsErr, log)
	}

	var idem repository.IdempotencyStore
	redisClient, err := database.NewRedisClient(rootCtx, cfg.RedisURL)
	if err != nil {
		log.Warn("Redis unavailable, Idempotency-Key disabled", zap.Error(err))
	} else {
		idem = repository.NewRedisIdempotency(redisClient, "customization")
		defer redisClient.Close()
	}

	// --- Cart sink ---
	cartSink, closeSink := newCartSink(cfg, awsCfg, awsErr, log)
	defer closeSink()

	// --- Services ---
	var presigner services.Presigner
	if awsErr == nil {
		presigner = awsclient.NewPresigner(awsCfg)
	}
	productService := services.NewProductService(productRepo, log)
	customizationService := services.NewCustomizationService(productRepo, customizationRepo, idem, cartSink, log)
	assetService := services.NewAssetService(productRepo, presigner, services.AssetConfig{
		Bucket:        cfg.S3Bucket,
		Prefix:        cfg.S3Prefix,
		PublicBaseURL: awsclient.PublicBaseURL(cfg.S3Bucket, cfg.AWSRegion, cfg.AWSEndpoint),
	}, log)

	// --- HTTP router ---
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error("Panic recovered", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
	}))
	r.Use(middleware.RequestID())
	r.Use(logger.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.SecurityHeaders())

	// Rate limiting and the request timeout apply to every route but /health.
	limit, burst := middleware.PerMinute(cfg.RateLimitPerMinute)
	guard := []gin.HandlerFunc{
		middleware.RateLimitMiddleware(middleware.NewRateLimiter(rootCtx, limit, burst, 5*time.Minute)),
		middleware.Timeout(cfg.RequestTimeout),
	}

	routes.RegisterRoutes(r, routes.Handlers{
		System:         controllers.NewSystemController(productRepo),
		Products:       controllers.NewProductController(productService),
		Customizations: controllers.NewCustomizationController(customizationService),
		Assets:         controllers.NewAssetController(assetService),
		Storefront:     storefront.NewHandler(productService, cartSink, log),
	}, guard...)

	// --- HTTP server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info("Server running",
			zap.String("port", cfg.Port),
			zap.String("health", "http://localhost:"+cfg.Port+"/health"),
			zap.String("api", "http://localhost:"+cfg.Port+"/api"),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info("Shutting down gracefully", zap.String("signal", sig.String()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	if err := mongoConn.Close(shutdownCtx); err != nil {
		log.Error("Database close error", zap.Error(err))
	}
	log.Info("Server stopped")
}

func dynamoProducts(ctx context.Context, cfg *config.Config, awsCfg sdkaws.Config, awsErr error, log *zap.Logger) repository.ProductRepo {
	if awsErr != nil {
		return repository.Unavailable{Reason: awsErr}
	}
	adapter := repository.NewDynamoAdapter(awsclient.NewDynamoClient(awsCfg), cfg.DynamoTable)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := adapter.Ping(pingCtx); err != nil {
		log.Warn("DynamoDB table not reachable, serving degraded", zap.String("table", cfg.DynamoTable), zap.Error(err))
		return repository.Unavailable{Reason: err}
	}
	log.Info("DynamoDB product store ready", zap.String("table", cfg.DynamoTable))
	return adapter
}

func newCartSink(cfg *config.Config, awsCfg sdkaws.Config, awsErr error, log *zap.Logger) (services.CartSink, func()) {
	switch cfg.CartSink {
	case config.SinkKafka:
		producer := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaCartTopic, log)
		log.Info("Cart events go to Kafka", zap.Strings("brokers", cfg.KafkaBrokers), zap.String("topic", cfg.KafkaCartTopic))
		return producer, func() {
			if err := producer.Close(); err != nil {
				log.Error("Kafka producer close error", zap.Error(err))
			}
		}
	case config.SinkSNS:
		if awsErr != nil || cfg.CartSNSTopicARN == "" {
			log.Warn("SNS cart sink not configured, falling back to log", zap.Error(awsErr))
			break
		}
		log.Info("Cart events go to SNS", zap.String("topic_arn", cfg.CartSNSTopicARN))
		return awsclient.NewSNSCartSink(awsclient.NewSNSClient(awsCfg), cfg.CartSNSTopicARN, log), func() {}
	}
	return services.LogSink{Logger: log}, func() {}
}
