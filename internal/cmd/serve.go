package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookstore/internal/caching"
	"bookstore/internal/config"
	"bookstore/internal/events"
	"bookstore/internal/handlers"
	"bookstore/internal/jobs"
	"bookstore/internal/jobs/background"
	"bookstore/internal/middleware"
	"bookstore/internal/repositories"
	"bookstore/internal/server"
	"bookstore/internal/services"
	"bookstore/pkg/database"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
)

const (
	version         = "1.0.0"
	shutdownTimeout = 15 * time.Second
)

var (
	migrateOnStart bool
	withWorker     bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the API server together with:
- the background scheduler (statistics refresh, low stock alerts)
- the task worker consuming statistics refresh tasks`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply the schema before serving")
	serveCmd.Flags().BoolVar(&withWorker, "worker", true, "run the background task worker in this process")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, database.PoolOptions{
		MaxConns:          20,
		MaxConnLifetime:   time.Hour,
		HealthCheckPeriod: time.Minute,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if migrateOnStart {
		if err := database.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer cacheSvc.Close()

	minioSvc, err := services.NewMinioService(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioUseSSL)
	if err != nil {
		return fmt.Errorf("failed to initialize MinIO service: %w", err)
	}
	if err := minioSvc.EnsureBucketExists(ctx, cfg.MinioBucket); err != nil {
		log.Printf("WARN: bucket %s unavailable: %v", cfg.MinioBucket, err)
	}

	publisher := events.New(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
	defer publisher.Close()

	// Create repositories
	orderRepo := repositories.NewOrderRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	cartRepo := repositories.NewCartRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	statsRepo := repositories.NewStatisticsRepo(pool)
	keywordRepo := repositories.NewSearchKeywordRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	commentRepo := repositories.NewCommentRepo(pool)
	ratingRepo := repositories.NewRatingRepo(pool)

	// Background tasks share the cache's Redis
	redisOpt := asynq.RedisClientOpt{
		Addr:     caching.ParseAddr(cfg.RedisAddr),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}
	taskClient := asynq.NewClient(redisOpt)
	defer taskClient.Close()

	// Create services
	statsSvc := services.NewStatisticsService(statsRepo, cacheSvc, cfg.StatsCacheTTL)
	statsInvalidator := jobs.NewStatisticsRefreshEnqueuer(statsSvc, taskClient)
	orderSvc := services.NewOrderService(orderRepo, publisher, statsInvalidator, cfg.OrderTxTimeout, cfg.OrderMaxPageSize)
	productSvc := services.NewProductService(productRepo, keywordRepo, minioSvc, cfg.MinioBucket)
	cartSvc := services.NewCartService(cartRepo, productRepo)
	userSvc := services.NewUserService(userRepo, minioSvc, statsInvalidator, cfg.MinioBucket)
	authSvc := services.NewAuthService(userRepo, cacheSvc, publisher, cfg.JWTSecret, cfg.JWTTTL)
	categorySvc := services.NewCategoryService(categoryRepo, minioSvc, cfg.MinioBucket)
	commentSvc := services.NewCommentService(commentRepo)
	ratingSvc := services.NewRatingService(ratingRepo)
	keywordSvc := services.NewSearchKeywordService(keywordRepo)
	receiptSvc := services.NewReceiptService(orderSvc)

	alerts := jobs.NewStockAlertService(productRepo, publisher, cfg.LowStockThreshold)
	scheduler, err := background.NewJobScheduler(statsSvc, alerts, cfg.StatsRefreshInterval, cfg.LowStockInterval)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Scheduler shutdown error: %v", err)
		}
	}()

	if withWorker {
		worker := jobs.NewWorker(redisOpt, cfg.WorkerConcurrency, statsSvc)
		if err := worker.Start(); err != nil {
			return fmt.Errorf("failed to start task worker: %w", err)
		}
		defer worker.Stop()
	}

	// Create handlers
	h := &server.Handlers{
		Orders:     handlers.NewOrderHandlers(orderSvc, receiptSvc),
		Products:   handlers.NewProductHandlers(productSvc),
		Users:      handlers.NewUserHandlers(userSvc),
		Cart:       handlers.NewCartHandlers(cartSvc),
		Auth:       handlers.NewAuthHandlers(authSvc),
		Statistics: handlers.NewStatisticsHandlers(statsSvc),
		Keywords:   handlers.NewSearchKeywordHandlers(keywordSvc),
		Categories: handlers.NewCategoryHandlers(categorySvc),
		Comments:   handlers.NewCommentHandlers(commentSvc),
		Ratings:    handlers.NewRatingHandlers(ratingSvc),
		Health:     handlers.NewHealthHandlers(pool, cacheSvc, minioSvc, cfg.MinioBucket, scheduler, version),
	}
	jwtMiddleware := middleware.NewJWTMiddleware(cfg.JWTSecret, cacheSvc)
	srv := server.New(":"+cfg.Port, h, jwtMiddleware)

	log.Printf("Bookstore server v%s starting", version)
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	return srv.Shutdown(shutdownTimeout)
}
