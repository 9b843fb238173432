package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"hijabstyles/catalog-service/internal/app/catalog/config"
	"hijabstyles/catalog-service/internal/app/catalog/entity"
	"hijabstyles/catalog-service/internal/app/catalog/handler"
	"hijabstyles/catalog-service/internal/app/catalog/infrastructure/messaging"
	"hijabstyles/catalog-service/internal/app/catalog/processor"
	"hijabstyles/catalog-service/internal/app/catalog/repository"
	"hijabstyles/catalog-service/internal/app/catalog/service"
	"hijabstyles/catalog-service/internal/app/catalog/util"
	"hijabstyles/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logger.Init("catalog-service", logLevel)

	mongoClient, err := connectMongoDB(cfg.MongoDB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}()
	logger.Info().
		Str("database", cfg.MongoDB.Database).
		Msg("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDB.Database)

	redisClient, err := util.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("addr", cfg.Redis.Addr).Msg("Connected to Redis")

	kafkaProducer := messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	defer kafkaProducer.Close()
	logger.Info().
		Str("topic", cfg.Kafka.Topic).
		Msg("Initialized Kafka producer")

	styleRepo := repository.NewStyleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	if err := seedStyles(styleRepo); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed styles")
	}

	catalogService := service.NewCatalogService(styleRepo, redisClient)
	reviewService := service.NewReviewService(reviewRepo, styleRepo, redisClient, kafkaProducer)

	reconciler := processor.NewRatingReconciler(reviewService)
	if err := reconciler.Start(context.Background(), cfg.Reconcile.Schedule); err != nil {
		logger.Fatal().Err(err).Msg("Failed to start rating reconciler")
	}
	defer reconciler.Stop()

	authMiddleware := handler.NewAuthMiddleware(cfg.JWT.Secret)
	styleHandler := handler.NewStyleHandler(catalogService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	router := handler.SetupRoutes(styleHandler, reviewHandler, authMiddleware)

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Catalog Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Catalog Service...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Catalog Service stopped gracefully")
}

func connectMongoDB(cfg config.MongoDBConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)

	var client *mongo.Client
	var err error

	for i := 0; i < 10; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		client, err = mongo.Connect(ctx, clientOptions)
		if err == nil {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pingCancel()

			if err = client.Ping(pingCtx, nil); err == nil {
				return client, nil
			}
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to MongoDB, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, err
}

// seedStyles наполняет пустой каталог начальными стилями
func seedStyles(styleRepo repository.StyleRepository) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := styleRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	styles := []entity.Style{
		{
			Name:        "Classic Hijab",
			Description: "A timeless and elegant hijab style perfect for everyday wear. Features a simple drape that frames the face beautifully.",
			Image:       "https://i.pinimg.com/736x/73/ee/1c/73ee1c44932ba992bf084eae2371dd32.jpg",
			Category:    "everyday",
		},
		{
			Name:        "Turkish Style Hijab",
			Description: "A modern Turkish-inspired hijab style with intricate folds and sophisticated draping technique.",
			Image:       "https://static.vecteezy.com/system/resources/previews/003/705/927/non_2x/cute-girl-hijab-holding-flower-illustration-muslim-girl-with-hijab-cartoon-vector.jpg",
			Category:    "formal",
		},
		{
			Name:        "Sport Hijab",
			Description: "Comfortable and breathable hijab designed specifically for active lifestyle and sports activities.",
			Image:       "https://wallpapers.com/images/featured/hijab-cartoon-v008ku5l80t0hn56.jpg",
			Category:    "sport",
		},
		{
			Name:        "Elegant Wrap Hijab",
			Description: "A sophisticated wrap-style hijab perfect for special occasions and formal events.",
			Image:       "https://w0.peakpx.com/wallpaper/688/556/HD-wallpaper-hijabi-girl-love-preety-muslimah-cute-pie-anime-nice-flower.jpg",
			Category:    "formal",
		},
	}

	if err := styleRepo.InsertMany(ctx, styles); err != nil {
		return err
	}

	logger.Info().Int("count", len(styles)).Msg("Seeded catalog with initial styles")
	return nil
}
