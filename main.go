package main

import (
	"log"

	"cinema-api/cmd"
	"cinema-api/internal/cache"
	"cinema-api/internal/data/repository"
	"cinema-api/internal/queue"
	"cinema-api/internal/wire"
	"cinema-api/pkg/database"
	"cinema-api/pkg/imagestore"
	"cinema-api/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Optional availability cache
	var redisClient *redis.Client
	if config.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     config.Redis.Addr,
			Password: config.Redis.Password,
			DB:       config.Redis.DB,
		})
		logger.Info("Redis cache enabled", zap.String("addr", config.Redis.Addr))
	}
	availCache := cache.NewAvailabilityCache(redisClient, logger)

	// Optional event publisher
	publisher, err := queue.NewPublisher(config.Queue.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message broker", zap.Error(err))
	}
	if publisher != nil {
		defer publisher.Close()
	}

	// Poster storage
	images, err := imagestore.NewDiskStore(config.App.MediaPath)
	if err != nil {
		logger.Fatal("Failed to init media storage", zap.Error(err))
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, config, images, availCache, publisher, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
