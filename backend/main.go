package main

import (
	"context"
	"log"

	"classhub/backend/config"
	"classhub/backend/middleware"
	"classhub/backend/routes"
	"classhub/backend/storage"
	"classhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// Initialize database
	db, err := utils.InitDB(cfg)
	if err != nil {
		log.Fatalf("Error initializing database: %v", err)
	}
	if err := utils.Migrate(db); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Initialize artifact storage
	store, err := initStorage(cfg)
	if err != nil {
		log.Fatalf("Error initializing storage: %v", err)
	}

	// Initialize logger
	logger := utils.InitLogger()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.MaxUploadMB * 1024 * 1024,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.LoggingMiddleware(logger))

	// Setup routes
	routes.SetupRoutes(app, db, cfg, store)

	// Start server
	log.Fatal(app.Listen(":" + cfg.ServerPort))
}

func initStorage(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "b2" {
		return storage.NewB2Store(context.Background(), cfg.B2AccountID, cfg.B2AppKey, cfg.B2Bucket)
	}
	return storage.NewLocalStore(cfg.UploadDir)
}
