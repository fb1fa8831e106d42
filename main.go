// path: main.go
package main

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/lgnappsweb/qruuei-sub000/config"
	"github.com/lgnappsweb/qruuei-sub000/controllers"
	"github.com/lgnappsweb/qruuei-sub000/database"
	"github.com/lgnappsweb/qruuei-sub000/routes"
	"github.com/lgnappsweb/qruuei-sub000/session"
	"github.com/lgnappsweb/qruuei-sub000/storage"
)

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config load failed", zap.Error(err))
	}

	kv, err := storage.OpenSQLiteKV(cfg.SQLitePath)
	if err != nil {
		log.Fatal("kv store open failed", zap.Error(err))
	}

	var backend storage.Backend
	switch cfg.StorageBackend {
	case "mongo":
		if err := database.Connect(context.Background(), log); err != nil {
			log.Fatal("db connect failed", zap.Error(err))
		}
		backend = storage.NewMongoBackend(database.Col(database.ReportsCollection))
	default:
		backend = storage.NewLocalBackend(kv)
	}
	log.Info("storage backend selected", zap.String("backend", cfg.StorageBackend))

	adapter := storage.NewAdapter(backend, log)
	manager := session.NewManager(kv, adapter, log)

	app := fiber.New()
	app.Use(recover.New())

	// Log concise request lines
	app.Use(logger.New(logger.Config{
		TimeFormat: "15:04:05",
	}))

	// CORS (dev-friendly)
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "*",
		AllowCredentials: false,
		MaxAge:           int((12 * time.Hour).Seconds()),
	}))

	// Health
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.SendString("ok") })

	// API
	routes.Register(app, &controllers.API{
		Manager: manager,
		Backend: backend,
		Log:     log,
	})

	log.Info("API listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
