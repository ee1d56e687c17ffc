package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/rohanz/shopkart/internal/config"
	"github.com/rohanz/shopkart/internal/db"
	"github.com/rohanz/shopkart/internal/handlers"
	"github.com/rohanz/shopkart/internal/logger"
	"github.com/rohanz/shopkart/internal/middleware"
	"github.com/rohanz/shopkart/internal/models"
	"github.com/rohanz/shopkart/internal/services"
	"github.com/rohanz/shopkart/internal/storage"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logg := logger.New(cfg.Env)

	ctx := context.Background()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logg.Fatal().Err(err).Msg("mongodb connection failed")
	}
	if err := db.EnsureIndexes(ctx, database); err != nil {
		logg.Fatal().Err(err).Msg("index creation failed")
	}
	logg.Info().Str("db", cfg.MongoDB).Msg("connected to mongodb")

	media, err := storage.NewMinioStore(ctx, cfg)
	if err != nil {
		logg.Fatal().Err(err).Msg("minio connection failed")
	}
	logg.Info().Str("bucket", cfg.MinioBucket).Msg("connected to minio")

	authService := services.NewAuthService(db.NewUserStore(database), cfg.JWTSecret)
	productService := services.NewProductService(db.NewProductStore(database))

	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, media)
	adminHandler := handlers.NewAdminHandler(authService)

	app := fiber.New()
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	protected := middleware.Protected(cfg.JWTSecret)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Get("/auth/verify", protected, authHandler.Verify)

	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)
	api.Post("/products", protected, adminOnly, productHandler.Create)
	api.Put("/products/:id", protected, adminOnly, productHandler.Update)
	api.Delete("/products/:id", protected, adminOnly, productHandler.Delete)

	api.Get("/categories", productHandler.Categories)

	api.Get("/admin/users", protected, adminOnly, adminHandler.ListUsers)

	logg.Info().Str("port", cfg.Port).Msg("starting server")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logg.Fatal().Err(err).Msg("server stopped")
	}
}
