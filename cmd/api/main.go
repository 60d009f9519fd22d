package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"chat-app-backend/internal/auth"
	"chat-app-backend/internal/chat"
	"chat-app-backend/internal/config"
	"chat-app-backend/internal/stream"
	"chat-app-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 5 * 1024 * 1024,
	})
	setupCORS(app, cfg.FrontendURL)
	app.Use(checkMiddleware)

	var repo user.Repository
	if cfg.DatabaseURL != "" {
		db := mustOpenDB(cfg.DatabaseURL)
		defer db.Close()
		ensureSchema(db)
		repo = user.NewPostgresRepository(db)
	} else {
		log.Println("DATABASE_URL not set, using in-memory user store")
		repo = user.NewInMemoryRepository(nil)
	}

	streamClient := stream.NewWithBaseURL(cfg.StreamKey, cfg.StreamSecret, cfg.StreamBaseURL)
	authService := auth.NewService(repo, streamClient)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	cookies := auth.CookiePolicy{Secure: cfg.Production()}
	authHandler := auth.NewHandler(authService, tokens, cookies)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	authHandler.RegisterPublicRoutes(app)

	// everything registered below requires a valid session cookie
	app.Use(jwtware.New(jwtware.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "cookie:" + auth.CookieName,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "unauthorized",
			})
		},
	}))

	authHandler.RegisterProtectedRoutes(app)

	chatHandler := chat.NewHandler(streamClient)
	chatHandler.RegisterProtectedRoutes(app)

	log.Printf("starting server on %s", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func setupCORS(app *fiber.App, frontendURL string) {
	// credentialed CORS: the session cookie only travels when the exact
	// frontend origin is allowed, a wildcard would be rejected by browsers
	app.Use(cors.New(cors.Config{
		AllowOrigins:     frontendURL,
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Cookie",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	return db
}

func ensureSchema(db *sql.DB) {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		gender TEXT,
		profile_pic TEXT,
		bio TEXT,
		location TEXT,
		is_onboarded BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TEXT,
		updated_at TEXT
	)`); err != nil {
		panic(err)
	}
}

func checkMiddleware(c *fiber.Ctx) error {
	start := time.Now()
	fmt.Printf("URL = %s, Method = %s, Start Time = %v\n", c.OriginalURL(), c.Method(), start)
	return c.Next()
}
