package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"hrapi/docs"
	"hrapi/internal/auth"
	"hrapi/internal/config"
	"hrapi/internal/database"
	"hrapi/internal/database/migration"
	handlers "hrapi/internal/http/handler"
	"hrapi/internal/http/middleware"
	"hrapi/internal/logger"
	"hrapi/internal/otel"
	"hrapi/internal/repository/postgres"
	"hrapi/internal/service"
	"hrapi/internal/storage"
)

// @title HR Records API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdownTracing(shutdownCtx)
	}()

	// PostgreSQL connection with pooling via database/sql
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, zlog, cfg.Database.Host); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		zlog.Fatal("failed to initialize object storage", zap.Error(err))
	}

	// Repositories and services
	partyRepo := postgres.NewPartyPostgres(db)
	profileRepo := postgres.NewProfilePostgres(db)
	docRepo := postgres.NewDocumentPostgres(db)

	partySvc := service.NewPartyService(partyRepo, zlog)
	profileSvc := service.NewProfileService(profileRepo, partyRepo, zlog)
	docSvc := service.NewDocumentService(objStore, docRepo, partyRepo, cfg.Upload, zlog)

	// Nil when JWT_SECRET is unset; requests then run as anonymous.
	tokenMgr := auth.NewManager(cfg.Auth.JWTSecret, 24*time.Hour)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Upload.MaxSize) + 1024*1024,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(zlog))
	app.Use(middleware.Actor(tokenMgr))

	promMw, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		zlog.Fatal("failed to register metrics", zap.Error(err))
	}
	app.Use(promMw.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.RegisterRoutes(app, db, partySvc, profileSvc, docSvc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	zlog.Info("server_starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}
