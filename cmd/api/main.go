package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/jhoicas/biblioteca-api/internal/application/auth"
	"github.com/jhoicas/biblioteca-api/internal/application/feedback"
	"github.com/jhoicas/biblioteca-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/biblioteca-api/internal/infrastructure/pdf"
	"github.com/jhoicas/biblioteca-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/biblioteca-api/internal/interfaces/http"
	"github.com/jhoicas/biblioteca-api/pkg/config"
	"github.com/jhoicas/biblioteca-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	if cfg.DB.Migrate {
		if err := runMigrations(cfg.DB); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	roleRepo := postgres.NewRoleRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	bookRepo := postgres.NewBookRepository(pool)
	feedbackRepo := postgres.NewFeedbackRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo, roleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	bookUC := usecase.NewBookUseCase(bookRepo)
	userUC := usecase.NewUserUseCase(userRepo, roleRepo, feedbackRepo)
	feedbackUC := feedback.NewUseCase(feedbackRepo, bookRepo, userRepo)
	reportUC := usecase.NewReportUseCase(bookRepo, infrapdf.NewMarotoCatalogReport(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Biblioteca API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		BookUC:     bookUC,
		UserUC:     userUC,
		FeedbackUC: feedbackUC,
		ReportUC:   reportUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// runMigrations aplica las migraciones pendientes. Sin cambios no es error.
func runMigrations(db config.DBConfig) error {
	m, err := migrate.New("file://"+db.MigrationsPath, db.ConnectionString())
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
