package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stockcontrol-gateway/internal/application/usecase"
	httpRouter "github.com/jhoicas/stockcontrol-gateway/internal/interfaces/http"
	"github.com/jhoicas/stockcontrol-gateway/pkg/config"
	"github.com/jhoicas/stockcontrol-gateway/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Sin configuración: logger por defecto (JSON, info) solo para el fallo de arranque
		logger.New(logger.Config{}).Fatal().Err(err).Msg("cargar configuración")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.API.BaseURL).
		Str("cost_engine", cfg.API.CostEngine).
		Msg("iniciando gateway")

	registry := httpRouter.NewSessionRegistry(
		newWorkspaceFactory(cfg, log),
		cfg.Session.IdleTimeout,
		httpRouter.WithRegistryLogger(log.Component("sessions")),
	)

	ctx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go registry.Run(ctx, cfg.Session.SweepInterval)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	origins := strings.Split(cfg.HTTP.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(origins, ","),
		AllowHeaders:  "Origin, Content-Type, Accept, " + httpRouter.SessionHeader,
		AllowMethods:  "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		ExposeHeaders: "Content-Disposition",
	}))
	log.Debug().Strs("origins", origins).Msg("CORS configurado")

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.Docs.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.Docs.SwaggerFile,
			Path:     "docs",
			Title:    "Stock Control Gateway",
		}))
	} else {
		log.Warn().Str("file", cfg.Docs.SwaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "sessions": registry.Len()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Registry:        registry,
		Preferences:     usecase.NewPreferencesUseCase(),
		Navigation:      usecase.NewNavigationService(),
		DefaultPageSize: cfg.API.DefaultPageSize,
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
	stopSweep()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("gateway detenido")
}
