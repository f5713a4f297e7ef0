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
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/agrilink-web/internal/application/auth"
	"github.com/jhoicas/agrilink-web/internal/application/notify"
	"github.com/jhoicas/agrilink-web/internal/application/view"
	"github.com/jhoicas/agrilink-web/internal/infrastructure/backend"
	httpRouter "github.com/jhoicas/agrilink-web/internal/interfaces/http"
	"github.com/jhoicas/agrilink-web/pkg/config"
	"github.com/jhoicas/agrilink-web/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("provider", cfg.Identity.Provider).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	be, err := backend.Open(ctx, cfg, cfg.Identity.Provider == config.ProviderPostgres, log)
	if err != nil {
		log.Fatal().Err(err).Msg("backend de identidad")
	}
	defer be.Close()

	authUC := auth.NewAuthUseCase(be.Identity, be.Store, auth.Config{
		ProfileCollection: cfg.Identity.ProfileCollection,
	})
	relay := notify.NewRelay(cfg.Notification.TTL())
	viewCtrl := view.NewController(authUC, relay, log)

	engine, err := httpRouter.NewViewEngine()
	if err != nil {
		log.Fatal().Err(err).Msg("cargar vistas")
	}
	secure := cfg.App.Env == "production"

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		Views:        engine,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "AgriLink API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName: cfg.App.Name,
		AuthUC:  authUC,
		View:    viewCtrl,
		Views:   httpRouter.NewViewStore(secure),
		Session: httpRouter.SessionConfig{
			Secret:     cfg.Session.Secret,
			Issuer:     cfg.Session.Issuer,
			ExpMinutes: cfg.Session.Expiration,
			Secure:     secure,
		},
		Log: log,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servidor HTTP finalizado")
	}
	log.Info().Msg("aplicación detenida")
}
