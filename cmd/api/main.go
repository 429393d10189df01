package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Taller-api/internal/application/auth"
	appinventory "github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/jobs"
	"github.com/jhoicas/Taller-api/internal/application/usecase"
	"github.com/jhoicas/Taller-api/internal/infrastructure/mail"
	"github.com/jhoicas/Taller-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Taller-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Taller-api/internal/interfaces/http"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
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

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	apptRepo := postgres.NewAppointmentRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	feedbackRepo := postgres.NewFeedbackRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	inventoryUC := appinventory.NewUseCase(inventoryRepo)

	// Despacho de facturas al completar: PDF + correo al cliente.
	invoiceGenerator := infrapdf.NewMarotoInvoiceGenerator(cfg.Shop)
	mailSender := mail.NewGomailSender(cfg.SMTP, log)
	dispatcher := notify.NewDispatcher(userRepo, vehicleRepo, invoiceGenerator, mailSender, cfg.Shop, log)

	jobsUC := jobs.NewUseCase(txRunner, apptRepo, userRepo, inventoryUC, dispatcher, log)
	managerUC := usecase.NewManagerUseCase(userRepo, apptRepo)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	feedbackUC := usecase.NewFeedbackUseCase(feedbackRepo, apptRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Taller Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		JobsUC:      jobsUC,
		InventoryUC: inventoryUC,
		ManagerUC:   managerUC,
		SettingsUC:  settingsUC,
		FeedbackUC:  feedbackUC,
		JWTSecret:   cfg.JWT.Secret,
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
