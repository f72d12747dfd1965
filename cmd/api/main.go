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

	"github.com/donaria/donaciones-api/internal/application/auth"
	"github.com/donaria/donaciones-api/internal/application/delivery"
	"github.com/donaria/donaciones-api/internal/application/donation"
	appstock "github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/application/usecase"
	infrapdf "github.com/donaria/donaciones-api/internal/infrastructure/pdf"
	"github.com/donaria/donaciones-api/internal/infrastructure/postgres"
	httpRouter "github.com/donaria/donaciones-api/internal/interfaces/http"
	"github.com/donaria/donaciones-api/pkg/config"
	"github.com/donaria/donaciones-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
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

	itemRepo := postgres.NewItemRepository(pool)
	lotRepo := postgres.NewStockLotRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	donorRepo := postgres.NewDonorRepository(pool)
	beneficiaryRepo := postgres.NewBeneficiaryRepository(pool)
	donationRepo := postgres.NewDonationRepository(pool)
	deliveryRepo := postgres.NewDeliveryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	allocator := appstock.NewAllocator(txRunner, itemRepo)
	shortageUC := appstock.NewShortageUseCase(itemRepo, lotRepo)

	itemUC := usecase.NewItemUseCase(itemRepo)
	donorUC := usecase.NewDonorUseCase(donorRepo)
	beneficiaryUC := usecase.NewBeneficiaryUseCase(beneficiaryRepo)

	createDonationUC := donation.NewCreateDonationUseCase(txRunner, allocator, donorRepo, itemRepo, donationRepo)
	createDeliveryUC := delivery.NewCreateDeliveryUseCase(txRunner, allocator, beneficiaryRepo, itemRepo, deliveryRepo)

	// PDF: certificado de donación para el donante
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	receiptUC := donation.NewReceiptUseCase(donationRepo, donorRepo, itemRepo, receiptGenerator, cfg.App.FoundationName)

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
		Title:    "Donaciones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:        itemUC,
		DonorUC:       donorUC,
		BeneficiaryUC: beneficiaryUC,
		Allocator:     allocator,
		ShortageUC:    shortageUC,
		CreateDonUC:   createDonationUC,
		ReceiptUC:     receiptUC,
		CreateDelUC:   createDeliveryUC,
		AuthUC:        authUC,
		LotRepo:       lotRepo,
		MovementRepo:  movementRepo,
		JWTSecret:     cfg.JWT.Secret,
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
