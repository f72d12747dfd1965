package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/donaria/donaciones-api/internal/application/auth"
	"github.com/donaria/donaciones-api/internal/application/delivery"
	"github.com/donaria/donaciones-api/internal/application/donation"
	appstock "github.com/donaria/donaciones-api/internal/application/stock"
	"github.com/donaria/donaciones-api/internal/application/usecase"
	"github.com/donaria/donaciones-api/internal/domain/entity"
	"github.com/donaria/donaciones-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC        *usecase.ItemUseCase
	DonorUC       *usecase.DonorUseCase
	BeneficiaryUC *usecase.BeneficiaryUseCase
	Allocator     *appstock.Allocator
	ShortageUC    *appstock.ShortageUseCase
	CreateDonUC   *donation.CreateDonationUseCase
	ReceiptUC     *donation.ReceiptUseCase
	CreateDelUC   *delivery.CreateDeliveryUseCase
	AuthUC        *auth.AuthUseCase
	LotRepo       repository.StockLotRepository
	MovementRepo  repository.StockMovementRepository
	JWTSecret     string
}

// Router registra las rutas de la API. Todo excepto auth requiere Bearer Token;
// las operaciones que mutan stock requieren rol coordinador o admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	operators := RequireRole(entity.RoleAdmin, entity.RoleCoordinador)

	// Items (catálogo)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", operators, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", operators, itemHandler.Update)

	// Donors
	donors := protected.Group("/donors")
	donorHandler := NewDonorHandler(deps.DonorUC)
	donors.Post("/", donorHandler.Create)
	donors.Get("/", donorHandler.List)
	donors.Get("/:id", donorHandler.GetByID)

	// Beneficiaries
	beneficiaries := protected.Group("/beneficiaries")
	beneficiaryHandler := NewBeneficiaryHandler(deps.BeneficiaryUC)
	beneficiaries.Post("/", beneficiaryHandler.Create)
	beneficiaries.Get("/", beneficiaryHandler.List)
	beneficiaries.Get("/:id", beneficiaryHandler.GetByID)

	// Stock: intake/outtake directos y consultas
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Allocator, deps.ShortageUC, deps.LotRepo, deps.MovementRepo)
	stockGroup.Post("/intake", operators, stockHandler.RecordIntake)
	stockGroup.Post("/outtake", operators, stockHandler.RecordOuttake)
	stockGroup.Get("/items/:item_id/lots", stockHandler.ListLots)
	stockGroup.Get("/items/:item_id/movements", stockHandler.ListMovements)
	stockGroup.Get("/shortage-report", stockHandler.ShortageReport)

	// Donations (con certificado PDF)
	donations := protected.Group("/donations")
	donationHandler := NewDonationHandler(deps.CreateDonUC, deps.ReceiptUC)
	donations.Post("/", operators, donationHandler.Create)
	donations.Get("/:id", donationHandler.GetByID)
	donations.Get("/:id/receipt", donationHandler.GetReceipt)

	// Deliveries
	deliveries := protected.Group("/deliveries")
	deliveryHandler := NewDeliveryHandler(deps.CreateDelUC)
	deliveries.Post("/", operators, deliveryHandler.Create)
	deliveries.Get("/:id", deliveryHandler.GetByID)
}
