package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stocker-app/stocker-api/internal/application/analytics"
	"github.com/stocker-app/stocker-api/internal/application/assignment"
	"github.com/stocker-app/stocker-api/internal/application/auth"
	"github.com/stocker-app/stocker-api/internal/application/invitation"
	"github.com/stocker-app/stocker-api/internal/application/sales"
	"github.com/stocker-app/stocker-api/internal/application/settings"
	"github.com/stocker-app/stocker-api/internal/application/usecase"
	"github.com/stocker-app/stocker-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	InvitationUC *invitation.UseCase
	SettingsUC   *settings.UseCase
	ProductUC    *usecase.ProductUseCase
	ClientUC     *usecase.ClientUseCase
	SellerUC     *usecase.SellerUseCase
	HistoryUC    *usecase.HistoryUseCase
	CreateSale   *sales.CreateSaleUseCase
	ReceiptUC    *sales.ReceiptUseCase
	AssignmentUC *assignment.UseCase
	DashboardUC  *analytics.DashboardUseCase

	JWTSecret    string
	CookieName   string
	CookieSecure bool
	SessionTTL   time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login y registro por invitación son públicos)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.InvitationUC, deps.CookieName, deps.CookieSecure, deps.SessionTTL)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Post("/register", authHandler.Register)

	// Rutas protegidas (Bearer token o cookie de sesión)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.CookieName))

	protected.Get("/auth/me", authHandler.Me)

	// Invitaciones (solo admin y owner emiten)
	invitations := protected.Group("/invitations", RequireRole(entity.RoleAdmin, entity.RoleOwner))
	invitationHandler := NewInvitationHandler(deps.InvitationUC, deps.SettingsUC)
	invitations.Post("/", invitationHandler.Create)
	invitations.Get("/", invitationHandler.List)
	invitations.Delete("/:id", invitationHandler.Revoke)

	// Preferencias de visualización (cualquier usuario autenticado)
	settingsGroup := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup.Get("/", settingsHandler.Get)
	settingsGroup.Put("/columns/:table", settingsHandler.SetColumns)
	settingsGroup.Put("/page-size", settingsHandler.SetPageSize)

	// Productos (lectura para todos; escritura solo owner)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.SettingsUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleOwner), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleOwner), productHandler.Update)
	products.Post("/:id/stock", RequireRole(entity.RoleOwner), productHandler.AdjustStock)
	products.Delete("/:id", RequireRole(entity.RoleOwner), productHandler.Delete)

	// Clientes
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC, deps.SettingsUC)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Post("/", RequireRole(entity.RoleOwner, entity.RoleSeller), clientHandler.Create)
	clients.Put("/:id", RequireRole(entity.RoleOwner, entity.RoleSeller), clientHandler.Update)
	clients.Delete("/:id", RequireRole(entity.RoleOwner), clientHandler.Delete)

	// Sellers del owner
	sellers := protected.Group("/sellers", RequireRole(entity.RoleAdmin, entity.RoleOwner))
	sellerHandler := NewSellerHandler(deps.SellerUC, deps.SettingsUC)
	sellers.Get("/", sellerHandler.List)
	sellers.Get("/:id", sellerHandler.GetByID)
	sellers.Post("/:id/deactivate", sellerHandler.Deactivate)

	// Asignaciones (consignación): solo el owner crea y recibe devoluciones
	assignments := protected.Group("/assignments")
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC, deps.SettingsUC)
	assignments.Get("/", assignmentHandler.List)
	assignments.Get("/:id", assignmentHandler.GetByID)
	assignments.Post("/", RequireRole(entity.RoleOwner), assignmentHandler.Create)
	assignments.Post("/:id/return", RequireRole(entity.RoleOwner), assignmentHandler.Return)

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.CreateSale, deps.ReceiptUC, deps.SettingsUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)
	salesGroup.Post("/", RequireRole(entity.RoleOwner, entity.RoleSeller), saleHandler.Create)

	// Historial
	historyHandler := NewHistoryHandler(deps.HistoryUC, deps.SettingsUC)
	protected.Get("/history", historyHandler.List)

	// Dashboard del owner
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", RequireRole(entity.RoleAdmin, entity.RoleOwner), dashboardHandler.Summary)
}
