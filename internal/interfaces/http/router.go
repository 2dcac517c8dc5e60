package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/etag"

	appanalytics "github.com/jhoicas/jprint-api/internal/application/analytics"
	"github.com/jhoicas/jprint-api/internal/application/auth"
	"github.com/jhoicas/jprint-api/internal/application/dto"
	"github.com/jhoicas/jprint-api/internal/application/order"
	"github.com/jhoicas/jprint-api/internal/domain/entity"
	"github.com/jhoicas/jprint-api/pkg/config"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	OrderUC     *order.OrderUseCase
	ReceiptUC   *order.ReceiptUseCase
	DashboardUC *appanalytics.DashboardUseCase
	JWT         config.JWTConfig
	AppName     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.JWT)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	requireAuth := AuthMiddleware(deps.JWT.Secret)
	vendorOnly := RequireRole(entity.RoleVendor)

	// Users (vendedor)
	userHandler := NewUserHandler(deps.AuthUC)
	api.Get("/users", requireAuth, vendorOnly, userHandler.List)

	// Orders: crear admite invitados; el resto requiere token.
	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	orders.Post("/", OptionalAuth(deps.JWT.Secret), orderHandler.Create)
	orders.Post("/verify-otp", requireAuth, vendorOnly, orderHandler.VerifyOTP)
	orders.Get("/", requireAuth, etag.New(), orderHandler.List)
	orders.Get("/:id", requireAuth, orderHandler.GetByID)
	orders.Get("/:id/receipt", requireAuth, orderHandler.Receipt)
	orders.Patch("/:id/status", requireAuth, vendorOnly, orderHandler.UpdateStatus)

	// Dashboard (vendedor)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard/summary", requireAuth, vendorOnly, dashboardHandler.GetSummary)
}
