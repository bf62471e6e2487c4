// Package routes wires repositories, services and handlers together
// and registers every HTTP route with its middleware chain.
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"

	"baartal/internal/handlers"
	"baartal/internal/middleware"
	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/services/auth"
	"baartal/internal/services/business"
	"baartal/internal/services/dashboard"
	"baartal/internal/services/ledger"
	"baartal/internal/services/notification"
	"baartal/internal/services/qr"
	"baartal/internal/services/rating"
	"baartal/internal/services/user"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories.
	userRepo := repositories.NewUserRepository(db, repositories.Cache)
	profileRepo := repositories.NewCustomerProfileRepository(db)
	businessRepo := repositories.NewBusinessRepository(db, repositories.Cache)
	bundleRepo := repositories.NewBundleRepository(db)
	ledgerRepo := repositories.NewLedgerRepository(db)
	qrRepo := repositories.NewQRCodeRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Services. The rating service feeds the ledger so bonus credits
	// commit in the same transaction as the rating row.
	authService := auth.NewService(userRepo)
	ledgerService := ledger.NewService(ledgerRepo, nil)
	businessService := business.NewService(businessRepo, userRepo)
	qrService := qr.NewService(qrRepo, businessRepo)
	ratingService := rating.NewService(ratingRepo, ledgerService)
	notificationService := notification.NewService(notificationRepo)
	userService := user.NewService(userRepo, profileRepo, businessRepo)
	dashboardService := dashboard.NewService(ledgerService, businessRepo, profileRepo, qrRepo, ratingRepo)

	// Handlers.
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	businessHandler := handlers.NewBusinessHandler(businessService)
	bundleHandler := handlers.NewBundleHandler(bundleRepo)
	qrHandler := handlers.NewQRHandler(qrService, ledgerService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService, businessService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the Baartal API",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")

	api.Get("/health", healthHandler.Check)

	// Register and login share one limiter; brute forcing either is the
	// same attack.
	authLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
	})
	api.Post("/auth/register", authLimiter, authHandler.Register)
	api.Post("/auth/login", authLimiter, authHandler.Login)
	api.Post("/auth/refresh", authHandler.Refresh)

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	// Public reads. /businesses/me must be registered before
	// /businesses/:id so the param route does not swallow it.
	api.Get("/businesses/me", authMiddleware.Handler,
		middleware.RequireUserType(models.UserTypeBusiness), businessHandler.GetMine)
	api.Get("/businesses", businessHandler.List)
	api.Get("/businesses/:id", businessHandler.Get)
	api.Get("/bundles", bundleHandler.List)
	api.Get("/bundles/:pincode", bundleHandler.GetByPincode)
	api.Get("/ratings/business/:id", ratingHandler.ListForBusiness)

	// Everything registered from here on requires a valid bearer token.
	protected := api.Use(authMiddleware.Handler)

	setupAuthRoutes(protected, authHandler)
	setupAccountRoutes(protected, userHandler)
	setupBusinessRoutes(protected, businessHandler, qrHandler)
	setupLedgerRoutes(protected, qrHandler, transactionHandler, ratingHandler)
	setupNotificationRoutes(protected, notificationHandler)
	setupDashboardRoutes(protected, dashboardHandler)
}

func setupAuthRoutes(router fiber.Router, h *handlers.AuthHandler) {
	router.Post("/auth/logout", h.Logout)
	router.Post("/auth/change-password", h.ChangePassword)
}

func setupAccountRoutes(router fiber.Router, h *handlers.UserHandler) {
	router.Get("/users/me", h.GetMe)
	router.Put("/users/me", h.UpdateMe)

	favorites := router.Group("/customers/me/favorites",
		middleware.RequireUserType(models.UserTypeCustomer))
	favorites.Get("/", h.ListFavorites)
	favorites.Put("/:businessId", h.AddFavorite)
	favorites.Delete("/:businessId", h.RemoveFavorite)
}

func setupBusinessRoutes(router fiber.Router, h *handlers.BusinessHandler, qrHandler *handlers.QRHandler) {
	requireBusiness := middleware.RequireUserType(models.UserTypeBusiness)

	router.Post("/businesses", requireBusiness, h.Create)
	router.Put("/businesses/:id", requireBusiness, h.Update)
	router.Delete("/businesses/:id", requireBusiness, h.Deactivate)
	router.Post("/businesses/:id/reactivate", requireBusiness, h.Reactivate)

	// Token resolution stays open to every signed-in account so the
	// customer app can preview a business before confirming a bill.
	router.Post("/qr-codes", requireBusiness, qrHandler.Mint)
	router.Get("/qr-codes", requireBusiness, qrHandler.List)
	router.Get("/qr-codes/:code", qrHandler.Resolve)
	router.Delete("/qr-codes/:id", requireBusiness, qrHandler.Deactivate)
}

func setupLedgerRoutes(router fiber.Router, qrHandler *handlers.QRHandler, h *handlers.TransactionHandler, ratingHandler *handlers.RatingHandler) {
	requireCustomer := middleware.RequireUserType(models.UserTypeCustomer)

	router.Post("/scan-qr", requireCustomer, qrHandler.Scan)
	router.Post("/bcoin-transactions", requireCustomer, h.Create)
	router.Post("/redeem-bcoins", requireCustomer, h.Redeem)
	router.Post("/ratings", requireCustomer, ratingHandler.Create)

	// History endpoints check self-or-admin and owner-or-admin in the
	// handler, so they carry no type gate here.
	router.Get("/bcoin-transactions/user/:id", h.CustomerHistory)
	router.Get("/bcoin-transactions/business/:id", h.BusinessHistory)
}

func setupNotificationRoutes(router fiber.Router, h *handlers.NotificationHandler) {
	router.Get("/notifications", h.List)
	router.Patch("/notifications/:id/read", h.MarkRead)
}

func setupDashboardRoutes(router fiber.Router, h *handlers.DashboardHandler) {
	dashboard := router.Group("/dashboard")
	dashboard.Get("/customer", middleware.RequireUserType(models.UserTypeCustomer), h.Customer)
	dashboard.Get("/business", middleware.RequireUserType(models.UserTypeBusiness), h.Business)
}
