package app

import (
	"campbnb-backend/internal/auth"
	"campbnb-backend/internal/bookings"
	"campbnb-backend/internal/config"
	"campbnb-backend/internal/database"
	"campbnb-backend/internal/favorites"
	"campbnb-backend/internal/health"
	"campbnb-backend/internal/listings"
	"campbnb-backend/internal/middleware"
	"campbnb-backend/internal/pkg/response"
	"campbnb-backend/internal/reviews"
	"campbnb-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis handles for startup checks.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigin: cfg.FrontendURL}))

	// Redis is optional; without it the health marker and /health/json are off.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
		app.Use(middleware.HealthMarker(rdb))
	}

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	healthHandlers := &health.Handlers{Rdb: rdb, AdminKey: cfg.HealthAdminKey}
	app.Get("/health", healthHandlers.Health)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/reset", healthHandlers.Reset)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	// db may be nil when DATABASE_URL is unset (e.g. health-only smoke runs).
	if db != nil {
		secret := []byte(cfg.JWTSecret)
		requireAuth := middleware.RequireAuth(db, secret)
		optionalAuth := middleware.OptionalAuth(db, secret)

		authHandlers := &auth.Handlers{
			Service:   &auth.Service{DB: db},
			JWTSecret: secret,
			TokenTTL:  cfg.JWTExpiresIn,
		}
		authGroup := app.Group("/api/auth")
		authGroup.Post("/register", authHandlers.Register)
		authGroup.Post("/login", authHandlers.Login)
		authGroup.Get("/me", requireAuth, authHandlers.Me)
		authGroup.Post("/forgot-password", authHandlers.ForgotPassword)

		listingHandlers := &listings.Handlers{Service: &listings.Service{DB: db}}
		listingGroup := app.Group("/api/listings")
		listingGroup.Get("/", optionalAuth, listingHandlers.Search)
		listingGroup.Get("/host", requireAuth, listingHandlers.ListHost)
		listingGroup.Get("/:id", optionalAuth, listingHandlers.Get)
		listingGroup.Post("/", requireAuth, middleware.RequireHost(), listingHandlers.Create)
		listingGroup.Put("/:id", requireAuth, listingHandlers.Update)
		listingGroup.Delete("/:id", requireAuth, listingHandlers.Delete)

		bookingHandlers := &bookings.Handlers{Service: &bookings.Service{DB: db}}
		bookingGroup := app.Group("/api/bookings", requireAuth)
		bookingGroup.Get("/", bookingHandlers.List)
		bookingGroup.Get("/host", bookingHandlers.ListHost)
		bookingGroup.Get("/:id", bookingHandlers.Get)
		bookingGroup.Post("/", bookingHandlers.Create)
		bookingGroup.Put("/:id/cancel", bookingHandlers.Cancel)
		bookingGroup.Put("/:id/confirm", bookingHandlers.Confirm)
		bookingGroup.Put("/:id/reject", bookingHandlers.Reject)
		bookingGroup.Put("/:id/complete", bookingHandlers.Complete)

		reviewHandlers := &reviews.Handlers{Service: &reviews.Service{DB: db}}
		reviewGroup := app.Group("/api/reviews")
		reviewGroup.Get("/listing/:listingId", reviewHandlers.List)
		reviewGroup.Post("/listing/:listingId", requireAuth, reviewHandlers.Create)

		favoriteHandlers := &favorites.Handlers{Service: &favorites.Service{DB: db}}
		favoriteGroup := app.Group("/api/favorites", requireAuth)
		favoriteGroup.Get("/", favoriteHandlers.List)
		favoriteGroup.Post("/:listingId", favoriteHandlers.Add)
		favoriteGroup.Delete("/:listingId", favoriteHandlers.Remove)

		userHandlers := &users.Handlers{Service: &users.Service{DB: db}}
		userGroup := app.Group("/api/users")
		userGroup.Put("/me", requireAuth, userHandlers.UpdateMe)
		userGroup.Put("/me/become-host", requireAuth, userHandlers.BecomeHost)
		userGroup.Get("/:id", userHandlers.Get)
	}

	// 404 fallback
	app.Use(func(c *fiber.Ctx) error {
		return response.NotFound(c, "Not found")
	})

	return app, db, rdb, nil
}
