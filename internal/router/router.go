package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-table-booking/internal/config"
	"github.com/iliyamo/restaurant-table-booking/internal/handler"
	"github.com/iliyamo/restaurant-table-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on
// the provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Load balancers and monitoring probe this endpoint to verify the
	// service is up.
	e.GET("/healthz", handler.Health)
}

// RegisterSlots registers the operator endpoints that mutate slot
// state.  Both routes require a valid access token; schedule changes
// are never anonymous.
func RegisterSlots(e *echo.Echo, h *handler.SlotHandler, jwtSecret string) {
	g := e.Group("/v1/timeslots")
	g.Use(middleware.JWTAuth(jwtSecret))
	// Full-replacement batch: declares the complete desired state for
	// every (table, day) the body touches.
	g.POST("/reconcile", h.ReconcileSlots)
	// Single-slot toggle without the reconciler's delete pass.
	g.POST("/update-one", h.UpdateOne)
}

// RegisterBookings registers booking creation and the read-side views.
// Creation is authenticated and rate limited; the read endpoints are
// public and served through the Redis response cache, which mutating
// endpoints invalidate.
func RegisterBookings(
	e *echo.Echo,
	h *handler.BookingHandler,
	jwtSecret string,
	rdb *redis.Client,
	cacheCfg config.CacheConfig,
	rlCfg config.RateLimitConfig,
) {
	e.POST("/v1/bookings",
		h.CreateBooking,
		middleware.JWTAuth(jwtSecret),
		middleware.NewTokenBucket(rlCfg, rdb),
	)

	cached := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/v1/availability", h.GetAvailability, cached)
	e.GET("/v1/timeslots", h.GetTimeSlots, cached)
	e.GET("/v1/bookings", h.ListBookings, cached)
}
