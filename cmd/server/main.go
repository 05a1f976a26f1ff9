package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/restaurant-table-booking/internal/availability"
	"github.com/iliyamo/restaurant-table-booking/internal/config"
	"github.com/iliyamo/restaurant-table-booking/internal/database"
	"github.com/iliyamo/restaurant-table-booking/internal/handler"
	"github.com/iliyamo/restaurant-table-booking/internal/queue"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	"github.com/iliyamo/restaurant-table-booking/internal/router"
)

func main() {
	// A local .env is a convenience for development; in deployment the
	// variables come from the environment itself.
	if err := godotenv.Load(); err != nil {
		log.Printf(".env not loaded: %v", err)
	}

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis is optional: a nil client disables the response cache and
	// rate limiter but never blocks startup.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	tables := repository.NewTableRepo(db)
	slots := repository.NewSlotRepo(db)
	bookings := repository.NewBookingRepo(db)

	reconciler := availability.NewReconciler(slots)
	allocator := availability.NewAllocator(db, slots, bookings)
	reader := availability.NewReader(tables, slots)

	slotHandler := handler.NewSlotHandler(reconciler, slots, rdb, cacheCfg)
	bookingHandler := handler.NewBookingHandler(allocator, reader, tables, slots, bookings, rdb, cacheCfg)

	e := echo.New()
	e.Validator = handler.NewValidator()

	router.RegisterRoutes(e)
	router.RegisterSlots(e, slotHandler, cfg.JWTSecret)
	router.RegisterBookings(e, bookingHandler, cfg.JWTSecret, rdb, cacheCfg, rlCfg)

	// The consumer keeps its own reconnect loop; a broker outage is
	// logged there, not fatal here.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
