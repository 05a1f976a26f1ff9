package handler

import (
	"net/http" // HTTP status codes
	"strconv"  // parsing query parameters

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-table-booking/internal/availability"
	"github.com/iliyamo/restaurant-table-booking/internal/config"
	"github.com/iliyamo/restaurant-table-booking/internal/middleware"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	"github.com/iliyamo/restaurant-table-booking/internal/slotclock"
)

// SlotHandler exposes the operator-facing slot management endpoints.
// All methods assume the JWT middleware has already admitted the
// caller.  Mutations invalidate the availability response cache so
// readers never see schedule state older than the last write.
type SlotHandler struct {
	Reconciler *availability.Reconciler // desired-state batch application
	Slots      *repository.SlotRepo     // direct access for single-slot updates
	Redis      *redis.Client            // may be nil; cache invalidation degrades to no-op
	CacheCfg   config.CacheConfig       // provides the cache key prefix
}

// NewSlotHandler constructs a SlotHandler with the provided dependencies.
func NewSlotHandler(reconciler *availability.Reconciler, slots *repository.SlotRepo, rdb *redis.Client, cacheCfg config.CacheConfig) *SlotHandler {
	if reconciler == nil || slots == nil {
		panic("nil dependency passed to NewSlotHandler")
	}
	return &SlotHandler{Reconciler: reconciler, Slots: slots, Redis: rdb, CacheCfg: cacheCfg}
}

// reconcileRequest is the batch body for POST /v1/timeslots/reconcile.
type reconcileRequest struct {
	Entries []availability.Entry `json:"entries" validate:"required,min=1"`
}

// ReconcileSlots handles POST /v1/timeslots/reconcile.  The body
// declares the complete desired slot state for every (table, day) it
// touches; slots stored for a touched pair but absent from the batch
// are deleted.  This full-replacement contract is deliberate: callers
// resend the whole schedule for a scope, and whatever is not resent
// is gone.  Malformed pairs inside an entry are skipped, not fatal.
func (h *SlotHandler) ReconcileSlots(c echo.Context) error {
	var req reconcileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inputs"})
	}

	ctx := c.Request().Context()
	result, err := h.Reconciler.Reconcile(ctx, req.Entries)
	if err != nil {
		c.Logger().Errorf("reconcile failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update time slots"})
	}

	middleware.InvalidateCache(ctx, h.Redis, h.CacheCfg.Prefix)

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "Time slots reconciled successfully",
		"updated":     result.Updated,
		"deleted_ids": result.DeletedIDs,
		"stats": echo.Map{
			"entries_processed": len(req.Entries),
			"slots_upserted":    len(result.Updated),
			"slots_deleted":     len(result.DeletedIDs),
		},
	})
}

// updateOneRequest is the body for POST /v1/timeslots/update-one.
type updateOneRequest struct {
	TableID   uint64 `json:"tableId" validate:"required"`
	Date      string `json:"date" validate:"required"`
	SlotIndex int    `json:"slotIndex" validate:"min=0,max=47"`
	IsOpen    bool   `json:"isOpen"`
}

// UpdateOne handles POST /v1/timeslots/update-one.  It upserts a
// single slot without the reconciler's delete pass, for operators
// toggling one interval rather than restating a schedule.
func (h *SlotHandler) UpdateOne(c echo.Context) error {
	var req updateOneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inputs"})
	}
	day, err := slotclock.NormalizeDay(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ctx := c.Request().Context()
	slot, err := h.Slots.Upsert(ctx, req.TableID, day, req.SlotIndex, req.IsOpen)
	if err != nil {
		c.Logger().Errorf("update-one upsert failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update time slot"})
	}

	middleware.InvalidateCache(ctx, h.Redis, h.CacheCfg.Prefix)

	return c.JSON(http.StatusOK, echo.Map{
		"message": "Time slot updated successfully",
		"slot":    slot,
	})
}

// parseQueryUint extracts a required positive integer query parameter.
func parseQueryUint(c echo.Context, name string) (uint64, bool) {
	v, err := strconv.ParseUint(c.QueryParam(name), 10, 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}
