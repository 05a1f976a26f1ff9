package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-table-booking/internal/availability"
	"github.com/iliyamo/restaurant-table-booking/internal/config"
	"github.com/iliyamo/restaurant-table-booking/internal/middleware"
	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/queue"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	queue_publisher "github.com/iliyamo/restaurant-table-booking/internal/service"
	"github.com/iliyamo/restaurant-table-booking/internal/slotclock"
)

// BookingHandler serves booking creation and the read-side views:
// open availability, the full per-slot schedule, and the bookings
// listing.
type BookingHandler struct {
	Allocator *availability.Allocator
	Reader    *availability.Reader
	Tables    *repository.TableRepo
	Slots     *repository.SlotRepo
	Bookings  *repository.BookingRepo
	Redis     *redis.Client      // may be nil; cache invalidation degrades to no-op
	CacheCfg  config.CacheConfig // provides the cache key prefix
}

// NewBookingHandler constructs a BookingHandler with the provided dependencies.
func NewBookingHandler(
	allocator *availability.Allocator,
	reader *availability.Reader,
	tables *repository.TableRepo,
	slots *repository.SlotRepo,
	bookings *repository.BookingRepo,
	rdb *redis.Client,
	cacheCfg config.CacheConfig,
) *BookingHandler {
	if allocator == nil || reader == nil || tables == nil || slots == nil || bookings == nil {
		panic("nil dependency passed to NewBookingHandler")
	}
	return &BookingHandler{
		Allocator: allocator,
		Reader:    reader,
		Tables:    tables,
		Slots:     slots,
		Bookings:  bookings,
		Redis:     rdb,
		CacheCfg:  cacheCfg,
	}
}

// createBookingRequest is the body for POST /v1/bookings.
type createBookingRequest struct {
	RestaurantID  uint64  `json:"restaurantId" validate:"required"`
	TableID       uint64  `json:"tableId" validate:"required"`
	Date          string  `json:"date" validate:"required"`
	SlotIndices   []int   `json:"slotIndices" validate:"required,min=1"`
	CustomerName  string  `json:"customerName" validate:"required"`
	CustomerPhone *string `json:"customerPhone"`
}

// CreateBooking handles POST /v1/bookings.  It verifies the table
// belongs to the claimed restaurant, then hands the request to the
// allocator.  A slot conflict is a normal outcome, not a failure: the
// response is 200 with an explanatory message so clients can tell
// "taken" apart from "broken".  On success the availability cache is
// invalidated and a booking.created event is published in the
// background.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid inputs"})
	}

	ctx := c.Request().Context()
	table, err := h.Tables.GetByIDAndRestaurant(ctx, req.TableID, req.RestaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found for this restaurant"})
		}
		c.Logger().Errorf("table lookup failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	created, err := h.Allocator.Allocate(ctx, availability.BookingRequest{
		TableID:       req.TableID,
		Day:           req.Date,
		SlotIndices:   req.SlotIndices,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidRequest):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		case errors.Is(err, availability.ErrSlotsUnavailable):
			return c.JSON(http.StatusOK, echo.Map{"message": "One or more slots are already booked or unavailable"})
		default:
			c.Logger().Errorf("allocation failed: %v", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create booking"})
		}
	}

	middleware.InvalidateCache(ctx, h.Redis, h.CacheCfg.Prefix)

	indices := make([]int, 0, len(created))
	for _, b := range created {
		indices = append(indices, b.SlotIndex)
	}
	slotRange := slotclock.FormatRange(indices)
	event := queue.BookingCreatedEvent{
		GroupID:      created[0].GroupID,
		RestaurantID: req.RestaurantID,
		TableID:      table.ID,
		TableName:    table.Name,
		Day:          slotclock.DayString(created[0].Day),
		SlotIndices:  indices,
		SlotRange:    slotRange,
		CustomerName: created[0].CustomerName,
		CreatedAt:    created[0].CreatedAt.UTC().Format(time.RFC3339),
	}
	if created[0].CustomerPhone != nil {
		event.CustomerPhone = *created[0].CustomerPhone
	}
	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBookingCreated(pubCtx, event)
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"message":    "Booking successful",
		"group_id":   created[0].GroupID,
		"slot_range": slotRange,
		"bookings":   created,
	})
}

// GetAvailability handles GET /v1/availability?restaurantId=&date=.
// It returns, per table of the restaurant, the ascending open slot
// indices for the day.
func (h *BookingHandler) GetAvailability(c echo.Context) error {
	restaurantID, ok := parseQueryUint(c, "restaurantId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurantId is required"})
	}
	tables, err := h.Reader.Read(c.Request().Context(), restaurantID, c.QueryParam("date"))
	if err != nil {
		if errors.Is(err, availability.ErrInvalidRequest) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
		}
		c.Logger().Errorf("availability read failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load availability"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": tables})
}

// scheduleSlot is one stored slot in the schedule view, carrying the
// booking that closed it when one exists.
type scheduleSlot struct {
	SlotIndex int              `json:"slotIndex"`
	Time      string           `json:"time"`
	IsOpen    bool             `json:"isOpen"`
	Booking   *scheduleBooking `json:"booking,omitempty"`
}

// scheduleBooking is the customer info attached to a closed slot.
type scheduleBooking struct {
	GroupID       string  `json:"groupId"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
}

// scheduleTable groups one table's stored slots for the schedule view.
type scheduleTable struct {
	TableID   uint64         `json:"tableId"`
	TableName string         `json:"tableName"`
	Capacity  uint32         `json:"capacity"`
	TimeSlots []scheduleSlot `json:"timeSlots"`
}

// GetTimeSlots handles GET /v1/timeslots?restaurantId=&date=.  Unlike
// GetAvailability it returns every stored slot, open or closed, and
// pairs closed slots with the booking holding them, for the operator's
// schedule screen.
func (h *BookingHandler) GetTimeSlots(c echo.Context) error {
	restaurantID, ok := parseQueryUint(c, "restaurantId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurantId is required"})
	}
	day, err := slotclock.NormalizeDay(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ctx := c.Request().Context()
	tables, err := h.Tables.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		c.Logger().Errorf("table listing failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	tableIDs := make([]uint64, 0, len(tables))
	for _, t := range tables {
		tableIDs = append(tableIDs, t.ID)
	}
	slots, err := h.Slots.ListForTables(ctx, tableIDs, day)
	if err != nil {
		c.Logger().Errorf("slot listing failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bookings, err := h.Bookings.ListForTablesDay(ctx, tableIDs, day)
	if err != nil {
		c.Logger().Errorf("booking listing failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"date":   slotclock.DayString(day),
		"tables": buildSchedule(tables, slots, bookings),
	})
}

// buildSchedule merges stored slots and booking rows into the per-table
// schedule view.  Slots with no stored row are omitted, matching the
// sparse storage model: absent means never declared, not closed.
func buildSchedule(tables []model.Table, slots []model.TimeSlot, bookings []model.Booking) []scheduleTable {
	type key struct {
		tableID uint64
		slot    int
	}
	booked := make(map[key]*scheduleBooking, len(bookings))
	for i := range bookings {
		b := bookings[i]
		booked[key{b.TableID, b.SlotIndex}] = &scheduleBooking{
			GroupID:       b.GroupID,
			CustomerName:  b.CustomerName,
			CustomerPhone: b.CustomerPhone,
		}
	}
	byTable := make(map[uint64][]scheduleSlot, len(tables))
	for _, s := range slots {
		entry := scheduleSlot{
			SlotIndex: s.SlotIndex,
			Time:      slotclock.Format(s.SlotIndex),
			IsOpen:    s.IsOpen,
		}
		if !s.IsOpen {
			entry.Booking = booked[key{s.TableID, s.SlotIndex}]
		}
		byTable[s.TableID] = append(byTable[s.TableID], entry)
	}
	result := make([]scheduleTable, 0, len(tables))
	for _, t := range tables {
		timeSlots := byTable[t.ID]
		if timeSlots == nil {
			timeSlots = []scheduleSlot{}
		}
		result = append(result, scheduleTable{
			TableID:   t.ID,
			TableName: t.Name,
			Capacity:  t.Capacity,
			TimeSlots: timeSlots,
		})
	}
	return result
}

// bookingSummary is one reservation in the bookings listing: the rows
// of a group folded back into a single entry.
type bookingSummary struct {
	GroupID       string  `json:"groupId"`
	TableID       uint64  `json:"tableId"`
	TableName     string  `json:"tableName"`
	Capacity      uint32  `json:"capacity"`
	Date          string  `json:"date"`
	SlotIndices   []int   `json:"slotIndices"`
	SlotRange     string  `json:"slotRange"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
	CreatedAt     string  `json:"createdAt"`
}

// ListBookings handles GET /v1/bookings?restaurantId=.  Booking rows
// are stored per slot; this endpoint folds each group back into one
// reservation with its slot list and human-readable time range.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	restaurantID, ok := parseQueryUint(c, "restaurantId")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "restaurantId is required"})
	}
	rows, err := h.Bookings.ListByRestaurant(c.Request().Context(), restaurantID)
	if err != nil {
		c.Logger().Errorf("booking listing failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	summaries := summarizeBookings(rows)
	return c.JSON(http.StatusOK, echo.Map{
		"bookings":       summaries,
		"total_bookings": len(summaries),
	})
}

// summarizeBookings folds per-slot rows into per-group summaries.  The
// rows arrive ordered by day, group, slot, so groups are contiguous
// and a single pass suffices.
func summarizeBookings(rows []repository.BookingWithTable) []bookingSummary {
	summaries := make([]bookingSummary, 0)
	for _, row := range rows {
		if n := len(summaries); n > 0 && summaries[n-1].GroupID == row.GroupID {
			last := &summaries[n-1]
			last.SlotIndices = append(last.SlotIndices, row.SlotIndex)
			last.SlotRange = slotclock.FormatRange(last.SlotIndices)
			continue
		}
		summaries = append(summaries, bookingSummary{
			GroupID:       row.GroupID,
			TableID:       row.TableID,
			TableName:     row.TableName,
			Capacity:      row.Capacity,
			Date:          slotclock.DayString(row.Day),
			SlotIndices:   []int{row.SlotIndex},
			SlotRange:     slotclock.FormatRange([]int{row.SlotIndex}),
			CustomerName:  row.CustomerName,
			CustomerPhone: row.CustomerPhone,
			CreatedAt:     row.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return summaries
}
