package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	"github.com/iliyamo/restaurant-table-booking/internal/slotclock"
)

// ErrSlotsUnavailable is returned when one or more requested slots
// are not open at allocation time.  It is a recoverable, user-facing
// condition, not an internal failure; handlers translate it into an
// "already booked" result rather than an error status.
var ErrSlotsUnavailable = errors.New("one or more slots are already booked or unavailable")

// ErrInvalidRequest wraps validation failures of a booking request.
// Unlike reconciliation, which skips bad items, a bad allocation
// request aborts the whole call.
var ErrInvalidRequest = errors.New("invalid booking request")

// BookingRequest is a customer's claim on a set of slots for one
// table and day.  The slots need not be contiguous.  Verifying that
// the table belongs to the caller's restaurant is the HTTP layer's
// job; the engine treats the table as a bare identifier.
type BookingRequest struct {
	TableID       uint64  `json:"tableId"`
	Day           string  `json:"day"`
	SlotIndices   []int   `json:"slotIndices"`
	CustomerName  string  `json:"customerName"`
	CustomerPhone *string `json:"customerPhone,omitempty"`
}

// normalize validates the request and returns the deduplicated,
// ascending slot list together with the canonical day key.
func (req *BookingRequest) normalize() ([]int, time.Time, error) {
	if req.TableID == 0 {
		return nil, time.Time{}, fmt.Errorf("%w: table id is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, time.Time{}, fmt.Errorf("%w: customer name is required", ErrInvalidRequest)
	}
	if len(req.SlotIndices) == 0 {
		return nil, time.Time{}, fmt.Errorf("%w: at least one slot index is required", ErrInvalidRequest)
	}
	seen := make(map[int]struct{}, len(req.SlotIndices))
	indices := make([]int, 0, len(req.SlotIndices))
	for _, idx := range req.SlotIndices {
		if !slotclock.Valid(idx) {
			return nil, time.Time{}, fmt.Errorf("%w: slot index %d out of range", ErrInvalidRequest, idx)
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	day, err := slotclock.NormalizeDay(req.Day)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	return indices, day, nil
}

// buildBookingRows produces one booking row per slot, all sharing the
// group id and customer fields.
func buildBookingRows(groupID string, tableID uint64, day time.Time, indices []int, name string, phone *string) []model.Booking {
	rows := make([]model.Booking, 0, len(indices))
	for _, idx := range indices {
		rows = append(rows, model.Booking{
			GroupID:       groupID,
			TableID:       tableID,
			Day:           day,
			SlotIndex:     idx,
			CustomerName:  name,
			CustomerPhone: phone,
		})
	}
	return rows
}

// Allocator converts open slots into committed bookings.  The store
// handles are injected explicitly; the allocator holds no global
// state.
type Allocator struct {
	db       *sql.DB
	slots    *repository.SlotRepo
	bookings *repository.BookingRepo
}

// NewAllocator constructs an Allocator.  All dependencies must be
// non-nil.
func NewAllocator(db *sql.DB, slots *repository.SlotRepo, bookings *repository.BookingRepo) *Allocator {
	if db == nil || slots == nil || bookings == nil {
		panic("nil dependency passed to NewAllocator")
	}
	return &Allocator{db: db, slots: slots, bookings: bookings}
}

// Allocate claims the requested slots for the customer.  Within a
// single transaction it flips the slots to closed where still open
// and, only if every requested slot was flipped, inserts one booking
// row per slot under a fresh group id.  The conditional update's
// affected-row count is the concurrency arbiter: of two racing
// requests for the same slot, exactly one sees the row flip and
// commits; the other rolls back with ErrSlotsUnavailable.  Slots
// close and bookings appear atomically, so no state in which a
// booking exists for an open slot is ever visible.
//
// Returns the created rows, ErrSlotsUnavailable on conflict, or
// ErrInvalidRequest on malformed input.
func (a *Allocator) Allocate(ctx context.Context, req BookingRequest) ([]model.Booking, error) {
	indices, day, err := req.normalize()
	if err != nil {
		return nil, err
	}

	// Advisory fast-fail before opening a transaction.  This only
	// certifies state at query time; the conditional close below is
	// the real arbiter.
	open, err := a.slots.FindOpen(ctx, req.TableID, day, indices)
	if err != nil {
		return nil, fmt.Errorf("check open slots: %w", err)
	}
	if len(open) != len(indices) {
		return nil, ErrSlotsUnavailable
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin allocation: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	closed, err := a.slots.CloseOpenTx(ctx, tx, req.TableID, day, indices)
	if err != nil {
		return nil, fmt.Errorf("close slots: %w", err)
	}
	if closed != int64(len(indices)) {
		return nil, ErrSlotsUnavailable
	}

	groupID := uuid.NewString()
	rows := buildBookingRows(groupID, req.TableID, day, indices, strings.TrimSpace(req.CustomerName), req.CustomerPhone)
	if err := a.bookings.CreateBulkTx(ctx, tx, rows); err != nil {
		return nil, fmt.Errorf("create bookings: %w", err)
	}
	created, err := a.bookings.ListByGroupTx(ctx, tx, groupID)
	if err != nil {
		return nil, fmt.Errorf("read back bookings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit allocation: %w", err)
	}
	committed = true
	return created, nil
}
