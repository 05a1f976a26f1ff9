package availability

import (
	"context"
	"fmt"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	"github.com/iliyamo/restaurant-table-booking/internal/slotclock"
)

// TableAvailability lists the currently bookable slots of one table
// on one day.  A table with no open rows yields an empty (never nil)
// slice, not an error.
type TableAvailability struct {
	TableID         uint64 `json:"tableId"`
	TableName       string `json:"tableName"`
	Capacity        uint32 `json:"capacity"`
	OpenSlotIndices []int  `json:"openSlotIndices"`
}

// Reader derives per-table availability for a restaurant and day.
type Reader struct {
	tables *repository.TableRepo
	slots  *repository.SlotRepo
}

// NewReader constructs a Reader over the table directory and slot store.
func NewReader(tables *repository.TableRepo, slots *repository.SlotRepo) *Reader {
	return &Reader{tables: tables, slots: slots}
}

// assemble pairs every table with its open slot indices, preserving
// table order and substituting an empty list where no rows exist.
func assemble(tables []model.Table, open map[uint64][]int) []TableAvailability {
	result := make([]TableAvailability, 0, len(tables))
	for _, t := range tables {
		indices := open[t.ID]
		if indices == nil {
			indices = []int{}
		}
		result = append(result, TableAvailability{
			TableID:         t.ID,
			TableName:       t.Name,
			Capacity:        t.Capacity,
			OpenSlotIndices: indices,
		})
	}
	return result
}

// Read returns, for every table of the restaurant, the ascending list
// of open slot indices on the given day.
func (r *Reader) Read(ctx context.Context, restaurantID uint64, dayStr string) ([]TableAvailability, error) {
	day, err := slotclock.NormalizeDay(dayStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	tables, err := r.tables.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	tableIDs := make([]uint64, 0, len(tables))
	for _, t := range tables {
		tableIDs = append(tableIDs, t.ID)
	}
	open, err := r.slots.ListOpenForTables(ctx, tableIDs, day)
	if err != nil {
		return nil, fmt.Errorf("list open slots: %w", err)
	}
	return assemble(tables, open), nil
}
