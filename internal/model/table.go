package model

import "time"

// Table is a bookable resource owned by a restaurant.  Capacity is
// informational for callers choosing a table; the slot engine treats
// tables purely as identifiers.
//
// Fields:
//  ID           - primary key identifier.
//  RestaurantID - owning restaurant.
//  Name         - human-readable label ("Window 2", "Patio 5").
//  Capacity     - number of seats at the table.
//  CreatedAt    - timestamp when the record was created.
//  UpdatedAt    - timestamp when the record was last updated.
type Table struct {
	ID           uint64    // tables.id
	RestaurantID uint64    // tables.restaurant_id
	Name         string    // tables.name
	Capacity     uint32    // tables.capacity
	CreatedAt    time.Time // tables.created_at
	UpdatedAt    time.Time // tables.updated_at
}
