package model

import "time"

// Restaurant is the owning entity for bookable tables.  The slot
// engine never mutates restaurants; they exist so that availability
// queries can be scoped to one venue.
//
// Fields:
//  ID        - primary key identifier.
//  Name      - display name of the venue.
//  CreatedAt - timestamp when the record was created.
//  UpdatedAt - timestamp when the record was last updated.
type Restaurant struct {
	ID        uint64    // restaurants.id
	Name      string    // restaurants.name
	CreatedAt time.Time // restaurants.created_at
	UpdatedAt time.Time // restaurants.updated_at
}
