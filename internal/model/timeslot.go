package model

import "time"

// TimeSlot is the canonical availability record for one 30-minute
// interval of one table on one calendar day.  SlotIndex runs from 0
// (12:00am) to 47 (11:30pm).  Day is always stored at UTC midnight;
// two requests describing the same calendar day must resolve to the
// same Day value.
//
// The absence of a row means "not bookable".  An explicit row with
// IsOpen=false also means "not bookable" but persists, which matters
// to the reconciler's delete pass.  At most one row may exist per
// (TableID, Day, SlotIndex); the database enforces this with a unique
// key so concurrent writers cannot create duplicates.
//
// Fields:
//  ID        - primary key identifier.
//  TableID   - table this slot belongs to.
//  Day       - calendar day at UTC midnight.
//  SlotIndex - 30-minute interval within the day, 0-47.
//  IsOpen    - whether the slot can currently be booked.
//  CreatedAt - timestamp when the record was created.
//  UpdatedAt - timestamp when the record was last updated.
type TimeSlot struct {
	ID        uint64    `json:"id"`         // time_slots.id
	TableID   uint64    `json:"table_id"`   // time_slots.table_id
	Day       time.Time `json:"day"`        // time_slots.day
	SlotIndex int       `json:"slot_index"` // time_slots.slot_index
	IsOpen    bool      `json:"is_open"`    // time_slots.is_open
	CreatedAt time.Time `json:"created_at"` // time_slots.created_at
	UpdatedAt time.Time `json:"updated_at"` // time_slots.updated_at
}
