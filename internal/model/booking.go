package model

import "time"

// Booking is one committed reservation slot.  A customer reserving k
// slots produces k rows that share the same GroupID and customer
// fields, each pinned to a single SlotIndex.  Rows are created only
// by the allocator, always as a batch inside one transaction, and are
// never updated in place; cancellation is a deletion handled by the
// surrounding CRUD layer.
//
// A unique key on (TableID, Day, SlotIndex) backs up the allocator's
// conditional slot close: even if two requests raced past every other
// guard, only one could insert rows for a given slot.
//
// Fields:
//  ID            - primary key identifier.
//  GroupID       - UUID shared by all rows of one allocation call.
//  TableID       - table being reserved.
//  Day           - calendar day at UTC midnight.
//  SlotIndex     - reserved 30-minute interval, 0-47.
//  CustomerName  - name supplied by the caller.
//  CustomerPhone - optional contact number.
//  CreatedAt     - timestamp when the record was created.
type Booking struct {
	ID            uint64    `json:"id"`                       // bookings.id
	GroupID       string    `json:"group_id"`                 // bookings.group_id
	TableID       uint64    `json:"table_id"`                 // bookings.table_id
	Day           time.Time `json:"day"`                      // bookings.day
	SlotIndex     int       `json:"slot_index"`               // bookings.slot_index
	CustomerName  string    `json:"customer_name"`            // bookings.customer_name
	CustomerPhone *string   `json:"customer_phone,omitempty"` // bookings.customer_phone (nullable)
	CreatedAt     time.Time `json:"created_at"`               // bookings.created_at
}
