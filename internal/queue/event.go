// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published when an allocation commits.  It
// carries enough information for downstream consumers to log, notify,
// or trigger analytics without querying the primary database.
type BookingCreatedEvent struct {
	GroupID       string `json:"group_id"`
	RestaurantID  uint64 `json:"restaurant_id"`
	TableID       uint64 `json:"table_id"`
	TableName     string `json:"table_name"`
	Day           string `json:"day"`
	SlotIndices   []int  `json:"slot_indices"`
	SlotRange     string `json:"slot_range"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	CreatedAt     string `json:"created_at"`
}
