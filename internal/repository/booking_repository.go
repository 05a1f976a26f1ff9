package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// BookingRepo provides persistence for bookings.  Rows are inserted
// in batches by the allocator and never updated in place; reads serve
// the restaurant-facing listing endpoints.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// CreateBulkTx inserts one row per booking in a single statement
// within the provided transaction.  All rows of one allocation share
// their group_id and customer fields.  The caller must commit or roll
// back; IDs on the passed slice are not populated (read the group
// back with ListByGroupTx).  Passing an empty slice has no effect.
func (r *BookingRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, bookings []model.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	query := `INSERT INTO bookings (group_id, table_id, day, slot_index, customer_name, customer_phone) VALUES `
	args := make([]interface{}, 0, len(bookings)*6)
	for i, b := range bookings {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?, ?, ?)"
		args = append(args, b.GroupID, b.TableID, b.Day, b.SlotIndex, b.CustomerName, b.CustomerPhone)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ListByGroupTx reads back all rows of one allocation group inside
// the transaction that created them, ordered by slot index.
func (r *BookingRepo) ListByGroupTx(ctx context.Context, tx *sql.Tx, groupID string) ([]model.Booking, error) {
	const q = `SELECT id, group_id, table_id, day, slot_index, customer_name, customer_phone, created_at
	           FROM bookings
	           WHERE group_id = ?
	           ORDER BY slot_index`
	rows, err := tx.QueryContext(ctx, q, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListForTableDay returns all booking rows for one table on one day,
// ordered by slot index.  Used to attach customer details to closed
// slots in the schedule view.
func (r *BookingRepo) ListForTableDay(ctx context.Context, tableID uint64, day time.Time) ([]model.Booking, error) {
	const q = `SELECT id, group_id, table_id, day, slot_index, customer_name, customer_phone, created_at
	           FROM bookings
	           WHERE table_id = ? AND day = ?
	           ORDER BY slot_index`
	rows, err := r.db.QueryContext(ctx, q, tableID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListForTablesDay returns all booking rows for the given tables on
// one day, ordered by table then slot index.  Used by the schedule
// view to pair closed slots with the customers holding them.
func (r *BookingRepo) ListForTablesDay(ctx context.Context, tableIDs []uint64, day time.Time) ([]model.Booking, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}
	query := `SELECT id, group_id, table_id, day, slot_index, customer_name, customer_phone, created_at
	          FROM bookings
	          WHERE day = ? AND table_id IN (` + placeholders(len(tableIDs)) + `)
	          ORDER BY table_id, slot_index`
	args := make([]interface{}, 0, len(tableIDs)+1)
	args = append(args, day)
	for _, id := range tableIDs {
		args = append(args, id)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// BookingWithTable is a booking row joined with its table's display
// fields, as returned by ListByRestaurant for the bookings listing.
type BookingWithTable struct {
	model.Booking
	TableName string // tables.name
	Capacity  uint32 // tables.capacity
}

// ListByRestaurant returns every booking row for the restaurant's
// tables, joined with table name and capacity, ordered by day, then
// group, then slot index so callers can reassemble multi-slot
// reservations by walking the rows in order.
func (r *BookingRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]BookingWithTable, error) {
	const q = `SELECT b.id, b.group_id, b.table_id, b.day, b.slot_index,
	                  b.customer_name, b.customer_phone, b.created_at,
	                  t.name, t.capacity
	           FROM bookings b
	           JOIN tables t ON t.id = b.table_id
	           WHERE t.restaurant_id = ?
	           ORDER BY b.day, b.group_id, b.slot_index`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []BookingWithTable
	for rows.Next() {
		var b BookingWithTable
		var phone sql.NullString
		if err := rows.Scan(
			&b.ID, &b.GroupID, &b.TableID, &b.Day, &b.SlotIndex,
			&b.CustomerName, &phone, &b.CreatedAt,
			&b.TableName, &b.Capacity,
		); err != nil {
			return nil, err
		}
		if phone.Valid {
			p := phone.String
			b.CustomerPhone = &p
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanBookings(rows *sql.Rows) ([]model.Booking, error) {
	var result []model.Booking
	for rows.Next() {
		var b model.Booking
		var phone sql.NullString
		if err := rows.Scan(&b.ID, &b.GroupID, &b.TableID, &b.Day, &b.SlotIndex, &b.CustomerName, &phone, &b.CreatedAt); err != nil {
			return nil, err
		}
		if phone.Valid {
			p := phone.String
			b.CustomerPhone = &p
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
