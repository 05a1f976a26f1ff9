package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// ErrTableNotFound is returned when a table lookup yields no rows.
var ErrTableNotFound = errors.New("table not found")

// TableRepo is the table directory: read access to the tables owned
// by a restaurant.  Table content management lives in the surrounding
// CRUD layer; the slot engine only ever reads here.
type TableRepo struct {
	db *sql.DB
}

// NewTableRepo constructs a TableRepo with the given DB handle.
func NewTableRepo(db *sql.DB) *TableRepo {
	return &TableRepo{db: db}
}

// GetByIDAndRestaurant retrieves a table by id, verifying it belongs
// to the given restaurant.  Returns ErrTableNotFound when it does not
// exist or is owned elsewhere.
func (r *TableRepo) GetByIDAndRestaurant(ctx context.Context, id, restaurantID uint64) (*model.Table, error) {
	const q = `SELECT id, restaurant_id, name, capacity, created_at, updated_at
	           FROM tables
	           WHERE id = ? AND restaurant_id = ?`
	var t model.Table
	err := r.db.QueryRowContext(ctx, q, id, restaurantID).
		Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Capacity, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByRestaurant retrieves all tables of a restaurant ordered by id.
func (r *TableRepo) ListByRestaurant(ctx context.Context, restaurantID uint64) ([]model.Table, error) {
	const q = `SELECT id, restaurant_id, name, capacity, created_at, updated_at
	           FROM tables
	           WHERE restaurant_id = ?
	           ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Table
	for rows.Next() {
		var t model.Table
		if err := rows.Scan(&t.ID, &t.RestaurantID, &t.Name, &t.Capacity, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
