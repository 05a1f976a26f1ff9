package repository // repository defines data access for table time slots

import (
	"context"      // context allows query cancellation and timeouts
	"database/sql" // sql provides DB primitives
	"strings"      // strings builds IN (...) placeholder lists
	"time"         // time carries normalized day keys

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

// SlotRepo provides persistence for time_slots rows.  It is pure
// storage: no business rules live here.  The unique key on
// (table_id, day, slot_index) is the only duplicate guard; callers
// never need to pre-check for existing rows.
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo constructs a SlotRepo with the given DB handle.
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// Upsert creates or updates the slot for (tableID, day, slotIndex)
// with the given open flag and returns the stored row.  On key
// conflict only is_open changes; the row identity is preserved.
func (r *SlotRepo) Upsert(ctx context.Context, tableID uint64, day time.Time, slotIndex int, isOpen bool) (*model.TimeSlot, error) {
	const ins = `INSERT INTO time_slots (table_id, day, slot_index, is_open)
	             VALUES (?, ?, ?, ?)
	             ON DUPLICATE KEY UPDATE is_open = VALUES(is_open)`
	if _, err := r.db.ExecContext(ctx, ins, tableID, day, slotIndex, isOpen); err != nil {
		return nil, err
	}
	// LastInsertId is unreliable on the duplicate-key path, so read
	// the row back by its natural key.
	const sel = `SELECT id, table_id, day, slot_index, is_open, created_at, updated_at
	             FROM time_slots
	             WHERE table_id = ? AND day = ? AND slot_index = ?`
	var s model.TimeSlot
	err := r.db.QueryRowContext(ctx, sel, tableID, day, slotIndex).
		Scan(&s.ID, &s.TableID, &s.Day, &s.SlotIndex, &s.IsOpen, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FindOpen returns the slots among the given indices that exist and
// are currently open for (tableID, day).  The result only certifies
// state at query time; the allocator's conditional close is the real
// concurrency gate.
func (r *SlotRepo) FindOpen(ctx context.Context, tableID uint64, day time.Time, indices []int) ([]model.TimeSlot, error) {
	if len(indices) == 0 {
		return nil, nil
	}
	query := `SELECT id, table_id, day, slot_index, is_open, created_at, updated_at
	          FROM time_slots
	          WHERE table_id = ? AND day = ? AND is_open = 1 AND slot_index IN (` +
		placeholders(len(indices)) + `) ORDER BY slot_index`
	args := make([]interface{}, 0, len(indices)+2)
	args = append(args, tableID, day)
	for _, idx := range indices {
		args = append(args, idx)
	}
	return r.querySlots(ctx, query, args...)
}

// ListForTableDay returns every stored slot row for (tableID, day)
// regardless of its open flag, ordered by slot index.
func (r *SlotRepo) ListForTableDay(ctx context.Context, tableID uint64, day time.Time) ([]model.TimeSlot, error) {
	const q = `SELECT id, table_id, day, slot_index, is_open, created_at, updated_at
	           FROM time_slots
	           WHERE table_id = ? AND day = ?
	           ORDER BY slot_index`
	return r.querySlots(ctx, q, tableID, day)
}

// ListForTables returns every stored slot row for the given tables on
// one day, ordered by table then slot index.
func (r *SlotRepo) ListForTables(ctx context.Context, tableIDs []uint64, day time.Time) ([]model.TimeSlot, error) {
	if len(tableIDs) == 0 {
		return nil, nil
	}
	query := `SELECT id, table_id, day, slot_index, is_open, created_at, updated_at
	          FROM time_slots
	          WHERE day = ? AND table_id IN (` + placeholders(len(tableIDs)) + `)
	          ORDER BY table_id, slot_index`
	args := make([]interface{}, 0, len(tableIDs)+1)
	args = append(args, day)
	for _, id := range tableIDs {
		args = append(args, id)
	}
	return r.querySlots(ctx, query, args...)
}

// ListOpenForTables returns, for each of the given tables, the
// ascending list of open slot indices on the given day.  Tables with
// no open rows are simply absent from the map.
func (r *SlotRepo) ListOpenForTables(ctx context.Context, tableIDs []uint64, day time.Time) (map[uint64][]int, error) {
	result := make(map[uint64][]int)
	if len(tableIDs) == 0 {
		return result, nil
	}
	query := `SELECT table_id, slot_index
	          FROM time_slots
	          WHERE day = ? AND is_open = 1 AND table_id IN (` + placeholders(len(tableIDs)) + `)
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
	for rows.Next() {
		var tableID uint64
		var slotIndex int
		if err := rows.Scan(&tableID, &slotIndex); err != nil {
			return nil, err
		}
		result[tableID] = append(result[tableID], slotIndex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteByIDs removes slot rows by primary key.  Used by the
// reconciler's delete pass; passing an empty slice is a no-op.
func (r *SlotRepo) DeleteByIDs(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	query := `DELETE FROM time_slots WHERE id IN (` + placeholders(len(ids)) + `)`
	args := make([]interface{}, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// CloseOpenTx flips the given slots of (tableID, day) to closed, but
// only where they are currently open, and returns the number of rows
// actually flipped.  Running inside the allocation transaction, the
// affected-row count is the compare-and-swap that decides whether a
// booking may proceed: fewer rows than requested means another writer
// got there first (or a slot was never open), and the caller must
// roll back.
func (r *SlotRepo) CloseOpenTx(ctx context.Context, tx *sql.Tx, tableID uint64, day time.Time, indices []int) (int64, error) {
	if len(indices) == 0 {
		return 0, nil
	}
	query := `UPDATE time_slots
	          SET is_open = 0
	          WHERE table_id = ? AND day = ? AND is_open = 1 AND slot_index IN (` +
		placeholders(len(indices)) + `)`
	args := make([]interface{}, 0, len(indices)+2)
	args = append(args, tableID, day)
	for _, idx := range indices {
		args = append(args, idx)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// querySlots runs a SELECT producing full time_slots rows and scans
// them into models.
func (r *SlotRepo) querySlots(ctx context.Context, query string, args ...interface{}) ([]model.TimeSlot, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.TimeSlot
	for rows.Next() {
		var s model.TimeSlot
		if err := rows.Scan(&s.ID, &s.TableID, &s.Day, &s.SlotIndex, &s.IsOpen, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// placeholders returns "?, ?, ..., ?" with n markers for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
