// Package availability implements the time-slot engine: desired-state
// reconciliation of slot openings, atomic booking allocation, and the
// per-table availability read model.  Handlers own the HTTP shapes;
// this package owns the semantics.
package availability

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
	"github.com/iliyamo/restaurant-table-booking/internal/slotclock"
)

// Entry is one desired-state declaration: these slots, for these
// tables, on this day, are open (or closed).  A batch may contain
// many entries, possibly touching overlapping tables and days with
// different open flags.
type Entry struct {
	TableIDs    []int64 `json:"tableIds"`
	Day         string  `json:"day"`
	SlotIndices []int   `json:"slotIndices"`
	IsOpen      bool    `json:"isOpen"`
}

// ReconcileResult reports what a reconciliation batch did: the rows
// it upserted and the ids of stale rows it removed.
type ReconcileResult struct {
	Updated    []model.TimeSlot `json:"updated"`
	DeletedIDs []uint64         `json:"deleted_ids"`
}

// Reconciler applies desired-state batches to the slot store.
//
// Reconciliation is full replacement scoped to (table, day): after a
// batch, the stored slots for every (table, day) pair the batch
// touched are exactly the keys the batch declared.  Any previously
// stored slot for a touched pair that the batch did not mention is
// deleted, regardless of either row's open flag.  Callers that want
// to keep a slot must re-send it in every batch that touches its
// (table, day) scope.
type Reconciler struct {
	slots *repository.SlotRepo
}

// NewReconciler constructs a Reconciler over the given slot store.
func NewReconciler(slots *repository.SlotRepo) *Reconciler {
	return &Reconciler{slots: slots}
}

// upsertOp is one (table, day, slot) write planned from a batch.
type upsertOp struct {
	TableID   uint64
	Day       time.Time
	SlotIndex int
	IsOpen    bool
}

// scopePair identifies one (table, day) whose stored state the batch
// claims authority over.
type scopePair struct {
	TableID uint64
	Day     time.Time
}

// reconcilePlan is the expansion of a batch: the writes to attempt,
// the set of declared keys, and the scopes to sweep afterwards.
type reconcilePlan struct {
	ops     []upsertOp
	desired map[string]struct{}
	scopes  []scopePair
}

// slotKey builds the identity string used for desired-set membership.
func slotKey(tableID uint64, day time.Time, slotIndex int) string {
	return fmt.Sprintf("%d|%s|%d", tableID, slotclock.DayString(day), slotIndex)
}

// buildPlan expands every entry's tableIds x slotIndices cross
// product into upsert operations and records the declared keys and
// touched scopes.  Malformed pairs (non-positive table id, slot index
// outside 0-47) are logged and skipped without failing the batch; an
// entry whose day cannot be parsed is rejected as a whole, again
// without failing the batch.
func buildPlan(entries []Entry) reconcilePlan {
	plan := reconcilePlan{desired: make(map[string]struct{})}
	seenScope := make(map[string]struct{})

	for _, entry := range entries {
		day, err := slotclock.NormalizeDay(entry.Day)
		if err != nil {
			log.Printf("reconcile: skipping entry with invalid day %q: %v", entry.Day, err)
			continue
		}
		for _, rawTableID := range entry.TableIDs {
			if rawTableID <= 0 {
				log.Printf("reconcile: skipping invalid table id %d", rawTableID)
				continue
			}
			tableID := uint64(rawTableID)

			scopeKey := fmt.Sprintf("%d|%s", tableID, slotclock.DayString(day))
			if _, ok := seenScope[scopeKey]; !ok {
				seenScope[scopeKey] = struct{}{}
				plan.scopes = append(plan.scopes, scopePair{TableID: tableID, Day: day})
			}

			for _, slotIndex := range entry.SlotIndices {
				if !slotclock.Valid(slotIndex) {
					log.Printf("reconcile: skipping invalid slot index %d for table %d", slotIndex, tableID)
					continue
				}
				plan.ops = append(plan.ops, upsertOp{
					TableID:   tableID,
					Day:       day,
					SlotIndex: slotIndex,
					IsOpen:    entry.IsOpen,
				})
				plan.desired[slotKey(tableID, day, slotIndex)] = struct{}{}
			}
		}
	}
	return plan
}

// Reconcile applies a batch of desired-state entries.
//
// Phase one upserts every declared (table, day, slot) with its
// entry's open flag.  A failed upsert is logged and absorbed; the
// batch continues and the delete pass runs with whatever desired-set
// was accumulated.  Phase two runs strictly after all upserts: for
// each touched (table, day), every stored row whose key the batch did
// not declare is deleted.  The delete pass is blind to is_open on
// both sides; only declared-vs-undeclared membership matters.
func (r *Reconciler) Reconcile(ctx context.Context, entries []Entry) (*ReconcileResult, error) {
	plan := buildPlan(entries)
	result := &ReconcileResult{
		Updated:    make([]model.TimeSlot, 0, len(plan.ops)),
		DeletedIDs: make([]uint64, 0),
	}

	for _, op := range plan.ops {
		slot, err := r.slots.Upsert(ctx, op.TableID, op.Day, op.SlotIndex, op.IsOpen)
		if err != nil {
			log.Printf("reconcile: upsert failed for table=%d day=%s slot=%d: %v",
				op.TableID, slotclock.DayString(op.Day), op.SlotIndex, err)
			continue
		}
		result.Updated = append(result.Updated, *slot)
	}

	var staleIDs []uint64
	for _, scope := range plan.scopes {
		stored, err := r.slots.ListForTableDay(ctx, scope.TableID, scope.Day)
		if err != nil {
			return nil, fmt.Errorf("list slots for table %d: %w", scope.TableID, err)
		}
		for _, slot := range stored {
			if _, declared := plan.desired[slotKey(slot.TableID, slot.Day, slot.SlotIndex)]; !declared {
				staleIDs = append(staleIDs, slot.ID)
			}
		}
	}
	if len(staleIDs) > 0 {
		if err := r.slots.DeleteByIDs(ctx, staleIDs); err != nil {
			return nil, fmt.Errorf("delete stale slots: %w", err)
		}
		result.DeletedIDs = staleIDs
	}
	return result, nil
}
