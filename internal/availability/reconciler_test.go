package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

func TestBuildPlanCrossProduct(t *testing.T) {
	plan := buildPlan([]Entry{
		{TableIDs: []int64{1, 2}, Day: "2024-07-01", SlotIndices: []int{36, 37}, IsOpen: true},
	})

	require.Len(t, plan.ops, 4, "2 tables x 2 slots")
	require.Len(t, plan.scopes, 2, "one scope per (table, day)")
	assert.Len(t, plan.desired, 4)

	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	for _, op := range plan.ops {
		assert.True(t, day.Equal(op.Day))
		assert.True(t, op.IsOpen)
	}
	_, ok := plan.desired[slotKey(1, day, 36)]
	assert.True(t, ok)
	_, ok = plan.desired[slotKey(2, day, 37)]
	assert.True(t, ok)
}

func TestBuildPlanSkipsMalformedPairs(t *testing.T) {
	plan := buildPlan([]Entry{
		{TableIDs: []int64{1, -4, 0}, Day: "2024-07-01", SlotIndices: []int{10, 48, -1}, IsOpen: true},
	})

	// Only table 1 and slot 10 survive.
	require.Len(t, plan.ops, 1)
	assert.Equal(t, uint64(1), plan.ops[0].TableID)
	assert.Equal(t, 10, plan.ops[0].SlotIndex)
	assert.Len(t, plan.scopes, 1)
}

func TestBuildPlanRejectsEntryWithBadDay(t *testing.T) {
	plan := buildPlan([]Entry{
		{TableIDs: []int64{1}, Day: "not-a-day", SlotIndices: []int{10}, IsOpen: true},
		{TableIDs: []int64{2}, Day: "2024-07-01", SlotIndices: []int{11}, IsOpen: false},
	})

	require.Len(t, plan.ops, 1, "only the well-formed entry contributes")
	assert.Equal(t, uint64(2), plan.ops[0].TableID)
	assert.False(t, plan.ops[0].IsOpen)
}

func TestBuildPlanHonorsPerEntryOpenFlags(t *testing.T) {
	// Overlapping scope, different flags: both writes planned, scope
	// recorded once, and both keys are in the desired set so neither
	// would be swept by the delete pass.
	plan := buildPlan([]Entry{
		{TableIDs: []int64{5}, Day: "2024-07-01", SlotIndices: []int{10}, IsOpen: true},
		{TableIDs: []int64{5}, Day: "2024-07-01", SlotIndices: []int{11}, IsOpen: false},
	})

	require.Len(t, plan.ops, 2)
	assert.True(t, plan.ops[0].IsOpen)
	assert.False(t, plan.ops[1].IsOpen)
	assert.Len(t, plan.scopes, 1)
	assert.Len(t, plan.desired, 2)
}

func TestBuildPlanScopeCoversEntriesWithNoValidSlots(t *testing.T) {
	// A declared table whose slot list is entirely invalid still
	// claims its (table, day) scope: the delete pass will wipe every
	// stored slot for it, which is the full-replacement contract.
	plan := buildPlan([]Entry{
		{TableIDs: []int64{7}, Day: "2024-07-01", SlotIndices: []int{99}, IsOpen: true},
	})

	assert.Empty(t, plan.ops)
	assert.Empty(t, plan.desired)
	require.Len(t, plan.scopes, 1)
	assert.Equal(t, uint64(7), plan.scopes[0].TableID)
}

func TestBuildPlanIdempotent(t *testing.T) {
	entries := []Entry{
		{TableIDs: []int64{1}, Day: "2024-07-01", SlotIndices: []int{36, 37, 38}, IsOpen: true},
	}
	first := buildPlan(entries)
	second := buildPlan(entries)

	assert.Equal(t, first.ops, second.ops)
	assert.Equal(t, first.desired, second.desired)
	assert.Equal(t, first.scopes, second.scopes)
}

func TestSlotKeyMatchesStoredRows(t *testing.T) {
	// Keys computed from a plan and from a row loaded out of the
	// store must agree, or the delete pass would wipe declared slots.
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	stored := model.TimeSlot{TableID: 3, Day: day, SlotIndex: 12}

	plan := buildPlan([]Entry{
		{TableIDs: []int64{3}, Day: "2024-07-01T18:30:00Z", SlotIndices: []int{12}, IsOpen: true},
	})
	_, declared := plan.desired[slotKey(stored.TableID, stored.Day, stored.SlotIndex)]
	assert.True(t, declared)
}
