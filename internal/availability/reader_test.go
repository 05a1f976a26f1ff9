package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
)

func TestAssemble(t *testing.T) {
	tables := []model.Table{
		{ID: 1, Name: "Window 1", Capacity: 2},
		{ID: 2, Name: "Patio 5", Capacity: 6},
		{ID: 3, Name: "Bar 2", Capacity: 4},
	}
	open := map[uint64][]int{
		1: {36, 37, 38},
		3: {24},
	}

	got := assemble(tables, open)
	require.Len(t, got, 3)

	assert.Equal(t, []int{36, 37, 38}, got[0].OpenSlotIndices)
	assert.Equal(t, "Window 1", got[0].TableName)
	assert.Equal(t, uint32(2), got[0].Capacity)

	// Table 2 has no open rows: empty list, not nil, not an error.
	assert.NotNil(t, got[1].OpenSlotIndices)
	assert.Empty(t, got[1].OpenSlotIndices)

	assert.Equal(t, []int{24}, got[2].OpenSlotIndices)
}

func TestAssembleNoTables(t *testing.T) {
	got := assemble(nil, map[uint64][]int{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
