package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRequestNormalize(t *testing.T) {
	phone := "555-0101"
	base := BookingRequest{
		TableID:       1,
		Day:           "2024-07-01",
		SlotIndices:   []int{37, 36, 37},
		CustomerName:  "  Ana ",
		CustomerPhone: &phone,
	}

	t.Run("dedupes and sorts slots", func(t *testing.T) {
		req := base
		indices, day, err := req.normalize()
		require.NoError(t, err)
		assert.Equal(t, []int{36, 37}, indices)
		assert.True(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC).Equal(day))
	})

	t.Run("missing name", func(t *testing.T) {
		req := base
		req.CustomerName = "   "
		_, _, err := req.normalize()
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("missing table", func(t *testing.T) {
		req := base
		req.TableID = 0
		_, _, err := req.normalize()
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("empty slot list", func(t *testing.T) {
		req := base
		req.SlotIndices = nil
		_, _, err := req.normalize()
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("slot out of range", func(t *testing.T) {
		req := base
		req.SlotIndices = []int{36, 48}
		_, _, err := req.normalize()
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("bad day", func(t *testing.T) {
		req := base
		req.Day = "July 1st"
		_, _, err := req.normalize()
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})
}

func TestBuildBookingRows(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	phone := "555-0101"
	rows := buildBookingRows("group-1", 4, day, []int{36, 37}, "Ana", &phone)

	require.Len(t, rows, 2)
	for i, row := range rows {
		assert.Equal(t, "group-1", row.GroupID)
		assert.Equal(t, uint64(4), row.TableID)
		assert.True(t, day.Equal(row.Day))
		assert.Equal(t, "Ana", row.CustomerName)
		require.NotNil(t, row.CustomerPhone)
		assert.Equal(t, phone, *row.CustomerPhone)
		assert.Equal(t, []int{36, 37}[i], row.SlotIndex)
	}
}

func TestBuildBookingRowsNilPhone(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	rows := buildBookingRows("group-2", 4, day, []int{12}, "Ben", nil)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].CustomerPhone)
}
