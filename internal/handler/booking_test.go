package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/restaurant-table-booking/internal/model"
	"github.com/iliyamo/restaurant-table-booking/internal/repository"
)

func TestBuildSchedule(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	tables := []model.Table{
		{ID: 1, Name: "Window 1", Capacity: 2},
		{ID: 2, Name: "Patio 3", Capacity: 6},
	}
	slots := []model.TimeSlot{
		{ID: 10, TableID: 1, Day: day, SlotIndex: 36, IsOpen: true},
		{ID: 11, TableID: 1, Day: day, SlotIndex: 37, IsOpen: false},
	}
	phone := "555-0101"
	bookings := []model.Booking{
		{GroupID: "g-1", TableID: 1, Day: day, SlotIndex: 37, CustomerName: "Ana", CustomerPhone: &phone},
	}

	result := buildSchedule(tables, slots, bookings)
	require.Len(t, result, 2)

	t.Run("closed slot carries its booking", func(t *testing.T) {
		first := result[0]
		assert.Equal(t, uint64(1), first.TableID)
		require.Len(t, first.TimeSlots, 2)

		open := first.TimeSlots[0]
		assert.Equal(t, 36, open.SlotIndex)
		assert.Equal(t, "6:00pm", open.Time)
		assert.True(t, open.IsOpen)
		assert.Nil(t, open.Booking)

		closed := first.TimeSlots[1]
		assert.Equal(t, 37, closed.SlotIndex)
		assert.False(t, closed.IsOpen)
		require.NotNil(t, closed.Booking)
		assert.Equal(t, "g-1", closed.Booking.GroupID)
		assert.Equal(t, "Ana", closed.Booking.CustomerName)
		require.NotNil(t, closed.Booking.CustomerPhone)
		assert.Equal(t, phone, *closed.Booking.CustomerPhone)
	})

	t.Run("table without rows gets empty list", func(t *testing.T) {
		second := result[1]
		assert.Equal(t, uint64(2), second.TableID)
		assert.NotNil(t, second.TimeSlots)
		assert.Empty(t, second.TimeSlots)
	})
}

func TestSummarizeBookings(t *testing.T) {
	day := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 6, 28, 12, 30, 0, 0, time.UTC)
	rows := []repository.BookingWithTable{
		{
			Booking:   model.Booking{GroupID: "g-1", TableID: 1, Day: day, SlotIndex: 36, CustomerName: "Ana", CreatedAt: created},
			TableName: "Window 1", Capacity: 2,
		},
		{
			Booking:   model.Booking{GroupID: "g-1", TableID: 1, Day: day, SlotIndex: 37, CustomerName: "Ana", CreatedAt: created},
			TableName: "Window 1", Capacity: 2,
		},
		{
			Booking:   model.Booking{GroupID: "g-2", TableID: 2, Day: day, SlotIndex: 24, CustomerName: "Ben", CreatedAt: created},
			TableName: "Patio 3", Capacity: 6,
		},
	}

	summaries := summarizeBookings(rows)
	require.Len(t, summaries, 2)

	first := summaries[0]
	assert.Equal(t, "g-1", first.GroupID)
	assert.Equal(t, "2024-07-01", first.Date)
	assert.Equal(t, []int{36, 37}, first.SlotIndices)
	assert.Equal(t, "6:00pm to 7:00pm", first.SlotRange)
	assert.Equal(t, "Window 1", first.TableName)
	assert.Equal(t, "2024-06-28T12:30:00Z", first.CreatedAt)

	second := summaries[1]
	assert.Equal(t, "g-2", second.GroupID)
	assert.Equal(t, []int{24}, second.SlotIndices)
	assert.Equal(t, "12:00pm to 12:30pm", second.SlotRange)
}

func TestSummarizeBookingsEmpty(t *testing.T) {
	summaries := summarizeBookings(nil)
	assert.NotNil(t, summaries)
	assert.Empty(t, summaries)
}
