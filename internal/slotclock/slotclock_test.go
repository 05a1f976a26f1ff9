package slotclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRoundTrip(t *testing.T) {
	for idx := 0; idx < SlotsPerDay; idx++ {
		hour, minute := Time(idx)
		assert.Equal(t, idx, FromTime(hour, minute), "slot %d should round-trip", idx)
	}
}

func TestFormat(t *testing.T) {
	cases := map[int]string{
		0:  "12:00am",
		1:  "12:30am",
		16: "8:00am",
		24: "12:00pm",
		25: "12:30pm",
		36: "6:00pm",
		47: "11:30pm",
	}
	for idx, want := range cases {
		assert.Equal(t, want, Format(idx))
	}
}

func TestNormalizeDay(t *testing.T) {
	t.Run("same day in different literals", func(t *testing.T) {
		want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
		for _, in := range []string{
			"2024-06-01",
			"2024-06-01T00:00:00Z",
			"2024-06-01T14:30:00Z",
			"2024-06-01T23:59:00+05:00", // 18:59 UTC, still June 1st
			"2024-06-01T10:15:00",
		} {
			got, err := NormalizeDay(in)
			require.NoError(t, err, "input %q", in)
			assert.True(t, want.Equal(got), "input %q normalized to %v", in, got)
		}
	})

	t.Run("offset crossing the UTC date boundary", func(t *testing.T) {
		// 01:30+05:00 is 20:30 UTC the previous day.
		got, err := NormalizeDay("2024-06-02T01:30:00+05:00")
		require.NoError(t, err)
		assert.True(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC).Equal(got))
	})

	t.Run("invalid input", func(t *testing.T) {
		for _, in := range []string{"", "yesterday", "06/01/2024"} {
			_, err := NormalizeDay(in)
			assert.Error(t, err, "input %q", in)
		}
	})
}

func TestFormatRange(t *testing.T) {
	t.Run("contiguous run", func(t *testing.T) {
		assert.Equal(t, "6:00pm to 7:30pm", FormatRange([]int{36, 37, 38}))
	})

	t.Run("contiguous run out of order", func(t *testing.T) {
		assert.Equal(t, "6:00pm to 7:30pm", FormatRange([]int{38, 36, 37}))
	})

	t.Run("single slot", func(t *testing.T) {
		assert.Equal(t, "12:00pm to 12:30pm", FormatRange([]int{24}))
	})

	t.Run("run ending at midnight wraps", func(t *testing.T) {
		assert.Equal(t, "11:00pm to 12:00am", FormatRange([]int{46, 47}))
	})

	t.Run("non-contiguous list", func(t *testing.T) {
		assert.Equal(t, "8:00am, 12:00pm, 6:00pm", FormatRange([]int{36, 16, 24}))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", FormatRange(nil))
	})
}
