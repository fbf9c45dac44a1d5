package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.Local)
}

func TestAdvance(t *testing.T) {
	clock := NewFakeClock(day(2024, 1, 1))
	tr := New(clock)

	assert.True(t, tr.Advance())
	assert.Equal(t, State{Count: 1, LastDate: "2024-01-01"}, tr.State())

	// Same day is a no-op
	assert.False(t, tr.Advance())
	assert.Equal(t, 1, tr.Count())

	clock.AddDays(1)
	assert.True(t, tr.Advance())
	assert.Equal(t, State{Count: 2, LastDate: "2024-01-02"}, tr.State())

	// A gap starts over at 1
	clock.AddDays(3)
	assert.True(t, tr.Advance())
	assert.Equal(t, State{Count: 1, LastDate: "2024-01-05"}, tr.State())
}

func TestRestore(t *testing.T) {
	t.Run("last completion yesterday keeps count", func(t *testing.T) {
		tr := New(NewFakeClock(day(2024, 1, 3)))
		count, reset := tr.Restore(3, "2024-01-02")
		assert.Equal(t, 3, count)
		assert.False(t, reset)

		tr.Advance()
		assert.Equal(t, 4, tr.Count())
	})

	t.Run("last completion today keeps count", func(t *testing.T) {
		tr := New(NewFakeClock(day(2024, 1, 3)))
		count, reset := tr.Restore(3, "2024-01-03")
		assert.Equal(t, 3, count)
		assert.False(t, reset)

		assert.False(t, tr.Advance())
		assert.Equal(t, 3, tr.Count())
	})

	t.Run("gap resets to zero", func(t *testing.T) {
		tr := New(NewFakeClock(day(2024, 1, 3)))
		count, reset := tr.Restore(3, "2024-01-01")
		assert.Equal(t, 0, count)
		assert.True(t, reset)
		assert.Equal(t, "2024-01-01", tr.LastDate())

		tr.Advance()
		assert.Equal(t, State{Count: 1, LastDate: "2024-01-03"}, tr.State())
	})

	t.Run("never completed", func(t *testing.T) {
		tr := New(NewFakeClock(day(2024, 1, 3)))
		count, reset := tr.Restore(0, "")
		assert.Equal(t, 0, count)
		assert.False(t, reset)
	})

	t.Run("negative count is clamped", func(t *testing.T) {
		tr := New(NewFakeClock(day(2024, 1, 3)))
		count, _ := tr.Restore(-4, "2024-01-03")
		assert.Equal(t, 0, count)
	})
}

func TestReset(t *testing.T) {
	tr := New(NewFakeClock(day(2024, 1, 3)))
	tr.Advance()
	tr.Reset()
	assert.Equal(t, State{}, tr.State())
}
