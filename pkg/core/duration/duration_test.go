package duration

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBetween_TruncatesSecondsField(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 12, 34, 56, 0, time.UTC)

	result := Between(start, end)

	assert.Equal(t, int64(9296), result.Seconds)
	assert.Equal(t, "02:34:00", result.Formatted)
}

func TestBetween_DropsSubSecondRemainder(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(59*time.Second + 999*time.Millisecond)

	result := Between(start, end)

	assert.Equal(t, int64(59), result.Seconds)
	assert.Equal(t, "00:00:00", result.Formatted)
}

func TestBetween_HoursNotCapped(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(30*time.Hour + 15*time.Minute)

	result := Between(start, end)

	assert.Equal(t, "30:15:00", result.Formatted)
	assert.Equal(t, int64(30*3600+15*60), result.Seconds)
}

func TestBetween_EndBeforeStart(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	result := Between(start, start.Add(-time.Minute))

	assert.Equal(t, int64(0), result.Seconds)
	assert.Equal(t, "00:00:00", result.Formatted)
}

func TestBetween_IgnoresZoneOfInputs(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	start := time.Date(2024, 1, 1, 5, 0, 0, 0, ny)
	end := time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC)

	result := Between(start, end)

	assert.Equal(t, "01:30:00", result.Formatted)
}
