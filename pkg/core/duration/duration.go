package duration

import (
	"fmt"
	"time"
)

// Result is the elapsed time of a shift
type Result struct {
	Seconds   int64
	Formatted string
}

// Between computes the wall-clock time from start to end, truncated to whole
// seconds. Formatted is "HH:MM:00": the seconds field is always rendered as
// "00" and hours are not capped at 24. Consumers that need precision read
// Seconds instead. Spans where end precedes start, which only happen when the
// clock moved backwards between check-in and check-out, are reported as zero
// rather than as a negative duration.
func Between(start, end time.Time) Result {
	millis := end.Sub(start).Milliseconds()
	if millis < 0 {
		millis = 0
	}
	total := millis / 1000

	hours := total / 3600
	minutes := (total % 3600) / 60

	return Result{
		Seconds:   total,
		Formatted: fmt.Sprintf("%02d:%02d:00", hours, minutes),
	}
}
