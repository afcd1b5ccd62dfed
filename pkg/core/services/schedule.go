package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// NextScheduledShifts returns up to n occurrences of rule starting at or
// after from
func NextScheduledShifts(rule *rrule.RRule, from time.Time, n int) ([]time.Time, error) {
	if rule == nil {
		return nil, fmt.Errorf("no shiftSchedule configured")
	}
	if n <= 0 {
		return nil, nil
	}

	var out []time.Time
	next := rule.Iterator()
	for len(out) < n {
		t, ok := next()
		if !ok {
			break
		}
		if t.Before(from) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}
