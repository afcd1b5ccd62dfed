package normalize

import (
	"encoding/json"
	"regexp"
	"time"
)

var (
	shortClockPattern = regexp.MustCompile(`^\d{2}:\d{2}`)
	anyClockPattern   = regexp.MustCompile(`\d{2}:\d{2}`)
)

// zonedLayouts carry their own offset
var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	time.RFC1123Z,
	time.RFC1123,
	"Mon Jan 02 2006 15:04:05 GMT-0700",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05 -0700",
}

// wallClockLayouts have no offset and are read as wall-clock time in the
// display zone
var wallClockLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseTimestamp interprets a raw timestamp value. Numbers are epoch
// milliseconds; strings are tried against ISO 8601 and RFC layouts. A bare
// date is midnight UTC.
func ParseTimestamp(v any, loc *time.Location) (time.Time, bool) {
	switch val := v.(type) {
	case nil:
		return time.Time{}, false
	case json.Number, float64, int, int64:
		ms, ok := toNumber(val)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(int64(ms)).UTC(), true
	case string:
		return parseTimestampString(val, loc)
	case time.Time:
		return val, true
	}
	return time.Time{}, false
}

func parseTimestampString(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// FormatTime renders a raw start/end value as "HH:MM" in loc. Values that
// already look like a short clock reading are truncated to five characters;
// parseable timestamps are converted to the zone; anything else yields the
// first HH:MM substring found, or "".
func FormatTime(v any, loc *time.Location) string {
	if !IsTruthy(v) {
		return ""
	}
	if s, ok := v.(string); ok {
		if s == "0" {
			return ""
		}
		if shortClockPattern.MatchString(s) && len(s) < 10 {
			return s[:5]
		}
	}

	if t, ok := ParseTimestamp(v, loc); ok {
		return t.In(loc).Format("15:04")
	}

	return anyClockPattern.FindString(toString(v))
}
