package normalize

import (
	"math"
	"strings"
	"time"

	"github.com/jakechorley/shifttrack/pkg/core/model"
)

const (
	missingDate     = "---"
	closedEndLabel  = "Cerrado"
	defaultDuration = "00:00:00"
	unknownName     = "Sin nombre"
	unknownRole     = "Sin rol"
)

// closedStatuses are the status tokens that mean a shift has finished. Any
// other value, including ones introduced upstream later, reads as in progress.
var closedStatuses = map[string]bool{
	"cerrado":   true,
	"completed": true,
}

// IsClosedStatus reports whether a raw status string marks a finished shift
func IsClosedStatus(status string) bool {
	return closedStatuses[strings.ToLower(status)]
}

// ToShift maps one history record into a Shift, with times rendered in loc
func ToShift(rec Record, loc *time.Location) model.Shift {
	f := shiftFields

	startRaw, _ := f.Start.lookup(rec)
	endRaw, hasEnd := f.End.lookup(rec)

	status := f.Status.str(rec, "")
	closed := IsClosedStatus(status)

	name := f.UserName.str(rec, unknownName)

	shift := model.Shift{
		ID:           f.ID.str(rec, ""),
		UserID:       f.UserID.str(rec, ""),
		UserName:     name,
		UserRole:     f.UserRole.str(rec, unknownRole),
		UserEmail:    f.UserEmail.str(rec, ""),
		UserAvatar:   AvatarURL(name),
		Date:         f.Date.str(rec, missingDate),
		EndDate:      missingDate,
		RawDate:      toString(startRaw),
		StartTime:    FormatTime(startRaw, loc),
		Duration:     f.Duration.str(rec, defaultDuration),
		Seconds:      resolveSeconds(rec),
		Status:       status,
		IsInProgress: !closed,
		CommentStart: f.CommentStart.str(rec, ""),
		CommentEnd:   f.CommentEnd.str(rec, ""),
	}
	if start, ok := ParseTimestamp(startRaw, loc); ok {
		shift.StartAt = start
	}
	if hasEnd {
		shift.RawEndTime = toString(endRaw)
	}
	if shift.ID == "" {
		shift.ID = synthesizeShiftID(rec)
	}

	if closed {
		shift.EndDate = f.EndDate.str(rec, missingDate)
		// numeric or missing end values carry no readable time
		if _, numeric := toNumber(endRaw); !numeric {
			shift.EndTime = FormatTime(endRaw, loc)
		} else {
			shift.EndTime = closedEndLabel
		}
	}

	shift.Latitude = resolveCoord(f.Latitude, rec)
	shift.Longitude = resolveCoord(f.Longitude, rec)
	shift.LatitudeEnd = resolveCoord(f.LatitudeEnd, rec)
	shift.LongitudeEnd = resolveCoord(f.LongitudeEnd, rec)

	return shift
}

// ToShifts maps every record, preserving order
func ToShifts(records []Record, loc *time.Location) []model.Shift {
	shifts := make([]model.Shift, 0, len(records))
	for _, rec := range records {
		shifts = append(shifts, ToShift(rec, loc))
	}
	return shifts
}

func resolveSeconds(rec Record) int64 {
	v, ok := shiftFields.Seconds.lookup(rec)
	if !ok {
		return 0
	}
	n, ok := toNumber(v)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int64(n)
}

func resolveCoord(f field, rec Record) *float64 {
	v, ok := f.lookup(rec)
	if !ok {
		return nil
	}
	return ParseCoord(v)
}
