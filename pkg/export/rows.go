package export

import (
	"time"

	"github.com/jakechorley/shifttrack/pkg/core/model"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// IsValid reports whether f is a supported format
func (f Format) IsValid() bool {
	return f == FormatCSV || f == FormatXLSX
}

// Headers are the report columns, in order
var Headers = []string{
	"Employee", "Role", "Email", "Start Date", "Start Time",
	"End Date", "End Time", "Duration", "Seconds", "Status",
	"Start Comment", "End Comment", "Start Map Link", "End Map Link",
}

// secondsColumn is the only column written as a number
const secondsColumn = 8

// Filename returns the download name for a report generated on day
func Filename(day time.Time, format Format) string {
	return "Report_ShiftTrack_" + day.Format("2006-01-02") + "." + string(format)
}

// Row returns the report cells of one shift as native values: every cell
// is a string except Seconds, which is an int64
func Row(s model.Shift) []interface{} {
	return []interface{}{
		s.UserName,
		s.UserRole,
		s.UserEmail,
		s.Date,
		s.StartTime,
		s.EndDate,
		s.EndTime,
		s.Duration,
		s.Seconds,
		s.Status,
		s.CommentStart,
		s.CommentEnd,
		PointLink(s.Latitude, s.Longitude),
		PointLink(s.LatitudeEnd, s.LongitudeEnd),
	}
}

// Values returns the header row followed by one row per shift, the shape the
// Sheets API expects
func Values(shifts []model.Shift) [][]interface{} {
	values := make([][]interface{}, 0, len(shifts)+1)

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	values = append(values, header)

	for _, s := range shifts {
		values = append(values, Row(s))
	}
	return values
}
