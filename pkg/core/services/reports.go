package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/pkg/clients/webhookclient"
	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/core/normalize"
	"github.com/jakechorley/shifttrack/pkg/export"
	"github.com/jakechorley/shifttrack/pkg/metrics"
	"github.com/jakechorley/shifttrack/pkg/session"
)

const reportTabPrefix = "ShiftTrack "

// ReportPublisher writes report rows to a spreadsheet tab
type ReportPublisher interface {
	PublishReport(spreadsheetID, title string, values [][]interface{}) error
}

// FetchReports loads the shift history visible to the signed-in user, newest
// first. Any failure is logged and yields an empty list.
func FetchReports(ctx context.Context, client WebhookPoster, sess *session.Session, loc *time.Location, m *metrics.WebhookMetrics, logger *zap.Logger) []model.Shift {
	var userID, email, role string
	if u := sess.User(); u != nil {
		userID, email, role = u.ID, u.Email, u.Role
	}

	resp, err := client.Post(ctx, webhookclient.History, map[string]any{
		"request":      "get_all",
		"id_subcuenta": sess.SubaccountID(),
		"user_id":      userID,
		"email":        email,
		"role":         role,
	})
	if err != nil {
		logger.Warn("Failed to fetch shift history", zap.Error(err))
		m.ReadFailure(string(webhookclient.History))
		return []model.Shift{}
	}

	shifts := normalize.ToShifts(normalize.NormalizeList(resp.Body), loc)
	SortShifts(shifts, loc)

	logger.Debug("Fetched shift history", zap.Int("count", len(shifts)))
	return shifts
}

// SortShifts orders shifts newest first by their start instant. Shifts whose
// start cannot be parsed go last, keeping their relative order.
func SortShifts(shifts []model.Shift, loc *time.Location) {
	type keyed struct {
		shift  model.Shift
		start  time.Time
		parsed bool
	}
	items := make([]keyed, len(shifts))
	for i, s := range shifts {
		t, ok := startInstant(s, loc)
		items[i] = keyed{shift: s, start: t, parsed: ok}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].parsed != items[j].parsed {
			return items[i].parsed
		}
		return items[i].start.After(items[j].start)
	})

	for i := range items {
		shifts[i] = items[i].shift
	}
}

// FilterShifts keeps the shifts matching every part of filter. The date
// range is compared on calendar days in loc; shifts without a readable start
// are never excluded by it.
func FilterShifts(shifts []model.Shift, filter model.ReportFilter, loc *time.Location) []model.Shift {
	search := strings.ToLower(filter.Search)
	from := civilDay(filter.From, loc)
	to := civilDay(filter.To, loc)

	out := make([]model.Shift, 0, len(shifts))
	for _, s := range shifts {
		if search != "" && !strings.Contains(strings.ToLower(s.UserName), search) {
			continue
		}

		switch filter.Status {
		case model.StatusActive:
			if !s.IsInProgress {
				continue
			}
		case model.StatusCompleted:
			if s.IsInProgress {
				continue
			}
		}

		if start, ok := startInstant(s, loc); ok {
			day := civilDay(start, loc)
			if from != "" && day < from {
				continue
			}
			if to != "" && day > to {
				continue
			}
		}

		out = append(out, s)
	}
	return out
}

// startInstant prefers the instant resolved at normalisation, which covers
// epoch-millisecond starts, and falls back to parsing RawDate
func startInstant(s model.Shift, loc *time.Location) (time.Time, bool) {
	if !s.StartAt.IsZero() {
		return s.StartAt, true
	}
	return normalize.ParseTimestamp(s.RawDate, loc)
}

// civilDay renders t as YYYY-MM-DD in loc so days compare as strings
func civilDay(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("2006-01-02")
}

// ExportReport writes shifts to w in the given format
func ExportReport(w io.Writer, format export.Format, shifts []model.Shift, logger *zap.Logger) error {
	if len(shifts) == 0 {
		return fmt.Errorf("no shifts to export")
	}
	if err := export.Write(w, format, shifts); err != nil {
		return err
	}
	logger.Debug("Exported report", zap.String("format", string(format)), zap.Int("rows", len(shifts)))
	return nil
}

// ReportTabTitle names the Sheets tab for a report generated on day
func ReportTabTitle(day time.Time) string {
	return reportTabPrefix + day.Format("2006-01-02")
}

// PublishReport writes shifts to a dated tab of spreadsheetID and returns
// the tab title
func PublishReport(publisher ReportPublisher, spreadsheetID string, shifts []model.Shift, day time.Time, logger *zap.Logger) (string, error) {
	if spreadsheetID == "" {
		return "", fmt.Errorf("no report spreadsheet configured (reportSheetID)")
	}

	title := ReportTabTitle(day)
	logger.Debug("Publishing report", zap.String("spreadsheet_id", spreadsheetID), zap.String("tab", title))

	if err := publisher.PublishReport(spreadsheetID, title, export.Values(shifts)); err != nil {
		return "", fmt.Errorf("failed to publish report: %w", err)
	}

	logger.Info("Published report", zap.String("tab", title), zap.Int("rows", len(shifts)))
	return title, nil
}
