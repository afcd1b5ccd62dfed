package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/pkg/clients/geoclient"
	"github.com/jakechorley/shifttrack/pkg/clients/webhookclient"
	"github.com/jakechorley/shifttrack/pkg/core/duration"
	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/locale"
	"github.com/jakechorley/shifttrack/pkg/session"
)

// DefaultLocateTimeout bounds how long a check-in waits for a position
const DefaultLocateTimeout = 5 * time.Second

const completedStatus = "completed"

// ShiftRequest carries the per-call inputs of StartShift and EndShift
type ShiftRequest struct {
	Comment       string
	Now           time.Time
	LocateTimeout time.Duration
}

// ShiftSummary is what EndShift reports back
type ShiftSummary struct {
	Start    model.ActiveSession
	End      time.Time
	Date     string
	EndTime  string
	Duration duration.Result
	Location *model.Location
}

// AcquireLocation asks locator for a position, giving up after timeout.
// It never fails: errors and timeouts give nil.
func AcquireLocation(ctx context.Context, locator geoclient.Locator, timeout time.Duration, logger *zap.Logger) *model.Location {
	if locator == nil {
		return nil
	}
	if timeout <= 0 {
		timeout = DefaultLocateTimeout
	}

	locateCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		loc *model.Location
		err error
	}
	done := make(chan result, 1)
	go func() {
		loc, err := locator.Locate(locateCtx)
		done <- result{loc, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			logger.Debug("Location unavailable", zap.Error(r.err))
			return nil
		}
		return r.loc
	case <-locateCtx.Done():
		logger.Debug("Location lookup timed out", zap.Duration("timeout", timeout))
		return nil
	}
}

// markerFormatter renders the open-shift marker, which always uses US
// formatting in the display zone
func markerFormatter(display *locale.Formatter) *locale.Formatter {
	f, err := locale.New("en", display.Location().String())
	if err != nil {
		return display
	}
	return f
}

func coord(loc *model.Location, lat bool) any {
	if loc == nil {
		return nil
	}
	if lat {
		return loc.Lat
	}
	return loc.Lng
}

// StartShift records a check-in for the signed-in user and stores the open
// shift marker
func StartShift(
	ctx context.Context,
	client WebhookPoster,
	sess *session.Session,
	locator geoclient.Locator,
	display *locale.Formatter,
	logger *zap.Logger,
	req ShiftRequest,
) (*model.ActiveSession, error) {
	user := sess.User()
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	if sess.ActiveSession() != nil {
		return nil, ErrShiftAlreadyActive
	}

	location := AcquireLocation(ctx, locator, req.LocateTimeout, logger)

	// the check-in instant is taken once the position lookup has finished
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}

	logger.Debug("Starting shift", zap.String("user_id", user.ID), zap.Time("at", now))

	_, err := client.Post(ctx, webhookclient.StartShift, map[string]any{
		"user_id":           user.ID,
		"email":             user.Email,
		"timestamp_start":   toISO(now),
		"id_subcuenta":      sess.SubaccountID(),
		"latitude":          coord(location, true),
		"longitude":         coord(location, false),
		"comentario_inicio": req.Comment,
	})
	if err != nil {
		return nil, fmt.Errorf("check-in request failed: %w", err)
	}

	mf := markerFormatter(display)
	marker := model.ActiveSession{
		ISO:         now.UTC(),
		DisplayTime: mf.Clock(now),
		DisplayDate: mf.NumericDate(now),
	}
	if err := sess.SaveActiveSession(ctx, marker); err != nil {
		return nil, err
	}

	logger.Info("Shift started", zap.String("user_id", user.ID), zap.String("display_time", marker.DisplayTime))
	return &marker, nil
}

// EndShift sends the summary of the open shift and clears the marker
func EndShift(
	ctx context.Context,
	client WebhookPoster,
	sess *session.Session,
	locator geoclient.Locator,
	display *locale.Formatter,
	logger *zap.Logger,
	req ShiftRequest,
) (*ShiftSummary, error) {
	user := sess.User()
	if user == nil {
		return nil, ErrNotLoggedIn
	}
	marker := sess.ActiveSession()
	if marker == nil {
		return nil, ErrNoActiveShift
	}

	logger.Debug("Ending shift", zap.String("user_id", user.ID), zap.Time("started", marker.ISO))

	location := AcquireLocation(ctx, locator, req.LocateTimeout, logger)

	end := req.Now
	if end.IsZero() {
		end = time.Now()
	}
	elapsed := duration.Between(marker.ISO, end)

	summary := &ShiftSummary{
		Start:    *marker,
		End:      end,
		Date:     display.ShortDate(end),
		EndTime:  markerFormatter(display).Clock(end),
		Duration: elapsed,
		Location: location,
	}

	_, err := client.Post(ctx, webhookclient.EndShift, map[string]any{
		"userId":           user.ID,
		"userName":         user.Name,
		"userRole":         user.Role,
		"userEmail":        user.Email,
		"date":             summary.Date,
		"startTime":        marker.DisplayTime,
		"endTime":          summary.EndTime,
		"duration":         elapsed.Formatted,
		"seconds":          elapsed.Seconds,
		"status":           completedStatus,
		"timestamp_start":  toISO(marker.ISO),
		"timestamp_end":    toISO(end),
		"timezone":         display.Location().String(),
		"latitude_end":     coord(location, true),
		"longitude_end":    coord(location, false),
		"comentario_final": req.Comment,
		"id_subcuenta":     sess.SubaccountID(),
	})
	if err != nil {
		return nil, fmt.Errorf("check-out request failed: %w", err)
	}

	if err := sess.ClearActiveSession(ctx); err != nil {
		return nil, err
	}

	logger.Info("Shift ended",
		zap.String("user_id", user.ID),
		zap.String("duration", elapsed.Formatted),
		zap.Int64("seconds", elapsed.Seconds))
	return summary, nil
}

// ActiveSession returns the open shift marker, or nil
func ActiveSession(sess *session.Session) *model.ActiveSession {
	return sess.ActiveSession()
}
