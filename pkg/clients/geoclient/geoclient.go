// Package geoclient acquires the position recorded with a check-in or
// check-out
package geoclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cast"

	"github.com/jakechorley/shifttrack/pkg/core/model"
)

// DefaultLookupURL is a keyless IP geolocation service
const DefaultLookupURL = "https://ipapi.co/json/"

// ErrUnavailable means no position source is configured
var ErrUnavailable = errors.New("location unavailable")

// Locator returns the current position
type Locator interface {
	Locate(ctx context.Context) (*model.Location, error)
}

// NoneLocator never has a position
type NoneLocator struct{}

func (NoneLocator) Locate(ctx context.Context) (*model.Location, error) {
	return nil, ErrUnavailable
}

// StaticLocator always reports the same configured point, e.g. a fixed site
type StaticLocator struct {
	Lat, Lng float64
}

func (s StaticLocator) Locate(ctx context.Context) (*model.Location, error) {
	return &model.Location{Lat: s.Lat, Lng: s.Lng}, nil
}

// IPLocator asks an HTTP geolocation service where the caller's IP is
type IPLocator struct {
	URL        string
	HTTPClient *http.Client
}

// NewIPLocator creates a locator for url, falling back to DefaultLookupURL
func NewIPLocator(url string, client *http.Client) *IPLocator {
	if url == "" {
		url = DefaultLookupURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &IPLocator{URL: url, HTTPClient: client}
}

// Locate performs the lookup. Responses may use latitude/longitude or
// lat/lon, as strings or numbers.
func (l *IPLocator) Locate(ctx context.Context) (*model.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("location lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("location lookup returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode location: %w", err)
	}

	lat, latOK := firstFloat(payload, "latitude", "lat")
	lng, lngOK := firstFloat(payload, "longitude", "lon", "lng")
	if !latOK || !lngOK {
		return nil, fmt.Errorf("location response has no coordinates")
	}

	return &model.Location{Lat: lat, Lng: lng}, nil
}

func firstFloat(payload map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := payload[key]
		if !ok || v == nil {
			continue
		}
		f, err := cast.ToFloat64E(v)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}
