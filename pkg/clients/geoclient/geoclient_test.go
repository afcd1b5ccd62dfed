package geoclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server.URL
}

func TestNoneLocator(t *testing.T) {
	loc, err := NoneLocator{}.Locate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Nil(t, loc)
}

func TestStaticLocator(t *testing.T) {
	loc, err := StaticLocator{Lat: 25.76, Lng: -80.19}.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 25.76, loc.Lat)
	assert.Equal(t, -80.19, loc.Lng)
}

func TestIPLocator_LatitudeLongitude(t *testing.T) {
	url := serve(t, http.StatusOK, `{"ip":"1.2.3.4","latitude":40.71,"longitude":-74.0}`)

	loc, err := NewIPLocator(url, nil).Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 40.71, loc.Lat)
	assert.Equal(t, -74.0, loc.Lng)
}

func TestIPLocator_LatLonStrings(t *testing.T) {
	url := serve(t, http.StatusOK, `{"lat":"19.43","lon":"-99.13"}`)

	loc, err := NewIPLocator(url, nil).Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 19.43, loc.Lat)
	assert.Equal(t, -99.13, loc.Lng)
}

func TestIPLocator_MissingCoordinates(t *testing.T) {
	url := serve(t, http.StatusOK, `{"ip":"1.2.3.4"}`)

	_, err := NewIPLocator(url, nil).Locate(context.Background())
	require.Error(t, err)
}

func TestIPLocator_BadStatus(t *testing.T) {
	url := serve(t, http.StatusTooManyRequests, `rate limited`)

	_, err := NewIPLocator(url, nil).Locate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestNewIPLocator_Defaults(t *testing.T) {
	l := NewIPLocator("", nil)
	assert.Equal(t, DefaultLookupURL, l.URL)
	assert.NotNil(t, l.HTTPClient)
}
