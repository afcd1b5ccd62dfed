package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("login", OutcomeSuccess, 120*time.Millisecond)
	m.ObserveRequest("login", OutcomeSuccess, 80*time.Millisecond)
	m.ObserveRequest("history", OutcomeHTTPError, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("login", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("history", OutcomeHTTPError)))
}

func TestReadFailure(t *testing.T) {
	m := New()

	m.ReadFailure("users")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.readFailures.WithLabelValues("users")))
}

func TestNilReceiver(t *testing.T) {
	var m *WebhookMetrics

	assert.NotPanics(t, func() {
		m.ObserveRequest("login", OutcomeSuccess, time.Second)
		m.ReadFailure("users")
	})
	assert.NoError(t, m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")))
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.ObserveRequest("startShift", OutcomeSuccess, time.Second)

	path := filepath.Join(t.TempDir(), "shifttrack.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `shifttrack_webhook_requests_total{endpoint="startShift",outcome="success"} 1`)
}
