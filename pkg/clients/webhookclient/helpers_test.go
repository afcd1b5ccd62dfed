package webhookclient

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/shifttrack/pkg/metrics"
)

// requestCount reads shifttrack_webhook_requests_total for one label pair
func requestCount(t *testing.T, m *metrics.WebhookMetrics, endpoint Endpoint, outcome string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != "shifttrack_webhook_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := map[string]string{}
			for _, pair := range metric.GetLabel() {
				labels[pair.GetName()] = pair.GetValue()
			}
			if labels["endpoint"] == string(endpoint) && labels["outcome"] == outcome {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}
