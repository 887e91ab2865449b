package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/api/orders", "200", time.Millisecond)
	m.ObserveAggregateOperation("order.create", "success", time.Millisecond)
	m.IncAggregateConflict("order.add_item")
	m.IncDashboardCache("hit")
	require.NoError(t, m.WritePrometheus(&bytes.Buffer{}))
}

func TestMetrics_Exposition(t *testing.T) {
	m := New()
	m.ObserveAPI("GET", "/api/orders/:id", "404", 20*time.Millisecond)
	m.ObserveAggregateOperation("order.add_item", "conflict", 3*time.Millisecond)
	m.IncAggregateConflict("order.add_item")
	m.IncDashboardCache("miss")
	m.IncDashboardCache("miss")

	var buf bytes.Buffer
	require.NoError(t, m.WritePrometheus(&buf))
	out := buf.String()

	assert.Contains(t, out, `orders_api_requests_total{method="GET",route="/api/orders/:id",status="404"} 1`)
	assert.Contains(t, out, `orders_aggregate_conflicts_total{operation="order.add_item"} 1`)
	assert.Contains(t, out, `orders_dashboard_cache_total{result="miss"} 2`)
	assert.Contains(t, out, `orders_aggregate_operation_duration_seconds_bucket{operation="order.add_item",status="conflict",le="+Inf"} 1`)
	assert.True(t, strings.Contains(out, "# TYPE orders_api_inflight_requests gauge"))
}

func TestLabelString_Escapes(t *testing.T) {
	got := labelString([]string{"a", "b"}, []string{`x"y`})
	assert.Equal(t, `{a="x\"y",b="unknown"}`, got)
}
