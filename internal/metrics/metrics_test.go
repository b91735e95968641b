package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveBackend("available_slots", 200, 30*time.Millisecond)
	m.ObserveBackend("available_slots", 200, 10*time.Millisecond)
	m.ObserveBackend("available_slots", 0, time.Second)
	m.ObserveAction("create_appointment", nil)
	m.ObserveAction("create_appointment", errors.New("boom"))
	m.ObserveStep("", "choose_flow")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.backendRequests.WithLabelValues("available_slots", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.backendRequests.WithLabelValues("available_slots", "0")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingActions.WithLabelValues("create_appointment", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wizardSteps.WithLabelValues("none", "choose_flow")))
}

func TestNilSafe(t *testing.T) {
	var m *Metrics
	m.ObserveHTTP("GET", "/health", 200, time.Millisecond)
	m.ObserveBackend("cities", 200, time.Millisecond)
	m.ObserveAction("cancel", nil)
	m.ObserveStep("worker_first", "choose_date")
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New(nil)
	m.ObserveHTTP("GET", "/health", 200, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `booking_panel_http_requests_total{method="GET",route="/health",status="200"} 1`)
}
