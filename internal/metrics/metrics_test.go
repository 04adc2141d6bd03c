package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersAndHandler(t *testing.T) {
	m := New()

	m.ObserveTransition("approve", "ok")
	m.ObserveTransition("approve", "ok")
	m.ObservePenalty("system", "Late return")
	m.SetOverdue(3)
	m.ObserveRequest(http.MethodGet, "/api/borrowed", http.StatusOK, 20*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transitions.WithLabelValues("approve", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.penalties.WithLabelValues("system", "Late return")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.overdue))

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "sportequip_borrow_transitions_total")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTransition("approve", "ok")
		m.ObservePenalty("system", "Equipment lost")
		m.SetOverdue(1)
		m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
}
