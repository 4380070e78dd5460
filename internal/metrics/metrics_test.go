package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"healthmetrics/internal/domain"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	Register()
	Register()

	before := testutil.ToFloat64(reportsComputed.WithLabelValues(string(domain.Normal)))
	Recorder{}.ReportComputed(domain.Normal)
	assert.Equal(t, before+1, testutil.ToFloat64(reportsComputed.WithLabelValues(string(domain.Normal))))

	before = testutil.ToFloat64(inputsRejected.WithLabelValues("weightKg"))
	Recorder{}.InputRejected("weightKg")
	assert.Equal(t, before+1, testutil.ToFloat64(inputsRejected.WithLabelValues("weightKg")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	Register()
	ObserveHTTP(http.MethodGet, http.StatusOK, 15*time.Millisecond)
	SetActiveSessions(3)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "healthmetrics_http_requests_total"))
	assert.True(t, strings.Contains(body, "healthmetrics_active_sessions 3"))
}

func TestObserveHTTP_UnknownMethod(t *testing.T) {
	Register()
	before := testutil.ToFloat64(httpRequests.WithLabelValues("other", "405"))
	ObserveHTTP("FROBNICATE", http.StatusMethodNotAllowed, time.Millisecond)
	ObserveHTTP("X-RANDOM-1", http.StatusMethodNotAllowed, time.Millisecond)
	assert.Equal(t, before+2, testutil.ToFloat64(httpRequests.WithLabelValues("other", "405")))

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.False(t, strings.Contains(rec.Body.String(), `method="FROBNICATE"`))
}
