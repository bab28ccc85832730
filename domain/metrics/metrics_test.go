package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := New()

	m.RecordSubmission("success")
	m.RecordSubmission("success")
	m.RecordSubmission("error")
	m.RecordChat("fallback")
	m.RecordImage("success", 3*time.Second)
	m.VoiceStarted()
	m.VoiceStarted()
	m.VoiceEnded("hangup")
	m.SetRelayConnected(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submissions.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.submissions.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.chatRequests.WithLabelValues("fallback")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.voiceActive))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.voiceSessions.WithLabelValues("hangup")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.relayConnected))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	m.RecordSubmission("success")
	m.RecordChat("ok")
	m.RecordImage("error", time.Second)
	m.VoiceStarted()
	m.VoiceEnded("error")
	m.SetRelayConnected(false)
}

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	m := New()
	RegisterRoutes(e, m)
	m.RecordSubmission("success")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pandp_form_submissions_total{outcome="success"} 1`)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}
