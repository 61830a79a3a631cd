package server

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware(t *testing.T) {
	clock := clockwork.NewFakeClock()
	detector := NewSuspiciousActivityDetectorWithClock(clock)
	handler := RateLimitMiddleware(nil, detector)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	ip := "192.168.1.100"
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = ip + ":1234"

	for i := 0; i < RequestsPerWindow; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	clock.Advance(2 * time.Minute)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	retry, err := strconv.Atoi(rec.Header().Get(HeaderRetryAfter))
	require.NoError(t, err)
	assert.Equal(t, int((DetectorWindow-2*time.Minute)/time.Second), retry)

	detector.mu.Lock()
	count := detector.requestCountByIP[ip]
	detector.mu.Unlock()
	assert.Equal(t, RequestsPerWindow+1, count)
}

func TestSuspiciousActivityDetector_WindowReset(t *testing.T) {
	clock := clockwork.NewFakeClock()
	detector := NewSuspiciousActivityDetectorWithClock(clock)

	for i := 0; i < RequestsPerWindow; i++ {
		ok, _ := detector.RecordRequest("10.1.1.1")
		require.True(t, ok)
	}
	ok, wait := detector.RecordRequest("10.1.1.1")
	assert.False(t, ok)
	assert.Equal(t, DetectorWindow, wait)

	ok, _ = detector.RecordRequest("10.1.1.2")
	assert.True(t, ok, "limits are per ip")

	clock.Advance(DetectorWindow + time.Second)
	ok, _ = detector.RecordRequest("10.1.1.1")
	assert.True(t, ok)
}
