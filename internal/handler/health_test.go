package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MawRitual_Go/internal/state"
	"github.com/osse101/MawRitual_Go/mocks"
)

// MockDBPool mocks database.Pool
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

func TestHandleHealthz(t *testing.T) {
	w := httptest.NewRecorder()
	HandleHealthz().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func readyz(t *testing.T, h http.HandlerFunc) (int, ReadinessResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var resp ReadinessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleReadyz(t *testing.T) {
	t.Run("memory backend reports engine state", func(t *testing.T) {
		st := state.New()
		st.Revision = 9
		st.Nonce = 41
		st.Paused = true
		svc := mocks.NewMockRitualService(t)
		svc.On("Snapshot").Return(st)

		code, resp := readyz(t, HandleReadyz(nil, svc))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, ReadinessResponse{Status: HealthStatusOK, Backend: BackendMemory, Revision: 9, Nonce: 41, Paused: true}, resp)
	})

	t.Run("database reachable", func(t *testing.T) {
		db := &MockDBPool{}
		db.On("Ping", mock.Anything).Return(nil)

		code, resp := readyz(t, HandleReadyz(db, nil))
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, BackendPostgres, resp.Backend)
		db.AssertExpectations(t)
	})

	for name, pingErr := range map[string]error{
		"connection refused": errors.New("connection refused"),
		"ping timeout":       context.DeadlineExceeded,
	} {
		t.Run(name, func(t *testing.T) {
			db := &MockDBPool{}
			db.On("Ping", mock.Anything).Return(pingErr)

			code, resp := readyz(t, HandleReadyz(db, nil))
			assert.Equal(t, http.StatusServiceUnavailable, code)
			assert.Equal(t, HealthStatusUnavailable, resp.Status)
			assert.Equal(t, "database connection failed", resp.Message)
			db.AssertExpectations(t)
		})
	}
}

func TestHandleVersion(t *testing.T) {
	w := httptest.NewRecorder()
	HandleVersion("1.4.0").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var info VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "1.4.0", info.Version)
	assert.NotEmpty(t, info.GoVersion)
}

func TestHandleVersion_LinkTimeVersionWins(t *testing.T) {
	prev := Version
	Version = "2.0.0"
	t.Cleanup(func() { Version = prev })

	w := httptest.NewRecorder()
	HandleVersion("1.4.0").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/version", nil))

	var info VersionInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "2.0.0", info.Version)
}
