package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/osse101/MawRitual_Go/internal/database"
	"github.com/osse101/MawRitual_Go/internal/state"
)

const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"

	BackendMemory   = "memory"
	BackendPostgres = "postgres"

	readyzTimeout = 2 * time.Second
)

// HealthResponse is the liveness body
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ReadinessResponse reports the storage backend and the live engine revision.
// A paused engine is still ready: reads and admin calls keep working.
type ReadinessResponse struct {
	Status   string `json:"status"`
	Backend  string `json:"backend"`
	Message  string `json:"message,omitempty"`
	Revision uint64 `json:"revision"`
	Nonce    uint64 `json:"nonce"`
	Paused   bool   `json:"paused"`
}

// EngineSnapshotter exposes the live engine state
type EngineSnapshotter interface {
	Snapshot() *state.EngineState
}

// HandleHealthz provides a basic liveness check
func HandleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: HealthStatusOK})
	}
}

// HandleReadyz pings the database when there is one. A nil pool means the
// memory backend. engine may be nil.
func HandleReadyz(dbPool database.Pool, engine EngineSnapshotter) http.HandlerFunc {
	backend := BackendPostgres
	if dbPool == nil {
		backend = BackendMemory
	}

	return func(w http.ResponseWriter, r *http.Request) {
		resp := ReadinessResponse{Status: HealthStatusOK, Backend: backend}

		if engine != nil {
			if st := engine.Snapshot(); st != nil {
				resp.Revision = st.Revision
				resp.Nonce = st.Nonce
				resp.Paused = st.Paused
			}
		}

		if dbPool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
			defer cancel()

			if err := dbPool.Ping(ctx); err != nil {
				slog.Error("Readiness check failed", "error", err)
				resp.Status = HealthStatusUnavailable
				resp.Message = "database connection failed"
				respondJSON(w, http.StatusServiceUnavailable, resp)
				return
			}
		}

		respondJSON(w, http.StatusOK, resp)
	}
}
