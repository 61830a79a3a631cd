//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestProbes(t *testing.T) {
	for _, path := range []string{"/healthz", "/version", "/metrics"} {
		resp, body := makeRequest(t, http.MethodGet, path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s: expected status 200, got %d: %s", path, resp.StatusCode, body)
		}
	}
}

func TestReadiness(t *testing.T) {
	resp, body := makeRequest(t, http.MethodGet, "/readyz", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.StatusCode, body)
	}

	var ready struct {
		Status   string `json:"status"`
		Backend  string `json:"backend"`
		Revision uint64 `json:"revision"`
	}
	if err := json.Unmarshal(body, &ready); err != nil {
		t.Fatalf("decode readiness: %v", err)
	}
	if ready.Backend != "memory" && ready.Backend != "postgres" {
		t.Errorf("unexpected backend %q", ready.Backend)
	}
	if ready.Status != "ok" {
		t.Errorf("expected status ok, got %q", ready.Status)
	}
	t.Logf("engine at revision %d on %s", ready.Revision, ready.Backend)
}
