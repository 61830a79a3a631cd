package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		limit      int64
		wantOK     bool
		wantStatus int
		wantBody   string
	}{
		{"valid", `{"blocks":3}`, 0, true, http.StatusOK, ""},
		{"empty body", ``, 0, false, http.StatusBadRequest, ErrMsgEmptyBody},
		{"trailing object", `{"blocks":3}{"blocks":4}`, 0, false, http.StatusBadRequest, ErrMsgInvalidRequest},
		{"unknown field", `{"blocks":3,"extra":1}`, 0, false, http.StatusBadRequest, ErrMsgInvalidRequest},
		{"failed validation", `{}`, 0, false, http.StatusBadRequest, ErrMsgInvalidRequestSummary},
		{"too large", `{"blocks":3}`, 4, false, http.StatusRequestEntityTooLarge, ErrMsgRequestTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.limit > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, tt.limit)
			}

			var req SetCooldownRequest
			ok := decodeRequest(w, r, &req, "test")

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestRequiredQuery(t *testing.T) {
	w := httptest.NewRecorder()
	v, ok := requiredQuery(w, httptest.NewRequest(http.MethodGet, "/?actor=+alice+", nil), "actor")
	assert.True(t, ok)
	assert.Equal(t, "alice", v)

	w = httptest.NewRecorder()
	_, ok = requiredQuery(w, httptest.NewRequest(http.MethodGet, "/?actor=++", nil), "actor")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing actor query parameter")
}
