package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/logger"
)

// ValidationErrorResponse is the 400 body for requests failing struct validation
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// decodeRequest reads exactly one JSON object from the body into dst and runs
// the struct validator on it. On false the response has been written.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	log := logger.FromContext(r.Context())

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		log.Warn("Rejected request body", "operation", op, "error", err)

		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, ErrMsgRequestTooLarge)
		case errors.Is(err, io.EOF):
			respondError(w, http.StatusBadRequest, ErrMsgEmptyBody)
		default:
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		}
		return false
	}
	if dec.More() {
		log.Warn("Rejected request body", "operation", op, "error", "trailing data")
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return false
	}

	if err := GetValidator().ValidateStruct(dst); err != nil {
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return false
	}

	log.Debug("Request decoded", "operation", op)
	return true
}

// requiredQuery returns a non-empty query parameter or writes a 400
func requiredQuery(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, name))
		return "", false
	}
	return value, true
}

// parseItemIDs parses a comma separated list of item ids such as "2,3,10".
func parseItemIDs(raw string) ([]domain.ItemID, error) {
	parts := strings.Split(raw, ",")
	ids := make([]domain.ItemID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil || id == 0 {
			return nil, fmt.Errorf("%w: item id %q", domain.ErrInvalidInput, p)
		}
		ids = append(ids, domain.ItemID(id))
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no item ids", domain.ErrInvalidInput)
	}
	return ids, nil
}

// handleAction decodes REQ, runs action and answers with status and the
// mapped result, or with the mapped service error.
func handleAction[REQ any, RES any](
	w http.ResponseWriter,
	r *http.Request,
	opName string,
	status int,
	action func(context.Context, REQ) (RES, error),
	responseFactory func(RES) interface{},
) {
	var req REQ
	if !decodeRequest(w, r, &req, opName) {
		return
	}

	res, err := action(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, opName, err)
		return
	}

	respondJSON(w, status, responseFactory(res))
}
