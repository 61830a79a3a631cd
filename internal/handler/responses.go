package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/osse101/MawRitual_Go/internal/cooldown"
	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/logger"
	"github.com/osse101/MawRitual_Go/internal/ritual"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Outcome string `json:"outcome,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"` + ErrMsgGenericServerError + `"}` + "\n"))
		return
	}
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	// Validation
	ErrMsgInvalidAmountError = "Amount is zero or above the per-action maximum"
	ErrMsgNotApprovedError   = "The ritual operator is not approved to burn your items"
	ErrMsgPausedError        = "Rituals are paused"
	ErrMsgInvalidInputError  = "Invalid input"
	ErrMsgUnknownRitualError = "Unknown ritual"

	// Rate limit
	ErrMsgTooSoonError = "Too soon since your last ritual. Wait for more blocks"

	// Ledger
	ErrMsgInsufficientBalanceError = "Not enough items"
	ErrMsgNotAuthorizedError       = "The engine is not authorized to mint that item"
	ErrMsgSupplyExceededError      = "Supply of that item is exhausted"

	// Configuration
	ErrMsgEmptyPoolError    = "Pool has no entries"
	ErrMsgZeroWeightError   = "Pool entries must have a positive weight"
	ErrMsgInvalidRatioError = "Conversion ratio must have positive numerator and denominator"
	ErrMsgUnknownPoolError  = "Unknown pool"
	ErrMsgInvalidOddsError  = "Invalid odds configuration"
)

// mapServiceErrorToUserMessage maps domain errors to an HTTP status and a
// message the caller can act on. Validation failures are 400, a cooldown is
// 429, ledger failures are 409 and admin configuration errors are 422.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrTooSoon):
		return http.StatusTooManyRequests, ErrMsgTooSoonError
	case errors.Is(err, domain.ErrPaused):
		return http.StatusServiceUnavailable, ErrMsgPausedError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrNotApproved):
		return http.StatusBadRequest, ErrMsgNotApprovedError
	case errors.Is(err, domain.ErrUnknownRitual):
		return http.StatusBadRequest, ErrMsgUnknownRitualError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	case errors.Is(err, domain.ErrInsufficientBalance):
		return http.StatusConflict, ErrMsgInsufficientBalanceError
	case errors.Is(err, domain.ErrNotAuthorized):
		return http.StatusConflict, ErrMsgNotAuthorizedError
	case errors.Is(err, domain.ErrSupplyExceeded):
		return http.StatusConflict, ErrMsgSupplyExceededError
	case errors.Is(err, domain.ErrUnknownPool):
		return http.StatusNotFound, ErrMsgUnknownPoolError
	case errors.Is(err, domain.ErrEmptyPool):
		return http.StatusUnprocessableEntity, ErrMsgEmptyPoolError
	case errors.Is(err, domain.ErrZeroWeight):
		return http.StatusUnprocessableEntity, ErrMsgZeroWeightError
	case errors.Is(err, domain.ErrInvalidRatio):
		return http.StatusUnprocessableEntity, ErrMsgInvalidRatioError
	case errors.Is(err, domain.ErrInvalidOdds):
		return http.StatusUnprocessableEntity, ErrMsgInvalidOddsError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError logs a failed service call and writes the mapped error.
// A cooldown rejection also reports the remaining blocks in a header.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	log := logger.FromContext(r.Context())
	status, msg := mapServiceErrorToUserMessage(err)

	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		log.Error(opName, "error", err)
	} else {
		log.Debug(opName, "error", err, "status", status)
	}

	var tooSoon cooldown.ErrTooSoon
	if errors.As(err, &tooSoon) {
		w.Header().Set(HeaderRetryAfterBlocks, strconv.FormatUint(tooSoon.Remaining, 10))
	}

	respondJSON(w, status, ErrorResponse{Error: msg, Outcome: string(ritual.OutcomeOf(err))})
}
