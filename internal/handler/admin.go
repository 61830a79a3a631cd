package handler

import (
	"net/http"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/logger"
	"github.com/osse101/MawRitual_Go/internal/odds"
	"github.com/osse101/MawRitual_Go/internal/ritual"
)

// AdminHandler handles engine configuration endpoints
type AdminHandler struct {
	service ritual.Service
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(service ritual.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

// SetPoolRequest replaces the entries of a pool
type SetPoolRequest struct {
	Kind    string                 `json:"kind" validate:"required,max=64"`
	Entries []domain.WeightedEntry `json:"entries" validate:"required,min=1"`
}

// SetCooldownRequest sets the per-actor spacing in blocks. Zero disables it.
type SetCooldownRequest struct {
	Blocks *uint64 `json:"blocks" validate:"required"`
}

// SetConversionRequest updates the ratio of a conversion rule. A zero
// input_item selects the default rule.
type SetConversionRequest struct {
	InputItem   uint64 `json:"input_item"`
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// SetSupplyCapRequest sets or, with a null max, removes an item's supply cap
type SetSupplyCapRequest struct {
	ItemID uint64  `json:"item_id" validate:"required"`
	Max    *uint64 `json:"max"`
}

// SetPausedRequest flips the global pause switch
type SetPausedRequest struct {
	Paused *bool `json:"paused" validate:"required"`
}

// HandleSetPool replaces a pool, bumping its version
// POST /api/v1/admin/pool
func (h *AdminHandler) HandleSetPool(w http.ResponseWriter, r *http.Request) {
	var req SetPoolRequest
	if !decodeRequest(w, r, &req, "Set pool") {
		return
	}
	logger.FromContext(r.Context()).Debug("Replacing pool", "kind", req.Kind, "entries", len(req.Entries))

	if err := h.service.SetPool(r.Context(), domain.PoolKind(req.Kind), req.Entries); err != nil {
		respondServiceError(w, r, ErrMsgSetPoolFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgPoolUpdated})
}

// HandleSetCooldown sets the cooldown spacing
// POST /api/v1/admin/cooldown
func (h *AdminHandler) HandleSetCooldown(w http.ResponseWriter, r *http.Request) {
	var req SetCooldownRequest
	if !decodeRequest(w, r, &req, "Set cooldown") {
		return
	}

	if err := h.service.SetCooldownSpacing(r.Context(), *req.Blocks); err != nil {
		respondServiceError(w, r, ErrMsgSetCooldownFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgCooldownUpdated})
}

// HandleSetConversion updates a conversion ratio
// POST /api/v1/admin/conversion
func (h *AdminHandler) HandleSetConversion(w http.ResponseWriter, r *http.Request) {
	var req SetConversionRequest
	if !decodeRequest(w, r, &req, "Set conversion") {
		return
	}

	err := h.service.SetConversionRatio(r.Context(), domain.ItemID(req.InputItem), req.Numerator, req.Denominator)
	if err != nil {
		respondServiceError(w, r, ErrMsgSetConversionFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgConversionUpdated})
}

// HandleSetSupplyCap sets or removes a supply cap
// POST /api/v1/admin/supply-cap
func (h *AdminHandler) HandleSetSupplyCap(w http.ResponseWriter, r *http.Request) {
	var req SetSupplyCapRequest
	if !decodeRequest(w, r, &req, "Set supply cap") {
		return
	}

	if err := h.service.SetSupplyCap(r.Context(), domain.ItemID(req.ItemID), req.Max); err != nil {
		respondServiceError(w, r, ErrMsgSetSupplyCapFailed, err)
		return
	}
	msg := MsgSupplyCapUpdated
	if req.Max == nil {
		msg = MsgSupplyCapRemoved
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: msg})
}

// HandleSetPaused pauses or resumes every ritual
// POST /api/v1/admin/pause
func (h *AdminHandler) HandleSetPaused(w http.ResponseWriter, r *http.Request) {
	var req SetPausedRequest
	if !decodeRequest(w, r, &req, "Set paused") {
		return
	}

	if err := h.service.SetPaused(r.Context(), *req.Paused); err != nil {
		respondServiceError(w, r, ErrMsgSetPausedFailed, err)
		return
	}
	msg := MsgRitualsResumed
	if *req.Paused {
		msg = MsgRitualsPaused
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: msg})
}

// HandleSetSuccessConfig replaces the success tiers, modifiers and tier distribution
// POST /api/v1/admin/success-config
func (h *AdminHandler) HandleSetSuccessConfig(w http.ResponseWriter, r *http.Request) {
	var req odds.Config
	if !decodeRequest(w, r, &req, "Set success config") {
		return
	}

	if err := h.service.SetSuccessConfig(r.Context(), req); err != nil {
		respondServiceError(w, r, ErrMsgSetSuccessCfgFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgSuccessCfgUpdated})
}

// HandleSetRitual installs the wiring of one ritual kind
// POST /api/v1/admin/ritual
func (h *AdminHandler) HandleSetRitual(w http.ResponseWriter, r *http.Request) {
	var req domain.RitualConfig
	if !decodeRequest(w, r, &req, "Set ritual") {
		return
	}

	if err := h.service.SetRitual(r.Context(), req); err != nil {
		respondServiceError(w, r, ErrMsgSetRitualFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgRitualUpdated})
}

// HandleGetState returns the committed engine state
// GET /api/v1/admin/state
func (h *AdminHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.service.Snapshot())
}
