package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/rng"
	"github.com/osse101/MawRitual_Go/internal/ritual"
)

// RitualHandler handles ritual action and read-only endpoints
type RitualHandler struct {
	service ritual.Service
}

// NewRitualHandler creates a new ritual handler
func NewRitualHandler(service ritual.Service) *RitualHandler {
	return &RitualHandler{service: service}
}

// SacrificeRelicsRequest is the request body for the plain relic ritual.
// Amount is checked by the engine so a zero amount maps to its own error.
type SacrificeRelicsRequest struct {
	Actor  string `json:"actor" validate:"required,actor"`
	Amount uint64 `json:"amount"`
	Height *int64 `json:"height,omitempty" validate:"omitempty,min=0"`
}

// CosmeticRequest is the request body for the cosmetic ritual
type CosmeticRequest struct {
	Actor         string `json:"actor" validate:"required,actor"`
	PrimaryAmount uint64 `json:"primary_amount"`
	BonusAmount   uint64 `json:"bonus_amount"`
	Height        *int64 `json:"height,omitempty" validate:"omitempty,min=0"`
}

// ConvertRequest is the request body for the conversion ritual. A zero
// input_item selects the default conversion rule.
type ConvertRequest struct {
	Actor     string `json:"actor" validate:"required,actor"`
	InputItem uint64 `json:"input_item"`
	Amount    uint64 `json:"amount"`
	Height    *int64 `json:"height,omitempty" validate:"omitempty,min=0"`
}

// PoolResponse describes a reward pool
type PoolResponse struct {
	Kind        domain.PoolKind        `json:"kind"`
	DisplayName string                 `json:"display_name"`
	Version     uint64                 `json:"version"`
	TotalWeight uint64                 `json:"total_weight"`
	Entries     []domain.WeightedEntry `json:"entries"`
}

// PreviewResponse is the item a seed would select from a pool
type PreviewResponse struct {
	Kind   domain.PoolKind `json:"kind"`
	Seed   rng.Seed        `json:"seed"`
	ItemID domain.ItemID   `json:"item_id"`
}

// BalancesResponse lists balances of one actor
type BalancesResponse struct {
	Actor    domain.Actor        `json:"actor"`
	Balances []domain.ItemAmount `json:"balances"`
}

// HandleSacrifice burns relics for a single draw from the relic pool
func (h *RitualHandler) HandleSacrifice(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, ErrMsgSacrificeFailed, http.StatusCreated,
		func(ctx context.Context, req SacrificeRelicsRequest) (*ritual.Result, error) {
			return h.service.SacrificeRelics(ctx, ritual.SacrificeRequest{
				Actor:  domain.Actor(req.Actor),
				Amount: req.Amount,
				Height: req.Height,
			})
		},
		resultResponse,
	)
}

// HandleCosmetic burns the cosmetic input plus optional bonus items
func (h *RitualHandler) HandleCosmetic(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, ErrMsgCosmeticFailed, http.StatusCreated,
		func(ctx context.Context, req CosmeticRequest) (*ritual.Result, error) {
			return h.service.SacrificeForCosmetic(ctx, ritual.CosmeticRequest{
				Actor:         domain.Actor(req.Actor),
				PrimaryAmount: req.PrimaryAmount,
				BonusAmount:   req.BonusAmount,
				Height:        req.Height,
			})
		},
		resultResponse,
	)
}

// HandleConvert converts items by their conversion rule
func (h *RitualHandler) HandleConvert(w http.ResponseWriter, r *http.Request) {
	handleAction(w, r, ErrMsgConvertFailed, http.StatusCreated,
		func(ctx context.Context, req ConvertRequest) (*ritual.Result, error) {
			return h.service.ConvertItems(ctx, ritual.ConvertRequest{
				Actor:     domain.Actor(req.Actor),
				InputItem: domain.ItemID(req.InputItem),
				Amount:    req.Amount,
				Height:    req.Height,
			})
		},
		resultResponse,
	)
}

func resultResponse(res *ritual.Result) interface{} {
	return res
}

// HandleGetPool returns the entries of a pool
// GET /api/v1/ritual/pool/{kind}
func (h *RitualHandler) HandleGetPool(w http.ResponseWriter, r *http.Request) {
	kind := domain.PoolKind(chi.URLParam(r, "kind"))

	p, err := h.service.GetPool(kind)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetPoolFailed, err)
		return
	}

	entries := make([]domain.WeightedEntry, len(p.Entries))
	for i, e := range p.Entries {
		entries[i] = e.WeightedEntry
	}
	respondJSON(w, http.StatusOK, PoolResponse{
		Kind:        p.Kind,
		DisplayName: ritual.DisplayName(p.Kind),
		Version:     p.Version,
		TotalWeight: p.TotalWeight,
		Entries:     entries,
	})
}

// HandleGetOdds returns the display probability of every entry of a pool
// GET /api/v1/ritual/odds/{kind}
func (h *RitualHandler) HandleGetOdds(w http.ResponseWriter, r *http.Request) {
	preview, err := h.service.PreviewOdds(domain.PoolKind(chi.URLParam(r, "kind")))
	if err != nil {
		respondServiceError(w, r, ErrMsgGetOddsFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, preview)
}

// HandleGetSuccessConfig returns the base odds and modifiers of a success tier
// GET /api/v1/ritual/success-config/{tier}
func (h *RitualHandler) HandleGetSuccessConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.service.GetSuccessConfig(chi.URLParam(r, "tier"))
	if err != nil {
		respondServiceError(w, r, ErrMsgGetSuccessCfgFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, cfg)
}

// HandlePreview returns the item a given seed selects, without mutating anything
// GET /api/v1/ritual/preview?kind=relic&seed=0x2d
func (h *RitualHandler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	kind, ok := requiredQuery(w, r, "kind")
	if !ok {
		return
	}
	rawSeed, ok := requiredQuery(w, r, "seed")
	if !ok {
		return
	}
	seed, err := rng.ParseSeed(rawSeed)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidSeed)
		return
	}

	item, err := h.service.PreviewRoll(domain.PoolKind(kind), seed)
	if err != nil {
		respondServiceError(w, r, ErrMsgPreviewFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, PreviewResponse{Kind: domain.PoolKind(kind), Seed: seed, ItemID: item})
}

// HandleGetBalances returns an actor's balances of the listed items
// GET /api/v1/ritual/balances?actor=alice&items=1,2,8
func (h *RitualHandler) HandleGetBalances(w http.ResponseWriter, r *http.Request) {
	actor, ok := requiredQuery(w, r, "actor")
	if !ok {
		return
	}
	rawItems, ok := requiredQuery(w, r, "items")
	if !ok {
		return
	}
	items, err := parseItemIDs(rawItems)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidItemList)
		return
	}

	balances, err := h.service.GetBalances(r.Context(), domain.Actor(actor), items)
	if err != nil {
		respondServiceError(w, r, ErrMsgGetBalancesFailed, err)
		return
	}
	respondJSON(w, http.StatusOK, BalancesResponse{Actor: domain.Actor(actor), Balances: balances})
}
