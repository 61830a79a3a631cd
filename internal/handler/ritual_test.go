package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MawRitual_Go/internal/cooldown"
	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/pool"
	"github.com/osse101/MawRitual_Go/internal/ritual"
	"github.com/osse101/MawRitual_Go/internal/rng"
	"github.com/osse101/MawRitual_Go/internal/supply"
	"github.com/osse101/MawRitual_Go/mocks"
)

func jsonBody(t *testing.T, v interface{}) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// withURLParams attaches chi route params to a request
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleSacrifice(t *testing.T) {
	committed := &ritual.Result{
		ActionID: "a-1",
		Kind:     domain.RitualPlainRelic,
		Actor:    "alice",
		Height:   100,
		Burned:   []domain.ItemAmount{{ItemID: 1, Amount: 3}},
		Reward:   supply.MintResult{Item: 4, Amount: 1, Requested: 4},
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(*mocks.MockRitualService)
		expectedStatus int
		expectedBody   string
		retryAfter     string
	}{
		{
			name: "Success",
			body: SacrificeRelicsRequest{Actor: "alice", Amount: 3},
			setupMock: func(m *mocks.MockRitualService) {
				m.On("SacrificeRelics", mock.Anything, ritual.SacrificeRequest{Actor: "alice", Amount: 3}).
					Return(committed, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"action_id":"a-1"`,
		},
		{
			name:           "Missing actor",
			body:           SacrificeRelicsRequest{Amount: 3},
			setupMock:      func(*mocks.MockRitualService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"actor":"This field is required"`,
		},
		{
			name:           "Actor with whitespace",
			body:           SacrificeRelicsRequest{Actor: "al ice", Amount: 3},
			setupMock:      func(*mocks.MockRitualService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"actor":"Invalid actor"`,
		},
		{
			name: "Zero amount rejected by the engine",
			body: SacrificeRelicsRequest{Actor: "alice"},
			setupMock: func(m *mocks.MockRitualService) {
				m.On("SacrificeRelics", mock.Anything, mock.Anything).
					Return(nil, &ritual.PhaseError{Phase: ritual.PhaseValidating, Outcome: ritual.OutcomeRejected, Err: domain.ErrInvalidAmount})
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"outcome":"rejected"`,
		},
		{
			name: "Cooldown",
			body: SacrificeRelicsRequest{Actor: "alice", Amount: 1},
			setupMock: func(m *mocks.MockRitualService) {
				m.On("SacrificeRelics", mock.Anything, mock.Anything).
					Return(nil, &ritual.PhaseError{
						Phase:   ritual.PhaseValidating,
						Outcome: ritual.OutcomeRejected,
						Err:     cooldown.ErrTooSoon{Actor: "alice", LastHeight: 99, Remaining: 1},
					})
			},
			expectedStatus: http.StatusTooManyRequests,
			expectedBody:   ErrMsgTooSoonError,
			retryAfter:     "1",
		},
		{
			name: "Ledger failure aborts",
			body: SacrificeRelicsRequest{Actor: "alice", Amount: 1},
			setupMock: func(m *mocks.MockRitualService) {
				m.On("SacrificeRelics", mock.Anything, mock.Anything).
					Return(nil, &ritual.PhaseError{
						Phase:   ritual.PhaseBurning,
						Outcome: ritual.OutcomeAborted,
						Err:     fmt.Errorf("burn: %w", domain.ErrInsufficientBalance),
					})
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"outcome":"aborted"`,
		},
		{
			name: "Paused",
			body: SacrificeRelicsRequest{Actor: "alice", Amount: 1},
			setupMock: func(m *mocks.MockRitualService) {
				m.On("SacrificeRelics", mock.Anything, mock.Anything).Return(nil, domain.ErrPaused)
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ErrMsgPausedError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewMockRitualService(t)
			tt.setupMock(svc)
			h := NewRitualHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/ritual/sacrifice", jsonBody(t, tt.body))
			w := httptest.NewRecorder()
			h.HandleSacrifice(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.Equal(t, tt.retryAfter, w.Header().Get(HeaderRetryAfterBlocks))
		})
	}
}

func TestHandleSacrifice_InvalidJSON(t *testing.T) {
	h := NewRitualHandler(mocks.NewMockRitualService(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ritual/sacrifice", bytes.NewBufferString(`{"actor":`))
	w := httptest.NewRecorder()
	h.HandleSacrifice(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgInvalidRequest)
}

func TestHandleSacrifice_UnknownField(t *testing.T) {
	h := NewRitualHandler(mocks.NewMockRitualService(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ritual/sacrifice", bytes.NewBufferString(`{"actor":"alice","amount":1,"nonce":5}`))
	w := httptest.NewRecorder()
	h.HandleSacrifice(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleCosmetic(t *testing.T) {
	svc := mocks.NewMockRitualService(t)
	height := int64(42)
	success := true
	svc.On("SacrificeForCosmetic", mock.Anything, ritual.CosmeticRequest{
		Actor:         "bob",
		PrimaryAmount: 3,
		BonusAmount:   1,
		Height:        &height,
	}).Return(&ritual.Result{
		ActionID: "a-2",
		Kind:     domain.RitualCosmetic,
		Actor:    "bob",
		Height:   height,
		Success:  &success,
		Tier:     domain.TierRare,
		Reward:   supply.MintResult{Item: 201, Amount: 1, Requested: 201},
	}, nil)

	h := NewRitualHandler(svc)
	body := CosmeticRequest{Actor: "bob", PrimaryAmount: 3, BonusAmount: 1, Height: &height}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ritual/cosmetic", jsonBody(t, body))
	w := httptest.NewRecorder()
	h.HandleCosmetic(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var got ritual.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.TierRare, got.Tier)
	assert.Equal(t, domain.ItemID(201), got.Reward.Item)
	require.NotNil(t, got.Success)
	assert.True(t, *got.Success)
}

func TestHandleCosmetic_NegativeHeight(t *testing.T) {
	h := NewRitualHandler(mocks.NewMockRitualService(t))
	height := int64(-1)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ritual/cosmetic",
		jsonBody(t, CosmeticRequest{Actor: "bob", PrimaryAmount: 1, Height: &height}))
	w := httptest.NewRecorder()
	h.HandleCosmetic(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"height"`)
}

func TestHandleConvert(t *testing.T) {
	svc := mocks.NewMockRitualService(t)
	svc.On("ConvertItems", mock.Anything, ritual.ConvertRequest{Actor: "carol", InputItem: 8, Amount: 10}).
		Return(&ritual.Result{
			ActionID: "a-3",
			Kind:     domain.RitualConversion,
			Actor:    "carol",
			Burned:   []domain.ItemAmount{{ItemID: 8, Amount: 10}},
			Reward:   supply.MintResult{Item: 9, Amount: 2, Requested: 9},
		}, nil)

	h := NewRitualHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ritual/convert",
		jsonBody(t, ConvertRequest{Actor: "carol", InputItem: 8, Amount: 10}))
	w := httptest.NewRecorder()
	h.HandleConvert(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":2`)
}

func TestHandleConvert_InvalidRatio(t *testing.T) {
	svc := mocks.NewMockRitualService(t)
	svc.On("ConvertItems", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: denominator 0", domain.ErrInvalidRatio))

	h := NewRitualHandler(svc)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ritual/convert",
		jsonBody(t, ConvertRequest{Actor: "carol", Amount: 10}))
	w := httptest.NewRecorder()
	h.HandleConvert(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestHandleGetPool(t *testing.T) {
	relic, err := pool.New("relic", 3, []domain.WeightedEntry{{ItemID: 2, Weight: 30}, {ItemID: 3, Weight: 70}})
	require.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		svc := mocks.NewMockRitualService(t)
		svc.On("GetPool", domain.PoolKind("relic")).Return(relic, nil)

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/ritual/pool/relic", nil), map[string]string{"kind": "relic"})
		w := httptest.NewRecorder()
		NewRitualHandler(svc).HandleGetPool(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got PoolResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, uint64(100), got.TotalWeight)
		assert.Equal(t, uint64(3), got.Version)
		assert.Equal(t, "Relic", got.DisplayName)
		assert.Equal(t, []domain.WeightedEntry{{ItemID: 2, Weight: 30}, {ItemID: 3, Weight: 70}}, got.Entries)
	})

	t.Run("Unknown", func(t *testing.T) {
		svc := mocks.NewMockRitualService(t)
		svc.On("GetPool", domain.PoolKind("shoes")).Return(nil, fmt.Errorf("%w: shoes", domain.ErrUnknownPool))

		req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/ritual/pool/shoes", nil), map[string]string{"kind": "shoes"})
		w := httptest.NewRecorder()
		NewRitualHandler(svc).HandleGetPool(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgUnknownPoolError)
	})
}

func TestHandleGetOdds(t *testing.T) {
	svc := mocks.NewMockRitualService(t)
	svc.On("PreviewOdds", domain.PoolKind("cosmetic_rare")).Return(&ritual.OddsPreview{
		Kind:        "cosmetic_rare",
		DisplayName: "Cosmetic Rare",
		Version:     1,
		TotalWeight: 3,
		Odds:        []pool.ItemOdds{{ItemID: 201, Weight: 2, Bps: 6667}, {ItemID: 202, Weight: 1, Bps: 3333}},
	}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/ritual/odds/cosmetic_rare", nil), map[string]string{"kind": "cosmetic_rare"})
	w := httptest.NewRecorder()
	NewRitualHandler(svc).HandleGetOdds(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bps":6667`)
	assert.Contains(t, w.Body.String(), `"display_name":"Cosmetic Rare"`)
}

func TestHandleGetSuccessConfig(t *testing.T) {
	svc := mocks.NewMockRitualService(t)
	svc.On("GetSuccessConfig", "triple").Return(&ritual.SuccessConfig{Tier: "triple", MinAmount: 3, BaseBps: 3000, MaxBps: 8000}, nil)
	svc.On("GetSuccessConfig", "nope").Return(nil, fmt.Errorf("%w: unknown success tier %q", domain.ErrInvalidInput, "nope"))

	h := NewRitualHandler(svc)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/ritual/success-config/triple", nil), map[string]string{"tier": "triple"})
	w := httptest.NewRecorder()
	h.HandleGetSuccessConfig(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"base_bps":3000`)

	req = withURLParams(httptest.NewRequest(http.MethodGet, "/api/v1/ritual/success-config/nope", nil), map[string]string{"tier": "nope"})
	w = httptest.NewRecorder()
	h.HandleGetSuccessConfig(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlePreview(t *testing.T) {
	seed, err := rng.ParseSeed("0x2d")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewMockRitualService(t)
		svc.On("PreviewRoll", domain.PoolKind("relic"), seed).Return(domain.ItemID(3), nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/ritual/preview?kind=relic&seed=0x2d", nil)
		w := httptest.NewRecorder()
		NewRitualHandler(svc).HandlePreview(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"item_id":3`)
		assert.Contains(t, w.Body.String(), seed.Hex())
	})

	t.Run("Missing seed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ritual/preview?kind=relic", nil)
		w := httptest.NewRecorder()
		NewRitualHandler(mocks.NewMockRitualService(t)).HandlePreview(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), fmt.Sprintf(ErrMsgMissingQueryParam, "seed"))
	})

	t.Run("Malformed seed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ritual/preview?kind=relic&seed=zz", nil)
		w := httptest.NewRecorder()
		NewRitualHandler(mocks.NewMockRitualService(t)).HandlePreview(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidSeed)
	})
}

func TestHandleGetBalances(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := mocks.NewMockRitualService(t)
		svc.On("GetBalances", mock.Anything, domain.Actor("alice"), []domain.ItemID{1, 8}).
			Return([]domain.ItemAmount{{ItemID: 1, Amount: 7}, {ItemID: 8, Amount: 0}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/ritual/balances?actor=alice&items=1,%208", nil)
		w := httptest.NewRecorder()
		NewRitualHandler(svc).HandleGetBalances(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var got BalancesResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, domain.Actor("alice"), got.Actor)
		assert.Equal(t, uint64(7), got.Balances[0].Amount)
	})

	t.Run("Bad item list", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ritual/balances?actor=alice&items=1,x", nil)
		w := httptest.NewRecorder()
		NewRitualHandler(mocks.NewMockRitualService(t)).HandleGetBalances(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), ErrMsgInvalidItemList)
	})
}

func TestParseItemIDs(t *testing.T) {
	tests := []struct {
		raw     string
		want    []domain.ItemID
		wantErr bool
	}{
		{"1", []domain.ItemID{1}, false},
		{"1,2,10", []domain.ItemID{1, 2, 10}, false},
		{" 3 , 4 ,", []domain.ItemID{3, 4}, false},
		{"", nil, true},
		{",", nil, true},
		{"0", nil, true},
		{"-1", nil, true},
		{"a", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseItemIDs(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
