package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/MawRitual_Go/internal/domain"
	"github.com/osse101/MawRitual_Go/internal/odds"
	"github.com/osse101/MawRitual_Go/internal/pool"
	"github.com/osse101/MawRitual_Go/internal/ritual"
	"github.com/osse101/MawRitual_Go/internal/rng"
	"github.com/osse101/MawRitual_Go/internal/state"
)

// MockRitualService is a mock type for the ritual.Service type
type MockRitualService struct {
	mock.Mock
}

var _ ritual.Service = (*MockRitualService)(nil)

// NewMockRitualService creates a new instance of MockRitualService and
// registers a cleanup that asserts the expectations.
func NewMockRitualService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRitualService {
	m := &MockRitualService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockRitualService) result(ret mock.Arguments) (*ritual.Result, error) {
	var r0 *ritual.Result
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ritual.Result)
	}
	return r0, ret.Error(1)
}

func (_m *MockRitualService) SacrificeRelics(ctx context.Context, req ritual.SacrificeRequest) (*ritual.Result, error) {
	return _m.result(_m.Called(ctx, req))
}

func (_m *MockRitualService) SacrificeForCosmetic(ctx context.Context, req ritual.CosmeticRequest) (*ritual.Result, error) {
	return _m.result(_m.Called(ctx, req))
}

func (_m *MockRitualService) ConvertItems(ctx context.Context, req ritual.ConvertRequest) (*ritual.Result, error) {
	return _m.result(_m.Called(ctx, req))
}

func (_m *MockRitualService) GetPool(kind domain.PoolKind) (*pool.RewardPool, error) {
	ret := _m.Called(kind)
	var r0 *pool.RewardPool
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*pool.RewardPool)
	}
	return r0, ret.Error(1)
}

func (_m *MockRitualService) GetSuccessConfig(tier string) (*ritual.SuccessConfig, error) {
	ret := _m.Called(tier)
	var r0 *ritual.SuccessConfig
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ritual.SuccessConfig)
	}
	return r0, ret.Error(1)
}

func (_m *MockRitualService) PreviewRoll(kind domain.PoolKind, seed rng.Seed) (domain.ItemID, error) {
	ret := _m.Called(kind, seed)
	return ret.Get(0).(domain.ItemID), ret.Error(1)
}

func (_m *MockRitualService) PreviewOdds(kind domain.PoolKind) (*ritual.OddsPreview, error) {
	ret := _m.Called(kind)
	var r0 *ritual.OddsPreview
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*ritual.OddsPreview)
	}
	return r0, ret.Error(1)
}

func (_m *MockRitualService) GetBalances(ctx context.Context, actor domain.Actor, items []domain.ItemID) ([]domain.ItemAmount, error) {
	ret := _m.Called(ctx, actor, items)
	var r0 []domain.ItemAmount
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ItemAmount)
	}
	return r0, ret.Error(1)
}

func (_m *MockRitualService) Snapshot() *state.EngineState {
	ret := _m.Called()
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(*state.EngineState)
}

func (_m *MockRitualService) SetPool(ctx context.Context, kind domain.PoolKind, entries []domain.WeightedEntry) error {
	return _m.Called(ctx, kind, entries).Error(0)
}

func (_m *MockRitualService) SetCooldownSpacing(ctx context.Context, blocks uint64) error {
	return _m.Called(ctx, blocks).Error(0)
}

func (_m *MockRitualService) SetConversionRatio(ctx context.Context, input domain.ItemID, numerator, denominator uint64) error {
	return _m.Called(ctx, input, numerator, denominator).Error(0)
}

func (_m *MockRitualService) SetConversionRule(ctx context.Context, rule domain.ConversionRule) error {
	return _m.Called(ctx, rule).Error(0)
}

func (_m *MockRitualService) SetSupplyCap(ctx context.Context, item domain.ItemID, limit *uint64) error {
	return _m.Called(ctx, item, limit).Error(0)
}

func (_m *MockRitualService) SetPaused(ctx context.Context, paused bool) error {
	return _m.Called(ctx, paused).Error(0)
}

func (_m *MockRitualService) SetSuccessConfig(ctx context.Context, cfg odds.Config) error {
	return _m.Called(ctx, cfg).Error(0)
}

func (_m *MockRitualService) SetRitual(ctx context.Context, rc domain.RitualConfig) error {
	return _m.Called(ctx, rc).Error(0)
}

func (_m *MockRitualService) SaveSnapshot(ctx context.Context) error {
	return _m.Called(ctx).Error(0)
}
