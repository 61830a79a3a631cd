package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/MawRitual_Go/internal/event"
	"github.com/osse101/MawRitual_Go/internal/eventlog"
)

// MockEventlogService is a mock type for the eventlog.Service type
type MockEventlogService struct {
	mock.Mock
}

var _ eventlog.Service = (*MockEventlogService)(nil)

// NewMockEventlogService creates a new instance of MockEventlogService and
// registers a cleanup that asserts the expectations.
func NewMockEventlogService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventlogService {
	m := &MockEventlogService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (_m *MockEventlogService) Subscribe(bus event.Bus) error {
	return _m.Called(bus).Error(0)
}

func (_m *MockEventlogService) GetEvents(ctx context.Context, filter eventlog.EventFilter) ([]eventlog.Event, error) {
	ret := _m.Called(ctx, filter)
	var r0 []eventlog.Event
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]eventlog.Event)
	}
	return r0, ret.Error(1)
}

func (_m *MockEventlogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	ret := _m.Called(ctx, retentionDays)
	return ret.Get(0).(int64), ret.Error(1)
}
