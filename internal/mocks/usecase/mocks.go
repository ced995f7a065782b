// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"panel/internal/domain/entity"
	"panel/internal/usecase"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAuthUsecase is a mock for usecase.AuthUsecase.
type MockAuthUsecase struct {
	mock.Mock
}

func NewMockAuthUsecase(t mockConstructorTestingT) *MockAuthUsecase {
	m := &MockAuthUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockAuthUsecaseExpecter struct {
	mock *mock.Mock
}

func (m *MockAuthUsecase) EXPECT() *MockAuthUsecaseExpecter {
	return &MockAuthUsecaseExpecter{mock: &m.Mock}
}

func (e *MockAuthUsecaseExpecter) LoginURL() *mock.Call {
	return e.mock.On("LoginURL")
}

func (e *MockAuthUsecaseExpecter) HandleCallback(ctx, state, code any) *mock.Call {
	return e.mock.On("HandleCallback", ctx, state, code)
}

func (e *MockAuthUsecaseExpecter) Authenticate(ctx, cookieValue any) *mock.Call {
	return e.mock.On("Authenticate", ctx, cookieValue)
}

func (e *MockAuthUsecaseExpecter) Logout(ctx, cookieValue any) *mock.Call {
	return e.mock.On("Logout", ctx, cookieValue)
}

func (e *MockAuthUsecaseExpecter) SweepExpiredSessions(ctx any) *mock.Call {
	return e.mock.On("SweepExpiredSessions", ctx)
}

func (m *MockAuthUsecase) LoginURL() string {
	ret := m.Called()

	return ret.String(0)
}

func (m *MockAuthUsecase) HandleCallback(ctx context.Context, state, code string) (*usecase.CallbackOutput, error) {
	ret := m.Called(ctx, state, code)

	var r0 *usecase.CallbackOutput
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.CallbackOutput)
	}

	return r0, ret.Error(1)
}

func (m *MockAuthUsecase) Authenticate(ctx context.Context, cookieValue string) (*entity.Session, error) {
	ret := m.Called(ctx, cookieValue)

	var r0 *entity.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Session)
	}

	return r0, ret.Error(1)
}

func (m *MockAuthUsecase) Logout(ctx context.Context, cookieValue string) error {
	ret := m.Called(ctx, cookieValue)

	return ret.Error(0)
}

func (m *MockAuthUsecase) SweepExpiredSessions(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)

	var r0 int64
	if v, ok := ret.Get(0).(int64); ok {
		r0 = v
	}

	return r0, ret.Error(1)
}
