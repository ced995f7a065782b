// Package repository provides testify mocks for the persistence interfaces.
package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"panel/internal/domain/entity"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockSessionRepository is a mock for repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

func NewMockSessionRepository(t mockConstructorTestingT) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockSessionRepositoryExpecter struct {
	mock *mock.Mock
}

func (m *MockSessionRepository) EXPECT() *MockSessionRepositoryExpecter {
	return &MockSessionRepositoryExpecter{mock: &m.Mock}
}

func (e *MockSessionRepositoryExpecter) Create(ctx, session any) *mock.Call {
	return e.mock.On("Create", ctx, session)
}

func (e *MockSessionRepositoryExpecter) FindByToken(ctx, token any) *mock.Call {
	return e.mock.On("FindByToken", ctx, token)
}

func (e *MockSessionRepositoryExpecter) DeleteByToken(ctx, token any) *mock.Call {
	return e.mock.On("DeleteByToken", ctx, token)
}

func (e *MockSessionRepositoryExpecter) DeleteExpired(ctx any) *mock.Call {
	return e.mock.On("DeleteExpired", ctx)
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	ret := m.Called(ctx, session)

	return ret.Error(0)
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, token string) (*entity.Session, error) {
	ret := m.Called(ctx, token)

	var r0 *entity.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Session)
	}

	return r0, ret.Error(1)
}

func (m *MockSessionRepository) DeleteByToken(ctx context.Context, token string) error {
	ret := m.Called(ctx, token)

	return ret.Error(0)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	ret := m.Called(ctx)

	return ret.Get(0).(int64), ret.Error(1)
}

// MockEntitlementRepository is a mock for repository.EntitlementRepository.
type MockEntitlementRepository struct {
	mock.Mock
}

func NewMockEntitlementRepository(t mockConstructorTestingT) *MockEntitlementRepository {
	m := &MockEntitlementRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockEntitlementRepositoryExpecter struct {
	mock *mock.Mock
}

func (m *MockEntitlementRepository) EXPECT() *MockEntitlementRepositoryExpecter {
	return &MockEntitlementRepositoryExpecter{mock: &m.Mock}
}

func (e *MockEntitlementRepositoryExpecter) FindByUserID(ctx, userID any) *mock.Call {
	return e.mock.On("FindByUserID", ctx, userID)
}

func (e *MockEntitlementRepositoryExpecter) FindByUserIDForUpdate(ctx, userID any) *mock.Call {
	return e.mock.On("FindByUserIDForUpdate", ctx, userID)
}

func (e *MockEntitlementRepositoryExpecter) Save(ctx, entitlement any) *mock.Call {
	return e.mock.On("Save", ctx, entitlement)
}

func (m *MockEntitlementRepository) FindByUserID(ctx context.Context, userID string) (*entity.UserEntitlement, error) {
	ret := m.Called(ctx, userID)

	var r0 *entity.UserEntitlement
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.UserEntitlement)
	}

	return r0, ret.Error(1)
}

func (m *MockEntitlementRepository) FindByUserIDForUpdate(ctx context.Context, userID string) (*entity.UserEntitlement, error) {
	ret := m.Called(ctx, userID)

	var r0 *entity.UserEntitlement
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.UserEntitlement)
	}

	return r0, ret.Error(1)
}

func (m *MockEntitlementRepository) Save(ctx context.Context, entitlement *entity.UserEntitlement) error {
	ret := m.Called(ctx, entitlement)

	return ret.Error(0)
}

// MockPaymentCaptureRepository is a mock for repository.PaymentCaptureRepository.
type MockPaymentCaptureRepository struct {
	mock.Mock
}

func NewMockPaymentCaptureRepository(t mockConstructorTestingT) *MockPaymentCaptureRepository {
	m := &MockPaymentCaptureRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockPaymentCaptureRepositoryExpecter struct {
	mock *mock.Mock
}

func (m *MockPaymentCaptureRepository) EXPECT() *MockPaymentCaptureRepositoryExpecter {
	return &MockPaymentCaptureRepositoryExpecter{mock: &m.Mock}
}

func (e *MockPaymentCaptureRepositoryExpecter) Create(ctx, capture any) *mock.Call {
	return e.mock.On("Create", ctx, capture)
}

func (m *MockPaymentCaptureRepository) Create(ctx context.Context, capture *entity.PaymentCapture) error {
	ret := m.Called(ctx, capture)

	return ret.Error(0)
}

// MockSettingsRepository is a mock for repository.SettingsRepository.
type MockSettingsRepository struct {
	mock.Mock
}

func NewMockSettingsRepository(t mockConstructorTestingT) *MockSettingsRepository {
	m := &MockSettingsRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockSettingsRepositoryExpecter struct {
	mock *mock.Mock
}

func (m *MockSettingsRepository) EXPECT() *MockSettingsRepositoryExpecter {
	return &MockSettingsRepositoryExpecter{mock: &m.Mock}
}

func (e *MockSettingsRepositoryExpecter) FindByGuildID(ctx, guildID any) *mock.Call {
	return e.mock.On("FindByGuildID", ctx, guildID)
}

func (e *MockSettingsRepositoryExpecter) UpsertWelcome(ctx, guildID, welcome any) *mock.Call {
	return e.mock.On("UpsertWelcome", ctx, guildID, welcome)
}

func (e *MockSettingsRepositoryExpecter) UpsertTickets(ctx, guildID, tickets any) *mock.Call {
	return e.mock.On("UpsertTickets", ctx, guildID, tickets)
}

func (m *MockSettingsRepository) FindByGuildID(ctx context.Context, guildID string) (*entity.GuildSettings, error) {
	ret := m.Called(ctx, guildID)

	var r0 *entity.GuildSettings
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.GuildSettings)
	}

	return r0, ret.Error(1)
}

func (m *MockSettingsRepository) UpsertWelcome(ctx context.Context, guildID string, welcome entity.WelcomeSettings) error {
	ret := m.Called(ctx, guildID, welcome)

	return ret.Error(0)
}

func (m *MockSettingsRepository) UpsertTickets(ctx context.Context, guildID string, tickets entity.TicketSettings) error {
	ret := m.Called(ctx, guildID, tickets)

	return ret.Error(0)
}

// MockPresenceRepository is a mock for repository.PresenceRepository.
type MockPresenceRepository struct {
	mock.Mock
}

func NewMockPresenceRepository(t mockConstructorTestingT) *MockPresenceRepository {
	m := &MockPresenceRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockPresenceRepositoryExpecter struct {
	mock *mock.Mock
}

func (m *MockPresenceRepository) EXPECT() *MockPresenceRepositoryExpecter {
	return &MockPresenceRepositoryExpecter{mock: &m.Mock}
}

func (e *MockPresenceRepositoryExpecter) FilterPresent(ctx, guildIDs any) *mock.Call {
	return e.mock.On("FilterPresent", ctx, guildIDs)
}

func (m *MockPresenceRepository) FilterPresent(ctx context.Context, guildIDs []string) (map[string]bool, error) {
	ret := m.Called(ctx, guildIDs)

	var r0 map[string]bool
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[string]bool)
	}

	return r0, ret.Error(1)
}
