// Package service provides testify mocks for the provider-service interfaces.
package service

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"panel/internal/domain/entity"
	"panel/internal/domain/service"
)

type mockConstructorTestingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockDiscordOAuthService is a mock for service.DiscordOAuthService.
type MockDiscordOAuthService struct {
	mock.Mock
}

func NewMockDiscordOAuthService(t mockConstructorTestingT) *MockDiscordOAuthService {
	m := &MockDiscordOAuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockDiscordOAuthServiceExpecter struct {
	mock *mock.Mock
}

func (m *MockDiscordOAuthService) EXPECT() *MockDiscordOAuthServiceExpecter {
	return &MockDiscordOAuthServiceExpecter{mock: &m.Mock}
}

func (e *MockDiscordOAuthServiceExpecter) BuildAuthorizationURL(state any) *mock.Call {
	return e.mock.On("BuildAuthorizationURL", state)
}

func (e *MockDiscordOAuthServiceExpecter) ValidateState(state any) *mock.Call {
	return e.mock.On("ValidateState", state)
}

func (e *MockDiscordOAuthServiceExpecter) ExchangeCode(ctx, code any) *mock.Call {
	return e.mock.On("ExchangeCode", ctx, code)
}

func (e *MockDiscordOAuthServiceExpecter) FetchIdentity(ctx, accessToken any) *mock.Call {
	return e.mock.On("FetchIdentity", ctx, accessToken)
}

func (e *MockDiscordOAuthServiceExpecter) ListUserGuilds(ctx, accessToken any) *mock.Call {
	return e.mock.On("ListUserGuilds", ctx, accessToken)
}

func (m *MockDiscordOAuthService) BuildAuthorizationURL(state string) string {
	ret := m.Called(state)

	return ret.String(0)
}

func (m *MockDiscordOAuthService) ValidateState(state string) bool {
	ret := m.Called(state)

	return ret.Bool(0)
}

func (m *MockDiscordOAuthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	ret := m.Called(ctx, code)

	return ret.String(0), ret.Error(1)
}

func (m *MockDiscordOAuthService) FetchIdentity(ctx context.Context, accessToken string) (*service.DiscordIdentity, error) {
	ret := m.Called(ctx, accessToken)

	var r0 *service.DiscordIdentity
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.DiscordIdentity)
	}

	return r0, ret.Error(1)
}

func (m *MockDiscordOAuthService) ListUserGuilds(ctx context.Context, accessToken string) ([]entity.UserGuild, error) {
	ret := m.Called(ctx, accessToken)

	var r0 []entity.UserGuild
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.UserGuild)
	}

	return r0, ret.Error(1)
}

// MockDiscordBotService is a mock for service.DiscordBotService.
type MockDiscordBotService struct {
	mock.Mock
}

func NewMockDiscordBotService(t mockConstructorTestingT) *MockDiscordBotService {
	m := &MockDiscordBotService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockDiscordBotServiceExpecter struct {
	mock *mock.Mock
}

func (m *MockDiscordBotService) EXPECT() *MockDiscordBotServiceExpecter {
	return &MockDiscordBotServiceExpecter{mock: &m.Mock}
}

func (e *MockDiscordBotServiceExpecter) FetchGuild(ctx, guildID any) *mock.Call {
	return e.mock.On("FetchGuild", ctx, guildID)
}

func (e *MockDiscordBotServiceExpecter) ListChannels(ctx, guildID any) *mock.Call {
	return e.mock.On("ListChannels", ctx, guildID)
}

func (e *MockDiscordBotServiceExpecter) ListRoles(ctx, guildID any) *mock.Call {
	return e.mock.On("ListRoles", ctx, guildID)
}

func (e *MockDiscordBotServiceExpecter) FetchBotMember(ctx, guildID any) *mock.Call {
	return e.mock.On("FetchBotMember", ctx, guildID)
}

func (m *MockDiscordBotService) FetchGuild(ctx context.Context, guildID string) (*entity.Guild, error) {
	ret := m.Called(ctx, guildID)

	var r0 *entity.Guild
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Guild)
	}

	return r0, ret.Error(1)
}

func (m *MockDiscordBotService) ListChannels(ctx context.Context, guildID string) ([]entity.Channel, error) {
	ret := m.Called(ctx, guildID)

	var r0 []entity.Channel
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.Channel)
	}

	return r0, ret.Error(1)
}

func (m *MockDiscordBotService) ListRoles(ctx context.Context, guildID string) ([]entity.Role, error) {
	ret := m.Called(ctx, guildID)

	var r0 []entity.Role
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]entity.Role)
	}

	return r0, ret.Error(1)
}

func (m *MockDiscordBotService) FetchBotMember(ctx context.Context, guildID string) (*entity.GuildMember, error) {
	ret := m.Called(ctx, guildID)

	var r0 *entity.GuildMember
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.GuildMember)
	}

	return r0, ret.Error(1)
}

// MockPaymentService is a mock for service.PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func NewMockPaymentService(t mockConstructorTestingT) *MockPaymentService {
	m := &MockPaymentService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockPaymentServiceExpecter struct {
	mock *mock.Mock
}

func (m *MockPaymentService) EXPECT() *MockPaymentServiceExpecter {
	return &MockPaymentServiceExpecter{mock: &m.Mock}
}

func (e *MockPaymentServiceExpecter) CreateOrder(ctx, userID any) *mock.Call {
	return e.mock.On("CreateOrder", ctx, userID)
}

func (e *MockPaymentServiceExpecter) CaptureOrder(ctx, orderID any) *mock.Call {
	return e.mock.On("CaptureOrder", ctx, orderID)
}

func (e *MockPaymentServiceExpecter) VerifyWebhook(ctx, headers, rawBody any) *mock.Call {
	return e.mock.On("VerifyWebhook", ctx, headers, rawBody)
}

func (e *MockPaymentServiceExpecter) ParseWebhookEvent(rawBody any) *mock.Call {
	return e.mock.On("ParseWebhookEvent", rawBody)
}

func (m *MockPaymentService) CreateOrder(ctx context.Context, userID string) (*service.PaymentOrder, error) {
	ret := m.Called(ctx, userID)

	var r0 *service.PaymentOrder
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.PaymentOrder)
	}

	return r0, ret.Error(1)
}

func (m *MockPaymentService) CaptureOrder(ctx context.Context, orderID string) (*service.PaymentCaptureResult, error) {
	ret := m.Called(ctx, orderID)

	var r0 *service.PaymentCaptureResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.PaymentCaptureResult)
	}

	return r0, ret.Error(1)
}

func (m *MockPaymentService) VerifyWebhook(ctx context.Context, headers http.Header, rawBody []byte) (bool, error) {
	ret := m.Called(ctx, headers, rawBody)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockPaymentService) ParseWebhookEvent(rawBody []byte) (*service.PaymentCaptureResult, error) {
	ret := m.Called(rawBody)

	var r0 *service.PaymentCaptureResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*service.PaymentCaptureResult)
	}

	return r0, ret.Error(1)
}

// MockSessionCookieService is a mock for service.SessionCookieService.
type MockSessionCookieService struct {
	mock.Mock
}

func NewMockSessionCookieService(t mockConstructorTestingT) *MockSessionCookieService {
	m := &MockSessionCookieService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

type MockSessionCookieServiceExpecter struct {
	mock *mock.Mock
}

func (m *MockSessionCookieService) EXPECT() *MockSessionCookieServiceExpecter {
	return &MockSessionCookieServiceExpecter{mock: &m.Mock}
}

func (e *MockSessionCookieServiceExpecter) Seal(sessionToken any) *mock.Call {
	return e.mock.On("Seal", sessionToken)
}

func (e *MockSessionCookieServiceExpecter) Open(cookieValue any) *mock.Call {
	return e.mock.On("Open", cookieValue)
}

func (m *MockSessionCookieService) Seal(sessionToken string) (string, error) {
	ret := m.Called(sessionToken)

	return ret.String(0), ret.Error(1)
}

func (m *MockSessionCookieService) Open(cookieValue string) (string, error) {
	ret := m.Called(cookieValue)

	return ret.String(0), ret.Error(1)
}
