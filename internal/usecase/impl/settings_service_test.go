package impl

import (
	"context"
	"testing"
	"time"

	"panel/internal/domain/entity"
	"panel/internal/domain/repository"
	mockRepo "panel/internal/mocks/repository"
	mockSvc "panel/internal/mocks/service"
	"panel/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type settingsServiceMocks struct {
	settingsRepo    *mockRepo.MockSettingsRepository
	entitlementRepo *mockRepo.MockEntitlementRepository
	oauthSvc        *mockSvc.MockDiscordOAuthService
}

func newSettingsService(t *testing.T) (*settingsService, settingsServiceMocks) {
	t.Helper()

	m := settingsServiceMocks{
		settingsRepo:    mockRepo.NewMockSettingsRepository(t),
		entitlementRepo: mockRepo.NewMockEntitlementRepository(t),
		oauthSvc:        mockSvc.NewMockDiscordOAuthService(t),
	}

	uc := NewSettingsService(SettingsServiceParams{
		SettingsRepo:    m.settingsRepo,
		EntitlementRepo: m.entitlementRepo,
		OAuthService:    m.oauthSvc,
		Logger:          newTestLogger(),
	})

	return uc.(*settingsService), m
}

func expectAdmin(ctx context.Context, m settingsServiceMocks, guildID string) {
	m.oauthSvc.EXPECT().
		ListUserGuilds(ctx, "access-1").
		Return([]entity.UserGuild{{ID: guildID, Permissions: 0x8}}, nil)
}

func validTicketsInput() *usecase.UpdateTicketsInput {
	return &usecase.UpdateTicketsInput{
		CategoryMode:      entity.ChannelModeCreate,
		CategoryName:      "Tickets",
		LogChannelMode:    entity.ChannelModeCreate,
		LogChannelName:    "ticket-logs",
		ValidationEnabled: true,
		ModeratorRoles:    []string{"r-1"},
	}
}

func TestSettingsService_GetSettings_DefaultsWhenMissing(t *testing.T) {
	uc, m := newSettingsService(t)
	ctx := context.Background()

	m.settingsRepo.EXPECT().
		FindByGuildID(ctx, "g-1").
		Return(nil, repository.ErrSettingsNotFound)

	settings, err := uc.GetSettings(ctx, "g-1")
	require.NoError(t, err)
	assert.Equal(t, "g-1", settings.GuildID)
	assert.Equal(t, entity.ChannelModeCreate, settings.Tickets.CategoryMode)
	assert.NotEmpty(t, settings.Welcome.Message)
}

func TestSettingsService_UpdateWelcome_NonVIPBannerDropped(t *testing.T) {
	uc, m := newSettingsService(t)
	ctx := context.Background()
	session := testSession()

	expectAdmin(ctx, m, "g-1")

	m.entitlementRepo.EXPECT().
		FindByUserID(ctx, "user-1").
		Return(nil, repository.ErrEntitlementNotFound)

	// The banner is stripped but the rest of the payload still lands.
	m.settingsRepo.EXPECT().
		UpsertWelcome(ctx, "g-1", entity.WelcomeSettings{
			Enabled:   true,
			ChannelID: "c-1",
			Message:   "hi there",
			BannerURL: "",
		}).
		Return(nil)

	err := uc.UpdateWelcome(ctx, session, "g-1", &usecase.UpdateWelcomeInput{
		Enabled:   true,
		ChannelID: "c-1",
		Message:   "hi there",
		BannerURL: "https://cdn.example.com/banner.png",
	})
	require.NoError(t, err)
}

func TestSettingsService_UpdateWelcome_VIPBannerKept(t *testing.T) {
	uc, m := newSettingsService(t)
	ctx := context.Background()
	session := testSession()

	expectAdmin(ctx, m, "g-1")

	vipUntil := time.Now().Add(time.Hour)
	m.entitlementRepo.EXPECT().
		FindByUserID(ctx, "user-1").
		Return(&entity.UserEntitlement{UserID: "user-1", VIPExpiresAt: &vipUntil}, nil)

	m.settingsRepo.EXPECT().
		UpsertWelcome(ctx, "g-1", entity.WelcomeSettings{
			Enabled:   true,
			BannerURL: "https://cdn.example.com/banner.png",
		}).
		Return(nil)

	err := uc.UpdateWelcome(ctx, session, "g-1", &usecase.UpdateWelcomeInput{
		Enabled:   true,
		BannerURL: "https://cdn.example.com/banner.png",
	})
	require.NoError(t, err)
}

func TestSettingsService_UpdateWelcome_EmptyBannerSkipsEntitlementLookup(t *testing.T) {
	uc, m := newSettingsService(t)
	ctx := context.Background()

	expectAdmin(ctx, m, "g-1")

	m.settingsRepo.EXPECT().
		UpsertWelcome(ctx, "g-1", entity.WelcomeSettings{Message: "hello"}).
		Return(nil)

	err := uc.UpdateWelcome(ctx, testSession(), "g-1", &usecase.UpdateWelcomeInput{Message: "hello"})
	require.NoError(t, err)
}

func TestSettingsService_UpdateWelcome_InvalidBannerURL(t *testing.T) {
	uc, m := newSettingsService(t)
	ctx := context.Background()

	expectAdmin(ctx, m, "g-1")

	err := uc.UpdateWelcome(ctx, testSession(), "g-1", &usecase.UpdateWelcomeInput{
		BannerURL: "not a url",
	})
	require.Error(t, err)
	assertErrorCode(t, err, "INVALID_SETTINGS")
}

func TestSettingsService_UpdateWelcome_NonAdminRefused(t *testing.T) {
	uc, m := newSettingsService(t)
	ctx := context.Background()

	m.oauthSvc.EXPECT().
		ListUserGuilds(ctx, "access-1").
		Return([]entity.UserGuild{{ID: "g-1", Permissions: 0x40}}, nil)

	err := uc.UpdateWelcome(ctx, testSession(), "g-1", &usecase.UpdateWelcomeInput{Message: "hi"})
	require.Error(t, err)
	assertErrorCode(t, err, "GUILD_NOT_ACCESSIBLE")
}

func TestSettingsService_UpdateTickets_Valid(t *testing.T) {
	uc, m := newSettingsService(t)
	ctx := context.Background()

	expectAdmin(ctx, m, "g-1")

	input := validTicketsInput()
	m.settingsRepo.EXPECT().
		UpsertTickets(ctx, "g-1", entity.TicketSettings{
			CategoryMode:      entity.ChannelModeCreate,
			CategoryName:      "Tickets",
			LogChannelMode:    entity.ChannelModeCreate,
			LogChannelName:    "ticket-logs",
			ValidationEnabled: true,
			ModeratorRoles:    []string{"r-1"},
		}).
		Return(nil)

	require.NoError(t, uc.UpdateTickets(ctx, testSession(), "g-1", input))
}

func TestSettingsService_UpdateTickets_UnknownModeRefused(t *testing.T) {
	uc, m := newSettingsService(t)
	ctx := context.Background()

	expectAdmin(ctx, m, "g-1")

	input := validTicketsInput()
	input.CategoryMode = "auto"

	err := uc.UpdateTickets(ctx, testSession(), "g-1", input)
	require.Error(t, err)
	assertErrorCode(t, err, "INVALID_SETTINGS")
}

func TestSettingsService_UpdateTickets_CreateModeNeedsName(t *testing.T) {
	uc, m := newSettingsService(t)
	ctx := context.Background()

	expectAdmin(ctx, m, "g-1")

	input := validTicketsInput()
	input.CategoryName = ""

	err := uc.UpdateTickets(ctx, testSession(), "g-1", input)
	require.Error(t, err)
	assertErrorCode(t, err, "INVALID_SETTINGS")
}

func TestSettingsService_UpdateTickets_SelectModeNeedsChannelID(t *testing.T) {
	uc, m := newSettingsService(t)
	ctx := context.Background()

	expectAdmin(ctx, m, "g-1")

	input := validTicketsInput()
	input.LogChannelMode = entity.ChannelModeSelect
	input.LogChannelName = ""
	input.ExistingLogChannelID = ""

	err := uc.UpdateTickets(ctx, testSession(), "g-1", input)
	require.Error(t, err)
	assertErrorCode(t, err, "INVALID_SETTINGS")
}
