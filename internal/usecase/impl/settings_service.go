package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "panel/internal/delivery/context"
	"panel/internal/domain/entity"
	domainerrors "panel/internal/domain/errors"
	"panel/internal/domain/repository"
	"panel/internal/domain/service"
	"panel/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// settingsService implements the SettingsUsecase interface.
type settingsService struct {
	settingsRepo    repository.SettingsRepository
	entitlementRepo repository.EntitlementRepository
	oauthService    service.DiscordOAuthService
	validate        *validator.Validate
	logger          *slog.Logger
}

// SettingsServiceParams holds dependencies for settingsService, injected by Fx.
type SettingsServiceParams struct {
	fx.In

	SettingsRepo    repository.SettingsRepository
	EntitlementRepo repository.EntitlementRepository
	OAuthService    service.DiscordOAuthService
	Logger          *slog.Logger
}

// NewSettingsService is the constructor for settingsService.
func NewSettingsService(params SettingsServiceParams) usecase.SettingsUsecase {
	return &settingsService{
		settingsRepo:    params.SettingsRepo,
		entitlementRepo: params.EntitlementRepo,
		oauthService:    params.OAuthService,
		validate:        validator.New(),
		logger:          params.Logger,
	}
}

func (srv *settingsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetSettings loads the guild's settings with defaults substituted.
func (srv *settingsService) GetSettings(ctx context.Context, guildID string) (*entity.GuildSettings, error) {
	settings, err := srv.settingsRepo.FindByGuildID(ctx, guildID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return entity.DefaultGuildSettings(guildID), nil
		}

		return nil, errors.Wrap(err, "failed to load guild settings")
	}

	return settings, nil
}

// UpdateWelcome validates and persists the welcome namespace only. A banner
// URL from a non-VIP caller is dropped, not refused: the rest of the payload
// still applies.
func (srv *settingsService) UpdateWelcome(ctx context.Context, session *entity.Session, guildID string, input *usecase.UpdateWelcomeInput) error {
	if err := srv.requireAdmin(ctx, session, guildID); err != nil {
		return err
	}

	if err := srv.validateInput(input); err != nil {
		return err
	}

	welcome := entity.WelcomeSettings{
		Enabled:   input.Enabled,
		ChannelID: input.ChannelID,
		Message:   input.Message,
		BannerURL: input.BannerURL,
	}

	if welcome.BannerURL != "" {
		vip, err := srv.isVIP(ctx, session.UserID)
		if err != nil {
			return err
		}
		if !vip {
			srv.log(ctx).Debug("Dropping banner URL for non-VIP caller", slog.String("userID", session.UserID), slog.String("guildID", guildID))
			welcome.BannerURL = ""
		}
	}

	if err := srv.settingsRepo.UpsertWelcome(ctx, guildID, welcome); err != nil {
		srv.log(ctx).Error("Failed to save welcome settings", slog.String("guildID", guildID), slog.Any("error", err))

		return errors.Wrap(err, "failed to save welcome settings")
	}

	return nil
}

// UpdateTickets validates and persists the tickets namespace only.
func (srv *settingsService) UpdateTickets(ctx context.Context, session *entity.Session, guildID string, input *usecase.UpdateTicketsInput) error {
	if err := srv.requireAdmin(ctx, session, guildID); err != nil {
		return err
	}

	if err := srv.validateInput(input); err != nil {
		return err
	}

	tickets := entity.TicketSettings{
		CategoryMode:         input.CategoryMode,
		CategoryName:         input.CategoryName,
		ExistingCategoryID:   input.ExistingCategoryID,
		LogChannelMode:       input.LogChannelMode,
		LogChannelName:       input.LogChannelName,
		ExistingLogChannelID: input.ExistingLogChannelID,
		ValidationEnabled:    input.ValidationEnabled,
		ModeratorRoles:       input.ModeratorRoles,
	}

	if err := srv.settingsRepo.UpsertTickets(ctx, guildID, tickets); err != nil {
		srv.log(ctx).Error("Failed to save ticket settings", slog.String("guildID", guildID), slog.Any("error", err))

		return errors.Wrap(err, "failed to save ticket settings")
	}

	return nil
}

// validateInput runs the struct rules, turning the first violation into an
// INVALID_SETTINGS refusal that names the field and rule. No write happens
// on any violation.
func (srv *settingsService) validateInput(input any) error {
	err := srv.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]

		return domainerrors.ErrInvalidSettings.
			WithDetails(fmt.Sprintf("field %s violates rule %s", first.Field(), first.Tag()))
	}

	return domainerrors.ErrInvalidSettings.Wrap(err)
}

// requireAdmin mirrors the management-view access rule: settings writes need
// the Administrator permission in the target guild.
func (srv *settingsService) requireAdmin(ctx context.Context, session *entity.Session, guildID string) error {
	guilds, err := srv.oauthService.ListUserGuilds(ctx, session.AccessToken)
	if err != nil {
		return err
	}

	for _, g := range guilds {
		if g.ID == guildID {
			if g.IsAdmin() {
				return nil
			}

			break
		}
	}

	return domainerrors.ErrGuildNotAccessible.WrapMessage("caller is not an administrator of this guild")
}

func (srv *settingsService) isVIP(ctx context.Context, userID string) (bool, error) {
	entitlement, err := srv.entitlementRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEntitlementNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to load entitlement")
	}

	return entitlement.GradeAt(time.Now()) == entity.GradeVIP, nil
}
