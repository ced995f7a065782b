package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "panel/internal/delivery/context"
	"panel/internal/domain/entity"
	domainerrors "panel/internal/domain/errors"
	"panel/internal/domain/repository"
	"panel/internal/domain/service"
	"panel/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
)

// guildService implements the GuildUsecase interface.
type guildService struct {
	oauthService    service.DiscordOAuthService
	botService      service.DiscordBotService
	presenceRepo    repository.PresenceRepository
	settingsRepo    repository.SettingsRepository
	entitlementRepo repository.EntitlementRepository
	logger          *slog.Logger
}

// GuildServiceParams holds dependencies for guildService, injected by Fx.
type GuildServiceParams struct {
	fx.In

	OAuthService    service.DiscordOAuthService
	BotService      service.DiscordBotService
	PresenceRepo    repository.PresenceRepository
	SettingsRepo    repository.SettingsRepository
	EntitlementRepo repository.EntitlementRepository
	Logger          *slog.Logger
}

// NewGuildService is the constructor for guildService.
func NewGuildService(params GuildServiceParams) usecase.GuildUsecase {
	return &guildService{
		oauthService:    params.OAuthService,
		botService:      params.BotService,
		presenceRepo:    params.PresenceRepo,
		settingsRepo:    params.SettingsRepo,
		entitlementRepo: params.EntitlementRepo,
		logger:          params.Logger,
	}
}

func (srv *guildService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListManageableGuilds lists the caller's admin guilds in provider order,
// each annotated with whether the bot is installed. An upstream failure is
// an error; it must never read as "you have no servers".
func (srv *guildService) ListManageableGuilds(ctx context.Context, session *entity.Session) ([]entity.GuildView, error) {
	guilds, err := srv.oauthService.ListUserGuilds(ctx, session.AccessToken)
	if err != nil {
		srv.log(ctx).Warn("Guild list fetch failed", slog.String("userID", session.UserID), slog.Any("error", err))

		return nil, err
	}

	adminGuilds := make([]entity.UserGuild, 0, len(guilds))
	adminIDs := make([]string, 0, len(guilds))
	for _, g := range guilds {
		if !g.IsAdmin() {
			continue
		}
		adminGuilds = append(adminGuilds, g)
		adminIDs = append(adminIDs, g.ID)
	}

	present, err := srv.presenceRepo.FilterPresent(ctx, adminIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve bot presence")
	}

	views := make([]entity.GuildView, 0, len(adminGuilds))
	for _, g := range adminGuilds {
		views = append(views, entity.GuildView{
			ID:          g.ID,
			Name:        g.Name,
			Icon:        g.Icon,
			BotOnServer: present[g.ID],
		})
	}

	return views, nil
}

// AssembleManageView gathers everything the management page needs for one
// guild in a single parallel fan-out. Guild metadata is the primary fetch:
// if it fails, the whole view fails as not accessible. Channels, roles and
// the bot member are secondary and degrade to empty rather than sinking the
// page. Stored settings and the caller's tier load alongside the Discord
// fetches; their storage errors surface as-is.
func (srv *guildService) AssembleManageView(ctx context.Context, session *entity.Session, guildID string) (*usecase.ManageViewOutput, error) {
	if err := srv.requireAdmin(ctx, session, guildID); err != nil {
		return nil, err
	}

	var (
		guild     *entity.Guild
		channels  []entity.Channel
		roles     []entity.Role
		botMember *entity.GuildMember
		settings  *entity.GuildSettings
		grade     entity.Grade
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		if guild, err = srv.botService.FetchGuild(groupCtx, guildID); err != nil {
			srv.log(ctx).Warn("Guild fetch failed", slog.String("guildID", guildID), slog.Any("error", err))

			return domainerrors.ErrGuildNotAccessible.Wrap(err)
		}

		return nil
	})
	group.Go(func() error {
		var err error
		if channels, err = srv.botService.ListChannels(groupCtx, guildID); err != nil {
			srv.log(ctx).Warn("Channel list degraded to empty", slog.String("guildID", guildID), slog.Any("error", err))
			channels = nil
		}

		return nil
	})
	group.Go(func() error {
		var err error
		if roles, err = srv.botService.ListRoles(groupCtx, guildID); err != nil {
			srv.log(ctx).Warn("Role list degraded to empty", slog.String("guildID", guildID), slog.Any("error", err))
			roles = nil
		}

		return nil
	})
	group.Go(func() error {
		var err error
		if botMember, err = srv.botService.FetchBotMember(groupCtx, guildID); err != nil {
			srv.log(ctx).Warn("Bot member fetch degraded", slog.String("guildID", guildID), slog.Any("error", err))
			botMember = nil
		}

		return nil
	})
	group.Go(func() error {
		var err error
		settings, err = srv.loadSettingsOrDefaults(groupCtx, guildID)

		return err
	})
	group.Go(func() error {
		var err error
		grade, err = srv.resolveGrade(groupCtx, session.UserID)

		return err
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	roles = annotateManageableRoles(roles, botMember, guildID)

	return &usecase.ManageViewOutput{
		Guild:    guild,
		Channels: channels,
		Roles:    roles,
		Settings: settings,
		Grade:    grade,
	}, nil
}

// requireAdmin verifies the caller holds the Administrator permission in the
// guild. A guild the caller cannot administer looks the same as one that
// does not exist.
func (srv *guildService) requireAdmin(ctx context.Context, session *entity.Session, guildID string) error {
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

// annotateManageableRoles marks each role with whether the bot can manage
// it. Only roles strictly below the bot's highest role qualify; @everyone
// (the role sharing the guild's ID) and integration-managed roles never do.
func annotateManageableRoles(roles []entity.Role, botMember *entity.GuildMember, guildID string) []entity.Role {
	botTop := botHighestRolePosition(roles, botMember)

	annotated := make([]entity.Role, 0, len(roles))
	for _, role := range roles {
		if role.ID == guildID || role.Managed {
			continue
		}
		role.CanManage = role.Position < botTop

		annotated = append(annotated, role)
	}

	return annotated
}

// botHighestRolePosition returns the max position among the bot's roles, or
// 0 when the bot's member record is missing or it holds no roles.
func botHighestRolePosition(roles []entity.Role, botMember *entity.GuildMember) int {
	if botMember == nil {
		return 0
	}

	botRoles := make(map[string]bool, len(botMember.Roles))
	for _, id := range botMember.Roles {
		botRoles[id] = true
	}

	top := 0
	for _, role := range roles {
		if botRoles[role.ID] && role.Position > top {
			top = role.Position
		}
	}

	return top
}

func (srv *guildService) loadSettingsOrDefaults(ctx context.Context, guildID string) (*entity.GuildSettings, error) {
	settings, err := srv.settingsRepo.FindByGuildID(ctx, guildID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return entity.DefaultGuildSettings(guildID), nil
		}

		return nil, errors.Wrap(err, "failed to load guild settings")
	}

	return settings, nil
}

func (srv *guildService) resolveGrade(ctx context.Context, userID string) (entity.Grade, error) {
	entitlement, err := srv.entitlementRepo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrEntitlementNotFound) {
			return entity.GradeStandard, nil
		}

		return "", errors.Wrap(err, "failed to load entitlement")
	}

	return entitlement.GradeAt(time.Now()), nil
}
