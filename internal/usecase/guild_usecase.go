package usecase

import (
	"context"

	"panel/internal/domain/entity"
)

// --- Output DTOs ---

// ManageViewOutput is everything the guild management page needs.
type ManageViewOutput struct {
	Guild    *entity.Guild
	Channels []entity.Channel
	Roles    []entity.Role
	Settings *entity.GuildSettings
	Grade    entity.Grade
}

// GuildUsecase defines the interface for guild listing and the management
// view assembly.
type GuildUsecase interface {
	// ListManageableGuilds returns the caller's guilds where they hold the
	// Administrator permission, in provider order, each annotated with
	// whether the bot is installed. An upstream failure surfaces as an
	// error, never as an empty list.
	ListManageableGuilds(ctx context.Context, session *entity.Session) ([]entity.GuildView, error)

	// AssembleManageView gathers guild metadata, channels, roles, settings
	// and the caller's tier for one guild. The caller must hold the
	// Administrator permission there and the bot must be reachable,
	// otherwise ErrGuildNotAccessible.
	AssembleManageView(ctx context.Context, session *entity.Session, guildID string) (*ManageViewOutput, error)
}
