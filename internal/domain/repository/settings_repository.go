package repository

import (
	"context"

	"panel/internal/domain/entity"
)

// SettingsRepository stores per-guild configuration documents. Each
// namespace is written independently: upserting one namespace must leave
// the sibling namespace byte-for-byte untouched.
type SettingsRepository interface {
	// FindByGuildID returns ErrSettingsNotFound when the guild has no
	// document yet; callers substitute defaults.
	FindByGuildID(ctx context.Context, guildID string) (*entity.GuildSettings, error)

	// UpsertWelcome writes only the welcome namespace.
	UpsertWelcome(ctx context.Context, guildID string, welcome entity.WelcomeSettings) error

	// UpsertTickets writes only the tickets namespace.
	UpsertTickets(ctx context.Context, guildID string, tickets entity.TicketSettings) error
}

// PresenceRepository reads the bot-presence index. The rows are written by
// the external bot process; the panel only performs membership tests.
type PresenceRepository interface {
	// FilterPresent returns the subset of guildIDs the bot is installed on.
	FilterPresent(ctx context.Context, guildIDs []string) (map[string]bool, error)
}
