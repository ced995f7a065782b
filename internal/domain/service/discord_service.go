// Package service declares the provider-facing interfaces the use cases
// depend on; concrete clients live under internal/infra.
package service

import (
	"context"

	"panel/internal/domain/entity"
)

// DiscordIdentity is the authenticated user as reported by the provider.
type DiscordIdentity struct {
	ID       string // Provider user ID (snowflake).
	Username string
	Avatar   string // Avatar hash, may be empty.
}

// DiscordOAuthService is the user-delegated half of the Discord client.
// Every method here acts with a token the user consented to; none of them
// ever receive the bot credential.
type DiscordOAuthService interface {
	// BuildAuthorizationURL constructs the authorize redirect with a state
	// nonce for CSRF protection.
	BuildAuthorizationURL(state string) string

	// ValidateState consumes a state nonce, returning false for unknown,
	// expired, or replayed values.
	ValidateState(state string) bool

	// ExchangeCode trades a single-use authorization code for a delegated
	// access token. The code must never be logged or retried.
	ExchangeCode(ctx context.Context, code string) (string, error)

	// FetchIdentity loads the authenticated user behind the token.
	FetchIdentity(ctx context.Context, accessToken string) (*DiscordIdentity, error)

	// ListUserGuilds returns every guild the user belongs to, in provider
	// order, with the raw permission bitmask parsed into a uint64.
	ListUserGuilds(ctx context.Context, accessToken string) ([]entity.UserGuild, error)
}

// DiscordBotService is the bot-credential half of the Discord client, used
// for the elevated reads the delegated token cannot perform.
type DiscordBotService interface {
	// FetchGuild loads guild metadata, failing when the bot is not a member.
	FetchGuild(ctx context.Context, guildID string) (*entity.Guild, error)

	// ListChannels returns the guild's channels.
	ListChannels(ctx context.Context, guildID string) ([]entity.Channel, error)

	// ListRoles returns the guild's roles.
	ListRoles(ctx context.Context, guildID string) ([]entity.Role, error)

	// FetchBotMember returns the bot's own member record in the guild.
	FetchBotMember(ctx context.Context, guildID string) (*entity.GuildMember, error)
}
