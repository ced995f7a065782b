package entity

import "time"

// Channel mode values for ticket category and log channel configuration.
const (
	ChannelModeCreate = "create"
	ChannelModeSelect = "select"
)

// WelcomeSettings is the welcome-message namespace of a guild's configuration.
type WelcomeSettings struct {
	Enabled   bool   `json:"enabled"`
	ChannelID string `json:"channelId"`
	Message   string `json:"message"`
	// BannerURL is a VIP-gated field; writes from non-VIP callers drop it.
	BannerURL string `json:"bannerUrl"`
}

// TicketSettings is the ticket-system namespace of a guild's configuration.
type TicketSettings struct {
	CategoryMode         string   `json:"categoryMode"`
	CategoryName         string   `json:"categoryName"`
	ExistingCategoryID   string   `json:"existingCategoryId"`
	LogChannelMode       string   `json:"logChannelMode"`
	LogChannelName       string   `json:"logChannelName"`
	ExistingLogChannelID string   `json:"existingLogChannelId"`
	ValidationEnabled    bool     `json:"validationEnabled"`
	ModeratorRoles       []string `json:"moderatorRoles"`
}

// GuildSettings is the per-guild configuration document. Each namespace is
// independently upsertable: writing one must not disturb the other.
type GuildSettings struct {
	GuildID   string
	Welcome   WelcomeSettings
	Tickets   TicketSettings
	UpdatedAt time.Time
}

// DefaultGuildSettings returns a settings document with every field at its
// default, so a view never sees a missing namespace.
func DefaultGuildSettings(guildID string) *GuildSettings {
	return &GuildSettings{
		GuildID: guildID,
		Welcome: WelcomeSettings{
			Message: "Welcome {user} to {server}!",
		},
		Tickets: TicketSettings{
			CategoryMode:   ChannelModeCreate,
			CategoryName:   "Tickets",
			LogChannelMode: ChannelModeCreate,
			LogChannelName: "ticket-logs",
			ModeratorRoles: []string{},
		},
	}
}
