package usecase

import (
	"context"

	"panel/internal/domain/entity"
)

// --- Input DTOs ---

// UpdateWelcomeInput is the welcome-namespace settings payload.
type UpdateWelcomeInput struct {
	Enabled   bool   `json:"enabled"`
	ChannelID string `json:"channelId"`
	Message   string `json:"message" validate:"max=2000"`
	BannerURL string `json:"bannerUrl" validate:"omitempty,url"`
}

// UpdateTicketsInput is the ticket-namespace settings payload. The mode pairs
// are cross-validated: a "create" mode requires a name, a "select" mode
// requires an existing channel id.
type UpdateTicketsInput struct {
	CategoryMode         string   `json:"categoryMode" validate:"required,oneof=create select"`
	CategoryName         string   `json:"categoryName" validate:"required_if=CategoryMode create,max=100"`
	ExistingCategoryID   string   `json:"existingCategoryId" validate:"required_if=CategoryMode select"`
	LogChannelMode       string   `json:"logChannelMode" validate:"required,oneof=create select"`
	LogChannelName       string   `json:"logChannelName" validate:"required_if=LogChannelMode create,max=100"`
	ExistingLogChannelID string   `json:"existingLogChannelId" validate:"required_if=LogChannelMode select"`
	ValidationEnabled    bool     `json:"validationEnabled"`
	ModeratorRoles       []string `json:"moderatorRoles" validate:"required"`
}

// SettingsUsecase defines the interface for namespaced guild settings
// updates. Each update touches only its own namespace.
type SettingsUsecase interface {
	// GetSettings loads the guild's settings with defaults substituted for
	// anything never configured.
	GetSettings(ctx context.Context, guildID string) (*entity.GuildSettings, error)

	// UpdateWelcome validates and persists the welcome namespace. The
	// banner URL is silently dropped unless the caller's tier is VIP.
	UpdateWelcome(ctx context.Context, session *entity.Session, guildID string, input *UpdateWelcomeInput) error

	// UpdateTickets validates and persists the tickets namespace.
	UpdateTickets(ctx context.Context, session *entity.Session, guildID string, input *UpdateTicketsInput) error
}
