package postgres

import (
	"context"

	"panel/internal/domain/entity"
	"panel/internal/domain/repository"
	"panel/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingsRepository implements the domain.SettingsRepository interface.
// Each namespace lives in its own JSONB column, so a namespace upsert is a
// single-column write and cannot clobber a concurrent write to the sibling.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository is the constructor for settingsRepository.
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

// FindByGuildID retrieves the settings document for one guild.
func (repo *settingsRepository) FindByGuildID(ctx context.Context, guildID string) (*entity.GuildSettings, error) {
	var settingsM model.GuildSettingsModel
	err := repo.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		First(&settingsM).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrSettingsNotFound
		}

		return nil, wrapStorageError(err, "failed to find guild settings")
	}

	return toSettingsDomain(&settingsM), nil
}

// UpsertWelcome writes only the welcome column.
func (repo *settingsRepository) UpsertWelcome(ctx context.Context, guildID string, welcome entity.WelcomeSettings) error {
	settingsM := &model.GuildSettingsModel{
		GuildID: guildID,
		Welcome: model.WelcomeColumn(welcome),
		Tickets: model.TicketsColumn(entity.DefaultGuildSettings(guildID).Tickets),
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"welcome", "updated_at"}),
		}).
		Create(settingsM).Error

	return wrapStorageError(err, "failed to upsert welcome settings")
}

// UpsertTickets writes only the tickets column.
func (repo *settingsRepository) UpsertTickets(ctx context.Context, guildID string, tickets entity.TicketSettings) error {
	settingsM := &model.GuildSettingsModel{
		GuildID: guildID,
		Welcome: model.WelcomeColumn(entity.DefaultGuildSettings(guildID).Welcome),
		Tickets: model.TicketsColumn(tickets),
	}

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"tickets", "updated_at"}),
		}).
		Create(settingsM).Error

	return wrapStorageError(err, "failed to upsert ticket settings")
}

// presenceRepository implements the domain.PresenceRepository interface.
type presenceRepository struct {
	db *gorm.DB
}

// NewPresenceRepository is the constructor for presenceRepository.
func NewPresenceRepository(db *gorm.DB) repository.PresenceRepository {
	return &presenceRepository{db: db}
}

// FilterPresent returns the subset of guildIDs that have a presence row.
// Stale-by-a-few-seconds reads are acceptable here; the bot process is the
// only writer.
func (repo *presenceRepository) FilterPresent(ctx context.Context, guildIDs []string) (map[string]bool, error) {
	present := make(map[string]bool, len(guildIDs))
	if len(guildIDs) == 0 {
		return present, nil
	}

	var ids []string
	err := repo.db.WithContext(ctx).
		Model(&model.BotPresenceModel{}).
		Where("guild_id IN ?", guildIDs).
		Pluck("guild_id", &ids).Error
	if err != nil {
		return nil, wrapStorageError(err, "failed to query bot presence")
	}

	for _, id := range ids {
		present[id] = true
	}

	return present, nil
}

// --- Mapper Functions ---

// toSettingsDomain converts a GORM model to a domain entity, substituting
// defaults for any field a namespace never stored.
func toSettingsDomain(data *model.GuildSettingsModel) *entity.GuildSettings {
	if data == nil {
		return nil
	}

	settings := &entity.GuildSettings{
		GuildID:   data.GuildID,
		Welcome:   entity.WelcomeSettings(data.Welcome),
		Tickets:   entity.TicketSettings(data.Tickets),
		UpdatedAt: data.UpdatedAt,
	}

	defaults := entity.DefaultGuildSettings(data.GuildID)
	if settings.Welcome.Message == "" {
		settings.Welcome.Message = defaults.Welcome.Message
	}
	if settings.Tickets.CategoryMode == "" {
		settings.Tickets.CategoryMode = defaults.Tickets.CategoryMode
	}
	if settings.Tickets.CategoryName == "" {
		settings.Tickets.CategoryName = defaults.Tickets.CategoryName
	}
	if settings.Tickets.LogChannelMode == "" {
		settings.Tickets.LogChannelMode = defaults.Tickets.LogChannelMode
	}
	if settings.Tickets.LogChannelName == "" {
		settings.Tickets.LogChannelName = defaults.Tickets.LogChannelName
	}
	if settings.Tickets.ModeratorRoles == nil {
		settings.Tickets.ModeratorRoles = []string{}
	}

	return settings
}
