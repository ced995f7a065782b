package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"panel/internal/domain/entity"

	"github.com/pkg/errors"
)

// WelcomeColumn stores the welcome namespace as one JSONB column, so an
// upsert of this namespace is a single-column write that cannot touch the
// tickets column.
type WelcomeColumn entity.WelcomeSettings

// Value implements driver.Valuer for JSONB storage.
func (c WelcomeColumn) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal welcome settings")
	}

	return string(b), nil
}

// Scan implements sql.Scanner for JSONB storage.
func (c *WelcomeColumn) Scan(value any) error {
	return scanJSONColumn(value, c, "welcome settings")
}

// TicketsColumn stores the tickets namespace as one JSONB column.
type TicketsColumn entity.TicketSettings

// Value implements driver.Valuer for JSONB storage.
func (c TicketsColumn) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal ticket settings")
	}

	return string(b), nil
}

// Scan implements sql.Scanner for JSONB storage.
func (c *TicketsColumn) Scan(value any) error {
	return scanJSONColumn(value, c, "ticket settings")
}

func scanJSONColumn(value, target any, what string) error {
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.Errorf("unsupported column type %T for %s", value, what)
	}

	if len(raw) == 0 {
		return nil
	}

	return errors.Wrapf(json.Unmarshal(raw, target), "failed to unmarshal %s", what)
}

// GuildSettingsModel mirrors the 'guild_settings' table, one row per guild
// with one JSONB column per namespace.
type GuildSettingsModel struct {
	GuildID   string        `gorm:"type:varchar(32);primaryKey"`
	Welcome   WelcomeColumn `gorm:"type:jsonb;not null;default:'{}'"`
	Tickets   TicketsColumn `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (GuildSettingsModel) TableName() string {
	return "guild_settings"
}

// BotPresenceModel mirrors the 'bot_guilds' table. Rows are written by the
// bot process; the panel only reads them for membership tests.
type BotPresenceModel struct {
	GuildID   string `gorm:"type:varchar(32);primaryKey"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (BotPresenceModel) TableName() string {
	return "bot_guilds"
}
