package entity

// PermissionAdministrator is bit 3 of the Discord permission bitmask.
// The raw field can exceed float precision, so it is always parsed into a
// uint64 before testing.
const PermissionAdministrator uint64 = 0x8

// UserGuild is one entry of the guild list returned for a delegated token.
type UserGuild struct {
	ID          string
	Name        string
	Icon        string
	Owner       bool
	Permissions uint64
}

// IsAdmin reports whether the member holds the Administrator permission.
func (g *UserGuild) IsAdmin() bool {
	return g.Permissions&PermissionAdministrator != 0
}

// GuildView is a manageable guild as shown on the dashboard: an admin guild
// annotated with whether the bot is installed there.
type GuildView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	BotOnServer bool   `json:"botOnServer"`
}

// Guild is the metadata of a single guild fetched with the bot credential.
type Guild struct {
	ID      string
	Name    string
	Icon    string
	OwnerID string
}

// Channel is a guild channel as needed by the management view.
type Channel struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     int    `json:"type"`
	ParentID string `json:"parentId"`
}

// Discord channel types referenced by the management view.
const (
	ChannelTypeText     = 0
	ChannelTypeCategory = 4
)

// Role is a guild role annotated with whether the bot can manage it.
type Role struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    int    `json:"color"`
	Position int    `json:"position"`
	Managed  bool   `json:"-"`
	// CanManage holds only when the role sits strictly below the bot's
	// highest role; a role at the same position is out of reach.
	CanManage bool `json:"canManage"`
}

// GuildMember is the bot's own member record, used to learn its role set.
type GuildMember struct {
	UserID string
	Roles  []string
}
