package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"panel/config"
	"panel/internal/domain/entity"
	domainerrors "panel/internal/domain/errors"
	"panel/internal/domain/service"

	"github.com/pkg/errors"
)

// BotService performs elevated guild reads with the bot credential.
type BotService struct {
	botToken string
	baseURL  string
	client   *http.Client
}

// NewBotService creates a new bot-credential Discord client.
func NewBotService(cfg *config.Config) service.DiscordBotService {
	baseURL := cfg.Discord.APIBaseURL
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}

	return &BotService{
		botToken: cfg.Discord.BotToken,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// get issues an authenticated GET and decodes the JSON body into out.
// A 404 or 403 means the bot cannot see the guild; both map to
// ErrGuildNotAccessible so the caller need not distinguish them.
func (s *BotService) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create guild request")
	}

	req.Header.Set("Authorization", "Bot "+s.botToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return domainerrors.ErrUpstreamListFailed.Wrap(err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusForbidden:
		io.Copy(io.Discard, resp.Body)

		return domainerrors.ErrGuildNotAccessible.WrapMessage(path)
	default:
		io.Copy(io.Discard, resp.Body)

		return domainerrors.ErrUpstreamListFailed.Wrap(errors.Errorf("guild request returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domainerrors.ErrUpstreamListFailed.Wrap(errors.Wrap(err, "failed to decode guild response"))
	}

	return nil
}

// FetchGuild loads guild metadata. Failing here means the guild is not
// accessible to the bot at all.
func (s *BotService) FetchGuild(ctx context.Context, guildID string) (*entity.Guild, error) {
	var raw struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Icon    string `json:"icon"`
		OwnerID string `json:"owner_id"`
	}

	if err := s.get(ctx, "/guilds/"+guildID, &raw); err != nil {
		return nil, err
	}

	return &entity.Guild{
		ID:      raw.ID,
		Name:    raw.Name,
		Icon:    raw.Icon,
		OwnerID: raw.OwnerID,
	}, nil
}

// ListChannels returns the guild's channels.
func (s *BotService) ListChannels(ctx context.Context, guildID string) ([]entity.Channel, error) {
	var raw []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Type     int    `json:"type"`
		ParentID string `json:"parent_id"`
	}

	if err := s.get(ctx, "/guilds/"+guildID+"/channels", &raw); err != nil {
		return nil, err
	}

	channels := make([]entity.Channel, 0, len(raw))
	for _, c := range raw {
		channels = append(channels, entity.Channel{
			ID:       c.ID,
			Name:     c.Name,
			Type:     c.Type,
			ParentID: c.ParentID,
		})
	}

	return channels, nil
}

// ListRoles returns the guild's roles.
func (s *BotService) ListRoles(ctx context.Context, guildID string) ([]entity.Role, error) {
	var raw []struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Color    int    `json:"color"`
		Position int    `json:"position"`
		Managed  bool   `json:"managed"`
	}

	if err := s.get(ctx, "/guilds/"+guildID+"/roles", &raw); err != nil {
		return nil, err
	}

	roles := make([]entity.Role, 0, len(raw))
	for _, r := range raw {
		roles = append(roles, entity.Role{
			ID:       r.ID,
			Name:     r.Name,
			Color:    r.Color,
			Position: r.Position,
			Managed:  r.Managed,
		})
	}

	return roles, nil
}

// FetchBotMember returns the bot's own member record in the guild.
func (s *BotService) FetchBotMember(ctx context.Context, guildID string) (*entity.GuildMember, error) {
	var raw struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Roles []string `json:"roles"`
	}

	if err := s.get(ctx, "/guilds/"+guildID+"/members/@me", &raw); err != nil {
		return nil, err
	}

	return &entity.GuildMember{
		UserID: raw.User.ID,
		Roles:  raw.Roles,
	}, nil
}
