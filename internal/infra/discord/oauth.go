// Package discord implements the provider clients. The OAuth half acts with
// tokens the user delegated; the bot half acts with the bot credential. The
// two never share credentials.
package discord

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"panel/config"
	"panel/internal/domain/entity"
	domainerrors "panel/internal/domain/errors"
	"panel/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultAPIBaseURL = "https://discord.com/api/v10"

const oauthScopes = "identify guilds"

// OAuthService handles the user-delegated Discord OAuth operations.
type OAuthService struct {
	clientID     string
	clientSecret string
	redirectURI  string
	baseURL      string
	client       *http.Client

	// State storage for CSRF protection
	stateStore map[string]time.Time
	stateMutex sync.Mutex
}

// NewOAuthService creates a new Discord OAuth service.
func NewOAuthService(cfg *config.Config) service.DiscordOAuthService {
	baseURL := cfg.Discord.APIBaseURL
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}

	return &OAuthService{
		clientID:     cfg.Discord.ClientID,
		clientSecret: cfg.Discord.ClientSecret,
		redirectURI:  cfg.Discord.RedirectURI,
		baseURL:      baseURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		stateStore:   make(map[string]time.Time),
	}
}

// storeState stores a state parameter with expiration time.
func (s *OAuthService) storeState(state string) {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	// State expires after 10 minutes
	s.stateStore[state] = time.Now().Add(10 * time.Minute)

	// Clean up expired states
	now := time.Now()
	for st, expiry := range s.stateStore {
		if now.After(expiry) {
			delete(s.stateStore, st)
		}
	}
}

// BuildAuthorizationURL constructs the Discord authorization URL with a state
// parameter for CSRF protection.
func (s *OAuthService) BuildAuthorizationURL(state string) string {
	s.storeState(state)

	params := url.Values{}
	params.Set("client_id", s.clientID)
	params.Set("redirect_uri", s.redirectURI)
	params.Set("scope", oauthScopes)
	params.Set("response_type", "code")
	params.Set("state", state)

	return s.baseURL + "/oauth2/authorize?" + params.Encode()
}

// ValidateState validates and consumes a state parameter. A state is single
// use: validating it removes it, so a replay fails.
func (s *OAuthService) ValidateState(state string) bool {
	s.stateMutex.Lock()
	defer s.stateMutex.Unlock()

	expiry, exists := s.stateStore[state]
	if !exists {
		return false
	}

	delete(s.stateStore, state)

	return time.Now().Before(expiry)
}

// ExchangeCode exchanges an authorization code for a delegated access token.
// The code is single use and must never appear in logs or error messages.
func (s *OAuthService) ExchangeCode(ctx context.Context, code string) (string, error) {
	data := url.Values{}
	data.Set("client_id", s.clientID)
	data.Set("client_secret", s.clientSecret)
	data.Set("code", code)
	data.Set("grant_type", "authorization_code")
	data.Set("redirect_uri", s.redirectURI)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/oauth2/token", strings.NewReader(data.Encode()))
	if err != nil {
		return "", domainerrors.ErrAuthExchangeFailed.Wrap(err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", domainerrors.ErrAuthExchangeFailed.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)

		return "", domainerrors.ErrAuthExchangeFailed.Wrap(errors.Errorf("token exchange returned status %d", resp.StatusCode))
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int    `json:"expires_in"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return "", domainerrors.ErrAuthExchangeFailed.Wrap(errors.Wrap(err, "failed to decode token response"))
	}

	if tokenResponse.AccessToken == "" {
		return "", domainerrors.ErrAuthExchangeFailed.Wrap(errors.New("token response carried no access token"))
	}

	return tokenResponse.AccessToken, nil
}

// FetchIdentity retrieves the authenticated user behind a delegated token.
func (s *OAuthService) FetchIdentity(ctx context.Context, accessToken string) (*service.DiscordIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/users/@me", nil)
	if err != nil {
		return nil, domainerrors.ErrIdentityFetchFailed.Wrap(err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domainerrors.ErrIdentityFetchFailed.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)

		return nil, domainerrors.ErrIdentityFetchFailed.Wrap(errors.Errorf("identity request returned status %d", resp.StatusCode))
	}

	var user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Avatar   string `json:"avatar"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, domainerrors.ErrIdentityFetchFailed.Wrap(errors.Wrap(err, "failed to decode identity response"))
	}

	if user.ID == "" {
		return nil, domainerrors.ErrIdentityFetchFailed.Wrap(errors.New("identity response carried no user id"))
	}

	return &service.DiscordIdentity{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
	}, nil
}

// ListUserGuilds returns every guild the user belongs to, preserving the
// provider's ordering.
func (s *OAuthService) ListUserGuilds(ctx context.Context, accessToken string) ([]entity.UserGuild, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/users/@me/guilds", nil)
	if err != nil {
		return nil, domainerrors.ErrUpstreamListFailed.Wrap(err)
	}

	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, domainerrors.ErrUpstreamListFailed.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)

		return nil, domainerrors.ErrUpstreamListFailed.Wrap(errors.Errorf("guild list request returned status %d", resp.StatusCode))
	}

	var raw []struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Icon        string `json:"icon"`
		Owner       bool   `json:"owner"`
		Permissions string `json:"permissions"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, domainerrors.ErrUpstreamListFailed.Wrap(errors.Wrap(err, "failed to decode guild list response"))
	}

	guilds := make([]entity.UserGuild, 0, len(raw))
	for _, g := range raw {
		// Permissions arrive as a decimal string because the bitmask can
		// exceed what a JSON number holds losslessly.
		perms, err := strconv.ParseUint(g.Permissions, 10, 64)
		if err != nil {
			perms = 0
		}

		guilds = append(guilds, entity.UserGuild{
			ID:          g.ID,
			Name:        g.Name,
			Icon:        g.Icon,
			Owner:       g.Owner,
			Permissions: perms,
		})
	}

	return guilds, nil
}
