package discord

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"panel/config"
	domainerrors "panel/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOAuthService(t *testing.T, handler http.Handler) *OAuthService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewOAuthService(&config.Config{Discord: &config.DiscordConfig{
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		RedirectURI:  "http://localhost:3000/callback",
		APIBaseURL:   server.URL,
	}})

	return svc.(*OAuthService)
}

func assertOAuthErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, code, appErr.ErrorCode())
}

func TestOAuthService_BuildAuthorizationURL(t *testing.T) {
	svc := newTestOAuthService(t, http.NotFoundHandler())

	raw := svc.BuildAuthorizationURL("state-1")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/oauth2/authorize", parsed.Path)
	assert.Equal(t, "client-1", parsed.Query().Get("client_id"))
	assert.Equal(t, "identify guilds", parsed.Query().Get("scope"))
	assert.Equal(t, "code", parsed.Query().Get("response_type"))
	assert.Equal(t, "state-1", parsed.Query().Get("state"))
}

func TestOAuthService_ValidateState_SingleUse(t *testing.T) {
	svc := newTestOAuthService(t, http.NotFoundHandler())

	svc.BuildAuthorizationURL("state-1")

	assert.True(t, svc.ValidateState("state-1"))
	// A replayed state must fail.
	assert.False(t, svc.ValidateState("state-1"))
	assert.False(t, svc.ValidateState("never-issued"))
}

func TestOAuthService_ExchangeCode(t *testing.T) {
	var gotForm url.Values
	svc := newTestOAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/oauth2/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-1","token_type":"Bearer","expires_in":604800}`))
	}))

	token, err := svc.ExchangeCode(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "access-1", token)

	assert.Equal(t, "authorization_code", gotForm.Get("grant_type"))
	assert.Equal(t, "code-1", gotForm.Get("code"))
	assert.Equal(t, "client-1", gotForm.Get("client_id"))
}

func TestOAuthService_ExchangeCode_ProviderRefusal(t *testing.T) {
	svc := newTestOAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))

	_, err := svc.ExchangeCode(context.Background(), "used-code")
	require.Error(t, err)
	assertOAuthErrorCode(t, err, "AUTH_EXCHANGE_FAILED")
}

func TestOAuthService_ExchangeCode_EmptyToken(t *testing.T) {
	svc := newTestOAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token_type":"Bearer"}`))
	}))

	_, err := svc.ExchangeCode(context.Background(), "code-1")
	require.Error(t, err)
	assertOAuthErrorCode(t, err, "AUTH_EXCHANGE_FAILED")
}

func TestOAuthService_FetchIdentity(t *testing.T) {
	svc := newTestOAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/@me", r.URL.Path)
		require.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u-1","username":"admin","avatar":"a1b2"}`))
	}))

	identity, err := svc.FetchIdentity(context.Background(), "access-1")
	require.NoError(t, err)
	assert.Equal(t, "u-1", identity.ID)
	assert.Equal(t, "admin", identity.Username)
	assert.Equal(t, "a1b2", identity.Avatar)
}

func TestOAuthService_FetchIdentity_Unauthorized(t *testing.T) {
	svc := newTestOAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"401: Unauthorized"}`, http.StatusUnauthorized)
	}))

	_, err := svc.FetchIdentity(context.Background(), "revoked")
	require.Error(t, err)
	assertOAuthErrorCode(t, err, "IDENTITY_FETCH_FAILED")
}

func TestOAuthService_ListUserGuilds_ParsesPermissionStrings(t *testing.T) {
	svc := newTestOAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/@me/guilds", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		// 4611686018427387911 exceeds exact float64 range; the string carries it losslessly.
		_, _ = w.Write([]byte(`[
			{"id":"g-1","name":"First","icon":"i1","owner":true,"permissions":"4611686018427387911"},
			{"id":"g-2","name":"Second","icon":"","owner":false,"permissions":"104324161"},
			{"id":"g-3","name":"Broken","icon":"","owner":false,"permissions":"not-a-number"}
		]`))
	}))

	guilds, err := svc.ListUserGuilds(context.Background(), "access-1")
	require.NoError(t, err)
	require.Len(t, guilds, 3)

	assert.Equal(t, uint64(4611686018427387911), guilds[0].Permissions)
	assert.True(t, guilds[0].IsAdmin())
	assert.True(t, guilds[0].Owner)

	assert.Equal(t, uint64(104324161), guilds[1].Permissions)

	// An unparsable bitmask degrades to no permissions, never to admin.
	assert.Equal(t, uint64(0), guilds[2].Permissions)
	assert.False(t, guilds[2].IsAdmin())

	// Provider order survives.
	assert.Equal(t, []string{"g-1", "g-2", "g-3"}, []string{guilds[0].ID, guilds[1].ID, guilds[2].ID})
}

func TestOAuthService_ListUserGuilds_UpstreamFailure(t *testing.T) {
	svc := newTestOAuthService(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"upstream"}`, http.StatusBadGateway)
	}))

	guilds, err := svc.ListUserGuilds(context.Background(), "access-1")
	require.Error(t, err)
	assert.Nil(t, guilds)
	assertOAuthErrorCode(t, err, "UPSTREAM_LIST_FAILED")
}
