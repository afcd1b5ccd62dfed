package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jakechorley/shifttrack/internal/config"
	"github.com/jakechorley/shifttrack/pkg/db"
)

func TestGetOAuthConfig(t *testing.T) {
	cfg := &config.OAuthClientConfig{
		Installed: config.OAuthInstalled{
			ClientID:     "shifttrack.apps.googleusercontent.com",
			AuthURI:      "https://accounts.google.com/o/oauth2/auth",
			TokenURI:     "https://oauth2.googleapis.com/token",
			ClientSecret: "secret",
			RedirectURIs: []string{"http://localhost"},
		},
	}

	oauthConfig, err := GetOAuthConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "shifttrack.apps.googleusercontent.com", oauthConfig.ClientID)
	assert.Equal(t, []string{ScopeSheets}, oauthConfig.Scopes)
	assert.Equal(t, "http://localhost:3000/oauth/callback", oauthConfig.RedirectURL)
}

func TestTokenPersistence(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()

	token, err := LoadToken(ctx, store, "test")
	require.NoError(t, err)
	assert.Nil(t, token)

	saved := &oauth2.Token{AccessToken: "abc", RefreshToken: "def", Expiry: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, SaveToken(ctx, store, "test", saved))

	loaded, err := LoadToken(ctx, store, "test")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "abc", loaded.AccessToken)
	assert.Equal(t, "def", loaded.RefreshToken)
	assert.True(t, saved.Expiry.Equal(loaded.Expiry))

	other, err := LoadToken(ctx, store, "prod")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, DeleteToken(ctx, store, "test"))
	gone, err := LoadToken(ctx, store, "test")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestLoadToken_Corrupt(t *testing.T) {
	ctx := context.Background()
	store := db.NewMemoryStore()
	require.NoError(t, store.Set(ctx, "token-test", []byte("{not json")))

	_, err := LoadToken(ctx, store, "test")
	assert.Error(t, err)
}

func TestReuseToken_ExpiredWithoutRefresh(t *testing.T) {
	expired := &oauth2.Token{AccessToken: "old", Expiry: time.Now().Add(-time.Hour)}

	_, err := reuseToken(context.Background(), &oauth2.Config{}, expired)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "without a refresh token")
}
