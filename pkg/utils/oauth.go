package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jakechorley/shifttrack/internal/config"
	"github.com/jakechorley/shifttrack/pkg/db"
)

const (
	AuthPort     = 3000
	authTimeout  = 5 * time.Minute
	callbackPath = "/oauth/callback"
	tokenDirName = ".shifttrack/tokens"
	tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
)

// ScopeSheets lets report publishing create and overwrite spreadsheet tabs
const ScopeSheets = "https://www.googleapis.com/auth/spreadsheets"

var (
	tokenCache   = map[string]*oauth2.Token{}
	tokenCacheMu sync.Mutex
)

func requiredScopes() []string {
	return []string{ScopeSheets}
}

func tokenKey(env string) string {
	return "token-" + env
}

// GetOAuthConfig creates an OAuth2 config from the installed-app client file
func GetOAuthConfig(oauthCfg *config.OAuthClientConfig) (*oauth2.Config, error) {
	oauthConfigJSON, err := json.Marshal(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal oauth config: %w", err)
	}

	googleConfig, err := google.ConfigFromJSON(oauthConfigJSON, requiredScopes()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create google config: %w", err)
	}

	googleConfig.RedirectURL = fmt.Sprintf("http://localhost:%d%s", AuthPort, callbackPath)

	return googleConfig, nil
}

// OpenTokenStore returns the file store that holds Google tokens, one key
// per environment, under ~/.shifttrack/tokens
func OpenTokenStore() (*db.FileStore, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return db.NewFileStore(filepath.Join(homeDir, tokenDirName))
}

// validateTokenScopes asks Google's tokeninfo endpoint which scopes a token
// carries and fails if any required scope is missing
func validateTokenScopes(ctx context.Context, token *oauth2.Token) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tokenInfoURL+"?access_token="+token.AccessToken, nil)
	if err != nil {
		return fmt.Errorf("failed to create tokeninfo request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call tokeninfo endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tokeninfo request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var tokenInfo struct {
		Scope string `json:"scope"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenInfo); err != nil {
		return fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	granted := strings.Fields(tokenInfo.Scope)
	var missing []string
	for _, required := range requiredScopes() {
		if !slices.Contains(granted, required) {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("token is missing required scopes: %v", missing)
	}

	return nil
}

// GetTokenWithFlow returns a usable Google token for env. A stored token is
// reused or refreshed when possible; otherwise the browser consent flow runs
// and the new token is stored. Only one flow runs at a time.
func GetTokenWithFlow(ctx context.Context, oauthConfig *oauth2.Config, store db.KeyValueStore, env string, logger *zap.Logger) (*oauth2.Token, error) {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()

	if cached := tokenCache[env]; cached != nil && cached.Valid() {
		return cached, nil
	}

	stored, err := LoadToken(ctx, store, env)
	if err != nil {
		logger.Warn("Failed to load stored token", zap.Error(err))
	}

	if stored != nil {
		token, err := reuseToken(ctx, oauthConfig, stored)
		if err == nil {
			if token.AccessToken != stored.AccessToken {
				logger.Debug("Token refreshed")
				if err := SaveToken(ctx, store, env, token); err != nil {
					logger.Warn("Failed to save refreshed token", zap.Error(err))
				}
			}
			tokenCache[env] = token
			return token, nil
		}
		logger.Info("Stored token cannot be used, starting new OAuth flow", zap.Error(err))
		if err := DeleteToken(ctx, store, env); err != nil {
			logger.Warn("Failed to delete stored token", zap.Error(err))
		}
	}

	authURL := oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	fmt.Printf("\nVisit this URL to authorize ShiftTrack:\n%s\n\n", authURL)

	code, err := listenForAuthCallback(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get authorization code: %w", err)
	}

	token, err := oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	if err := validateTokenScopes(ctx, token); err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	if err := SaveToken(ctx, store, env, token); err != nil {
		logger.Warn("Failed to save token", zap.Error(err))
	}

	tokenCache[env] = token
	return token, nil
}

// reuseToken returns stored if it is still valid, or a refreshed copy
func reuseToken(ctx context.Context, oauthConfig *oauth2.Config, stored *oauth2.Token) (*oauth2.Token, error) {
	token := stored
	if !stored.Valid() {
		if stored.RefreshToken == "" {
			return nil, errors.New("token expired without a refresh token")
		}
		refreshed, err := oauthConfig.TokenSource(ctx, stored).Token()
		if err != nil {
			return nil, fmt.Errorf("failed to refresh token: %w", err)
		}
		token = refreshed
	}
	if err := validateTokenScopes(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// listenForAuthCallback serves the redirect URL until Google sends the code
func listenForAuthCallback(ctx context.Context) (string, error) {
	codeChan := make(chan string, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errChan <- errors.New("no authorization code received")
			http.Error(w, "Authorization failed", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>ShiftTrack</title></head><body><h1>Authorization successful</h1><p>You can close this window.</p></body></html>`)
		codeChan <- code
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", AuthPort),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	timeoutCtx, cancel := context.WithTimeout(ctx, authTimeout)
	defer cancel()

	var code string
	var authErr error

	select {
	case code = <-codeChan:
	case authErr = <-errChan:
	case <-timeoutCtx.Done():
		authErr = fmt.Errorf("authorization timeout after %v", authTimeout)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	server.Shutdown(shutdownCtx)

	if authErr != nil {
		return "", authErr
	}
	return code, nil
}

// ClearToken forgets the in-memory token for env
func ClearToken(env string) {
	tokenCacheMu.Lock()
	defer tokenCacheMu.Unlock()
	delete(tokenCache, env)
}

// LoadToken reads the stored token for env. A missing token is not an error.
func LoadToken(ctx context.Context, store db.KeyValueStore, env string) (*oauth2.Token, error) {
	data, err := store.Get(ctx, tokenKey(env))
	if errors.Is(err, db.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse stored token: %w", err)
	}
	return &token, nil
}

// SaveToken stores the token for env
func SaveToken(ctx context.Context, store db.KeyValueStore, env string, token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	return store.Set(ctx, tokenKey(env), data)
}

// DeleteToken removes the stored token for env
func DeleteToken(ctx context.Context, store db.KeyValueStore, env string) error {
	return store.Delete(ctx, tokenKey(env))
}
