package webhookclient

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCredentials configures an OAuth2 client-credentials grant in front
// of the webhooks
type ClientCredentials struct {
	TokenURL     string
	ClientID     string
	ClientSecret string
	Scopes       []string
}

// NewAuthenticatedHTTPClient returns an http.Client that attaches a bearer
// token obtained with the client-credentials grant and refreshes it on expiry
func NewAuthenticatedHTTPClient(ctx context.Context, creds ClientCredentials, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	cfg := &clientcredentials.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		TokenURL:     creds.TokenURL,
		Scopes:       creds.Scopes,
	}
	// the token endpoint shares the timeout
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: timeout})

	client := cfg.Client(ctx)
	client.Timeout = timeout
	return client
}
