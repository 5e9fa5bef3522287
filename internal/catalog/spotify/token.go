package spotify

import (
	"context"
	"net/http"

	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/listenupapp/releaseradar/internal/errors"
)

// TokenProvider acquires app tokens with the client-credentials grant.
type TokenProvider struct {
	cfg  clientcredentials.Config
	http *http.Client
}

// NewTokenProvider creates a provider. An empty tokenURL uses Spotify's
// accounts service. httpClient may be nil.
func NewTokenProvider(clientID, clientSecret, tokenURL string, httpClient *http.Client) *TokenProvider {
	if tokenURL == "" {
		tokenURL = spotifyauth.TokenURL
	}
	return &TokenProvider{
		cfg: clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		},
		http: httpClient,
	}
}

// Token returns nil, nil when either credential is missing.
func (p *TokenProvider) Token(ctx context.Context) (*oauth2.Token, error) {
	if p.cfg.ClientID == "" || p.cfg.ClientSecret == "" {
		return nil, nil
	}
	if p.http != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.http)
	}
	tok, err := p.cfg.Token(ctx)
	if err != nil {
		return nil, errors.Transport(err, "client credentials token request failed")
	}
	return tok, nil
}
