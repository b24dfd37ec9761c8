// Package gcal wraps the Google Calendar API behind the small surface the
// syncer needs: an authorized service, event listing and the three mutating
// calls, all scoped to one target calendar.
package gcal

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// TokenStore persists the OAuth token between runs and across refreshes.
type TokenStore interface {
	LoadToken() (*oauth2.Token, error)
	SaveToken(*oauth2.Token) error
}

// OAuthConfig reads the Google client credentials file and builds the OAuth
// configuration with full calendar scope.
func OAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", credentialsPath, err)
	}
	conf, err := google.ConfigFromJSON(b, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file %s: %w", credentialsPath, err)
	}
	return conf, nil
}

// NewService builds an authorized calendar service out of the stored token.
// The token source refreshes expired tokens on its own and writes every
// refreshed token back to the store, so a long-lived daemon never has to
// reauthorize interactively.
func NewService(ctx context.Context, conf *oauth2.Config, store TokenStore) (*calendar.Service, error) {
	tok, err := store.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("no stored token, run the authorize command first: %w", err)
	}
	ts := &savingTokenSource{
		src:   conf.TokenSource(ctx, tok),
		store: store,
		last:  tok,
	}
	svc, err := calendar.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}
	return svc, nil
}

type savingTokenSource struct {
	src   oauth2.TokenSource
	store TokenStore
	last  *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	tok, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.last == nil || tok.AccessToken != s.last.AccessToken {
		if err := s.store.SaveToken(tok); err != nil {
			return nil, fmt.Errorf("unable to persist refreshed token: %w", err)
		}
		s.last = tok
	}
	return tok, nil
}
