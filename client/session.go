package client

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// AccessTokenProvider is the capability the session gateway needs from the
// access token service.
type AccessTokenProvider interface {
	GetAccessToken(ctx context.Context, invalidateCache bool) (string, error)
}

// SessionFactory opens scoped API sessions bound to a fresh access token.
// The base configuration is copied into every session, never shared.
type SessionFactory struct {
	base        Configuration
	tokens      AccessTokenProvider
	attachToken bool
}

// NewSessionFactory builds a factory whose sessions carry a bearer token
// obtained from the provider at session-entry time.
func NewSessionFactory(base Configuration, tokens AccessTokenProvider) *SessionFactory {
	return &SessionFactory{base: base, tokens: tokens, attachToken: true}
}

// NewAuthSessionFactory builds a factory whose sessions never attach a bearer
// token. The token acquisition algorithm itself uses these sessions to reach
// the auth endpoints without recursing into its own cache.
func NewAuthSessionFactory(base Configuration) *SessionFactory {
	return &SessionFactory{base: base, attachToken: false}
}

// Session is a scoped API client: obtain it via OpenSession, use its typed
// facades for one logical unit of work, and Close it on every exit path.
// The token attached at entry is not re-validated mid-flight.
type Session struct {
	client *ApiClient
}

// OpenSession copies the base configuration, attaches a current access token
// when the factory is configured to do so, and returns a ready session.
func (f *SessionFactory) OpenSession(ctx context.Context) (*Session, error) {
	config := f.base
	if f.attachToken {
		token, err := f.tokens.GetAccessToken(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("failed to obtain access token for session: %w", err)
		}
		config.AccessToken = token
	}
	log.Debug().Bool("token_attached", f.attachToken).Msg("Opening API session")
	return &Session{client: NewApiClient(config)}, nil
}

// Close releases the session's client. Safe to defer immediately after a
// successful OpenSession.
func (s *Session) Close() {
	s.client.Close()
}

// Exchange returns the currency-exchange facade bound to this session.
func (s *Session) Exchange() *CurrencyExchangeAPI {
	return NewCurrencyExchangeAPI(s.client)
}

// Auth returns the auth facade bound to this session.
func (s *Session) Auth() *AuthAPI {
	return NewAuthAPI(s.client)
}
