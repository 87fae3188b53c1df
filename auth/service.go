package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/habedi/curex/db"
	"github.com/rs/zerolog/log"
)

// Service produces a currently valid access token on demand, minimizing
// network round-trips. It keeps a single in-process cached access token and
// falls back, in order, to the token store, a refresh exchange, and a full
// re-authentication with the configured credentials.
//
// The cached slot is mutex-guarded so interleaved callers never observe a
// torn value, but no lock is held across a network exchange: two concurrent
// acquisitions that both miss the cache may both reach the remote endpoint,
// each persisting its own pair. The store tolerates the duplicate rows.
type Service struct {
	repo      db.TokenRepository
	exchanger TokenExchanger
	username  string
	password  string

	mu     sync.Mutex
	cached *AuthToken
}

// NewService is the constructor for the access token service. Each instance
// owns an independent cache; collaborators receive the instance explicitly.
func NewService(repo db.TokenRepository, exchanger TokenExchanger, username, password string) *Service {
	return &Service{
		repo:      repo,
		exchanger: exchanger,
		username:  username,
		password:  password,
	}
}

// GetAccessToken returns the data of a currently valid access token, trying
// in order: the in-process cache, the token store, a refresh exchange, and a
// full re-authentication. The first source to produce a token wins. A failed
// refresh or full-auth exchange propagates to the caller; no retry and no
// chaining from a failed refresh into full auth happens here.
func (s *Service) GetAccessToken(ctx context.Context, invalidateCache bool) (string, error) {
	if invalidateCache {
		s.InvalidateCachedAccessToken()
	}

	if cached := s.freshCachedToken(); cached != nil {
		log.Debug().Msg("Returning cached access token")
		return cached.Data, nil
	}

	token, err := s.storedAccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to query stored access token: %w", err)
	}
	if token != nil {
		log.Debug().Msg("Returning fresh token from the store")
	}

	if token == nil {
		log.Debug().Msg("Refreshing token")
		token, err = s.refreshAccessToken(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to refresh access token: %w", err)
		}
	}

	if token == nil {
		log.Debug().Msg("Gaining token with configured credentials")
		token, err = s.gainToken(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to gain access token: %w", err)
		}
	}

	s.setCachedToken(token)
	log.Debug().Msg("Token was cached")
	return token.Data, nil
}

// InvalidateCachedAccessToken clears the in-process cache only; the store is
// untouched. Idempotent.
func (s *Service) InvalidateCachedAccessToken() {
	log.Debug().Msg("Invalidating cached access token")
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()
}

// RemoveAllTokens deletes every persisted token of both kinds. It does not
// clear the in-process cache; callers wanting both must also call
// InvalidateCachedAccessToken.
func (s *Service) RemoveAllTokens(ctx context.Context) error {
	return s.repo.DeleteAllTokens(ctx)
}

func (s *Service) freshCachedToken() *AuthToken {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil && s.cached.Fresh(time.Now()) {
		return s.cached
	}
	return nil
}

func (s *Service) setCachedToken(token *AuthToken) {
	s.mu.Lock()
	s.cached = token
	s.mu.Unlock()
}

func (s *Service) storedAccessToken(ctx context.Context) (*AuthToken, error) {
	record, err := s.repo.GetFreshToken(ctx, db.TokenTypeAccess)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}
	return &AuthToken{Data: record.Data, ExpiresAt: record.ExpiryDate}, nil
}

// refreshAccessToken exchanges a fresh stored refresh token for a new pair.
// It returns nil with no error when no fresh refresh token exists, letting
// the caller fall through to a full re-authentication.
func (s *Service) refreshAccessToken(ctx context.Context) (*AuthToken, error) {
	record, err := s.repo.GetFreshToken(ctx, db.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	pair, err := s.exchanger.RefreshAccessToken(ctx, record.Data)
	if err != nil {
		return nil, err
	}
	if err := s.adoptTokenPair(ctx, pair); err != nil {
		return nil, err
	}
	return &pair.Access, nil
}

// gainToken performs a full re-authentication with the configured
// username/password credentials.
func (s *Service) gainToken(ctx context.Context) (*AuthToken, error) {
	pair, err := s.exchanger.CreateToken(ctx, s.username, s.password)
	if err != nil {
		return nil, err
	}
	if err := s.adoptTokenPair(ctx, pair); err != nil {
		return nil, err
	}
	return &pair.Access, nil
}

// adoptTokenPair replaces the persisted credential generation: every prior
// token of both kinds is removed before the new pair is saved.
func (s *Service) adoptTokenPair(ctx context.Context, pair TokenPair) error {
	if err := s.repo.DeleteAllTokens(ctx); err != nil {
		return fmt.Errorf("failed to delete stale tokens: %w", err)
	}
	if err := s.repo.SaveToken(ctx, pair.Access.Data, pair.Access.ExpiresAt, db.TokenTypeAccess); err != nil {
		return fmt.Errorf("failed to save access token: %w", err)
	}
	if err := s.repo.SaveToken(ctx, pair.Refresh.Data, pair.Refresh.ExpiresAt, db.TokenTypeRefresh); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	log.Info().Msg("New token pair saved successfully.")
	return nil
}
