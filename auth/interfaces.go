package auth

import "context"

// TokenExchanger defines the contract for any component that can exchange
// credentials with the remote auth endpoint. Both operations return a fresh
// access+refresh pair with absolute expiry instants.
type TokenExchanger interface {
	CreateToken(ctx context.Context, username, password string) (TokenPair, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (TokenPair, error)
}
