package auth

import "time"

// AuthToken is an immutable credential value: the opaque token data and its
// absolute expiry instant. The same value type serves both access and refresh
// tokens; the kind is external context, never carried inside the value.
type AuthToken struct {
	Data      string
	ExpiresAt time.Time
}

// Fresh reports whether the token expires strictly after now.
func (t AuthToken) Fresh(now time.Time) bool {
	return t.ExpiresAt.After(now)
}

// TokenPair is the result of a successful token exchange: a new access token
// and the refresh token that will obtain its successor.
type TokenPair struct {
	Access  AuthToken
	Refresh AuthToken
}
