package client

import (
	"time"

	"github.com/habedi/curex/auth"
)

// Currency is one currency definition known to the remote service.
type Currency struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Sign string `json:"sign"`
}

// ExchangeRate is a directed rate between two currencies.
type ExchangeRate struct {
	BaseCurrency   Currency `json:"baseCurrency"`
	TargetCurrency Currency `json:"targetCurrency"`
	Rate           float64  `json:"rate"`
}

// Conversion is the result of converting an amount between two currencies.
type Conversion struct {
	BaseCurrency    Currency `json:"baseCurrency"`
	TargetCurrency  Currency `json:"targetCurrency"`
	Rate            float64  `json:"rate"`
	Amount          float64  `json:"amount"`
	ConvertedAmount float64  `json:"convertedAmount"`
}

// TokenCreatedResponse is the wire shape of a successful token exchange. The
// expiries are absolute unix instants, not durations.
type TokenCreatedResponse struct {
	TokenType        string `json:"token_type"`
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	AccessExpiresIn  int64  `json:"access_expires_in"`
	RefreshExpiresIn int64  `json:"refresh_expires_in"`
}

// AsTokenPair interprets the response's expiries as instants and returns the
// credential pair. No clock-skew adjustment is applied.
func (r TokenCreatedResponse) AsTokenPair() auth.TokenPair {
	return auth.TokenPair{
		Access:  auth.AuthToken{Data: r.AccessToken, ExpiresAt: time.Unix(r.AccessExpiresIn, 0)},
		Refresh: auth.AuthToken{Data: r.RefreshToken, ExpiresAt: time.Unix(r.RefreshExpiresIn, 0)},
	}
}

// RevokedTokensResponse reports the tokens invalidated server-side.
type RevokedTokensResponse struct {
	Revoked []string `json:"revoked"`
}
