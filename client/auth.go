package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/habedi/curex/auth"
)

// AuthAPI is the typed facade over the remote auth endpoints.
type AuthAPI struct {
	client *ApiClient
}

// NewAuthAPI binds the facade to one API client.
func NewAuthAPI(client *ApiClient) *AuthAPI { return &AuthAPI{client: client} }

// CreateToken exchanges username/password credentials for a new token pair.
func (a *AuthAPI) CreateToken(ctx context.Context, username, password string) (TokenCreatedResponse, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}
	var resp TokenCreatedResponse
	if err := a.client.submitForm(ctx, http.MethodPost, "/auth/token", form, &resp); err != nil {
		return TokenCreatedResponse{}, fmt.Errorf("failed to create token: %w", err)
	}
	return resp, nil
}

// RefreshAccessToken exchanges a refresh token for a new token pair.
func (a *AuthAPI) RefreshAccessToken(ctx context.Context, refreshToken string) (TokenCreatedResponse, error) {
	form := url.Values{
		"grant_type":    {"refresh_token"},
		"refresh_token": {refreshToken},
	}
	var resp TokenCreatedResponse
	if err := a.client.submitForm(ctx, http.MethodPost, "/auth/token/refresh", form, &resp); err != nil {
		return TokenCreatedResponse{}, fmt.Errorf("failed to refresh access token: %w", err)
	}
	return resp, nil
}

// RevokeAllTokens invalidates every token the service issued for this user.
// The request is authorized with the session's bearer token.
func (a *AuthAPI) RevokeAllTokens(ctx context.Context) (RevokedTokensResponse, error) {
	var resp RevokedTokensResponse
	if err := a.client.submitForm(ctx, http.MethodDelete, "/auth/token", nil, &resp); err != nil {
		return RevokedTokensResponse{}, fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return resp, nil
}

// Exchanger implements auth.TokenExchanger. Each exchange opens its own
// token-less session for exactly the duration of the call; attaching a bearer
// token here would recurse into the acquisition algorithm.
type Exchanger struct {
	sessions *SessionFactory
}

// NewExchanger builds an Exchanger on top of an auth-only session factory.
func NewExchanger(sessions *SessionFactory) *Exchanger {
	return &Exchanger{sessions: sessions}
}

func (e *Exchanger) CreateToken(ctx context.Context, username, password string) (auth.TokenPair, error) {
	session, err := e.sessions.OpenSession(ctx)
	if err != nil {
		return auth.TokenPair{}, err
	}
	defer session.Close()

	resp, err := session.Auth().CreateToken(ctx, username, password)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return resp.AsTokenPair(), nil
}

func (e *Exchanger) RefreshAccessToken(ctx context.Context, refreshToken string) (auth.TokenPair, error) {
	session, err := e.sessions.OpenSession(ctx)
	if err != nil {
		return auth.TokenPair{}, err
	}
	defer session.Close()

	resp, err := session.Auth().RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		return auth.TokenPair{}, err
	}
	return resp.AsTokenPair(), nil
}
