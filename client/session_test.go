package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/habedi/curex/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// staticTokenProvider hands out a fixed token and records how often it was asked.
type staticTokenProvider struct {
	token string
	err   error
	calls int
}

func (p *staticTokenProvider) GetAccessToken(ctx context.Context, invalidateCache bool) (string, error) {
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.token, nil
}

func TestOpenSession_AttachesBearerToken(t *testing.T) {
	var seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]client.Currency{})
	}))
	defer server.Close()

	provider := &staticTokenProvider{token: "session-token"}
	factory := client.NewSessionFactory(client.Configuration{Host: server.URL}, provider)

	session, err := factory.OpenSession(context.Background())
	require.NoError(t, err)
	defer session.Close()

	_, err = session.Exchange().GetAllCurrencies(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer session-token", seenAuth)
	assert.Equal(t, 1, provider.calls)
}

func TestOpenSession_AuthFactoryDoesNotAttachToken(t *testing.T) {
	var seenAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.TokenCreatedResponse{})
	}))
	defer server.Close()

	factory := client.NewAuthSessionFactory(client.Configuration{Host: server.URL})

	session, err := factory.OpenSession(context.Background())
	require.NoError(t, err)
	defer session.Close()

	_, err = session.Auth().CreateToken(context.Background(), "user", "password")
	require.NoError(t, err)

	assert.Empty(t, seenAuth, "auth sessions must never carry a bearer token")
}

func TestOpenSession_ProviderFailurePropagates(t *testing.T) {
	provider := &staticTokenProvider{err: errors.New("acquisition failed")}
	factory := client.NewSessionFactory(client.Configuration{Host: "http://localhost"}, provider)

	session, err := factory.OpenSession(context.Background())

	require.Error(t, err)
	assert.Nil(t, session)
	assert.Contains(t, err.Error(), "acquisition failed")
}

func TestOpenSession_TokenIsFetchedPerSession(t *testing.T) {
	provider := &staticTokenProvider{token: "tok"}
	factory := client.NewSessionFactory(client.Configuration{Host: "http://localhost"}, provider)

	first, err := factory.OpenSession(context.Background())
	require.NoError(t, err)
	first.Close()

	second, err := factory.OpenSession(context.Background())
	require.NoError(t, err)
	second.Close()

	assert.Equal(t, 2, provider.calls, "every session entry asks the provider anew")
}
