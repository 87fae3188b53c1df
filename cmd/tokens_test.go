package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/habedi/curex/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedToken(t *testing.T, data string, tokenType db.TokenType, expiry time.Time) {
	t.Helper()
	repo := db.NewTokenRepository(db.GetDB())
	require.NoError(t, repo.SaveToken(context.Background(), data, expiry, tokenType))
}

func countTokens(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Db.Model(&db.Token{}).Count(&n).Error)
	return n
}

// The admin-revoke contract: the remote endpoint is revoked first, while the
// local rows still exist, and only then is the local store cleared.
func TestTokensRevokeCmd_RemoteRevokeBeforeLocalDelete(t *testing.T) {
	cleanDBTables(t)

	var revokeCalls int
	var rowsAtRevoke int64
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/token", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		revokeCalls++
		_ = db.Db.Model(&db.Token{}).Count(&rowsAtRevoke).Error
		_ = json.NewEncoder(w).Encode(map[string]any{
			"revoked": []string{"live-access", "live-refresh"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	pointCommandsAt(t, srv)

	now := time.Now()
	seedToken(t, "live-access", db.TokenTypeAccess, now.Add(time.Hour))
	seedToken(t, "live-refresh", db.TokenTypeRefresh, now.Add(24*time.Hour))

	output, err := captureCombinedOutput(tokensRevokeCmd())
	require.NoError(t, err)
	assert.Contains(t, output, "Revoked 2 tokens")
	assert.Equal(t, 1, revokeCalls)
	assert.Equal(t, int64(2), rowsAtRevoke, "local rows must survive until the remote revoke has happened")
	assert.Equal(t, int64(0), countTokens(t))
}

func TestTokensPurgeCmd_RemovesOnlyExpiredRows(t *testing.T) {
	cleanDBTables(t)
	now := time.Now()
	seedToken(t, "live-access", db.TokenTypeAccess, now.Add(time.Hour))
	seedToken(t, "dead-access", db.TokenTypeAccess, now.Add(-time.Hour))
	seedToken(t, "dead-refresh", db.TokenTypeRefresh, now.Add(-time.Minute))

	output, err := captureCombinedOutput(tokensPurgeCmd())
	require.NoError(t, err)
	assert.Contains(t, output, "Removed 1 expired access tokens and 1 expired refresh tokens.")
	assert.Equal(t, int64(1), countTokens(t))
}

func TestTokensExpungeCmd_DeletesAllLocalTokens(t *testing.T) {
	cleanDBTables(t)
	now := time.Now()
	seedToken(t, "live-access", db.TokenTypeAccess, now.Add(time.Hour))
	seedToken(t, "live-refresh", db.TokenTypeRefresh, now.Add(24*time.Hour))

	output, err := captureCombinedOutput(tokensExpungeCmd())
	require.NoError(t, err)
	assert.Contains(t, output, "All locally stored tokens were deleted.")
	assert.Equal(t, int64(0), countTokens(t))
}
