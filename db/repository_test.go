package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/habedi/curex/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTokenRepo sets up an in-memory SQLite database for testing and returns
// a repository bound to it together with the raw handle.
func setupTokenRepo(t *testing.T) (db.TokenRepository, *gorm.DB) {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&db.Token{}))
	return db.NewTokenRepository(gormDB), gormDB
}

func countTokens(t *testing.T, gormDB *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, gormDB.Model(&db.Token{}).Count(&count).Error)
	return count
}

func TestSaveToken_RoundTrip(t *testing.T) {
	repo, _ := setupTokenRepo(t)
	ctx := context.Background()

	expiry := time.Now().Add(1 * time.Hour)
	require.NoError(t, repo.SaveToken(ctx, "token_data...", expiry, db.TokenTypeAccess))

	token, err := repo.GetFreshToken(ctx, db.TokenTypeAccess)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "token_data...", token.Data)
	assert.Equal(t, db.TokenTypeAccess, token.TokenType)
	assert.WithinDuration(t, expiry, token.ExpiryDate, time.Second)
}

func TestSaveToken_NeverDeduplicates(t *testing.T) {
	repo, gormDB := setupTokenRepo(t)
	ctx := context.Background()

	expiry := time.Now().Add(1 * time.Hour)
	require.NoError(t, repo.SaveToken(ctx, "same_data", expiry, db.TokenTypeAccess))
	require.NoError(t, repo.SaveToken(ctx, "same_data", expiry, db.TokenTypeAccess))

	assert.EqualValues(t, 2, countTokens(t, gormDB))
}

func TestGetFreshToken_FreshestWins(t *testing.T) {
	repo, _ := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveToken(ctx, "stale_token_data...", time.Now().Add(-1*time.Minute), db.TokenTypeAccess))
	require.NoError(t, repo.SaveToken(ctx, "fresh_token_data...", time.Now().Add(1*time.Minute), db.TokenTypeAccess))
	require.NoError(t, repo.SaveToken(ctx, "fresher_token_data...", time.Now().Add(2*time.Minute), db.TokenTypeAccess))

	token, err := repo.GetFreshToken(ctx, db.TokenTypeAccess)
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "fresher_token_data...", token.Data)
}

func TestGetFreshToken_IgnoresOtherTypes(t *testing.T) {
	repo, _ := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveToken(ctx, "refresh_data", time.Now().Add(1*time.Hour), db.TokenTypeRefresh))

	token, err := repo.GetFreshToken(ctx, db.TokenTypeAccess)
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestGetFreshToken_ExpiredIsNotFresh(t *testing.T) {
	repo, _ := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveToken(ctx, "expired", time.Now().Add(-1*time.Minute), db.TokenTypeAccess))

	token, err := repo.GetFreshToken(ctx, db.TokenTypeAccess)
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestGetFreshToken_EmptyStoreReturnsNil(t *testing.T) {
	repo, _ := setupTokenRepo(t)

	token, err := repo.GetFreshToken(context.Background(), db.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Nil(t, token)
}

func TestRemoveExpiredTokens_ReturnsCount(t *testing.T) {
	repo, gormDB := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveToken(ctx, "expired_1", time.Now().Add(-1*time.Minute), db.TokenTypeAccess))
	require.NoError(t, repo.SaveToken(ctx, "expired_2", time.Now().Add(-2*time.Minute), db.TokenTypeAccess))
	require.NoError(t, repo.SaveToken(ctx, "fresh", time.Now().Add(1*time.Minute), db.TokenTypeAccess))
	require.NoError(t, repo.SaveToken(ctx, "expired_refresh", time.Now().Add(-1*time.Minute), db.TokenTypeRefresh))

	count, err := repo.RemoveExpiredTokens(ctx, db.TokenTypeAccess)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// The fresh access row and the expired refresh row must survive.
	assert.EqualValues(t, 2, countTokens(t, gormDB))
}

func TestDeleteAllTokens_RemovesEveryType(t *testing.T) {
	repo, gormDB := setupTokenRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveToken(ctx, "access", time.Now().Add(1*time.Hour), db.TokenTypeAccess))
	require.NoError(t, repo.SaveToken(ctx, "refresh", time.Now().Add(2*time.Hour), db.TokenTypeRefresh))

	require.NoError(t, repo.DeleteAllTokens(ctx))
	assert.EqualValues(t, 0, countTokens(t, gormDB))
}

func TestTokenRepository_UninitializedDB(t *testing.T) {
	repo := db.NewTokenRepository(nil)
	ctx := context.Background()

	_, err := repo.GetFreshToken(ctx, db.TokenTypeAccess)
	assert.Error(t, err)

	_, err = repo.RemoveExpiredTokens(ctx, db.TokenTypeAccess)
	assert.Error(t, err)

	err = repo.SaveToken(ctx, "data", time.Now(), db.TokenTypeAccess)
	assert.Error(t, err)

	err = repo.DeleteAllTokens(ctx)
	assert.Error(t, err)
}

func TestTokenFresh_StrictInequality(t *testing.T) {
	now := time.Now()
	exact := &db.Token{ExpiryDate: now}
	future := &db.Token{ExpiryDate: now.Add(time.Nanosecond)}
	past := &db.Token{ExpiryDate: now.Add(-time.Nanosecond)}

	assert.False(t, exact.Fresh(now), "expiry equal to now must not be fresh")
	assert.True(t, future.Fresh(now))
	assert.False(t, past.Fresh(now))
}
