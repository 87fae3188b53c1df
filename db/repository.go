package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// TokenRepository defines decoupled operations for token persistence.
// Any storage backend implementing these four operations is substitutable;
// tests supply in-memory fakes.
type TokenRepository interface {
	// GetFreshToken returns the non-expired token of the given type with the
	// furthest-future expiry, or nil if no such record exists.
	GetFreshToken(ctx context.Context, tokenType TokenType) (*Token, error)
	// RemoveExpiredTokens deletes all expired records of the given type and
	// returns the number of rows removed.
	RemoveExpiredTokens(ctx context.Context, tokenType TokenType) (int64, error)
	// SaveToken appends a new record; it never deduplicates.
	SaveToken(ctx context.Context, data string, expiry time.Time, tokenType TokenType) error
	// DeleteAllTokens removes every record regardless of type.
	DeleteAllTokens(ctx context.Context) error
}

// gormTokenRepo is a GORM-backed implementation of TokenRepository.
// Use constructor NewTokenRepository to obtain an instance.
type gormTokenRepo struct{ db *gorm.DB }

// NewTokenRepository creates a TokenRepository. Accepts *gorm.DB to avoid global access.
func NewTokenRepository(db *gorm.DB) TokenRepository { return &gormTokenRepo{db: db} }

func (r *gormTokenRepo) GetFreshToken(ctx context.Context, tokenType TokenType) (*Token, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var token Token
	err := r.db.WithContext(ctx).
		Where("token_type = ? AND expiry_date > ?", tokenType, time.Now()).
		Order("expiry_date DESC").
		First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *gormTokenRepo) RemoveExpiredTokens(ctx context.Context, tokenType TokenType) (int64, error) {
	if r.db == nil {
		return 0, fmt.Errorf("repository not initialized")
	}
	res := r.db.WithContext(ctx).
		Where("token_type = ? AND expiry_date <= ?", tokenType, time.Now()).
		Delete(&Token{})
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *gormTokenRepo) SaveToken(ctx context.Context, data string, expiry time.Time, tokenType TokenType) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	token := Token{Data: data, TokenType: tokenType, ExpiryDate: expiry}
	return r.db.WithContext(ctx).Create(&token).Error
}

func (r *gormTokenRepo) DeleteAllTokens(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Token{}).Error
}
