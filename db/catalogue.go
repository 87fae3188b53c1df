package db

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Currency is a locally cached currency definition from the remote service.
type Currency struct {
	ID   uint   `gorm:"primarykey" json:"-"`
	Code string `gorm:"uniqueIndex" json:"code"`
	Name string `json:"name"`
	Sign string `json:"sign"`
}

// ExchangeRate is a locally cached exchange rate between two currency codes.
type ExchangeRate struct {
	ID         uint    `gorm:"primarykey" json:"-"`
	BaseCode   string  `gorm:"uniqueIndex:idx_rate_pair" json:"base_code"`
	TargetCode string  `gorm:"uniqueIndex:idx_rate_pair" json:"target_code"`
	Rate       float64 `json:"rate"`
}

// CatalogueRepository defines decoupled operations for the offline snapshot
// of the remote currency catalogue.
type CatalogueRepository interface {
	PutCurrency(ctx context.Context, c Currency) error
	ListCurrencies(ctx context.Context) ([]Currency, error)
	GetCurrencyByCode(ctx context.Context, code string) (*Currency, error)
	PutExchangeRate(ctx context.Context, r ExchangeRate) error
	ListExchangeRates(ctx context.Context) ([]ExchangeRate, error)
	Clear(ctx context.Context) error
}

// gormCatalogueRepo is a GORM-backed implementation of CatalogueRepository.
// Use constructor NewCatalogueRepository to obtain an instance.
type gormCatalogueRepo struct{ db *gorm.DB }

// NewCatalogueRepository creates a CatalogueRepository. Accepts *gorm.DB to avoid global access.
func NewCatalogueRepository(db *gorm.DB) CatalogueRepository { return &gormCatalogueRepo{db: db} }

func (r *gormCatalogueRepo) PutCurrency(ctx context.Context, c Currency) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "sign"}),
	}).Create(&c).Error
}

func (r *gormCatalogueRepo) ListCurrencies(ctx context.Context) ([]Currency, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var currencies []Currency
	if err := r.db.WithContext(ctx).Order("code").Find(&currencies).Error; err != nil {
		return nil, err
	}
	return currencies, nil
}

func (r *gormCatalogueRepo) GetCurrencyByCode(ctx context.Context, code string) (*Currency, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var currency Currency
	err := r.db.WithContext(ctx).First(&currency, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &currency, nil
}

func (r *gormCatalogueRepo) PutExchangeRate(ctx context.Context, rate ExchangeRate) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "base_code"}, {Name: "target_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate"}),
	}).Create(&rate).Error
}

func (r *gormCatalogueRepo) ListExchangeRates(ctx context.Context) ([]ExchangeRate, error) {
	if r.db == nil {
		return nil, fmt.Errorf("repository not initialized")
	}
	var rates []ExchangeRate
	if err := r.db.WithContext(ctx).Order("base_code, target_code").Find(&rates).Error; err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *gormCatalogueRepo) Clear(ctx context.Context) error {
	if r.db == nil {
		return fmt.Errorf("repository not initialized")
	}
	if err := r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Currency{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&ExchangeRate{}).Error
}
