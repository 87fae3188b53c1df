package db

import "time"

// TokenType distinguishes the two kinds of stored credentials. A Token never
// carries the type inside its data; the type is external context.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Token represents one persisted credential record. There is no uniqueness
// constraint on the type: multiple rows of the same kind may coexist (stale
// plus fresh), and reads resolve the ambiguity by picking the freshest row.
type Token struct {
	ID         uint      `gorm:"primarykey" json:"-"`
	Data       string    `gorm:"column:data" json:"data"`
	TokenType  TokenType `gorm:"column:token_type" json:"token_type"`
	ExpiryDate time.Time `gorm:"column:expiry_date" json:"expiry_date"`
}

// TableName keeps the table name singular-free and stable.
func (Token) TableName() string { return "tokens" }

// Fresh reports whether the record's expiry is strictly in the future.
func (t *Token) Fresh(now time.Time) bool {
	return t.ExpiryDate.After(now)
}
