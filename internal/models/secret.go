package models

// SecretKey holds the single HS256 signing key, generated once on first migration.
type SecretKey struct {
	SecretKey string `gorm:"primaryKey"`
}

func (SecretKey) TableName() string { return "secrets" }
