package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/rohits-web03/llamastore/internal/models"
	"gorm.io/gorm"
)

var ErrNoSecretKey = errors.New("no secret key: run migrations first")

type SecretRepository struct {
	db *gorm.DB
}

func NewSecretRepository(db *gorm.DB) *SecretRepository { return &SecretRepository{db: db} }

// Get returns the signing key.
func (r *SecretRepository) Get(ctx context.Context) ([]byte, error) {
	var row models.SecretKey
	err := r.db.WithContext(ctx).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSecretKey
	}
	if err != nil {
		return nil, fmt.Errorf("load secret key: %w", err)
	}
	return []byte(row.SecretKey), nil
}
