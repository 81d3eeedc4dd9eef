package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/rohits-web03/llamastore/internal/models"
	"gorm.io/gorm"
)

// MaxUsers is how many of the most recent accounts registration keeps.
const MaxUsers = 1000

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

// GetByEmail looks the user up case-insensitively; emails are stored lowercased.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, bool, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).Take(&u).Error
	switch {
	case err == nil:
		return u, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.User{}, false, nil
	default:
		return models.User{}, false, err
	}
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreateAndPrune inserts u and deletes every user whose id is below the
// newest id minus MaxUsers, in one transaction.
func (r *UserRepository) CreateAndPrune(ctx context.Context, u *models.User) error {
	u.Email = strings.ToLower(u.Email)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(u).Error; err != nil {
			return err
		}
		var maxID int64
		if err := tx.Model(&models.User{}).Select("COALESCE(MAX(id), 0)").Scan(&maxID).Error; err != nil {
			return err
		}
		return tx.Where("id < ?", maxID-MaxUsers).Delete(&models.User{}).Error
	})
	return translateErr(err)
}
