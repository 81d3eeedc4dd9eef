package repositories

import (
	"context"
	"errors"

	"github.com/rohits-web03/llamastore/internal/models"
	"gorm.io/gorm"
)

type LlamaRepository struct {
	db *gorm.DB
}

func NewLlamaRepository(db *gorm.DB) *LlamaRepository { return &LlamaRepository{db: db} }

func (r *LlamaRepository) List(ctx context.Context) ([]models.Llama, error) {
	var llamas []models.Llama
	if err := r.db.WithContext(ctx).Order("id").Find(&llamas).Error; err != nil {
		return nil, err
	}
	return llamas, nil
}

func (r *LlamaRepository) GetByID(ctx context.Context, id int64) (models.Llama, bool, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *LlamaRepository) GetByName(ctx context.Context, name string) (models.Llama, bool, error) {
	return r.first(ctx, "name = ?", name)
}

func (r *LlamaRepository) first(ctx context.Context, query string, arg any) (models.Llama, bool, error) {
	var l models.Llama
	err := r.db.WithContext(ctx).Where(query, arg).Take(&l).Error
	switch {
	case err == nil:
		return l, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.Llama{}, false, nil
	default:
		return models.Llama{}, false, err
	}
}

// Create inserts l and fills in its id.
func (r *LlamaRepository) Create(ctx context.Context, l *models.Llama) error {
	return translateErr(r.db.WithContext(ctx).Create(l).Error)
}

// Save overwrites every column of an existing llama.
func (r *LlamaRepository) Save(ctx context.Context, l *models.Llama) error {
	return translateErr(r.db.WithContext(ctx).Save(l).Error)
}

func (r *LlamaRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Llama{}, id).Error
}
