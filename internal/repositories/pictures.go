package repositories

import (
	"context"
	"errors"

	"github.com/rohits-web03/llamastore/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PictureRepository struct {
	db *gorm.DB
}

func NewPictureRepository(db *gorm.DB) *PictureRepository { return &PictureRepository{db: db} }

func (r *PictureRepository) GetByLlamaID(ctx context.Context, llamaID int64) (models.LlamaPicture, bool, error) {
	var p models.LlamaPicture
	err := r.db.WithContext(ctx).Where("llama_id = ?", llamaID).Take(&p).Error
	switch {
	case err == nil:
		return p, true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return models.LlamaPicture{}, false, nil
	default:
		return models.LlamaPicture{}, false, err
	}
}

// Upsert points the llama's picture row at location, creating the row if needed.
func (r *PictureRepository) Upsert(ctx context.Context, llamaID int64, location string) error {
	row := models.LlamaPicture{LlamaID: llamaID, ImageFileLocation: location}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "llama_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"image_file_location"}),
	}).Create(&row).Error
}

func (r *PictureRepository) DeleteByLlamaID(ctx context.Context, llamaID int64) error {
	return r.db.WithContext(ctx).Where("llama_id = ?", llamaID).Delete(&models.LlamaPicture{}).Error
}
