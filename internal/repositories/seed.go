package repositories

import (
	"context"

	"github.com/rohits-web03/llamastore/internal/models"
	"gorm.io/gorm"
)

// DemoLlamas is the catalog a fresh store is seeded with.
var DemoLlamas = []models.Llama{
	{ID: 1, Name: "Libby the Llama", Age: 3, Color: models.ColorWhite, Rating: 5},
	{ID: 2, Name: "Labby the Llama", Age: 5, Color: models.ColorGray, Rating: 4},
	{ID: 3, Name: "Sean the fake Llama", Age: 18, Color: models.ColorWhite, Rating: 1},
	{ID: 4, Name: "Logo the Llama logo", Age: 2, Color: models.ColorBlack, Rating: 5},
	{ID: 5, Name: "Barack O'Llama", Age: 4, Color: models.ColorBlack, Rating: 5},
	{ID: 6, Name: "Llama Del Rey", Age: 9, Color: models.ColorWhite, Rating: 4},
}

// SeedLlamas inserts DemoLlamas into an empty catalog and reports how many
// rows were written. A catalog that already has llamas is left alone.
func SeedLlamas(ctx context.Context, db *gorm.DB) (int, error) {
	seeded := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Llama{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		rows := make([]models.Llama, len(DemoLlamas))
		copy(rows, DemoLlamas)
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		if err := syncIDSequence(tx, models.Llama{}.TableName()); err != nil {
			return err
		}
		seeded = len(rows)
		return nil
	})
	return seeded, err
}

// syncIDSequence moves a Postgres serial past rows inserted with explicit ids.
// SQLite derives the next rowid from MAX(id) and needs nothing.
func syncIDSequence(tx *gorm.DB, table string) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(
		"SELECT setval(pg_get_serial_sequence(?, 'id'), (SELECT COALESCE(MAX(id), 1) FROM "+table+"))",
		table,
	).Error
}
