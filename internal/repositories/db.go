package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-sqlite3"
	"github.com/rohits-web03/llamastore/internal/models"
	"github.com/rohits-web03/llamastore/internal/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const secretKeyBytes = 32

// ErrDuplicate is returned when an insert or update hits a unique index.
var ErrDuplicate = gorm.ErrDuplicatedKey

// translateErr folds unique-constraint failures into ErrDuplicate. gorm's
// TranslateError covers the drivers that implement it; the sqlite3 check
// catches the codes it passes through untranslated.
func translateErr(err error) error {
	if err == nil || errors.Is(err, ErrDuplicate) {
		return err
	}
	var se sqlite3.Error
	if errors.As(err, &se) &&
		(se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return err
}

// Open connects to the configured database. SQLite is the default; the
// parent directory of the database file is created when missing.
func Open(driver, dsn string, log gormlogger.Interface) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", "sqlite":
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	cfg := &gorm.Config{TranslateError: true}
	if log != nil {
		cfg.Logger = log
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}
	return db, nil
}

// Migrate creates the tables and, on first run, the signing secret.
func Migrate(ctx context.Context, db *gorm.DB) error {
	err := db.WithContext(ctx).AutoMigrate(
		&models.SecretKey{},
		&models.User{},
		&models.Llama{},
		&models.LlamaPicture{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.SecretKey{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		key, err := utils.GenerateSecretKey(secretKeyBytes)
		if err != nil {
			return fmt.Errorf("generate secret key: %w", err)
		}
		return tx.Create(&models.SecretKey{SecretKey: key}).Error
	})
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
