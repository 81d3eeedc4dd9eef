// Package app wires configuration, database, picture store and services
// together for the server and migrate commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/rohits-web03/llamastore/internal/api"
	"github.com/rohits-web03/llamastore/internal/api/services"
	"github.com/rohits-web03/llamastore/internal/auth"
	"github.com/rohits-web03/llamastore/internal/config"
	"github.com/rohits-web03/llamastore/internal/logger"
	"github.com/rohits-web03/llamastore/internal/repositories"
	"github.com/rohits-web03/llamastore/internal/storage"
)

type App struct {
	Config   config.Config
	DB       *gorm.DB
	Store    storage.Store
	Services api.Services
	log      *zap.SugaredLogger
}

// New opens and migrates the database, builds the picture store and the
// services on top of them. Call Close when done.
func New(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (*App, error) {
	db, err := repositories.Open(cfg.DBDriver, cfg.DatabaseDSN(), logger.NewGormLogger(log))
	if err != nil {
		return nil, err
	}
	if err := repositories.Migrate(ctx, db); err != nil {
		_ = repositories.Close(db)
		return nil, err
	}

	store, err := NewStore(cfg)
	if err != nil {
		_ = repositories.Close(db)
		return nil, err
	}

	llamaRepo := repositories.NewLlamaRepository(db)
	pictures := services.NewPictureService(llamaRepo, repositories.NewPictureRepository(db), store, log.Named("pictures"))
	svc := api.Services{
		Users: services.NewUserService(
			repositories.NewUserRepository(db),
			repositories.NewSecretRepository(db),
			auth.NewTokenManager(),
			log.Named("users"),
		),
		Llamas:   services.NewLlamaService(llamaRepo, pictures, log.Named("llamas")),
		Pictures: pictures,
	}

	log.Infow("application ready",
		"db_driver", cfg.DBDriver,
		"storage", cfg.StorageBackend,
		"mode", cfg.Mode.String(),
	)
	return &App{Config: cfg, DB: db, Store: store, Services: svc, log: log}, nil
}

// NewStore picks the picture backend named by STORAGE_BACKEND.
func NewStore(cfg config.Config) (storage.Store, error) {
	switch cfg.StorageBackend {
	case "", "local":
		return storage.NewLocalStore(cfg.PicturesDir()), nil
	case "r2":
		r2, err := storage.NewR2Store(storage.R2Options{
			AccountID:       cfg.R2.AccountID,
			AccessKeyID:     cfg.R2.AccessKeyID,
			SecretAccessKey: cfg.R2.SecretAccessKey,
			BucketName:      cfg.R2.BucketName,
			Region:          cfg.R2.Region,
			Prefix:          cfg.R2.Prefix,
		})
		if err != nil {
			return nil, err
		}
		return r2, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

// Handler builds the HTTP handler for the configured route mode.
func (a *App) Handler() (http.Handler, error) {
	return api.SetupRouter(a.Services, a.Config.Mode, a.Config.CorsConfig, a.log)
}

// Seed fills an empty catalog with the demo llamas. When picturesDir is set,
// <picturesDir>/<id>.png is attached to each demo llama that has one. Nothing
// is attached to a catalog that was already populated.
func (a *App) Seed(ctx context.Context, picturesDir string) (llamas, pictures int, err error) {
	llamas, err = repositories.SeedLlamas(ctx, a.DB)
	if err != nil {
		return 0, 0, err
	}
	if picturesDir == "" || llamas == 0 {
		return llamas, 0, nil
	}

	for _, l := range repositories.DemoLlamas {
		raw, err := os.ReadFile(filepath.Join(picturesDir, storage.PictureKey(l.ID)))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return llamas, pictures, fmt.Errorf("read picture of llama %d: %w", l.ID, err)
		}
		if err := a.Services.Pictures.Update(ctx, l.ID, raw); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				a.log.Warnw("demo llama missing, picture skipped", "llama_id", l.ID)
				continue
			}
			return llamas, pictures, fmt.Errorf("store picture of llama %d: %w", l.ID, err)
		}
		pictures++
	}
	return llamas, pictures, nil
}

func (a *App) Close() error {
	return repositories.Close(a.DB)
}
