package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/rohits-web03/llamastore/internal/repositories"
	"github.com/rohits-web03/llamastore/internal/storage"
)

// PictureService keeps the picture row and the stored PNG in step.
type PictureService struct {
	llamas   *repositories.LlamaRepository
	pictures *repositories.PictureRepository
	store    storage.Store
	log      *zap.SugaredLogger
}

func NewPictureService(llamas *repositories.LlamaRepository, pictures *repositories.PictureRepository, store storage.Store, log *zap.SugaredLogger) *PictureService {
	return &PictureService{llamas: llamas, pictures: pictures, store: store, log: log}
}

func (s *PictureService) requireLlama(ctx context.Context, llamaID int64) error {
	_, ok, err := s.llamas.GetByID(ctx, llamaID)
	if err != nil {
		return fmt.Errorf("get llama %d: %w", llamaID, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// write normalizes raw to PNG and stores it as <llamaID>.png.
func (s *PictureService) write(ctx context.Context, llamaID int64, raw []byte) (string, error) {
	data, err := storage.NormalizePNG(raw)
	if err != nil {
		return "", err
	}
	return s.store.Put(ctx, storage.PictureKey(llamaID), data)
}

// Create fails with ErrConflict if the llama already has a picture.
func (s *PictureService) Create(ctx context.Context, llamaID int64, raw []byte) error {
	if err := s.requireLlama(ctx, llamaID); err != nil {
		return err
	}
	_, exists, err := s.pictures.GetByLlamaID(ctx, llamaID)
	if err != nil {
		return fmt.Errorf("get picture: %w", err)
	}
	if exists {
		return ErrConflict
	}

	location, err := s.write(ctx, llamaID, raw)
	if err != nil {
		return err
	}
	if err := s.pictures.Upsert(ctx, llamaID, location); err != nil {
		return fmt.Errorf("save picture row: %w", err)
	}
	s.log.Infow("picture created", "llama_id", llamaID)
	return nil
}

// Update creates or replaces the picture. The new image is validated and
// written before the old one is touched; an invalid upload changes nothing.
func (s *PictureService) Update(ctx context.Context, llamaID int64, raw []byte) error {
	if err := s.requireLlama(ctx, llamaID); err != nil {
		return err
	}
	old, hadOld, err := s.pictures.GetByLlamaID(ctx, llamaID)
	if err != nil {
		return fmt.Errorf("get picture: %w", err)
	}

	location, err := s.write(ctx, llamaID, raw)
	if err != nil {
		return err
	}
	if err := s.pictures.Upsert(ctx, llamaID, location); err != nil {
		return fmt.Errorf("save picture row: %w", err)
	}
	if hadOld && old.ImageFileLocation != location {
		if err := s.store.Remove(ctx, old.ImageFileLocation); err != nil {
			s.log.Warnw("could not remove replaced picture", "llama_id", llamaID, "location", old.ImageFileLocation, "err", err)
		}
	}
	s.log.Infow("picture updated", "llama_id", llamaID)
	return nil
}

// Delete removes file and row. ErrNotFound if the llama or its picture is missing.
func (s *PictureService) Delete(ctx context.Context, llamaID int64) error {
	if err := s.requireLlama(ctx, llamaID); err != nil {
		return err
	}
	_, exists, err := s.pictures.GetByLlamaID(ctx, llamaID)
	if err != nil {
		return fmt.Errorf("get picture: %w", err)
	}
	if !exists {
		return ErrNoPicture
	}
	if err := s.removeIfPresent(ctx, llamaID); err != nil {
		return err
	}
	s.log.Infow("picture deleted", "llama_id", llamaID)
	return nil
}

func (s *PictureService) removeIfPresent(ctx context.Context, llamaID int64) error {
	p, ok, err := s.pictures.GetByLlamaID(ctx, llamaID)
	if err != nil || !ok {
		return err
	}
	if err := s.store.Remove(ctx, p.ImageFileLocation); err != nil {
		return fmt.Errorf("remove picture file: %w", err)
	}
	return s.pictures.DeleteByLlamaID(ctx, llamaID)
}

// Open returns the stored PNG. The caller closes it.
func (s *PictureService) Open(ctx context.Context, llamaID int64) (io.ReadCloser, error) {
	p, ok, err := s.pictures.GetByLlamaID(ctx, llamaID)
	if err != nil {
		return nil, fmt.Errorf("get picture: %w", err)
	}
	if !ok {
		return nil, ErrNoPicture
	}
	rc, err := s.store.Open(ctx, p.ImageFileLocation)
	if errors.Is(err, storage.ErrNotExist) {
		s.log.Warnw("picture row points at a missing object", "llama_id", llamaID, "location", p.ImageFileLocation)
		return nil, ErrNoPicture
	}
	return rc, err
}
