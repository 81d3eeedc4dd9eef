package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rohits-web03/llamastore/internal/models"
	"github.com/rohits-web03/llamastore/internal/repositories"
)

// LlamaDraft is a validated create/update request.
type LlamaDraft struct {
	Name   string
	Age    int
	Color  models.LlamaColor
	Rating int
}

func (d LlamaDraft) apply(l *models.Llama) {
	l.Name = d.Name
	l.Age = d.Age
	l.Color = d.Color
	l.Rating = d.Rating
}

// ConflictError names the llama whose name is already taken.
type ConflictError struct {
	Name string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("Llama named %s already exists", e.Name)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

type LlamaService struct {
	llamas   *repositories.LlamaRepository
	pictures *PictureService
	log      *zap.SugaredLogger
}

func NewLlamaService(llamas *repositories.LlamaRepository, pictures *PictureService, log *zap.SugaredLogger) *LlamaService {
	return &LlamaService{llamas: llamas, pictures: pictures, log: log}
}

func (s *LlamaService) List(ctx context.Context) ([]models.Llama, error) {
	return s.llamas.List(ctx)
}

func (s *LlamaService) Get(ctx context.Context, id int64) (models.Llama, error) {
	l, ok, err := s.llamas.GetByID(ctx, id)
	if err != nil {
		return models.Llama{}, fmt.Errorf("get llama %d: %w", id, err)
	}
	if !ok {
		return models.Llama{}, ErrNotFound
	}
	return l, nil
}

func (s *LlamaService) Create(ctx context.Context, d LlamaDraft) (models.Llama, error) {
	_, taken, err := s.llamas.GetByName(ctx, d.Name)
	if err != nil {
		return models.Llama{}, fmt.Errorf("get llama by name: %w", err)
	}
	if taken {
		return models.Llama{}, &ConflictError{Name: d.Name}
	}
	var l models.Llama
	d.apply(&l)
	if err := s.llamas.Create(ctx, &l); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.Llama{}, &ConflictError{Name: d.Name}
		}
		return models.Llama{}, fmt.Errorf("create llama: %w", err)
	}
	s.log.Infow("llama created", "llama_id", l.ID)
	return l, nil
}

// Update overwrites llama id with d. When id does not exist and the name is
// free, a new llama is created instead and the second result is true. A name owned by a
// different llama is a conflict on either path.
func (s *LlamaService) Update(ctx context.Context, id int64, d LlamaDraft) (models.Llama, bool, error) {
	byID, idExists, err := s.llamas.GetByID(ctx, id)
	if err != nil {
		return models.Llama{}, false, fmt.Errorf("get llama %d: %w", id, err)
	}
	byName, nameExists, err := s.llamas.GetByName(ctx, d.Name)
	if err != nil {
		return models.Llama{}, false, fmt.Errorf("get llama by name: %w", err)
	}

	switch {
	case !idExists && !nameExists:
		created, err := s.Create(ctx, d)
		if err != nil {
			return models.Llama{}, false, err
		}
		return created, true, nil
	case !idExists && nameExists:
		return models.Llama{}, false, &ConflictError{Name: d.Name}
	case nameExists && byName.ID != byID.ID:
		return models.Llama{}, false, &ConflictError{Name: d.Name}
	}

	d.apply(&byID)
	if err := s.llamas.Save(ctx, &byID); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.Llama{}, false, &ConflictError{Name: d.Name}
		}
		return models.Llama{}, false, fmt.Errorf("update llama %d: %w", id, err)
	}
	s.log.Infow("llama updated", "llama_id", byID.ID)
	return byID, false, nil
}

// Delete removes the llama and its picture, if it has one.
func (s *LlamaService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.pictures.removeIfPresent(ctx, id); err != nil {
		return fmt.Errorf("delete picture of llama %d: %w", id, err)
	}
	if err := s.llamas.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete llama %d: %w", id, err)
	}
	s.log.Infow("llama deleted", "llama_id", id)
	return nil
}
