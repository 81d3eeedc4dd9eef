package services

import (
	"errors"
	"fmt"

	"github.com/rohits-web03/llamastore/internal/storage"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrAlreadyRegistered = errors.New("user already registered")
	ErrUnauthorized      = errors.New("could not validate credentials")
	ErrInvalidImage      = storage.ErrInvalidImage

	// ErrNoPicture is returned when the llama exists but has no picture.
	ErrNoPicture = fmt.Errorf("picture %w", ErrNotFound)
)
