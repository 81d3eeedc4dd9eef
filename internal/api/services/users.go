package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rohits-web03/llamastore/internal/auth"
	"github.com/rohits-web03/llamastore/internal/models"
	"github.com/rohits-web03/llamastore/internal/repositories"
)

// UserService covers registration, login and resolving the caller from a token.
type UserService struct {
	users   *repositories.UserRepository
	secrets *repositories.SecretRepository
	tokens  *auth.TokenManager
	log     *zap.SugaredLogger
}

func NewUserService(users *repositories.UserRepository, secrets *repositories.SecretRepository, tokens *auth.TokenManager, log *zap.SugaredLogger) *UserService {
	return &UserService{users: users, secrets: secrets, tokens: tokens, log: log}
}

func (s *UserService) Register(ctx context.Context, email, password string) (models.User, error) {
	_, exists, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if exists {
		return models.User{}, ErrAlreadyRegistered
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u := models.User{Email: strings.ToLower(email), HashedPassword: hash}
	if err := s.users.CreateAndPrune(ctx, &u); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return models.User{}, ErrAlreadyRegistered
		}
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	s.log.Infow("user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate returns ErrNotFound both for an unknown email and for a wrong
// password so callers cannot tell which one failed.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	u, ok, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !ok || !auth.VerifyPassword(password, u.HashedPassword) {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *UserService) IssueToken(ctx context.Context, u models.User) (string, error) {
	secret, err := s.secrets.Get(ctx)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(u.Email, secret)
}

// CurrentUser resolves a bearer token to its user.
func (s *UserService) CurrentUser(ctx context.Context, token string) (models.User, error) {
	secret, err := s.secrets.Get(ctx)
	if err != nil {
		return models.User{}, err
	}
	email, err := s.tokens.Validate(token, secret)
	if err != nil {
		s.log.Debugw("token rejected", "err", err)
		return models.User{}, ErrUnauthorized
	}
	u, ok, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !ok {
		return models.User{}, ErrUnauthorized
	}
	return u, nil
}

// Lookup only ever reveals the caller's own account.
func (s *UserService) Lookup(ctx context.Context, current models.User, email string) (models.User, error) {
	if !strings.EqualFold(current.Email, email) {
		return models.User{}, ErrNotFound
	}
	u, ok, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, fmt.Errorf("lookup user: %w", err)
	}
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
