package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kavyanair/mindhaven/backend/internal/domain"
	"github.com/kavyanair/mindhaven/backend/internal/model/user"
	"github.com/kavyanair/mindhaven/backend/internal/repository"
)

// Service handles account registration and credential verification. This is
// plumbing around the chat pipeline, not part of it.
type Service struct {
	users repository.UserStore
}

func NewService(users repository.UserStore) *Service {
	return &Service{users: users}
}

// Register creates an account with a bcrypt-hashed password. Usernames are
// case-normalized to lowercase before storage.
func (s *Service) Register(ctx context.Context, username, password, name string) (int64, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	name = strings.TrimSpace(name)
	if username == "" || password == "" || name == "" {
		return 0, domain.ErrMissingField
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	return s.users.Create(ctx, username, string(hash), name)
}

// Login verifies credentials. Unknown usernames and wrong passwords produce
// the same error so the response does not reveal which one failed.
func (s *Service) Login(ctx context.Context, username, password string) (user.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return user.User{}, domain.ErrInvalidCredentials
		}
		return user.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return user.User{}, domain.ErrInvalidCredentials
	}
	return u, nil
}
