package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrDuplicate     = errors.New("duplicate")
	ErrSessionActive = errors.New("session already active")
)

// UserRepository is the User Store. Every lookup returns the user with its
// owned graph (blogs, articles, images) loaded.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, encodedEmail string) (*entity.User, error)
	GetBySessionToken(ctx context.Context, token string) (*entity.User, error)
	// StartSession atomically moves the user to logged-in with token, failing
	// with ErrSessionActive when a session already exists.
	StartSession(ctx context.Context, userID, token string) error
	EndSession(ctx context.Context, userID string) error
	Delete(ctx context.Context, id string) error
}
