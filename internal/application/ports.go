package application

import (
	"context"
	"io"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
)

// ImageStore holds image bytes by name. Implementations translate I/O
// failures into apperror values; Delete of a missing name is not an error.
type ImageStore interface {
	Store(ctx context.Context, r io.Reader, name, contentType string) (string, error)
	Load(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

// PasswordHasher is a salted one-way hash with verify.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// SessionCache is an optional token -> username index in front of the user store.
type SessionCache interface {
	Put(ctx context.Context, token, username string) error
	Lookup(ctx context.Context, token string) (string, bool, error)
	Remove(ctx context.Context, token string) error
}

// ArticleIndexer keeps a search index of articles.
type ArticleIndexer interface {
	Index(ctx context.Context, a *entity.Article, owner string) error
	Remove(ctx context.Context, articleID string) error
	Search(ctx context.Context, q string, size int) ([]map[string]any, error)
}

// EventPublisher emits domain events once a mutation committed.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}
