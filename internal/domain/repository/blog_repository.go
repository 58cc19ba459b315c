package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
)

// BlogRepository persists blogs. Delete cascades to articles and image rows.
type BlogRepository interface {
	Create(ctx context.Context, b *entity.Blog) error
	Update(ctx context.Context, b *entity.Blog) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Blog, error)
	ListAll(ctx context.Context) ([]*entity.Blog, error)
	ListBySlug(ctx context.Context, slug string) ([]*entity.Blog, error)
}
