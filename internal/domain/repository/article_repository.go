package repository

import (
	"context"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
)

// ArticleRepository persists an article together with its image row.
type ArticleRepository interface {
	Create(ctx context.Context, a *entity.Article) error
	Update(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]*entity.Article, error)
}
