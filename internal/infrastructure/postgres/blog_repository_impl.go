package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/repository"
)

type BlogRepository struct {
	pool *pgxpool.Pool
}

func NewBlogRepository(pool *pgxpool.Pool) *BlogRepository {
	return &BlogRepository{pool: pool}
}

func (r *BlogRepository) Create(ctx context.Context, b *entity.Blog) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO blogs (user_id, title, slug)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, b.OwnerID, b.Title, b.Slug)

	if err := row.Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return mapErr(err)
	}
	if b.Articles == nil {
		b.Articles = []*entity.Article{}
	}
	return nil
}

func (r *BlogRepository) Update(ctx context.Context, b *entity.Blog) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE blogs
		SET title = $1, slug = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`, b.Title, b.Slug, b.ID)
	return mapErr(row.Scan(&b.UpdatedAt))
}

// Delete relies on ON DELETE CASCADE for articles and images.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*entity.Blog, error) {
	blogs, err := loadBlogs(ctx, r.pool, `WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if len(blogs) == 0 {
		return nil, repository.ErrNotFound
	}
	return blogs[0], nil
}

func (r *BlogRepository) ListAll(ctx context.Context) ([]*entity.Blog, error) {
	return loadBlogs(ctx, r.pool, ``)
}

func (r *BlogRepository) ListBySlug(ctx context.Context, slug string) ([]*entity.Blog, error) {
	return loadBlogs(ctx, r.pool, `WHERE slug = $1`, slug)
}

var _ repository.BlogRepository = (*BlogRepository)(nil)
