package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/repository"
)

type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

// Create writes the article and its image row in one transaction.
func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	return mapErr(pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO articles (blog_id, title, slug, content)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_at, updated_at
		`, a.BlogID, a.Title, a.Slug, a.Content)
		if err := row.Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return err
		}
		if a.Image == nil {
			return nil
		}
		a.Image.ArticleID = a.ID
		return tx.QueryRow(ctx, `
			INSERT INTO images (article_id, image_name, url)
			VALUES ($1, $2, $3)
			RETURNING id
		`, a.ID, a.Image.StoredName, a.Image.URL).Scan(&a.Image.ID)
	}))
}

func (r *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	return mapErr(pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			UPDATE articles
			SET title = $1, slug = $2, content = $3, updated_at = now()
			WHERE id = $4
			RETURNING updated_at
		`, a.Title, a.Slug, a.Content, a.ID)
		if err := row.Scan(&a.UpdatedAt); err != nil {
			return err
		}
		if a.Image == nil {
			return nil
		}
		a.Image.ArticleID = a.ID
		return tx.QueryRow(ctx, `
			INSERT INTO images (article_id, image_name, url)
			VALUES ($1, $2, $3)
			ON CONFLICT (article_id) DO UPDATE SET image_name = EXCLUDED.image_name, url = EXCLUDED.url
			RETURNING id
		`, a.ID, a.Image.StoredName, a.Image.URL).Scan(&a.Image.ID)
	}))
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) ListAll(ctx context.Context) ([]*entity.Article, error) {
	return loadArticles(ctx, r.pool, ``)
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)
