package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const uniqueViolation = "23505"

// mapErr translates driver errors into repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

const blogColumns = `id, user_id, title, slug, created_at, updated_at`

// loadBlogs runs a blog query and attaches each blog's articles and images.
func loadBlogs(ctx context.Context, q querier, where string, args ...any) ([]*entity.Blog, error) {
	rows, err := q.Query(ctx, `SELECT `+blogColumns+` FROM blogs `+where+` ORDER BY created_at, id`, args...)
	if err != nil {
		return nil, err
	}
	blogs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Blog, error) {
		b := &entity.Blog{Articles: []*entity.Article{}}
		err := row.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Slug, &b.CreatedAt, &b.UpdatedAt)
		return b, err
	})
	if err != nil {
		return nil, err
	}
	if len(blogs) == 0 {
		return blogs, nil
	}

	ids := make([]string, len(blogs))
	byID := make(map[string]*entity.Blog, len(blogs))
	for i, b := range blogs {
		ids[i] = b.ID
		byID[b.ID] = b
	}
	articles, err := loadArticles(ctx, q, `WHERE a.blog_id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, a := range articles {
		if b, ok := byID[a.BlogID]; ok {
			b.Articles = append(b.Articles, a)
		}
	}
	return blogs, nil
}

const articleSelect = `
	SELECT a.id, a.blog_id, a.title, a.slug, a.content, a.created_at, a.updated_at,
	       i.id, i.image_name, i.url
	FROM articles a
	LEFT JOIN images i ON i.article_id = a.id
`

func loadArticles(ctx context.Context, q querier, where string, args ...any) ([]*entity.Article, error) {
	rows, err := q.Query(ctx, articleSelect+where+` ORDER BY a.created_at, a.id`, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.Article, error) {
		a := &entity.Article{}
		var imgID, imgName, imgURL *string
		if err := row.Scan(&a.ID, &a.BlogID, &a.Title, &a.Slug, &a.Content, &a.CreatedAt, &a.UpdatedAt,
			&imgID, &imgName, &imgURL); err != nil {
			return nil, err
		}
		if imgID != nil {
			a.Image = &entity.Image{ID: *imgID, StoredName: deref(imgName), URL: deref(imgURL), ArticleID: a.ID}
		}
		return a, nil
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
