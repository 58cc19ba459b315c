package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, u.Username, u.Email, u.Password)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapErr(err)
	}
	u.Blogs = []*entity.Blog{}
	return nil
}

func (r *UserRepository) getOne(ctx context.Context, column, value string) (*entity.User, error) {
	u := &entity.User{}
	var token *string

	row := r.pool.QueryRow(ctx, `
		SELECT id, username, email, password_hash, session_token, is_logged_in, created_at, updated_at
		FROM users
		WHERE `+column+` = $1
	`, value)

	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &token, &u.IsLoggedIn,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapErr(err)
	}
	u.SessionToken = deref(token)

	blogs, err := loadBlogs(ctx, r.pool, `WHERE user_id = $1`, u.ID)
	if err != nil {
		return nil, err
	}
	u.Blogs = blogs
	return u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.getOne(ctx, "username", username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, encodedEmail string) (*entity.User, error) {
	return r.getOne(ctx, "email", encodedEmail)
}

func (r *UserRepository) GetBySessionToken(ctx context.Context, token string) (*entity.User, error) {
	return r.getOne(ctx, "session_token", token)
}

// StartSession only flips a logged-out row, so two concurrent logins cannot
// both succeed.
func (r *UserRepository) StartSession(ctx context.Context, userID, token string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_logged_in = TRUE, session_token = $2, updated_at = now()
		WHERE id = $1 AND NOT is_logged_in
	`, userID, token)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 1 {
		return nil
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}
	return repository.ErrSessionActive
}

func (r *UserRepository) EndSession(ctx context.Context, userID string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET is_logged_in = FALSE, session_token = NULL, updated_at = now()
		WHERE id = $1
	`, userID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
