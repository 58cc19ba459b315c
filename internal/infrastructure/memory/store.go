// Package memory is an in-process implementation of the repositories, used
// by tests and by STORE_DRIVER=memory.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/repository"
)

// Store holds every row. Values handed out are copies; callers never alias
// stored state.
type Store struct {
	mu sync.RWMutex

	users    map[string]*entity.User
	blogs    map[string]*entity.Blog
	articles map[string]*entity.Article

	userOrder    []string
	blogOrder    []string
	articleOrder []string

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    map[string]*entity.User{},
		blogs:    map[string]*entity.Blog{},
		articles: map[string]*entity.Article{},
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s} }
func (s *Store) Blogs() *BlogRepository       { return &BlogRepository{s} }
func (s *Store) Articles() *ArticleRepository { return &ArticleRepository{s} }

func remove(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(v string) bool { return v == id })
}

func cloneArticle(a *entity.Article) *entity.Article {
	c := *a
	if a.Image != nil {
		img := *a.Image
		c.Image = &img
	}
	return &c
}

// blogGraph copies b with its articles in insertion order. Caller holds mu.
func (s *Store) blogGraph(b *entity.Blog) *entity.Blog {
	c := *b
	c.Articles = []*entity.Article{}
	for _, id := range s.articleOrder {
		if a := s.articles[id]; a.BlogID == b.ID {
			c.Articles = append(c.Articles, cloneArticle(a))
		}
	}
	return &c
}

// userGraph copies u with its blogs. Caller holds mu.
func (s *Store) userGraph(u *entity.User) *entity.User {
	c := *u
	c.Blogs = []*entity.Blog{}
	for _, id := range s.blogOrder {
		if b := s.blogs[id]; b.OwnerID == u.ID {
			c.Blogs = append(c.Blogs, s.blogGraph(b))
		}
	}
	return &c
}

// deleteBlog cascades to articles. Caller holds mu.
func (s *Store) deleteBlog(id string) {
	for _, aid := range slices.Clone(s.articleOrder) {
		if s.articles[aid].BlogID == id {
			delete(s.articles, aid)
			s.articleOrder = remove(s.articleOrder, aid)
		}
	}
	delete(s.blogs, id)
	s.blogOrder = remove(s.blogOrder, id)
}

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.users {
		if other.Username == u.Username || other.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = s.now()
	u.UpdatedAt = u.CreatedAt
	u.Blogs = []*entity.Blog{}

	stored := *u
	stored.Blogs = nil
	s.users[u.ID] = &stored
	s.userOrder = append(s.userOrder, u.ID)
	return nil
}

func (r *UserRepository) find(match func(*entity.User) bool) (*entity.User, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.userOrder {
		if u := s.users[id]; match(u) {
			return s.userGraph(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *UserRepository) GetByEmail(_ context.Context, encodedEmail string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Email == encodedEmail })
}

func (r *UserRepository) GetBySessionToken(_ context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}
	return r.find(func(u *entity.User) bool { return u.SessionToken == token })
}

func (r *UserRepository) StartSession(_ context.Context, userID, token string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	if u.IsLoggedIn {
		return repository.ErrSessionActive
	}
	u.IsLoggedIn = true
	u.SessionToken = token
	u.UpdatedAt = s.now()
	return nil
}

func (r *UserRepository) EndSession(_ context.Context, userID string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.IsLoggedIn = false
	u.SessionToken = ""
	u.UpdatedAt = s.now()
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return repository.ErrNotFound
	}
	for _, bid := range slices.Clone(s.blogOrder) {
		if s.blogs[bid].OwnerID == id {
			s.deleteBlog(bid)
		}
	}
	delete(s.users, id)
	s.userOrder = remove(s.userOrder, id)
	return nil
}

type BlogRepository struct{ s *Store }

// blogSlugTaken reports whether owner has another blog with slug. Caller holds mu.
func (s *Store) blogSlugTaken(ownerID, slug, exceptID string) bool {
	for _, b := range s.blogs {
		if b.OwnerID == ownerID && b.Slug == slug && b.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *BlogRepository) Create(_ context.Context, b *entity.Blog) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[b.OwnerID]; !ok {
		return repository.ErrNotFound
	}
	if s.blogSlugTaken(b.OwnerID, b.Slug, "") {
		return repository.ErrDuplicate
	}
	b.ID = uuid.NewString()
	b.CreatedAt = s.now()
	b.UpdatedAt = b.CreatedAt
	if b.Articles == nil {
		b.Articles = []*entity.Article{}
	}

	stored := *b
	stored.Articles = nil
	s.blogs[b.ID] = &stored
	s.blogOrder = append(s.blogOrder, b.ID)
	return nil
}

func (r *BlogRepository) Update(_ context.Context, b *entity.Blog) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.blogs[b.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if s.blogSlugTaken(stored.OwnerID, b.Slug, b.ID) {
		return repository.ErrDuplicate
	}
	stored.Title = b.Title
	stored.Slug = b.Slug
	stored.UpdatedAt = s.now()
	b.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *BlogRepository) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blogs[id]; !ok {
		return repository.ErrNotFound
	}
	s.deleteBlog(id)
	return nil
}

func (r *BlogRepository) GetByID(_ context.Context, id string) (*entity.Blog, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s.blogGraph(b), nil
}

func (r *BlogRepository) list(match func(*entity.Blog) bool) []*entity.Blog {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*entity.Blog{}
	for _, id := range s.blogOrder {
		if b := s.blogs[id]; match(b) {
			out = append(out, s.blogGraph(b))
		}
	}
	return out
}

func (r *BlogRepository) ListAll(_ context.Context) ([]*entity.Blog, error) {
	return r.list(func(*entity.Blog) bool { return true }), nil
}

func (r *BlogRepository) ListBySlug(_ context.Context, slug string) ([]*entity.Blog, error) {
	return r.list(func(b *entity.Blog) bool { return b.Slug == slug }), nil
}

type ArticleRepository struct{ s *Store }

func (s *Store) articleSlugTaken(blogID, slug, exceptID string) bool {
	for _, a := range s.articles {
		if a.BlogID == blogID && a.Slug == slug && a.ID != exceptID {
			return true
		}
	}
	return false
}

func (r *ArticleRepository) Create(_ context.Context, a *entity.Article) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blogs[a.BlogID]; !ok {
		return repository.ErrNotFound
	}
	if s.articleSlugTaken(a.BlogID, a.Slug, "") {
		return repository.ErrDuplicate
	}
	a.ID = uuid.NewString()
	a.CreatedAt = s.now()
	a.UpdatedAt = a.CreatedAt
	if a.Image != nil {
		a.Image.ID = uuid.NewString()
		a.Image.ArticleID = a.ID
	}
	s.articles[a.ID] = cloneArticle(a)
	s.articleOrder = append(s.articleOrder, a.ID)
	return nil
}

func (r *ArticleRepository) Update(_ context.Context, a *entity.Article) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.articles[a.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if s.articleSlugTaken(stored.BlogID, a.Slug, a.ID) {
		return repository.ErrDuplicate
	}
	a.UpdatedAt = s.now()
	if a.Image != nil {
		if a.Image.ID == "" {
			a.Image.ID = uuid.NewString()
		}
		a.Image.ArticleID = a.ID
	}
	c := cloneArticle(a)
	c.BlogID = stored.BlogID
	c.CreatedAt = stored.CreatedAt
	s.articles[a.ID] = c
	return nil
}

func (r *ArticleRepository) Delete(_ context.Context, id string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.articles, id)
	s.articleOrder = remove(s.articleOrder, id)
	return nil
}

func (r *ArticleRepository) ListAll(_ context.Context) ([]*entity.Article, error) {
	s := r.s
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*entity.Article{}
	for _, id := range s.articleOrder {
		out = append(out, cloneArticle(s.articles[id]))
	}
	return out, nil
}

var (
	_ repository.UserRepository    = (*UserRepository)(nil)
	_ repository.BlogRepository    = (*BlogRepository)(nil)
	_ repository.ArticleRepository = (*ArticleRepository)(nil)
)
