package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/dto"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blogs/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/slug"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/validation"
)

type BlogService struct {
	Users   repo.UserRepository
	Blogs   repo.BlogRepository
	Images  ImageStore
	Indexer ArticleIndexer
	Locks   *OwnerLocks
	Logger  *logrus.Logger
	events  emitter
}

func NewBlogService(users repo.UserRepository, blogs repo.BlogRepository, images ImageStore, indexer ArticleIndexer, locks *OwnerLocks, pub EventPublisher, logger *logrus.Logger) *BlogService {
	if locks == nil {
		locks = NewOwnerLocks()
	}
	return &BlogService{
		Users:   users,
		Blogs:   blogs,
		Images:  images,
		Indexer: indexer,
		Locks:   locks,
		Logger:  logger,
		events:  emitter{pub: pub, logger: logger},
	}
}

// reloadOwner returns the owner's current graph; callers hold the owner lock.
func reloadOwner(ctx context.Context, users repo.UserRepository, owner *entity.User) (*entity.User, error) {
	u, err := users.GetByID(ctx, owner.ID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(apperror.UserNotFound)
		}
		return nil, storeErr(err)
	}
	return u, nil
}

// AddBlog creates a blog for owner. Slugs are unique per owner only.
func (s *BlogService) AddBlog(ctx context.Context, owner *entity.User, req dto.BlogRequest) (*entity.Blog, error) {
	if res := validation.ValidateBlog(req); !res.OK() {
		return nil, validationFailure(res)
	}
	unlock := s.Locks.Lock(owner.ID)
	defer unlock()

	current, err := reloadOwner(ctx, s.Users, owner)
	if err != nil {
		return nil, err
	}
	sl := slug.Make(*req.Title)
	if _, dup := current.FindBlogBySlug(sl); dup {
		return nil, apperror.Conflict(apperror.BlogNameAlreadyExist)
	}

	b := &entity.Blog{Title: *req.Title, Slug: sl, OwnerID: current.ID, Articles: []*entity.Article{}}
	if err := s.Blogs.Create(ctx, b); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict(apperror.BlogNameAlreadyExist)
		}
		return nil, storeErr(err)
	}
	s.events.emit(ctx, Event{Type: EventBlogCreated, Username: current.Username, ResourceID: b.ID, Data: map[string]any{"title": b.Title}})
	return b, nil
}

// UpdateBlog renames one of owner's blogs. The duplicate check runs over all
// of owner's blogs, the edited one included.
func (s *BlogService) UpdateBlog(ctx context.Context, owner *entity.User, blogID string, req dto.BlogRequest) (*entity.Blog, error) {
	if res := validation.ValidateBlog(req); !res.OK() {
		return nil, validationFailure(res)
	}
	unlock := s.Locks.Lock(owner.ID)
	defer unlock()

	current, err := reloadOwner(ctx, s.Users, owner)
	if err != nil {
		return nil, err
	}
	b, ok := current.FindBlog(blogID)
	if !ok {
		return nil, apperror.NotFound(apperror.BlogNotFound)
	}
	sl := slug.Make(*req.Title)
	if _, dup := current.FindBlogBySlug(sl); dup {
		return nil, apperror.Conflict(apperror.BlogNameAlreadyExist)
	}

	b.Title = *req.Title
	b.Slug = sl
	if err := s.Blogs.Update(ctx, b); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict(apperror.BlogNameAlreadyExist)
		}
		return nil, storeErr(err)
	}
	s.events.emit(ctx, Event{Type: EventBlogUpdated, Username: current.Username, ResourceID: b.ID, Data: map[string]any{"title": b.Title}})
	return b, nil
}

// DeleteBlog removes the blog with its articles. Image files are deleted
// first; a file that cannot be removed is logged and left behind so the
// rows never point at missing files.
func (s *BlogService) DeleteBlog(ctx context.Context, owner *entity.User, blogID string) error {
	unlock := s.Locks.Lock(owner.ID)
	defer unlock()

	current, err := reloadOwner(ctx, s.Users, owner)
	if err != nil {
		return err
	}
	b, ok := current.FindBlog(blogID)
	if !ok {
		return apperror.NotFound(apperror.BlogNotFound)
	}

	for _, a := range b.Articles {
		if a.Image == nil {
			continue
		}
		if err := s.Images.Delete(ctx, a.Image.StoredName); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"blog_id": b.ID, "image": a.Image.StoredName}).Warn("image delete failed")
		}
	}

	if err := s.Blogs.Delete(ctx, b.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.NotFound(apperror.BlogNotFound)
		}
		return storeErr(err)
	}

	if s.Indexer != nil {
		for _, a := range b.Articles {
			if err := s.Indexer.Remove(ctx, a.ID); err != nil && s.Logger != nil {
				s.Logger.WithError(err).WithField("article_id", a.ID).Warn("search index remove failed")
			}
		}
	}
	s.events.emit(ctx, Event{Type: EventBlogDeleted, Username: current.Username, ResourceID: b.ID})
	return nil
}

func (s *BlogService) GetBlog(ctx context.Context, id string) (*entity.Blog, error) {
	b, err := s.Blogs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(apperror.BlogNotFound)
		}
		return nil, storeErr(err)
	}
	return b, nil
}

// ListAllBlogs returns every blog; an empty store is NO_BLOGS_FOUND.
func (s *BlogService) ListAllBlogs(ctx context.Context) ([]*entity.Blog, error) {
	blogs, err := s.Blogs.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(blogs) == 0 {
		return nil, apperror.NotFound(apperror.NoBlogsFound)
	}
	return blogs, nil
}

func (s *BlogService) ListUserBlogs(ctx context.Context, username string) ([]*entity.Blog, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(apperror.UserNotFound)
		}
		return nil, storeErr(err)
	}
	if len(u.Blogs) == 0 {
		return nil, apperror.NotFound(apperror.NoBlogsFound)
	}
	return u.Blogs, nil
}

// ListBlogsByTitle finds blogs of any owner whose slug matches title.
func (s *BlogService) ListBlogsByTitle(ctx context.Context, title string) ([]*entity.Blog, error) {
	blogs, err := s.Blogs.ListBySlug(ctx, slug.Make(title))
	if err != nil {
		return nil, storeErr(err)
	}
	if len(blogs) == 0 {
		return nil, apperror.NotFound(apperror.NoBlogsFound)
	}
	return blogs, nil
}
