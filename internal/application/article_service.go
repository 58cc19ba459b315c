package application

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/dto"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	repo "github.com/oksasatya/go-ddd-blogs/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/slug"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/validation"
)

const defaultSearchSize = 20

type ArticleService struct {
	Users        repo.UserRepository
	Blogs        repo.BlogRepository
	Articles     repo.ArticleRepository
	Images       ImageStore
	Indexer      ArticleIndexer
	Locks        *OwnerLocks
	Logger       *logrus.Logger
	ImageBaseURL string
	// ImageName builds the stored file name for an upload.
	ImageName func(ownerID, filename string) string
	events    emitter
}

func NewArticleService(users repo.UserRepository, blogs repo.BlogRepository, articles repo.ArticleRepository, images ImageStore, indexer ArticleIndexer, locks *OwnerLocks, pub EventPublisher, logger *logrus.Logger, imageBaseURL string) *ArticleService {
	if locks == nil {
		locks = NewOwnerLocks()
	}
	return &ArticleService{
		Users:        users,
		Blogs:        blogs,
		Articles:     articles,
		Images:       images,
		Indexer:      indexer,
		Locks:        locks,
		Logger:       logger,
		ImageBaseURL: imageBaseURL,
		ImageName:    StoredImageName,
		events:       emitter{pub: pub, logger: logger},
	}
}

// StoredImageName is "<ownerID>-<uuid><ext>" with the upload's extension.
func StoredImageName(ownerID, filename string) string {
	return ownerID + "-" + uuid.NewString() + filepath.Ext(filename)
}

// storeImage writes the upload and returns the image value pointing at it.
func (s *ArticleService) storeImage(ctx context.Context, ownerID string, f *dto.ImageFile) (*entity.Image, error) {
	name := s.ImageName(ownerID, f.Filename)
	stored, err := s.Images.Store(ctx, f.Content, name, f.ContentType)
	if err != nil {
		return nil, err
	}
	return &entity.Image{StoredName: stored, URL: s.ImageBaseURL + stored}, nil
}

// discardImage is the compensation for a failed row write.
func (s *ArticleService) discardImage(ctx context.Context, name string) {
	if err := s.Images.Delete(ctx, name); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("image", name).Error("orphan image left in store")
	}
}

func (s *ArticleService) index(ctx context.Context, a *entity.Article, owner string) {
	if s.Indexer == nil {
		return
	}
	if err := s.Indexer.Index(ctx, a, owner); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("article_id", a.ID).Warn("search index failed")
	}
}

// AddArticle posts into the owner's blog whose slug matches blogTitle.
func (s *ArticleService) AddArticle(ctx context.Context, owner *entity.User, blogTitle string, req dto.ArticleRequest) (*entity.Article, error) {
	if res := validation.ValidateArticle(req); !res.OK() {
		return nil, validationFailure(res)
	}
	unlock := s.Locks.Lock(owner.ID)
	defer unlock()

	current, err := reloadOwner(ctx, s.Users, owner)
	if err != nil {
		return nil, err
	}
	b, ok := current.FindBlogBySlug(slug.Make(blogTitle))
	if !ok {
		return nil, apperror.NotFound(apperror.BlogNotFound)
	}
	sl := slug.Make(*req.Title)
	if b.HasArticleSlug(sl) {
		return nil, apperror.Conflict(apperror.ArticleNameAlreadyExist)
	}

	img, err := s.storeImage(ctx, current.ID, req.File)
	if err != nil {
		return nil, err
	}
	a := &entity.Article{Title: *req.Title, Slug: sl, Content: *req.Content, BlogID: b.ID, Image: img}
	if err := s.Articles.Create(ctx, a); err != nil {
		s.discardImage(ctx, img.StoredName)
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict(apperror.ArticleNameAlreadyExist)
		}
		return nil, storeErr(err)
	}

	s.index(ctx, a, current.Username)
	s.events.emit(ctx, Event{Type: EventArticleCreated, Username: current.Username, ResourceID: a.ID, Data: map[string]any{"blog_id": b.ID, "title": a.Title}})
	return a, nil
}

// UpdateArticle replaces title, content and image. The old file goes first;
// if the row write fails the new file is removed again.
func (s *ArticleService) UpdateArticle(ctx context.Context, owner *entity.User, articleID string, req dto.ArticleRequest) (*entity.Article, error) {
	if res := validation.ValidateArticle(req); !res.OK() {
		return nil, validationFailure(res)
	}
	unlock := s.Locks.Lock(owner.ID)
	defer unlock()

	current, err := reloadOwner(ctx, s.Users, owner)
	if err != nil {
		return nil, err
	}
	a, ok := current.FindArticle(articleID)
	if !ok {
		return nil, apperror.NotFound(apperror.ArticleNotFound)
	}
	b, ok := current.FindBlog(a.BlogID)
	if !ok {
		return nil, apperror.NotFound(apperror.BlogNotFound)
	}
	sl := slug.Make(*req.Title)
	if b.HasArticleSlug(sl) {
		return nil, apperror.Conflict(apperror.ArticleNameAlreadyExist)
	}

	if a.Image != nil {
		if err := s.Images.Delete(ctx, a.Image.StoredName); err != nil {
			return nil, err
		}
	}
	img, err := s.storeImage(ctx, current.ID, req.File)
	if err != nil {
		return nil, err
	}
	if a.Image != nil {
		img.ID = a.Image.ID
	}
	img.ArticleID = a.ID

	a.Title = *req.Title
	a.Slug = sl
	a.Content = *req.Content
	a.Image = img
	if err := s.Articles.Update(ctx, a); err != nil {
		s.discardImage(ctx, img.StoredName)
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, apperror.Conflict(apperror.ArticleNameAlreadyExist)
		}
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(apperror.ArticleNotFound)
		}
		return nil, storeErr(err)
	}

	s.index(ctx, a, current.Username)
	s.events.emit(ctx, Event{Type: EventArticleUpdated, Username: current.Username, ResourceID: a.ID, Data: map[string]any{"title": a.Title}})
	return a, nil
}

// DeleteArticle removes the image file, then the article row.
func (s *ArticleService) DeleteArticle(ctx context.Context, owner *entity.User, articleID string) error {
	unlock := s.Locks.Lock(owner.ID)
	defer unlock()

	current, err := reloadOwner(ctx, s.Users, owner)
	if err != nil {
		return err
	}
	a, ok := current.FindArticle(articleID)
	if !ok {
		return apperror.NotFound(apperror.ArticleNotFound)
	}
	if a.Image != nil {
		if err := s.Images.Delete(ctx, a.Image.StoredName); err != nil {
			return err
		}
	}
	if err := s.Articles.Delete(ctx, a.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return apperror.NotFound(apperror.ArticleNotFound)
		}
		return storeErr(err)
	}

	if s.Indexer != nil {
		if err := s.Indexer.Remove(ctx, a.ID); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("article_id", a.ID).Warn("search index remove failed")
		}
	}
	s.events.emit(ctx, Event{Type: EventArticleDeleted, Username: current.Username, ResourceID: a.ID})
	return nil
}

func (s *ArticleService) ListAllArticles(ctx context.Context) ([]*entity.Article, error) {
	articles, err := s.Articles.ListAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	if len(articles) == 0 {
		return nil, apperror.NotFound(apperror.NoArticlesFound)
	}
	return articles, nil
}

func (s *ArticleService) ListUserArticles(ctx context.Context, username string) ([]*entity.Article, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperror.NotFound(apperror.UserNotFound)
		}
		return nil, storeErr(err)
	}
	articles := u.Articles()
	if len(articles) == 0 {
		return nil, apperror.NotFound(apperror.NoArticlesFound)
	}
	return articles, nil
}

// ListBlogArticles collects the articles of every blog, across owners, whose
// slug matches blogTitle.
func (s *ArticleService) ListBlogArticles(ctx context.Context, blogTitle string) ([]*entity.Article, error) {
	blogs, err := s.Blogs.ListBySlug(ctx, slug.Make(blogTitle))
	if err != nil {
		return nil, storeErr(err)
	}
	var articles []*entity.Article
	for _, b := range blogs {
		articles = append(articles, b.Articles...)
	}
	if len(articles) == 0 {
		return nil, apperror.NotFound(apperror.NoArticlesFound)
	}
	return articles, nil
}

// SearchArticles runs a full-text query against the article index.
func (s *ArticleService) SearchArticles(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.Indexer == nil {
		return nil, apperror.NotFound(apperror.NoArticlesFound)
	}
	if size <= 0 {
		size = defaultSearchSize
	}
	hits, err := s.Indexer.Search(ctx, strings.TrimSpace(q), size)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(hits) == 0 {
		return nil, apperror.NotFound(apperror.NoArticlesFound)
	}
	return hits, nil
}

// LoadImage returns the bytes of a stored image. Names are flat; anything
// that could escape the store is rejected.
func (s *ArticleService) LoadImage(ctx context.Context, name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return nil, apperror.Validation(apperror.CouldNotLoadFile)
	}
	return s.Images.Load(ctx, name)
}
