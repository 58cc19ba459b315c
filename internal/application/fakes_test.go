package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/dto"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blogs/internal/infrastructure/memory"
	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

const testBaseURL = "http://localhost/api/v1/files/"

// callLog records collaborator calls in order across fakes.
type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type fakeImages struct {
	mu        sync.Mutex
	files     map[string][]byte
	stores    int
	deletes   int
	failStore error
	log       *callLog
}

func newFakeImages(log *callLog) *fakeImages {
	return &fakeImages{files: map[string][]byte{}, log: log}
}

func (f *fakeImages) Store(_ context.Context, r io.Reader, name, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stores++
	f.log.add("image.store")
	if f.failStore != nil {
		return "", apperror.Validation(apperror.CouldNotStoreImage, f.failStore.Error())
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.files[name] = b
	return name, nil
}

func (f *fakeImages) Load(_ context.Context, name string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.files[name]
	if !ok {
		return nil, apperror.NotFound(apperror.CouldNotLoadFile)
	}
	return b, nil
}

func (f *fakeImages) Delete(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes++
	f.log.add("image.delete")
	delete(f.files, name)
	return nil
}

func (f *fakeImages) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

// recordingBlogs logs deletes into the shared call log.
type recordingBlogs struct {
	repository.BlogRepository
	log *callLog
}

func (r recordingBlogs) Delete(ctx context.Context, id string) error {
	r.log.add("blog.delete")
	return r.BlogRepository.Delete(ctx, id)
}

// flakyArticles fails writes on demand.
type flakyArticles struct {
	repository.ArticleRepository
	creates int
	fail    error
}

func (r *flakyArticles) Create(ctx context.Context, a *entity.Article) error {
	r.creates++
	if r.fail != nil {
		return r.fail
	}
	return r.ArticleRepository.Create(ctx, a)
}

func (r *flakyArticles) Update(ctx context.Context, a *entity.Article) error {
	if r.fail != nil {
		return r.fail
	}
	return r.ArticleRepository.Update(ctx, a)
}

type fakeSessions struct {
	mu      sync.Mutex
	entries map[string]string
}

func (f *fakeSessions) Put(_ context.Context, token, username string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[token] = username
	return nil
}

func (f *fakeSessions) Lookup(_ context.Context, token string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.entries[token]
	return u, ok, nil
}

func (f *fakeSessions) Remove(context.Context, string) error {
	return errors.New("cache unavailable")
}

type fakePublisher struct {
	mu     sync.Mutex
	events []Event
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, body.(Event))
	return nil
}

func (f *fakePublisher) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.events))
	for i, e := range f.events {
		out[i] = e.Type
	}
	return out
}

type testEnv struct {
	store    *memory.Store
	log      *callLog
	images   *fakeImages
	articleR *flakyArticles
	sessions *fakeSessions
	pub      *fakePublisher
	auth     *AuthService
	blogs    *BlogService
	articles *ArticleService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := helpers.NewDiscardLogger()
	logger.SetLevel(logrus.PanicLevel)

	e := &testEnv{
		store:    memory.NewStore(),
		log:      &callLog{},
		sessions: &fakeSessions{entries: map[string]string{}},
		pub:      &fakePublisher{},
	}
	e.images = newFakeImages(e.log)
	e.articleR = &flakyArticles{ArticleRepository: e.store.Articles()}
	users := e.store.Users()
	blogs := recordingBlogs{BlogRepository: e.store.Blogs(), log: e.log}
	locks := NewOwnerLocks()

	e.auth = NewAuthService(users, helpers.NewBcryptHasher(bcrypt.MinCost), e.sessions, e.pub, logger)
	e.blogs = NewBlogService(users, blogs, e.images, nil, locks, e.pub, logger)
	e.articles = NewArticleService(users, blogs, e.articleR, e.images, nil, locks, e.pub, logger, testBaseURL)
	return e
}

func registerReq(username, email, password string) dto.RegisterRequest {
	return dto.RegisterRequest{Username: dto.StrPtr(username), Email: dto.StrPtr(email), Password: dto.StrPtr(password)}
}

// loggedIn registers and logs in a user.
func (e *testEnv) loggedIn(t *testing.T, username string) *entity.User {
	t.Helper()
	ctx := context.Background()
	email := username + "@example.com"
	_, err := e.auth.Register(ctx, registerReq(username, email, "secret1"))
	require.NoError(t, err)
	u, err := e.auth.Login(ctx, dto.LoginRequest{Email: dto.StrPtr(email), Password: dto.StrPtr("secret1")})
	require.NoError(t, err)
	return u
}

func (e *testEnv) blog(t *testing.T, owner *entity.User, title string) *entity.Blog {
	t.Helper()
	b, err := e.blogs.AddBlog(context.Background(), owner, dto.BlogRequest{Title: dto.StrPtr(title)})
	require.NoError(t, err)
	return b
}

func articleReq(title, filename string) dto.ArticleRequest {
	req := dto.ArticleRequest{Title: dto.StrPtr(title), Content: dto.StrPtr("Some article content.")}
	if filename != "" {
		req.File = &dto.ImageFile{Filename: filename, ContentType: "image/png", Size: 3, Content: strings.NewReader("img")}
	}
	return req
}

func (e *testEnv) article(t *testing.T, owner *entity.User, blogTitle, title string) *entity.Article {
	t.Helper()
	a, err := e.articles.AddArticle(context.Background(), owner, blogTitle, articleReq(title, "photo.png"))
	require.NoError(t, err)
	return a
}

func requireKind(t *testing.T, err error, kind apperror.Kind, code apperror.Code) {
	t.Helper()
	require.Error(t, err)
	require.Truef(t, apperror.Is(err, kind, code), "want %s/%s, got %v", kind, code, err)
}
