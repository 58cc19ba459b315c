package application

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/dto"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/validation"
)

func TestAddBlogSlugCollidesCaseInsensitively(t *testing.T) {
	e := newTestEnv(t)
	alice := e.loggedIn(t, "alice")

	b := e.blog(t, alice, "Java")
	assert.Equal(t, "java", b.Slug)
	assert.Equal(t, alice.ID, b.OwnerID)

	_, err := e.blogs.AddBlog(context.Background(), alice, dto.BlogRequest{Title: dto.StrPtr("java")})
	requireKind(t, err, apperror.KindConflict, apperror.BlogNameAlreadyExist)
}

func TestBlogSlugsAreScopedPerOwner(t *testing.T) {
	e := newTestEnv(t)
	e.blog(t, e.loggedIn(t, "alice"), "Java")
	e.blog(t, e.loggedIn(t, "bob"), "Java")

	blogs, err := e.blogs.ListBlogsByTitle(context.Background(), "Java")
	require.NoError(t, err)
	assert.Len(t, blogs, 2)
}

func TestAddBlogValidation(t *testing.T) {
	e := newTestEnv(t)
	alice := e.loggedIn(t, "alice")

	_, err := e.blogs.AddBlog(context.Background(), alice, dto.BlogRequest{Title: dto.StrPtr("Drop tables")})
	requireKind(t, err, apperror.KindValidation, apperror.Code(validation.BlogTitleMustHaveTheseSymbols))

	_, err = e.blogs.AddBlog(context.Background(), alice, dto.BlogRequest{})
	requireKind(t, err, apperror.KindValidation, apperror.Code(validation.BlogTitleIsMandatory))
}

func TestUpdateBlog(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.loggedIn(t, "alice")
	b := e.blog(t, alice, "Java")
	e.blog(t, alice, "Golang")

	updated, err := e.blogs.UpdateBlog(ctx, alice, b.ID, dto.BlogRequest{Title: dto.StrPtr("Java Notes")})
	require.NoError(t, err)
	assert.Equal(t, "java-notes", updated.Slug)

	_, err = e.blogs.UpdateBlog(ctx, alice, b.ID, dto.BlogRequest{Title: dto.StrPtr("golang")})
	requireKind(t, err, apperror.KindConflict, apperror.BlogNameAlreadyExist)

	// the edited blog takes part in its own duplicate check
	_, err = e.blogs.UpdateBlog(ctx, alice, b.ID, dto.BlogRequest{Title: dto.StrPtr("Java Notes")})
	requireKind(t, err, apperror.KindConflict, apperror.BlogNameAlreadyExist)
}

func TestBlogMutationsResolveWithinOwnerScope(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.loggedIn(t, "alice")
	bob := e.loggedIn(t, "bob")
	b := e.blog(t, alice, "Java")

	_, err := e.blogs.UpdateBlog(ctx, bob, b.ID, dto.BlogRequest{Title: dto.StrPtr("Stolen")})
	requireKind(t, err, apperror.KindNotFound, apperror.BlogNotFound)

	err = e.blogs.DeleteBlog(ctx, bob, b.ID)
	requireKind(t, err, apperror.KindNotFound, apperror.BlogNotFound)

	got, err := e.blogs.GetBlog(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Java", got.Title)
}

func TestDeleteBlogDeletesImagesBeforeBlog(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.loggedIn(t, "alice")
	b := e.blog(t, alice, "Java")
	e.article(t, alice, "Java", "First")
	e.article(t, alice, "Java", "Second")
	require.Equal(t, 2, e.images.count())

	before := len(e.log.snapshot())
	require.NoError(t, e.blogs.DeleteBlog(ctx, alice, b.ID))

	assert.Equal(t, []string{"image.delete", "image.delete", "blog.delete"}, e.log.snapshot()[before:])
	assert.Zero(t, e.images.count())
	_, err := e.articles.ListAllArticles(ctx)
	requireKind(t, err, apperror.KindNotFound, apperror.NoArticlesFound)
}

func TestBlogReadsTreatEmptyAsNotFound(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.blogs.ListAllBlogs(ctx)
	requireKind(t, err, apperror.KindNotFound, apperror.NoBlogsFound)

	_, err = e.blogs.ListUserBlogs(ctx, "nobody")
	requireKind(t, err, apperror.KindNotFound, apperror.UserNotFound)

	e.loggedIn(t, "alice")
	_, err = e.blogs.ListUserBlogs(ctx, "alice")
	requireKind(t, err, apperror.KindNotFound, apperror.NoBlogsFound)

	_, err = e.blogs.ListBlogsByTitle(ctx, "Missing")
	requireKind(t, err, apperror.KindNotFound, apperror.NoBlogsFound)

	_, err = e.blogs.GetBlog(ctx, "missing")
	requireKind(t, err, apperror.KindNotFound, apperror.BlogNotFound)
}

func TestConcurrentAddBlogSameTitle(t *testing.T) {
	e := newTestEnv(t)
	alice := e.loggedIn(t, "alice")

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.blogs.AddBlog(context.Background(), alice, dto.BlogRequest{Title: dto.StrPtr("Java")})
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	blogs, err := e.blogs.ListUserBlogs(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, blogs, 1)
}

func TestBlogEventsArePublished(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := e.loggedIn(t, "alice")
	b := e.blog(t, alice, "Java")
	_, err := e.blogs.UpdateBlog(ctx, alice, b.ID, dto.BlogRequest{Title: dto.StrPtr("Kotlin")})
	require.NoError(t, err)
	require.NoError(t, e.blogs.DeleteBlog(ctx, alice, b.ID))

	assert.Equal(t, []string{
		EventUserRegistered, EventUserLoggedIn,
		EventBlogCreated, EventBlogUpdated, EventBlogDeleted,
	}, e.pub.types())
}
