package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

func newStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "uploads"), helpers.NewDiscardLogger())
	require.NoError(t, err)
	return s
}

func TestStoreLoadDelete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	name, err := s.Store(ctx, strings.NewReader("png-bytes"), "u1-abc.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "u1-abc.png", name)

	b, err := s.Load(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(b))

	require.NoError(t, s.Delete(ctx, name))
	_, err = s.Load(ctx, name)
	assert.True(t, apperror.Is(err, apperror.KindNotFound, apperror.CouldNotLoadFile))
}

func TestDeleteMissingIsNotAnError(t *testing.T) {
	s := newStore(t)
	assert.NoError(t, s.Delete(context.Background(), "never-stored.jpg"))
}

func TestNamesStayInsideRoot(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	name, err := s.Store(ctx, strings.NewReader("x"), "../escape.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "escape.png", name)
	_, err = os.Stat(filepath.Join(s.Root, "escape.png"))
	assert.NoError(t, err)
}

func TestInitRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	_, err := NewLocalStore(file, helpers.NewDiscardLogger())
	assert.True(t, apperror.Is(err, apperror.KindValidation, apperror.CouldNotInitializeFolder))
}

func TestDeleteAll(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	_, err := s.Store(ctx, strings.NewReader("x"), "a.png", "image/png")
	require.NoError(t, err)

	require.NoError(t, s.DeleteAll())
	entries, err := os.ReadDir(s.Root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
