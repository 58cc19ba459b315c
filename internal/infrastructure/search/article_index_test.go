package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

type recorded struct {
	method, path string
	body         map[string]any
}

func fakeES(t *testing.T, status int, reply string) (*ArticleIndex, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		mu.Lock()
		reqs = append(reqs, rec)
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewArticleIndex(es, "articles", helpers.NewDiscardLogger()), &reqs
}

func TestIndexSendsDocument(t *testing.T) {
	idx, reqs := fakeES(t, http.StatusCreated, `{"result":"created"}`)
	a := &entity.Article{ID: "a1", Title: "Hello World", Slug: "hello-world", Content: "Body", BlogID: "b1",
		Image: &entity.Image{URL: "http://x/a.png"}}

	require.NoError(t, idx.Index(context.Background(), a, "alice"))
	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	assert.Equal(t, http.MethodPut, got.method)
	assert.True(t, strings.HasSuffix(got.path, "/articles/_doc/a1"))
	assert.Equal(t, "Hello World", got.body["title"])
	assert.Equal(t, "alice", got.body["owner"])
	assert.Equal(t, "http://x/a.png", got.body["image_url"])
}

func TestSearchReturnsSources(t *testing.T) {
	idx, reqs := fakeES(t, http.StatusOK, `{"hits":{"hits":[{"_id":"a1","_source":{"title":"Hello World"}}]}}`)

	hits, err := idx.Search(context.Background(), "hello", 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Hello World", hits[0]["title"])

	query := (*reqs)[0].body
	assert.EqualValues(t, 10, query["size"])
}

func TestRemoveIgnoresMissingDocument(t *testing.T) {
	idx, _ := fakeES(t, http.StatusNotFound, `{"result":"not_found"}`)
	assert.NoError(t, idx.Remove(context.Background(), "missing"))
}

func TestIndexReportsErrorStatus(t *testing.T) {
	idx, _ := fakeES(t, http.StatusInternalServerError, `{"error":"boom"}`)
	assert.Error(t, idx.Index(context.Background(), &entity.Article{ID: "a1"}, "alice"))
}

func routedES(t *testing.T, existsStatus, createStatus int) (*ArticleIndex, *[]recorded) {
	t.Helper()
	var (
		mu   sync.Mutex
		reqs []recorded
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		mu.Lock()
		reqs = append(reqs, rec)
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodHead {
			w.WriteHeader(existsStatus)
			return
		}
		w.WriteHeader(createStatus)
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewArticleIndex(es, "articles", helpers.NewDiscardLogger()), &reqs
}

func TestEnsureIndexCreatesMissingIndex(t *testing.T) {
	idx, reqs := routedES(t, http.StatusNotFound, http.StatusOK)

	require.NoError(t, idx.EnsureIndex(context.Background()))
	require.Len(t, *reqs, 2)
	create := (*reqs)[1]
	assert.Equal(t, http.MethodPut, create.method)
	assert.Equal(t, "/articles", create.path)
	props := create.body["mappings"].(map[string]any)["properties"].(map[string]any)
	assert.Equal(t, "keyword", props["slug"].(map[string]any)["type"])
}

func TestEnsureIndexKeepsExistingIndex(t *testing.T) {
	idx, reqs := routedES(t, http.StatusOK, http.StatusInternalServerError)

	require.NoError(t, idx.EnsureIndex(context.Background()))
	assert.Len(t, *reqs, 1)
}

func TestEnsureIndexReportsFailure(t *testing.T) {
	idx, _ := routedES(t, http.StatusNotFound, http.StatusInternalServerError)
	assert.Error(t, idx.EnsureIndex(context.Background()))
}
