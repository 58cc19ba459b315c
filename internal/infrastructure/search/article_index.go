package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

const (
	requestTimeout = 3 * time.Second
	maxSearchSize  = 50
)

// ArticleIndex mirrors articles into an Elasticsearch index for full-text search.
type ArticleIndex struct {
	ES        *elasticsearch.Client
	IndexName string
	Logger    *logrus.Logger
}

func NewArticleIndex(es *elasticsearch.Client, index string, logger *logrus.Logger) *ArticleIndex {
	return &ArticleIndex{ES: es, IndexName: index, Logger: logger}
}

// articleMapping keeps ids and slugs exact and analyzes the prose fields.
var articleMapping = []byte(`{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "title":      {"type": "text"},
      "slug":       {"type": "keyword"},
      "content":    {"type": "text"},
      "blog_id":    {"type": "keyword"},
      "owner":      {"type": "keyword"},
      "image_url":  {"type": "keyword", "index": false},
      "created_at": {"type": "date"},
      "updated_at": {"type": "date"}
    }
  }
}`)

// EnsureIndex creates the article index with its mapping on first boot.
func (x *ArticleIndex) EnsureIndex(ctx context.Context) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	created, err := helpers.EnsureIndex(c, x.ES, x.IndexName, articleMapping)
	if err != nil {
		return err
	}
	if created && x.Logger != nil {
		x.Logger.WithField("index", x.IndexName).Info("search index created")
	}
	return nil
}

func articleDoc(a *entity.Article, owner string) map[string]any {
	doc := map[string]any{
		"id":         a.ID,
		"title":      a.Title,
		"slug":       a.Slug,
		"content":    a.Content,
		"blog_id":    a.BlogID,
		"owner":      owner,
		"created_at": a.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": a.UpdatedAt.Format(time.RFC3339Nano),
	}
	if a.Image != nil {
		doc["image_url"] = a.Image.URL
	}
	return doc
}

func (x *ArticleIndex) Index(ctx context.Context, a *entity.Article, owner string) error {
	b, err := json.Marshal(articleDoc(a, owner))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: x.IndexName, DocumentID: a.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Remove deletes the article document; a missing document is not an error.
func (x *ArticleIndex) Remove(ctx context.Context, articleID string) error {
	req := esapi.DeleteRequest{Index: x.IndexName, DocumentID: articleID}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, x.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search performs a multi_match query on title and content.
func (x *ArticleIndex) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if size <= 0 || size > maxSearchSize {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "content"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := x.ES.Search(x.ES.Search.WithContext(c), x.ES.Search.WithIndex(x.IndexName), x.ES.Search.WithBody(bytes.NewReader(b)))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		if res.StatusCode == 404 {
			return []map[string]any{}, nil
		}
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
