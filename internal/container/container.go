package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/config"
	"github.com/oksasatya/go-ddd-blogs/internal/application"
	repo "github.com/oksasatya/go-ddd-blogs/internal/domain/repository"
	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router wires modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client
	rabbitQueue *helpers.RabbitQueue
	esClient    *elasticsearch.Client

	users    repo.UserRepository
	blogs    repo.BlogRepository
	articles repo.ArticleRepository

	images   application.ImageStore
	indexer  application.ArticleIndexer
	sessions application.SessionCache
)

func SetConfig(c *config.Config)             { cfg = c }
func GetConfig() *config.Config              { return cfg }
func SetLogger(l *logrus.Logger)             { logger = l }
func GetLogger() *logrus.Logger              { return logger }
func SetPGPool(p *pgxpool.Pool)              { pgPool = p }
func GetPGPool() *pgxpool.Pool               { return pgPool }
func SetRedis(r *redis.Client)               { redisClient = r }
func GetRedis() *redis.Client                { return redisClient }
func SetGCS(s *storage.Client)               { gcsClient = s }
func GetGCS() *storage.Client                { return gcsClient }
func SetRabbitQueue(q *helpers.RabbitQueue)  { rabbitQueue = q }
func GetRabbitQueue() *helpers.RabbitQueue   { return rabbitQueue }
func SetES(c *elasticsearch.Client)          { esClient = c }
func GetES() *elasticsearch.Client           { return esClient }
func SetImageStore(s application.ImageStore) { images = s }
func GetImageStore() application.ImageStore  { return images }

// SetRepositories installs the store backing the domain services.
func SetRepositories(u repo.UserRepository, b repo.BlogRepository, a repo.ArticleRepository) {
	users, blogs, articles = u, b, a
}

func GetRepositories() (repo.UserRepository, repo.BlogRepository, repo.ArticleRepository) {
	return users, blogs, articles
}

func SetIndexer(i application.ArticleIndexer) { indexer = i }
func GetIndexer() application.ArticleIndexer  { return indexer }

func SetSessionCache(s application.SessionCache) { sessions = s }
func GetSessionCache() application.SessionCache  { return sessions }

// GetPublisher returns the event publisher, or an untyped nil when events are off.
func GetPublisher() application.EventPublisher {
	if rabbitQueue == nil {
		return nil
	}
	return rabbitQueue
}

// GetRateLimitRedis returns the client used by rate limiters, nil when disabled.
func GetRateLimitRedis() *redis.Client {
	if cfg == nil || !cfg.RateLimitEnabled {
		return nil
	}
	return redisClient
}
