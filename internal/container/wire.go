package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/config"
	"github.com/oksasatya/go-ddd-blogs/internal/infrastructure/cache"
	"github.com/oksasatya/go-ddd-blogs/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-ddd-blogs/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-blogs/internal/infrastructure/search"
	imgstore "github.com/oksasatya/go-ddd-blogs/internal/infrastructure/storage"
	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

// Wire builds every infra singleton selected by c and installs it in the
// container. The returned cleanup releases them in reverse order.
func Wire(ctx context.Context, c *config.Config, l *logrus.Logger) (func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	SetConfig(c)
	SetLogger(l)

	switch c.StoreDriver {
	case "memory":
		store := memory.NewStore()
		SetRepositories(store.Users(), store.Blogs(), store.Articles())
		l.Warn("using in-memory store; data is lost on restart")
	case "postgres":
		pool, err := pginfra.NewPool(ctx, c.PostgresDSN(), c.DBMaxConns, c.DBMinConns, c.DBMaxConnLife)
		if err != nil {
			return cleanup, fmt.Errorf("connect postgres: %w", err)
		}
		closers = append(closers, pool.Close)
		if err := pginfra.Migrate(c.PostgresDSN(), c.MigrationsDir, l); err != nil {
			return cleanup, fmt.Errorf("migrate: %w", err)
		}
		SetPGPool(pool)
		SetRepositories(pginfra.NewUserRepository(pool), pginfra.NewBlogRepository(pool), pginfra.NewArticleRepository(pool))
	default:
		return cleanup, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	rdb := helpers.NewRedisClient(c.RedisAddr, c.RedisPassword, c.RedisDB)
	closers = append(closers, func() { _ = rdb.Close() })
	if err := rdb.Ping(ctx).Err(); err != nil {
		// sessions still work from the store alone
		l.WithError(err).Warn("redis unavailable; session cache and rate limits disabled")
	} else {
		SetRedis(rdb)
		SetSessionCache(cache.NewSessionCache(rdb, 0))
	}

	switch c.ImageStore {
	case "gcs":
		client, err := helpers.NewGCSClient(ctx, c.GCSCredentialsJSONPath)
		if err != nil {
			return cleanup, fmt.Errorf("init gcs: %w", err)
		}
		closers = append(closers, func() { _ = client.Close() })
		SetGCS(client)
		SetImageStore(imgstore.NewGCSStore(client, c.GCSBucket, "images", l))
	default:
		local, err := imgstore.NewLocalStore(c.ImageUploadDir, l)
		if err != nil {
			return cleanup, fmt.Errorf("init upload folder: %w", err)
		}
		SetImageStore(local)
	}

	if c.SearchEnabled {
		es, err := helpers.NewESClient(c.ESAddrs(), c.ElasticsearchUser, c.ElasticsearchPass)
		if err != nil {
			return cleanup, fmt.Errorf("init elasticsearch: %w", err)
		}
		SetES(es)
		idx := search.NewArticleIndex(es, c.ESArticlesIndex, l)
		if err := idx.EnsureIndex(ctx); err != nil {
			// documents still index under dynamic mapping
			l.WithError(err).Warn("could not ensure search index")
		}
		SetIndexer(idx)
	}

	if c.EventsEnabled {
		q, err := helpers.NewRabbitQueue(c.RabbitMQURL, c.RabbitMQEventsQueue)
		if err != nil {
			return cleanup, fmt.Errorf("init rabbitmq: %w", err)
		}
		closers = append(closers, q.Close)
		SetRabbitQueue(q)
	}

	return cleanup, nil
}
