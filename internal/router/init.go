package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/application"
	"github.com/oksasatya/go-ddd-blogs/internal/container"
	handlers "github.com/oksasatya/go-ddd-blogs/internal/interface/http"
	"github.com/oksasatya/go-ddd-blogs/internal/router/modules"
	"github.com/oksasatya/go-ddd-blogs/pkg/helpers"
)

// Deps are the services and knobs the HTTP modules are built from.
type Deps struct {
	Auth     *application.AuthService
	Blogs    *application.BlogService
	Articles *application.ArticleService
	Logger   *logrus.Logger

	// RDB backs the rate limiters; nil disables them.
	RDB            *redis.Client
	MaxUploadBytes int64
	DebugMetrics   bool
}

// BuildDeps constructs the domain services from the container singletons.
// Blog and article services share one set of owner locks so mutations of the
// same user's graph never interleave.
func BuildDeps() Deps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	users, blogs, articles := container.GetRepositories()
	images := container.GetImageStore()
	indexer := container.GetIndexer()
	pub := container.GetPublisher()
	locks := application.NewOwnerLocks()

	return Deps{
		Auth:           application.NewAuthService(users, helpers.NewBcryptHasher(cfg.BcryptCost), container.GetSessionCache(), pub, logger),
		Blogs:          application.NewBlogService(users, blogs, images, indexer, locks, pub, logger),
		Articles:       application.NewArticleService(users, blogs, articles, images, indexer, locks, pub, logger, cfg.ImageBaseURL),
		Logger:         logger,
		RDB:            container.GetRateLimitRedis(),
		MaxUploadBytes: cfg.MaxUploadBytes,
		DebugMetrics:   cfg.DebugMetricsEnabled,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	RegisterModules(r, BuildDeps())
}

// RegisterModules adds every feature module built from d.
func RegisterModules(r *Registry, d Deps) {
	articleHandler := handlers.NewArticleHandler(d.Articles, d.Logger, d.MaxUploadBytes)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(d.Auth, d.Logger), d.Auth, d.Logger, d.RDB))
	r.Add(modules.NewBlogModule(handlers.NewBlogHandler(d.Blogs, d.Logger), d.Auth, d.Logger, d.RDB))
	r.Add(modules.NewArticleModule(articleHandler, d.Auth, d.Logger, d.RDB))
	r.Add(modules.NewFileModule(articleHandler, d.RDB))
	if d.DebugMetrics {
		r.Add(modules.NewDebugModule(d.RDB))
	}
}
