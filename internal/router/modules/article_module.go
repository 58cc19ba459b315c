package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/application"
	handlers "github.com/oksasatya/go-ddd-blogs/internal/interface/http"
	"github.com/oksasatya/go-ddd-blogs/internal/interface/middleware"
)

type ArticleModule struct {
	Handler *handlers.ArticleHandler
	Auth    *application.AuthService
	Logger  *logrus.Logger
	RDB     *redis.Client
}

func NewArticleModule(h *handlers.ArticleHandler, auth *application.AuthService, logger *logrus.Logger, rdb *redis.Client) *ArticleModule {
	return &ArticleModule{Handler: h, Auth: auth, Logger: logger, RDB: rdb}
}

func (m *ArticleModule) Register(rg *gin.RouterGroup) {
	read := rg.Group("/articles")
	read.Use(
		middleware.Authenticated(m.Auth, m.Logger),
		middleware.RateLimit(m.RDB, middleware.PerMinute(300, middleware.KeyByUserID()), nil),
	)
	{
		read.GET("", m.Handler.List)
		read.GET("/blog/:blogTitle", m.Handler.ByBlog)
		read.GET("/user/:username", m.Handler.ByUser)
		read.GET("/search", m.Handler.Search)
	}

	// uploads are heavier, keep the per-user budget tighter
	owner := rg.Group("/:username")
	owner.Use(
		middleware.Owner(m.Auth, m.Logger),
		middleware.RateLimit(m.RDB, middleware.PerMinute(30, middleware.KeyByUserID()), nil),
	)
	{
		owner.POST("/article/:blogTitle", m.Handler.Add)
		owner.PUT("/article/:articleId", m.Handler.Update)
		owner.DELETE("/article/:articleId", m.Handler.Delete)
	}
}
