package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/application"
	handlers "github.com/oksasatya/go-ddd-blogs/internal/interface/http"
	"github.com/oksasatya/go-ddd-blogs/internal/interface/middleware"
)

type BlogModule struct {
	Handler *handlers.BlogHandler
	Auth    *application.AuthService
	Logger  *logrus.Logger
	RDB     *redis.Client
}

func NewBlogModule(h *handlers.BlogHandler, auth *application.AuthService, logger *logrus.Logger, rdb *redis.Client) *BlogModule {
	return &BlogModule{Handler: h, Auth: auth, Logger: logger, RDB: rdb}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	read := rg.Group("/blogs")
	read.Use(
		middleware.Authenticated(m.Auth, m.Logger),
		middleware.RateLimit(m.RDB, middleware.PerMinute(300, middleware.KeyByUserID()), nil),
	)
	{
		read.GET("", m.Handler.List)
		read.GET("/:username", m.Handler.ByUser)
		read.GET("/blog/:id", m.Handler.Get)
		read.GET("/title/:blogTitle", m.Handler.ByTitle)
	}

	owner := rg.Group("/:username")
	owner.Use(
		middleware.Owner(m.Auth, m.Logger),
		middleware.RateLimit(m.RDB, middleware.PerMinute(60, middleware.KeyByUserID()), nil),
	)
	{
		owner.POST("/blog", m.Handler.Add)
		owner.PUT("/blog/:blogId", m.Handler.Update)
		owner.DELETE("/blog/:blogId", m.Handler.Delete)
	}
}
