package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/go-ddd-blogs/internal/interface/http"
	"github.com/oksasatya/go-ddd-blogs/internal/interface/middleware"
)

// FileModule serves stored article images. Public, image URLs are embedded in responses.
type FileModule struct {
	Handler *handlers.ArticleHandler
	RDB     *redis.Client
}

func NewFileModule(h *handlers.ArticleHandler, rdb *redis.Client) *FileModule {
	return &FileModule{Handler: h, RDB: rdb}
}

func (m *FileModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(m.RDB, middleware.PerMinute(600, middleware.KeyByIP()), nil)
	rg.GET("/files/:filename", rl, m.Handler.Download)
}
