package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/application"
	handlers "github.com/oksasatya/go-ddd-blogs/internal/interface/http"
	"github.com/oksasatya/go-ddd-blogs/internal/interface/middleware"
)

// AuthModule wires registration and the session lifecycle.
// Public: POST /auth/register, POST /auth/login
// Owner: POST /auth/logout/:username
type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    *application.AuthService
	Logger  *logrus.Logger
	RDB     *redis.Client
}

func NewAuthModule(h *handlers.AuthHandler, auth *application.AuthService, logger *logrus.Logger, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth, Logger: logger, RDB: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.RDB, middleware.PerMinute(10, middleware.KeyByIPAndPath()), nil)
	loginLimiter := middleware.RateLimit(m.RDB, middleware.PerMinute(10, middleware.KeyByIP()), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/logout/:username", middleware.Owner(m.Auth, m.Logger), m.Handler.Logout)
}
