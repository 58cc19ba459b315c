package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/application"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blogs/pkg/response"
)

// SessionHeader carries the opaque token issued at login.
const SessionHeader = "session-id"

const (
	CtxUserKey   = "user"
	CtxUserIDKey = "userID"
)

// Authenticated requires a live session and stores the user in the context.
func Authenticated(auth *application.AuthService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := auth.Authenticate(c.Request.Context(), c.GetHeader(SessionHeader))
		if err != nil {
			abort(c, logger, err)
			return
		}
		setUser(c, u)
		c.Next()
	}
}

// Owner requires a live session belonging to the :username path parameter.
func Owner(auth *application.AuthService, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := auth.AuthorizeOwner(c.Request.Context(), c.GetHeader(SessionHeader), c.Param("username"))
		if err != nil {
			abort(c, logger, err)
			return
		}
		setUser(c, u)
		c.Next()
	}
}

func setUser(c *gin.Context, u *entity.User) {
	c.Set(CtxUserKey, u)
	c.Set(CtxUserIDKey, u.ID)
}

// CurrentUser returns the user stored by Authenticated or Owner.
func CurrentUser(c *gin.Context) *entity.User {
	if v, ok := c.Get(CtxUserKey); ok {
		if u, ok := v.(*entity.User); ok {
			return u
		}
	}
	return nil
}

func abort(c *gin.Context, logger *logrus.Logger, err error) {
	resp := response.FromError(c, err)
	if resp.Status >= 500 && logger != nil {
		logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error("session lookup failed")
	}
	response.Abort(c, resp)
}
