package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/application"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/dto"
	"github.com/oksasatya/go-ddd-blogs/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blogs/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type sessionResponse struct {
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
}

// Register POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	msg := apperror.Message(apperror.UserSuccessfullyRegistered, u.Username)
	response.Send(c, response.Success(c, http.StatusCreated, u, msg, nil))
}

// Login POST /api/v1/auth/login
// The token is returned in the session-id header and in the body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	u, err := h.Svc.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.Header(middleware.SessionHeader, u.SessionToken)
	msg := apperror.Message(apperror.UserLogIn, u.Username, u.SessionToken)
	response.Send(c, response.Success(c, http.StatusOK, sessionResponse{Username: u.Username, SessionID: u.SessionToken}, msg, nil))
}

// Logout POST /api/v1/auth/logout/:username (owner only)
func (h *AuthHandler) Logout(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if u == nil {
		fail(c, h.Logger, apperror.Authentication())
		return
	}
	if err := h.Svc.Logout(c.Request.Context(), u); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success[any](c, http.StatusOK, nil, apperror.Message(apperror.UserLoggedOut, u.Username), nil))
}
