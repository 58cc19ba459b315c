package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/internal/application"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/dto"
	"github.com/oksasatya/go-ddd-blogs/internal/domain/entity"
	"github.com/oksasatya/go-ddd-blogs/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-blogs/pkg/response"
)

type BlogHandler struct {
	Svc    *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(svc *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Svc: svc, Logger: logger}
}

func (h *BlogHandler) sendList(c *gin.Context, blogs []*entity.Blog, err error) {
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success(c, http.StatusOK, blogs, "blogs", response.ListMeta{Count: len(blogs)}))
}

// List GET /api/v1/blogs
func (h *BlogHandler) List(c *gin.Context) {
	blogs, err := h.Svc.ListAllBlogs(c.Request.Context())
	h.sendList(c, blogs, err)
}

// ByUser GET /api/v1/blogs/:username
func (h *BlogHandler) ByUser(c *gin.Context) {
	blogs, err := h.Svc.ListUserBlogs(c.Request.Context(), c.Param("username"))
	h.sendList(c, blogs, err)
}

// ByTitle GET /api/v1/blogs/title/:blogTitle
func (h *BlogHandler) ByTitle(c *gin.Context) {
	blogs, err := h.Svc.ListBlogsByTitle(c.Request.Context(), c.Param("blogTitle"))
	h.sendList(c, blogs, err)
}

// Get GET /api/v1/blogs/blog/:id
func (h *BlogHandler) Get(c *gin.Context) {
	b, err := h.Svc.GetBlog(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success(c, http.StatusOK, b, "blog", nil))
}

// Add POST /api/v1/:username/blog
func (h *BlogHandler) Add(c *gin.Context) {
	var req dto.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	b, err := h.Svc.AddBlog(c.Request.Context(), middleware.CurrentUser(c), req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success(c, http.StatusCreated, b, "blog created", nil))
}

// Update PUT /api/v1/:username/blog/:blogId
func (h *BlogHandler) Update(c *gin.Context) {
	var req dto.BlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badPayload(c, err)
		return
	}
	b, err := h.Svc.UpdateBlog(c.Request.Context(), middleware.CurrentUser(c), c.Param("blogId"), req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success(c, http.StatusOK, b, "blog updated", nil))
}

// Delete DELETE /api/v1/:username/blog/:blogId
func (h *BlogHandler) Delete(c *gin.Context) {
	id := c.Param("blogId")
	if err := h.Svc.DeleteBlog(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success[any](c, http.StatusOK, nil, apperror.Message(apperror.BlogWithIDSuccessfullyDeleted, id), nil))
}
