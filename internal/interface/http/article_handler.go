package handlers

import (
	"errors"
	"io"
	"mime/multipart"
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

const (
	defaultMaxUploadBytes = 2 << 20
	// room for the title/content parts and multipart framing
	formOverhead = 1 << 20
)

type ArticleHandler struct {
	Svc            *application.ArticleService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewArticleHandler(svc *application.ArticleService, logger *logrus.Logger, maxUploadBytes int64) *ArticleHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}
	return &ArticleHandler{Svc: svc, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

type searchQuery struct {
	Q    string `form:"q" binding:"required,max=100"`
	Size int    `form:"size" binding:"omitempty,min=1,max=50"`
}

// readForm collects the multipart fields. Absent fields stay nil so the
// domain rules report them as mandatory. The returned closer releases the
// uploaded file.
func (h *ArticleHandler) readForm(c *gin.Context) (dto.ArticleRequest, io.Closer, error) {
	var req dto.ArticleRequest
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes+formOverhead)

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		fh = nil
	default:
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return req, nil, apperror.Validation(apperror.FileTooLarge)
		}
		return req, nil, err
	}

	if v, ok := c.GetPostForm("title"); ok {
		req.Title = &v
	}
	if v, ok := c.GetPostForm("content"); ok {
		req.Content = &v
	}
	if fh == nil {
		return req, nil, nil
	}
	if fh.Size > h.MaxUploadBytes {
		return req, nil, apperror.Validation(apperror.FileTooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return req, nil, apperror.Validation(apperror.CouldNotStoreImage, err.Error())
	}
	req.File = imageFile(fh, f)
	return req, f, nil
}

func imageFile(fh *multipart.FileHeader, f multipart.File) *dto.ImageFile {
	return &dto.ImageFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}
}

func (h *ArticleHandler) formError(c *gin.Context, err error) {
	if _, ok := apperror.As(err); ok {
		fail(c, h.Logger, err)
		return
	}
	badPayload(c, err)
}

func (h *ArticleHandler) sendList(c *gin.Context, articles []*entity.Article, err error) {
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success(c, http.StatusOK, articles, "articles", response.ListMeta{Count: len(articles)}))
}

// List GET /api/v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.Svc.ListAllArticles(c.Request.Context())
	h.sendList(c, articles, err)
}

// ByBlog GET /api/v1/articles/blog/:blogTitle
func (h *ArticleHandler) ByBlog(c *gin.Context) {
	articles, err := h.Svc.ListBlogArticles(c.Request.Context(), c.Param("blogTitle"))
	h.sendList(c, articles, err)
}

// ByUser GET /api/v1/articles/user/:username
func (h *ArticleHandler) ByUser(c *gin.Context) {
	articles, err := h.Svc.ListUserArticles(c.Request.Context(), c.Param("username"))
	h.sendList(c, articles, err)
}

// Search GET /api/v1/articles/search?q=&size=
func (h *ArticleHandler) Search(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badPayload(c, err)
		return
	}
	hits, err := h.Svc.SearchArticles(c.Request.Context(), q.Q, q.Size)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success(c, http.StatusOK, hits, "articles", response.ListMeta{Count: len(hits)}))
}

// Add POST /api/v1/:username/article/:blogTitle (multipart: title, content, file)
func (h *ArticleHandler) Add(c *gin.Context) {
	req, closer, err := h.readForm(c)
	if err != nil {
		h.formError(c, err)
		return
	}
	if closer != nil {
		defer closer.Close()
	}
	a, err := h.Svc.AddArticle(c.Request.Context(), middleware.CurrentUser(c), c.Param("blogTitle"), req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success(c, http.StatusCreated, a, "article created", nil))
}

// Update PUT /api/v1/:username/article/:articleId
func (h *ArticleHandler) Update(c *gin.Context) {
	req, closer, err := h.readForm(c)
	if err != nil {
		h.formError(c, err)
		return
	}
	if closer != nil {
		defer closer.Close()
	}
	a, err := h.Svc.UpdateArticle(c.Request.Context(), middleware.CurrentUser(c), c.Param("articleId"), req)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success(c, http.StatusOK, a, "article updated", nil))
}

// Delete DELETE /api/v1/:username/article/:articleId
func (h *ArticleHandler) Delete(c *gin.Context) {
	id := c.Param("articleId")
	if err := h.Svc.DeleteArticle(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Send(c, response.Success[any](c, http.StatusOK, nil, apperror.Message(apperror.ArticleWithIDSuccessfullyDeleted, id), nil))
}

// Download GET /api/v1/files/:filename
func (h *ArticleHandler) Download(c *gin.Context) {
	name := c.Param("filename")
	data, err := h.Svc.LoadImage(c.Request.Context(), name)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}
