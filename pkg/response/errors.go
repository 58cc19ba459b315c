package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
)

// FromError maps err to an error envelope. Foreign errors become a generic 500
// so no internal detail reaches the client.
func FromError(ctx *gin.Context, err error) APIResponse[any] {
	e, ok := apperror.As(err)
	if !ok {
		e = apperror.Internal(err)
	}
	status := e.Kind.HTTPStatus()
	if e.Code == apperror.FileTooLarge {
		status = http.StatusExpectationFailed
	}
	return Error[any](ctx, status, e.Message, e.Kind.String()).WithCode(string(e.Code))
}
