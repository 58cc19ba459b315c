package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-blogs/pkg/response"
	"github.com/oksasatya/go-ddd-blogs/pkg/validation"
)

// fail writes the error envelope for err. Server-side failures are logged,
// everything else is the caller's problem.
func fail(c *gin.Context, logger *logrus.Logger, err error) {
	resp := response.FromError(c, err)
	if resp.Status >= http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"path":       c.FullPath(),
		}).Error("request failed")
	}
	response.Send(c, resp)
}

func badPayload(c *gin.Context, err error) {
	response.Send(c, response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err)))
}
