package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/go-ddd-blogs/internal/domain/apperror"
)

func testContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set("request_id", "rid-1")
	return c
}

func TestFromErrorMapsKinds(t *testing.T) {
	c := testContext()

	cases := []struct {
		err    error
		status int
	}{
		{apperror.Validation(apperror.InvalidCredentials), http.StatusBadRequest},
		{apperror.Authentication(), http.StatusForbidden},
		{apperror.NotFound(apperror.BlogNotFound), http.StatusNotFound},
		{apperror.Conflict(apperror.UserAlreadyLoggedIn), http.StatusConflict},
		{apperror.Validation(apperror.FileTooLarge), http.StatusExpectationFailed},
	}
	for _, tc := range cases {
		r := FromError(c, tc.err)
		assert.Equal(t, tc.status, r.Status, tc.err.Error())
		assert.False(t, r.Success)
		assert.Equal(t, tc.err.Error(), r.Message)
		assert.Equal(t, "rid-1", r.RequestID)
	}
}

func TestFromErrorHidesForeignErrors(t *testing.T) {
	r := FromError(testContext(), errors.New("pq: password authentication failed"))

	assert.Equal(t, http.StatusInternalServerError, r.Status)
	assert.Equal(t, string(apperror.InternalFailure), r.Code)
	assert.NotContains(t, r.Message, "pq")
}
