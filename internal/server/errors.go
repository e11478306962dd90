package server

import (
	stdErrors "errors"
	"net/http"

	"github.com/5afe/safe-notification-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

var statusByCode = map[errors.Code]int{
	errors.CodeInvalidArgument:    http.StatusBadRequest,
	errors.CodeUnauthenticated:    http.StatusUnauthorized,
	errors.CodePermissionDenied:   http.StatusForbidden,
	errors.CodeNotFound:           http.StatusNotFound,
	errors.CodeAlreadyExists:      http.StatusConflict,
	errors.CodeFailedPrecondition: http.StatusPreconditionFailed,
	errors.CodeUnprocessable:      http.StatusUnprocessableEntity,
	errors.CodeUnavailable:        http.StatusServiceUnavailable,
}

func statusOf(code errors.Code) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// abortWithError renders err as {code, message, details}. Errors outside the
// AppError taxonomy are reported as internal without their text.
func abortWithError(c *gin.Context, err error) {
	var appErr *errors.AppError
	if !stdErrors.As(err, &appErr) {
		appErr = errors.Internal("internal server error")
	}
	c.AbortWithStatusJSON(statusOf(appErr.Code), appErr)
}
