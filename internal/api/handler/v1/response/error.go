package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"-"`
	Message    string `json:"error"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, err *Err) {
	if err.StatusCode >= http.StatusInternalServerError {
		zap.L().Error(err.Message)
	}

	ctx.AbortWithStatusJSON(err.StatusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
	}
}

// ErrWrongCredentials normalizes every credential failure to the same
// friendly message so login probing reveals nothing.
func ErrWrongCredentials(err error) *Err {
	zap.L().Info("login rejected", zap.Error(err))

	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    "invalid email or password",
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    err.Error(),
	}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Message:    err.Error(),
	}
}

func ErrNotFound(resource, key string, value interface{}) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    fmt.Sprintf("%v with %v (%v) not found", resource, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Message:    err.Error(),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Message:    err.Error(),
	}
}
