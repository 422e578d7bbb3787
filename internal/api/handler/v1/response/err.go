package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanisamoj/Borai-sub000/internal/pkg/apperr"
)

type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"code"`
	StatusText     string `json:"status"`
	ErrorMsg       string `json:"error,omitempty"`
}

func (e *Err) Error() string {
	return e.ErrorMsg
}

// RenderErr writes err as JSON and aborts the request. Server errors are
// logged with the underlying cause.
func RenderErr(ctx *gin.Context, err *Err) {
	if err.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error(err.StatusText,
			zap.String("request_id", ctx.GetHeader("X-Request-ID")),
			zap.String("path", ctx.FullPath()),
			zap.Error(err.Err))
	}

	ctx.AbortWithStatusJSON(err.HTTPStatusCode, err)
}

func newErr(status int, err error, msg string) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		ErrorMsg:       msg,
	}
}

func ErrBadRequest(err error) *Err {
	return newErr(http.StatusBadRequest, err, err.Error())
}

func ErrWrongCredentials(err error) *Err {
	return newErr(http.StatusUnauthorized, err, "invalid or missing credentials")
}

func ErrPermissionDenied(err error) *Err {
	return newErr(http.StatusForbidden, err, err.Error())
}

func ErrNotFound(err error) *Err {
	return newErr(http.StatusNotFound, err, err.Error())
}

func ErrConflict(err error) *Err {
	return newErr(http.StatusConflict, err, err.Error())
}

func ErrUnprocessable(err error) *Err {
	return newErr(http.StatusUnprocessableEntity, err, err.Error())
}

func ErrTooManyRequests() *Err {
	return newErr(http.StatusTooManyRequests, errors.New("rate limit exceeded"), "rate limit exceeded")
}

func ErrInternalServerError(err error) *Err {
	return newErr(http.StatusInternalServerError, err, "internal server error")
}

// ErrFromService picks the status from the kind of a service error. Only the
// service's own message reaches the client. Errors without a kind are
// internal.
func ErrFromService(err error) *Err {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		return ErrInternalServerError(err)
	}

	switch appErr.Kind {
	case apperr.KindAlreadyExists:
		return ErrConflict(appErr)
	case apperr.KindNotFound:
		return ErrNotFound(appErr)
	case apperr.KindInvalidState:
		return ErrUnprocessable(appErr)
	case apperr.KindUnauthorized:
		return ErrPermissionDenied(appErr)
	case apperr.KindInvalidInput:
		return ErrBadRequest(appErr)
	}
	return ErrInternalServerError(err)
}
