package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmoreno/tallerplus/backend/pkg/logger"
)

// Response is the envelope every endpoint returns. Code 0 means success;
// error responses mirror the HTTP status in Code.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AppError carries an HTTP status alongside the message so services can
// decide the status without importing gin. Sentinel errors built from these
// constructors compare with errors.Is by pointer identity.
type AppError struct {
	HTTPStatus int
	Code       int
	Message    string
}

func (e *AppError) Error() string {
	return e.Message
}

func newAppError(status int, msg string) *AppError {
	return &AppError{HTTPStatus: status, Code: status, Message: msg}
}

func NewBadRequest(msg string) *AppError   { return newAppError(http.StatusBadRequest, msg) }
func NewUnauthorized(msg string) *AppError { return newAppError(http.StatusUnauthorized, msg) }
func NewForbidden(msg string) *AppError    { return newAppError(http.StatusForbidden, msg) }
func NewNotFound(msg string) *AppError     { return newAppError(http.StatusNotFound, msg) }
func NewConflict(msg string) *AppError     { return newAppError(http.StatusConflict, msg) }
func NewServerError(msg string) *AppError  { return newAppError(http.StatusInternalServerError, msg) }

// Success writes a 200 with the payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "ok", Data: data})
}

// Created writes a 201 with the payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "created", Data: data})
}

// Error maps an *AppError to its status and message. Any other error is
// logged and collapsed into a generic 500 so internal detail never crosses
// the boundary.
func Error(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, Response{Code: appErr.Code, Message: appErr.Message})
		return
	}
	logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, Response{
		Code:    http.StatusInternalServerError,
		Message: "an unexpected error occurred",
	})
}

func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Response{Code: status, Message: msg})
}

func BadRequest(c *gin.Context, msg string)      { fail(c, http.StatusBadRequest, msg) }
func Unauthorized(c *gin.Context, msg string)    { fail(c, http.StatusUnauthorized, msg) }
func Forbidden(c *gin.Context, msg string)       { fail(c, http.StatusForbidden, msg) }
func NotFound(c *gin.Context, msg string)        { fail(c, http.StatusNotFound, msg) }
func Conflict(c *gin.Context, msg string)        { fail(c, http.StatusConflict, msg) }
func TooManyRequests(c *gin.Context, msg string) { fail(c, http.StatusTooManyRequests, msg) }
func ServerError(c *gin.Context, msg string)     { fail(c, http.StatusInternalServerError, msg) }
