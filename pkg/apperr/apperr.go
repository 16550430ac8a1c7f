package apperr

import (
	"errors"
	"net/http"

	"rentdesk/pkg/logger"
	"rentdesk/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Error is a classified failure. Message is safe to show to callers;
// Err holds the underlying cause and only ever reaches the server log.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Code: response.ErrCodeValidationFailed, Message: message}
}

func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{Code: response.ErrCodeNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return &Error{Code: response.ErrCodeUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	if message == "" {
		message = "Access denied"
	}
	return &Error{Code: response.ErrCodeForbidden, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Code: response.ErrCodeConflict, Message: message}
}

func Internal(err error) *Error {
	return &Error{Code: response.ErrCodeInternalError, Message: "Something went wrong", Err: err}
}

// Classify turns an arbitrary error into a classified one. Already
// classified errors pass through; a missing row becomes NotFound;
// everything else is an infrastructure failure.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("")
	}
	return Internal(err)
}

// Respond classifies err, logs the full detail with the request id and
// writes the envelope. Callers see the opaque message only.
func Respond(c *gin.Context, log *logger.Logger, err error) {
	appErr := Classify(err)
	requestID := c.GetString("request_id")

	if appErr.Code == response.ErrCodeInternalError {
		log.Error("request %s %s failed (request_id=%s): %v", c.Request.Method, c.Request.URL.Path, requestID, appErr)
	} else {
		log.Warn("request %s %s rejected (request_id=%s): %s", c.Request.Method, c.Request.URL.Path, requestID, appErr.Message)
	}

	status := response.GetHTTPStatus(appErr.Code)
	c.AbortWithStatusJSON(status, response.ErrorWithRequestID(appErr.Code, appErr.Message, requestID))
}

// StatusOf reports the HTTP status an error would be rendered with.
func StatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return response.GetHTTPStatus(Classify(err).Code)
}
