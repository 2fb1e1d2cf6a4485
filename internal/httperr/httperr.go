package httperr

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string            `json:"error_code"`
	Message string            `json:"message"`
	Detail  map[string]string `json:"detail,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Handle maps a use-case error onto its HTTP status. Storage and
// encryption failures keep their identifying detail (orphaned id,
// store, step) but the wrapped driver error stays out of the body.
func Handle(c *gin.Context, err error) {
	be, ok := AsBusiness(err)
	if !ok {
		Write(c, http.StatusInternalServerError, "internal_error", "Unexpected error.")
		return
	}

	status := http.StatusInternalServerError
	switch be.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindNotFound:
		status = http.StatusNotFound
	case KindConflict:
		status = http.StatusConflict
	case KindStorage, KindEncryption:
		status = http.StatusInternalServerError
	}

	c.JSON(status, HTTPError{
		Code:    be.Code,
		Message: be.Message,
		Detail:  be.Detail,
	})
}
