package response

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the envelope every error response carries. Fields maps a
// request field name to what is wrong with it and is omitted when empty.
// Exception holds internal detail for unhandled errors and is only attached
// outside production.
type ErrorBody struct {
	Code      int               `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	Exception *ExceptionDetail  `json:"exception,omitempty"`
}

type ExceptionDetail struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func Success(c *gin.Context, status int, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, data)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Code: status, Message: message})
}

// FieldError reports per-field validation problems alongside the message.
func FieldError(c *gin.Context, status int, message string, fields map[string]string) {
	c.JSON(status, ErrorBody{Code: status, Message: message, Fields: fields})
}

// Exception renders an unhandled server error. Outside production the
// underlying error type and text are exposed to ease debugging; in
// production the body is a fixed message so internals never leak.
func Exception(c *gin.Context, err error, production bool) {
	body := ErrorBody{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
	}
	if !production && err != nil {
		body.Exception = &ExceptionDetail{
			Type:    fmt.Sprintf("%T", err),
			Message: err.Error(),
		}
	}
	c.JSON(http.StatusInternalServerError, body)
}
