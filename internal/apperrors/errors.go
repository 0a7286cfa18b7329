package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FieldError is one failed check on one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the complete ordered list of field errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s (and %d more)", e.Errors[0].Field, e.Errors[0].Message, len(e.Errors)-1)
}

// NewValidationError wraps errs. It returns nil when errs is empty so
// callers can return it unconditionally.
func NewValidationError(errs []FieldError) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: errs}
}

// HTTPError is an error with a fixed status code and client-facing message.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string { return e.Message }

func New(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func BadRequest(message string) *HTTPError { return New(http.StatusBadRequest, message) }

// NotFound reports a missing row. Missing resources answer 400, not 404,
// across the whole API.
func NotFound(message string) *HTTPError { return New(http.StatusBadRequest, message) }

func Unauthorized(message string) *HTTPError { return New(http.StatusUnauthorized, message) }

func Forbidden(message string) *HTTPError { return New(http.StatusForbidden, message) }

func RequestTooLarge(message string) *HTTPError {
	return New(http.StatusRequestEntityTooLarge, message)
}

// Handler is the terminal error responder. Handlers and middleware push
// errors with c.Error and stop; Handler turns the last one into a response.
func Handler(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		var verr *ValidationError
		var herr *HTTPError
		switch {
		case errors.As(err, &verr):
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Errors})
		case errors.As(err, &herr):
			c.JSON(herr.Code, gin.H{"message": herr.Message})
		default:
			log.Error("unhandled error",
				zap.Error(err),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetString("request_id")),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
		}
	}
}
