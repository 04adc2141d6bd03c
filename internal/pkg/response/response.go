package response

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Mikee100/Uni-Sporting-Equipment/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// Message answers with a plain confirmation, e.g. after a delete.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"message": message,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"error":   code,
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"message": message,
		"error":   code,
		"details": details,
	})
}

// FromError writes err using its classification. Unclassified and internal
// errors are attached to the context so ErrorLogger records the cause.
func FromError(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal("Internal server error.", err)
	}
	if appErr.Kind == apperr.KindInternal {
		_ = c.Error(err)
	}
	Error(c, apperr.HTTPStatus(appErr.Kind), appErr.Code, appErr.Message)
}
