package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/minhvu/devconnect/pkg/apperror"
	"github.com/minhvu/devconnect/pkg/logger"
)

// ErrorMiddleware renders errors handlers attach via c.Error. Client-facing
// taxonomy errors pass through verbatim; anything else is logged with detail
// and surfaced as an opaque 500.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var valErr *apperror.ValidationError
		if errors.As(err, &valErr) {
			c.JSON(http.StatusBadRequest, valErr.ToJSON())
			return
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			status := apperror.ToHTTPStatus(appErr)
			if status == http.StatusInternalServerError {
				log.Error("Request failed with internal error", appErr, zap.String("path", c.FullPath()))
				c.JSON(status, gin.H{"error": "internal server error"})
				return
			}
			c.JSON(status, appErr.ToJSON())
			return
		}

		log.Error("Request failed with unclassified error", err, zap.String("path", c.FullPath()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
