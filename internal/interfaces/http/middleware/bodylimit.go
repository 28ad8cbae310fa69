package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evasence/holoo-admin/internal/interfaces/http/dto"
)

// BodyLimit caps request body size. Draft payloads are the largest thing the
// dashboard sends and even those stay well under a megabyte.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
