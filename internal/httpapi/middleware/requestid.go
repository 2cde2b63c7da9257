package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/draftforge/draftforge/internal/common"
)

const RequestIDKey = "request_id"

const requestIDHeader = "X-Request-ID"

// RequestID attaches a ULID to every request, honoring an incoming header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			if id, err := common.NewULID(); err == nil {
				rid = id
			}
		}
		c.Set(RequestIDKey, rid)
		c.Header(requestIDHeader, rid)
		c.Next()
	}
}
