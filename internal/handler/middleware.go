package handler

import (
	"log/slog"
	"time"

	"twitterclone/backend/internal/loader"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
)

// RequestID tags each request with an id, echoes it in the response and logs the request
// once it completes. A client-supplied id is kept.
func RequestID(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)

		start := time.Now()
		c.Next()

		log.Info("request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func RequestIDFrom(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

// Session gives the request its own loader set. Nothing cached survives the request.
func Session(src loader.Source, opts loader.Options) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := loader.WithLoaders(c.Request.Context(), loader.New(src, opts))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
