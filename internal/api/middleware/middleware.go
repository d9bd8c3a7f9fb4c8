package middleware

import (
	"time"

	"github.com/dhima/time-machine/pkg/clock"
	"github.com/dhima/time-machine/pkg/travel"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request ID in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the gin context key of the request ID.
	RequestIDKey = "request_id"

	// VirtualTimeHeader reports the virtual time a request started at.
	VirtualTimeHeader = "X-Virtual-Time"
)

// RequestID tags each request with the client's X-Request-ID, or a new UUID.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set(RequestIDKey, requestID)
		c.Writer.Header().Set(RequestIDHeader, requestID)

		c.Next()
	}
}

// VirtualTime sets X-Virtual-Time while a traveller is running, so clients
// can tell the daemon's clock apart from their own.
func VirtualTime() gin.HandlerFunc {
	return func(c *gin.Context) {
		if travel.IsTravelling() {
			c.Writer.Header().Set(VirtualTimeHeader, clock.UTCNow().Format(time.RFC3339Nano))
		}
		c.Next()
	}
}
