package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/minimall/minimall/internal/types"
)

// HeaderRequestID is the response header echoing the request id
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware attaches a request id to the request context and echoes
// it back in the response headers.
func RequestIDMiddleware(c *gin.Context) {
	ctx := c.Request.Context()

	requestID := c.GetHeader(HeaderRequestID)
	if requestID == "" {
		requestID = types.GenerateUUID()
	}

	ctx = context.WithValue(ctx, types.CtxRequestID, requestID)
	c.Request = c.Request.WithContext(ctx)
	c.Header(HeaderRequestID, requestID)

	c.Next()
}
