package v1

import (
	"github.com/gin-gonic/gin"
)

// SuccessResponse is the envelope every successful endpoint returns. Failures
// are rendered by the error handler middleware with a non-zero code instead.
type SuccessResponse struct {
	Code int `json:"code"`
	Data any `json:"data"`
}

func respond(c *gin.Context, status int, data any) {
	c.JSON(status, SuccessResponse{Code: 0, Data: data})
}
