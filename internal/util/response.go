package util

import (
	"github.com/gin-gonic/gin"
)

// Business error codes returned next to the message.
const (
	CodeInvalidParam = 40001
	CodeConflict     = 40002
	CodeAuth         = 40101
	CodeNotFound     = 40401
	CodeServerErr    = 50001
)

// Message is the body of responses that carry no resource.
type Message struct {
	Message string `json:"message"`
}

// JSON writes a resource as the bare response body.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// Error writes {"error": msg, "code": code}.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"error": msg,
		"code":  code,
	})
}
