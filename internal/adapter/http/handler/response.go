package handler

import (
	"github.com/gin-gonic/gin"
)

// ErrorPayload represents the error body returned by every endpoint
type ErrorPayload struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Code    string `json:"code,omitempty"`
}

func respondJSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func respondError(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, ErrorPayload{
		Error:   message,
		Details: details,
		Code:    code,
	})
}
