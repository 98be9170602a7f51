package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/seqcls/verdict/internal/usecase"
)

// BindText extracts the text field from a JSON body.
// It writes a 422 response and returns false when the field is missing.
func BindText(c *gin.Context) (string, bool) {
	var input usecase.TextInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return "", false
	}
	return *input.Text, true
}
