package utils

import (
	"github.com/gin-gonic/gin"
)

// DataResponse wraps every successful payload.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func RespondJSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, DataResponse{Data: data})
}

func RespondError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, ErrorResponse{
		Status:  code,
		Message: message,
	})
}
