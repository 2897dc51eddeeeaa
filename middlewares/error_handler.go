package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const genericErrorMessage = "Something went wrong!"

// ErrorHandler answers every request whose handlers recorded an error with
// the status/message envelope. Errors that are not APIErrors become 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if apiErr, ok := utils.AsAPIError(err); ok {
			utils.RespondError(c, apiErr.Status, apiErr.Message)
			return
		}

		utils.ErrorLogger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).Errorf("unhandled error: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, genericErrorMessage)
	}
}

// Recovery answers a panicking request with the 500 envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.ErrorLogger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		}).Errorf("panic recovered: %v", recovered)
		utils.RespondError(c, http.StatusInternalServerError, genericErrorMessage)
	})
}
