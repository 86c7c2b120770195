// Package rest is the HTTP transport: gin handlers, route wiring and
// the error-to-response translation shared by all of them.
package rest

import (
	"net/http"

	"campuseats-be/internal/apperr"
	"campuseats-be/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// writeError translates any error into the uniform {"message": ...}
// body. Errors outside the apperr taxonomy are logged and surface as a
// generic 500 so internals never reach the client.
func writeError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request.Context()).Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(status, gin.H{"message": apperr.Message(err)})
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return false
	}
	return true
}
