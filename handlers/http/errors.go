package httpHandler

import (
	"net/http"

	"social-server/usecases"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var statusByKind = map[usecases.ErrorKind]int{
	usecases.KindValidation:   http.StatusBadRequest,
	usecases.KindConflict:     http.StatusBadRequest,
	usecases.KindNotFound:     http.StatusNotFound,
	usecases.KindUnauthorized: http.StatusUnauthorized,
	usecases.KindForbidden:    http.StatusForbidden,
}

// respondError writes err with the status its kind maps to. Internal failures
// are logged and reported without detail.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	kind := usecases.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
