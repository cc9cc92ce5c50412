package handlers

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/shopstack-dev/storefront/internal/apperr"
)

// writeError renders an error as {error: {kind, message}} with the status
// mapped from its kind.
func writeError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	if kind == apperr.Internal {
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.JSON(kind.HTTPStatus(), gin.H{
		"error": gin.H{
			"kind":    string(kind),
			"message": apperr.MessageOf(err),
		},
	})
}
