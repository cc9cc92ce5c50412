package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopstack-dev/storefront/internal/apperr"
	"github.com/shopstack-dev/storefront/internal/settings"
)

func (h *Handler) getSettings(c *gin.Context) {
	cfg, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "load settings"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": cfg})
}

func (h *Handler) putSettings(c *gin.Context) {
	var req settings.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.Wrap(apperr.InvalidArgument, err, "invalid settings payload"))
		return
	}
	if err := h.Settings.Put(c.Request.Context(), req); err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "save settings"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": req})
}
