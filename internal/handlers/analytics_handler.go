package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shopstack-dev/storefront/internal/analytics"
	"github.com/shopstack-dev/storefront/internal/apperr"
)

func (h *Handler) salesReport(c *gin.Context) {
	till := time.Now().UTC()
	from := till.AddDate(0, 0, -30)

	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(c, apperr.New(apperr.InvalidArgument, "from must be RFC3339"))
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(c, apperr.New(apperr.InvalidArgument, "to must be RFC3339"))
			return
		}
		till = t
	}
	if till.Before(from) {
		writeError(c, apperr.New(apperr.InvalidArgument, "to is before from"))
		return
	}

	report, err := analytics.Aggregate(c.Request.Context(), h.Orders, from, till)
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "aggregate sales"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": report})
}
