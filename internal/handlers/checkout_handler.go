package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopstack-dev/storefront/internal/checkout"
	"github.com/shopstack-dev/storefront/internal/validation"
)

func (h *Handler) submitCheckout(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.CheckoutRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		// BindAndValidate already wrote a 400
		return
	}

	// a logged-in caller owns the order regardless of what the body says
	if id := IdentityFrom(c); id.UserID != "" {
		req.UserID = id.UserID
	}

	idempKey := c.GetHeader("Idempotency-Key")
	correlationID := c.GetHeader("X-Request-Id")

	res, err := h.Checkout.Submit(ctx, req, idempKey, correlationID)
	if err != nil {
		if dup, ok := err.(*checkout.InProgressError); ok {
			c.JSON(http.StatusAccepted, gin.H{"message": "request already in progress", "order_id": dup.OrderID})
			return
		}
		writeError(c, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	c.Header("Location", "/orders/"+res.Order.OrderID)
	c.JSON(status, gin.H{"success": true, "order": res.Order})
}
