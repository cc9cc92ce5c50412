package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopstack-dev/storefront/internal/apperr"
	"github.com/shopstack-dev/storefront/internal/cart"
	"github.com/shopstack-dev/storefront/internal/validation"
)

func (h *Handler) mergeGuestState(c *gin.Context) {
	id := IdentityFrom(c)
	if id.UserID == "" {
		writeError(c, apperr.New(apperr.PermissionDenied, "sign in to merge guest state"))
		return
	}

	var req validation.MergeRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	pending := cart.PendingSync{}
	for _, it := range req.CartItems {
		pending.CartItems = append(pending.CartItems, cart.PendingCartItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	for _, it := range req.SavedItems {
		pending.SavedItems = append(pending.SavedItems, cart.PendingSavedItem{ProductID: it.ProductID})
	}

	result := h.Cart.Merge(c.Request.Context(), id.UserID, pending)
	c.JSON(http.StatusOK, gin.H{"result": result})
}
