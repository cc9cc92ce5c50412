package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopstack-dev/storefront/internal/apperr"
	"github.com/shopstack-dev/storefront/internal/orders"
	"github.com/shopstack-dev/storefront/internal/validation"
)

func (h *Handler) getOrder(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("id")

	order, err := h.Orders.Get(ctx, orderID)
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "load order"))
		return
	}
	if order == nil {
		writeError(c, apperr.New(apperr.NotFound, "order does not exist"))
		return
	}

	id := IdentityFrom(c)
	if order.UserID != "" && order.UserID != id.UserID && !id.IsAdmin() {
		writeError(c, apperr.New(apperr.PermissionDenied, "order belongs to another user"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (h *Handler) listOwnOrders(c *gin.Context) {
	ctx := c.Request.Context()

	id := IdentityFrom(c)
	if id.UserID == "" {
		writeError(c, apperr.New(apperr.PermissionDenied, "sign in to list orders"))
		return
	}

	list, err := h.Orders.ListByUser(ctx, id.UserID)
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "list orders"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

func (h *Handler) updateOrderStatus(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("id")

	var req validation.StatusUpdateRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	err := h.Orders.UpdateStatus(ctx, orderID, req.Status, req.TrackingNumber, req.ShippingCarrier)
	if err == orders.ErrOrderNotFound {
		writeError(c, apperr.New(apperr.NotFound, "order does not exist"))
		return
	}
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "update order status"))
		return
	}

	updated, err := h.Orders.Get(ctx, orderID)
	if err != nil || updated == nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "read back order"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": updated})
}
