// Package handlers exposes the storefront HTTP API.
package handlers

import (
	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/shopstack-dev/storefront/internal/cart"
	"github.com/shopstack-dev/storefront/internal/catalog"
	"github.com/shopstack-dev/storefront/internal/checkout"
	"github.com/shopstack-dev/storefront/internal/offers"
	"github.com/shopstack-dev/storefront/internal/orders"
	"github.com/shopstack-dev/storefront/internal/settings"
	"github.com/shopstack-dev/storefront/internal/validation"
)

// Handler groups the dependencies of the HTTP layer.
type Handler struct {
	Checkout *checkout.Service
	Orders   *orders.Store
	Catalog  *catalog.Store
	Offers   *offers.Store
	Cart     *cart.Store
	Settings *settings.Store

	validate *validatorv10.Validate
}

// New returns a configured Handler.
func New(svc *checkout.Service, ordersStore *orders.Store, catalogStore *catalog.Store, offersStore *offers.Store, cartStore *cart.Store, settingsStore *settings.Store) *Handler {
	return &Handler{
		Checkout: svc,
		Orders:   ordersStore,
		Catalog:  catalogStore,
		Offers:   offersStore,
		Cart:     cartStore,
		Settings: settingsStore,
		validate: validation.New(),
	}
}

// Register wires all routes onto the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.Use(IdentityMiddleware())

	r.POST("/checkout", h.submitCheckout)
	r.GET("/orders/:id", h.getOrder)
	r.GET("/orders", h.listOwnOrders)
	r.POST("/cart/merge", h.mergeGuestState)

	r.GET("/products", h.listProducts)
	r.GET("/products/:id", h.getProduct)

	admin := r.Group("/admin", RequireAdmin())
	{
		admin.PATCH("/orders/:id/status", h.updateOrderStatus)
		admin.GET("/offers", h.listOffers)
		admin.POST("/offers", h.createOffer)
		admin.PUT("/offers/:id", h.updateOffer)
		admin.DELETE("/offers/:id", h.deleteOffer)
		admin.POST("/products", h.putProduct)
		admin.PUT("/products/:id", h.putProduct)
		admin.GET("/settings", h.getSettings)
		admin.PUT("/settings", h.putSettings)
		admin.GET("/analytics/sales", h.salesReport)
	}
}
