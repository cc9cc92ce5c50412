package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopstack-dev/storefront/internal/apperr"
	"github.com/shopstack-dev/storefront/internal/catalog"
)

func (h *Handler) listProducts(c *gin.Context) {
	list, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "list products"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": list})
}

func (h *Handler) getProduct(c *gin.Context) {
	p, err := h.Catalog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "load product"))
		return
	}
	if p == nil {
		writeError(c, apperr.New(apperr.NotFound, "product does not exist"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

type productPayload struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gte=0"`
	CategoryID  string  `json:"category_id"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"image_url"`
	Enabled     bool    `json:"enabled"`
}

func (h *Handler) putProduct(c *gin.Context) {
	var req productPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperr.Wrap(apperr.InvalidArgument, err, "invalid product payload"))
		return
	}
	if id := c.Param("id"); id != "" {
		req.ProductID = id
	}
	if req.ProductID == "" {
		writeError(c, apperr.New(apperr.InvalidArgument, "product_id is required"))
		return
	}

	p := catalog.Product{
		ProductID:   req.ProductID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		Enabled:     req.Enabled,
	}
	if err := h.Catalog.Put(c.Request.Context(), p); err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "save product"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}
