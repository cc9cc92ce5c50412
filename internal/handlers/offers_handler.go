package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/shopstack-dev/storefront/internal/apperr"
	"github.com/shopstack-dev/storefront/internal/offers"
	"github.com/shopstack-dev/storefront/internal/pricing"
	"github.com/shopstack-dev/storefront/internal/validation"
)

func (h *Handler) listOffers(c *gin.Context) {
	list, err := h.Offers.List(c.Request.Context())
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "list offers"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"offers": list})
}

func (h *Handler) createOffer(c *gin.Context) {
	var req validation.OfferRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	offer := offerFromRequest(req)
	offer.OfferID = uuid.NewString()

	if err := h.Offers.Create(c.Request.Context(), offer); err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "create offer"))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"offer": offer})
}

func (h *Handler) updateOffer(c *gin.Context) {
	var req validation.OfferRequest
	if err := validation.BindAndValidate(c, &req, h.validate); err != nil {
		return
	}

	offer := offerFromRequest(req)
	offer.OfferID = c.Param("id")

	err := h.Offers.Update(c.Request.Context(), offer)
	if err == offers.ErrOfferNotFound {
		writeError(c, apperr.New(apperr.NotFound, "offer does not exist"))
		return
	}
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "update offer"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"offer": offer})
}

func (h *Handler) deleteOffer(c *gin.Context) {
	err := h.Offers.Delete(c.Request.Context(), c.Param("id"))
	if err == offers.ErrOfferNotFound {
		writeError(c, apperr.New(apperr.NotFound, "offer does not exist"))
		return
	}
	if err != nil {
		writeError(c, apperr.Wrap(apperr.Internal, err, "delete offer"))
		return
	}
	c.Status(http.StatusNoContent)
}

// offerFromRequest maps a validated payload onto the domain offer.
// Timestamps were already checked as RFC3339 by the validator.
func offerFromRequest(req validation.OfferRequest) pricing.Offer {
	validFrom, _ := time.Parse(time.RFC3339, req.ValidFrom)
	validTill, _ := time.Parse(time.RFC3339, req.ValidTill)

	var cond *pricing.Condition
	if req.Condition != nil {
		cond = &pricing.Condition{CartValueGreaterThan: req.Condition.CartValueGreaterThan}
	}

	return pricing.Offer{
		Name:        req.Name,
		Type:        req.Type,
		Discount:    pricing.Discount{Kind: req.Discount.Kind, Value: req.Discount.Value},
		ProductIDs:  req.ProductIDs,
		CategoryIDs: req.CategoryIDs,
		Condition:   cond,
		ValidFrom:   validFrom,
		ValidTill:   validTill,
		Priority:    req.Priority,
		Enabled:     req.Enabled,
	}
}
