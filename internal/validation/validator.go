package validation

import (
	"fmt"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
)

// New returns a configured validator with custom struct-level validation registered.
func New() *validatorv10.Validate {
	v := validatorv10.New()

	// register struct-level validation for OfferRequest: scope lists must
	// match the offer type, percent discounts stay within 0-100 and the
	// validity window must not be inverted.
	v.RegisterStructValidation(offerStructValidation, OfferRequest{})

	return v
}

func offerStructValidation(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(OfferRequest)

	if req.Discount.Kind == "percent" && req.Discount.Value > 100 {
		sl.ReportError(req.Discount.Value, "discount.value", "Value", "percent_range", fmt.Sprintf("percent discount %.2f exceeds 100", req.Discount.Value))
	}

	switch req.Type {
	case "product":
		if len(req.ProductIDs) == 0 {
			sl.ReportError(req.ProductIDs, "product_ids", "ProductIDs", "scope_required", "product offers need product_ids")
		}
	case "category":
		if len(req.CategoryIDs) == 0 {
			sl.ReportError(req.CategoryIDs, "category_ids", "CategoryIDs", "scope_required", "category offers need category_ids")
		}
	case "conditional":
		if req.Condition == nil {
			sl.ReportError(req.Condition, "condition", "Condition", "condition_required", "conditional offers need a condition")
		}
	}

	from, errFrom := time.Parse(time.RFC3339, req.ValidFrom)
	till, errTill := time.Parse(time.RFC3339, req.ValidTill)
	if errFrom != nil {
		sl.ReportError(req.ValidFrom, "valid_from", "ValidFrom", "rfc3339", "valid_from must be RFC3339")
	}
	if errTill != nil {
		sl.ReportError(req.ValidTill, "valid_till", "ValidTill", "rfc3339", "valid_till must be RFC3339")
	}
	if errFrom == nil && errTill == nil && till.Before(from) {
		sl.ReportError(req.ValidTill, "valid_till", "ValidTill", "window_inverted", "valid_till before valid_from")
	}
}
