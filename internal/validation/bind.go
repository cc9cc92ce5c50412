package validation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/shopstack-dev/storefront/internal/apperr"
)

// BindAndValidate decodes the request body into out and applies its struct
// rules. On failure the 400 is written here, in the same
// {error:{kind,message}} envelope the handlers use, and the error is
// returned so the caller can bail out.
func BindAndValidate(c *gin.Context, out interface{}, v *validatorv10.Validate) error {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"kind":    string(apperr.InvalidArgument),
				"message": "malformed request body",
			},
		})
		return err
	}

	if err := v.Struct(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{
				"kind":    string(apperr.InvalidArgument),
				"message": "validation failed",
				"fields":  fieldErrors(err),
			},
		})
		return err
	}
	return nil
}

// fieldErrors flattens validator errors into a field -> failed-rule map.
func fieldErrors(err error) map[string]string {
	fields := map[string]string{}
	ve, ok := err.(validatorv10.ValidationErrors)
	if !ok {
		fields["body"] = err.Error()
		return fields
	}
	for _, fe := range ve {
		fields[fe.StructNamespace()] = "failed " + fe.Tag() + " rule"
	}
	return fields
}
