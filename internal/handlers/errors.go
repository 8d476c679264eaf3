// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/adsworks/ads-backend/internal/services"
	"github.com/adsworks/ads-backend/internal/utils"
)

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is a server fault.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrListingNotFound),
		errors.Is(err, services.ErrFieldNotFound),
		errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, err.Error())

	case errors.Is(err, services.ErrFieldInUse):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrFieldNameTaken),
		errors.Is(err, services.ErrEmailTaken):
		utils.ConflictResponse(c, err.Error())

	case errors.Is(err, services.ErrUnknownField):
		utils.UnprocessableResponse(c, "UNKNOWN_FIELD", err.Error())
	case errors.Is(err, services.ErrFieldNotApplicable):
		utils.UnprocessableResponse(c, "FIELD_NOT_APPLICABLE", err.Error())
	case errors.Is(err, services.ErrTypeMismatch):
		utils.UnprocessableResponse(c, "TYPE_MISMATCH", err.Error())
	case errors.Is(err, services.ErrDuplicateField):
		utils.UnprocessableResponse(c, "DUPLICATE_FIELD", err.Error())
	case errors.Is(err, services.ErrInvalidFieldConfiguration):
		utils.UnprocessableResponse(c, "INVALID_FIELD_CONFIGURATION", err.Error())
	case errors.Is(err, services.ErrUnsupportedFieldType):
		utils.UnprocessableResponse(c, "UNSUPPORTED_FIELD_TYPE", err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrPromotionUnpaid):
		utils.BadRequestResponse(c, err.Error(), nil)

	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
