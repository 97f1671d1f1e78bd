package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/autonear/autonear-backend/internal/app/service"
	apperrors "github.com/autonear/autonear-backend/internal/errors"
	"github.com/gin-gonic/gin"
)

type GeocodeController struct {
	geocodeService service.GeocodeService
}

func NewGeocodeController(geocodeService service.GeocodeService) *GeocodeController {
	return &GeocodeController{geocodeService: geocodeService}
}

// Reverse labels a map position.
// GET /api/v1/geocode/reverse?lat=&lng=
func (ctrl *GeocodeController) Reverse(c *gin.Context) {
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr != nil || lngErr != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "lat and lng are required numbers")
		return
	}

	label, err := ctrl.geocodeService.Describe(c.Request.Context(), lat, lng)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCoordinates) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidRange, "Coordinates are out of range")
			return
		}
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, label)
}
