package controller

import (
	"net/http"
	"strconv"
	"strings"

	apperrors "github.com/autonear/autonear-backend/internal/errors"
	"github.com/autonear/autonear-backend/internal/middleware"
	"github.com/autonear/autonear-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// parseID reads a positive integer path parameter and writes a 400 when it
// is malformed.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		middleware.GetLoggerFromContext(c).Warn("Invalid ID parameter", map[string]interface{}{
			"param": name,
			"value": raw,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}

// parseOrigin reads lat/lng query parameters. Both must be present, finite
// and on the globe; anything else means no origin.
func parseOrigin(c *gin.Context) *util.Point {
	latRaw, lngRaw := strings.TrimSpace(c.Query("lat")), strings.TrimSpace(c.Query("lng"))
	if latRaw == "" || lngRaw == "" {
		return nil
	}
	lat, err := strconv.ParseFloat(latRaw, 64)
	if err != nil {
		return nil
	}
	lng, err := strconv.ParseFloat(lngRaw, 64)
	if err != nil {
		return nil
	}
	origin := util.Point{Lat: lat, Lng: lng}
	if !origin.Valid() {
		middleware.GetLoggerFromContext(c).Debug("Ignoring invalid origin", map[string]interface{}{
			"lat": latRaw,
			"lng": lngRaw,
		})
		return nil
	}
	return &origin
}

// verifiedEmail returns the caller's address, writing a 403 when the token
// does not carry a verified one.
func verifiedEmail(c *gin.Context) (string, bool) {
	email, ok := middleware.GetUserEmail(c)
	if !ok {
		apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzEmailUnverified, "Verify your email address first")
		return "", false
	}
	return email, true
}
