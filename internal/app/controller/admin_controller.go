package controller

import (
	"errors"
	"net/http"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/service"
	apperrors "github.com/autonear/autonear-backend/internal/errors"
	"github.com/autonear/autonear-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AdminController struct {
	access             service.AccessService
	requestService     service.ServiceRequestService
	shopRequestService service.ShopRequestService
}

func NewAdminController(
	access service.AccessService,
	requestService service.ServiceRequestService,
	shopRequestService service.ShopRequestService,
) *AdminController {
	return &AdminController{
		access:             access,
		requestService:     requestService,
		shopRequestService: shopRequestService,
	}
}

type GrantAdminRequest struct {
	Email string `json:"email" binding:"required"`
}

// Queue is the dashboard work list: every service lead plus the shop
// registrations still waiting for review.
// GET /api/v1/admin/queue
func (ctrl *AdminController) Queue(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	leads, err := ctrl.requestService.ListAll()
	if err != nil {
		log.Error("Failed to load service requests for queue", err)
		apperrors.InternalError(c, "")
		return
	}
	pending, err := ctrl.shopRequestService.List(model.ShopRequestPending)
	if err != nil {
		log.Error("Failed to load shop requests for queue", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service_requests": leads,
		"shop_requests":    pending,
	})
}

// GET /api/v1/admin/grants
func (ctrl *AdminController) ListGrants(c *gin.Context) {
	grants, err := ctrl.access.ListGrants()
	if err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to list admin grants", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"configured": ctrl.access.ConfiguredAdmins(),
		"grants":     grants,
	})
}

// POST /api/v1/admin/grants
func (ctrl *AdminController) CreateGrant(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req GrantAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Email is required")
		return
	}
	grantedBy, _ := middleware.GetUserEmail(c)

	grant, err := ctrl.access.Grant(req.Email, grantedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid email address")
		case errors.Is(err, service.ErrGrantExists):
			apperrors.Conflict(c, apperrors.AdminGrantExists, "This email already has admin access")
		default:
			log.Error("Failed to grant admin access", err)
			apperrors.ParseAndRespond(c, err, "create grant")
		}
		return
	}

	log.Info("Admin access granted", map[string]interface{}{
		"email":      grant.Email,
		"granted_by": grantedBy,
	})
	c.JSON(http.StatusCreated, gin.H{"grant": grant})
}

// DELETE /api/v1/admin/grants/:email
func (ctrl *AdminController) DeleteGrant(c *gin.Context) {
	if err := ctrl.access.Revoke(c.Param("email")); err != nil {
		switch {
		case errors.Is(err, service.ErrConfiguredAdmin):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzConfigured, "Configured administrators cannot be revoked")
		case errors.Is(err, service.ErrGrantNotFound):
			apperrors.NotFound(c, apperrors.AdminGrantNotFound, "Admin grant not found")
		default:
			middleware.GetLoggerFromContext(c).Error("Failed to revoke admin grant", err)
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
