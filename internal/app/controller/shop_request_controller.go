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

type ShopRequestController struct {
	shopRequestService service.ShopRequestService
}

func NewShopRequestController(shopRequestService service.ShopRequestService) *ShopRequestController {
	return &ShopRequestController{shopRequestService: shopRequestService}
}

type SubmitShopRequestRequest struct {
	ShopName       string `json:"shop_name"`
	OwnerName      string `json:"owner_name"`
	ContactDetails string `json:"contact_details"`
	Address        string `json:"address"`
	GoogleMapsLink string `json:"google_maps_link"`
}

type RejectShopRequestRequest struct {
	Reason string `json:"reason"`
}

// Submit is the public "list your shop" form.
// POST /api/v1/shop-requests
func (ctrl *ShopRequestController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SubmitShopRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.RespondForm(c, http.StatusBadRequest, service.MsgMissingFields)
		return
	}

	_, err := ctrl.shopRequestService.Submit(service.SubmitShopRequestInput{
		ShopName:       req.ShopName,
		OwnerName:      req.OwnerName,
		ContactDetails: req.ContactDetails,
		Address:        req.Address,
		GoogleMapsLink: req.GoogleMapsLink,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			apperrors.RespondForm(c, http.StatusBadRequest, verr.Message)
			return
		}
		log.Error("Failed to submit shop request", err, map[string]interface{}{
			"shop_name": req.ShopName,
		})
		apperrors.RespondForm(c, http.StatusInternalServerError, service.MsgSomethingWentWrong)
		return
	}

	apperrors.RespondForm(c, http.StatusCreated, "")
}

// GET /api/v1/admin/shop-requests?status=
func (ctrl *ShopRequestController) List(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	requests, err := ctrl.shopRequestService.List(model.ShopRequestStatus(c.Query("status")))
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequestState) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Status must be one of: pending, approved, rejected")
			return
		}
		log.Error("Failed to list shop requests", err)
		apperrors.InternalError(c, "Failed to fetch shop requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop_requests": requests,
		"count":         len(requests),
	})
}

// POST /api/v1/admin/shop-requests/:id/approve
func (ctrl *ShopRequestController) Approve(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviewer, _ := middleware.GetUserEmail(c)

	req, shop, err := ctrl.shopRequestService.Approve(id, reviewer)
	if err != nil {
		ctrl.respondReviewError(c, err, id)
		return
	}

	log.Info("Shop request approved via API", map[string]interface{}{
		"shop_request_id": id,
		"shop_id":         shop.ID,
	})
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"shop_request": req,
		"shop":         shop,
	})
}

// POST /api/v1/admin/shop-requests/:id/reject
func (ctrl *ShopRequestController) Reject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	reviewer, _ := middleware.GetUserEmail(c)

	var body RejectShopRequestRequest
	// an empty body means the default reason
	_ = c.ShouldBindJSON(&body)

	req, err := ctrl.shopRequestService.Reject(id, body.Reason, reviewer)
	if err != nil {
		ctrl.respondReviewError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"shop_request": req,
	})
}

func (ctrl *ShopRequestController) respondReviewError(c *gin.Context, err error, id uint) {
	switch {
	case errors.Is(err, service.ErrShopRequestNotFound):
		apperrors.NotFound(c, apperrors.ShopRequestNotFound, service.MsgRequestNotFound)
	case errors.Is(err, service.ErrShopRequestClosed):
		apperrors.Conflict(c, apperrors.ShopRequestClosed, "This request has already been reviewed.")
	case errors.Is(err, service.ErrShopInsertFailed):
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.ShopInsertFailed, service.MsgShopInsertFailed)
	default:
		middleware.GetLoggerFromContext(c).Error("Shop request review failed", err, map[string]interface{}{
			"shop_request_id": id,
		})
		apperrors.InternalError(c, service.MsgStatusUpdateFailed)
	}
}
