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

type ServiceRequestController struct {
	requestService service.ServiceRequestService
}

func NewServiceRequestController(requestService service.ServiceRequestService) *ServiceRequestController {
	return &ServiceRequestController{requestService: requestService}
}

type SubmitServiceRequestRequest struct {
	ShopID        uint   `json:"shop_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
	VehicleInfo   string `json:"vehicle_info"`
	ServiceType   string `json:"service_type"`
	Message       string `json:"message"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Submit is the public lead form.
// POST /api/v1/service-requests
func (ctrl *ServiceRequestController) Submit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SubmitServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid service request body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.RespondForm(c, http.StatusBadRequest, service.MsgMissingRequiredFields)
		return
	}

	created, err := ctrl.requestService.Submit(service.SubmitServiceRequestInput{
		ShopID:        req.ShopID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		VehicleInfo:   req.VehicleInfo,
		ServiceType:   req.ServiceType,
		Message:       req.Message,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			apperrors.RespondForm(c, http.StatusBadRequest, verr.Message)
		case errors.Is(err, service.ErrShopNotFound):
			apperrors.RespondForm(c, http.StatusNotFound, "Shop not found.")
		default:
			log.Error("Failed to submit service request", err, map[string]interface{}{
				"shop_id": req.ShopID,
			})
			apperrors.RespondForm(c, http.StatusInternalServerError, service.MsgSomethingWentWrong)
		}
		return
	}

	log.Info("Service request created", map[string]interface{}{
		"service_request_id": created.ID,
	})
	apperrors.RespondForm(c, http.StatusCreated, "")
}

// ListMine returns the signed-in customer's requests.
// GET /api/v1/service-requests/mine
func (ctrl *ServiceRequestController) ListMine(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	email, ok := verifiedEmail(c)
	if !ok {
		return
	}

	requests, err := ctrl.requestService.ListByCustomer(email)
	if err != nil {
		log.Error("Failed to list customer requests", err)
		apperrors.InternalError(c, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service_requests": requests,
		"count":            len(requests),
	})
}

// GET /api/v1/admin/service-requests
func (ctrl *ServiceRequestController) ListAll(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	requests, err := ctrl.requestService.ListAll()
	if err != nil {
		log.Error("Failed to list service requests", err)
		apperrors.InternalError(c, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service_requests": requests,
		"count":            len(requests),
	})
}

// GET /api/v1/admin/service-requests/:id
func (ctrl *ServiceRequestController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	req, err := ctrl.requestService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrServiceRequestNotFound) {
			apperrors.NotFound(c, apperrors.ServiceRequestNotFound, service.MsgRequestNotFound)
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to fetch service request", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"service_request": req})
}

// PATCH /api/v1/admin/service-requests/:id/status
func (ctrl *ServiceRequestController) UpdateStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Status is required")
		return
	}

	updated, err := ctrl.requestService.UpdateStatus(id, model.ServiceRequestStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidServiceStatus):
			apperrors.BadRequest(c, apperrors.ServiceRequestInvalidStatus, "Status must be one of: pending, on going, completed")
		case errors.Is(err, service.ErrServiceRequestNotFound):
			apperrors.NotFound(c, apperrors.ServiceRequestNotFound, service.MsgRequestNotFound)
		default:
			log.Error("Failed to update service request status", err, map[string]interface{}{
				"service_request_id": id,
			})
			apperrors.InternalError(c, service.MsgStatusUpdateFailed)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"service_request": updated,
	})
}

// DELETE /api/v1/admin/service-requests/:id
func (ctrl *ServiceRequestController) Delete(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ctrl.requestService.Delete(id); err != nil {
		if errors.Is(err, service.ErrServiceRequestNotFound) {
			apperrors.NotFound(c, apperrors.ServiceRequestNotFound, service.MsgRequestNotFound)
			return
		}
		log.Error("Failed to delete service request", err, map[string]interface{}{
			"service_request_id": id,
		})
		apperrors.ParseAndRespond(c, err, "delete request")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
