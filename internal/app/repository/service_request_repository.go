package repository

import (
	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

type ServiceRequestRepository interface {
	Create(req *model.ServiceRequest) error
	FindByID(id uint) (*model.ServiceRequest, error)
	FindAll() ([]model.ServiceRequest, error)
	FindByCustomerEmail(email string) ([]model.ServiceRequest, error)
	UpdateStatus(id uint, status model.ServiceRequestStatus) error
	Delete(id uint) error
}

type serviceRequestRepository struct {
	db *gorm.DB
}

func NewServiceRequestRepository(db *gorm.DB) ServiceRequestRepository {
	return &serviceRequestRepository{db: db}
}

func (r *serviceRequestRepository) Create(req *model.ServiceRequest) error {
	logger.Debug("Creating service request in database", logger.Fields{
		"shop_id": req.ShopID,
	})

	// Status is left to the column default.
	if err := r.db.Omit("Shop").Create(req).Error; err != nil {
		logger.Error("Failed to create service request in database", err, logger.Fields{
			"shop_id": req.ShopID,
		})
		return err
	}

	logger.Debug("Service request created in database", logger.Fields{
		"service_request_id": req.ID,
		"shop_id":            req.ShopID,
	})
	return nil
}

func (r *serviceRequestRepository) FindByID(id uint) (*model.ServiceRequest, error) {
	var req model.ServiceRequest
	if err := r.db.Preload("Shop").First(&req, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find service request by ID", err, logger.Fields{
				"service_request_id": id,
			})
		}
		return nil, err
	}
	return &req, nil
}

func (r *serviceRequestRepository) FindAll() ([]model.ServiceRequest, error) {
	var reqs []model.ServiceRequest
	if err := r.db.Preload("Shop").
		Order("created_at DESC").Order("id DESC").
		Find(&reqs).Error; err != nil {
		logger.Error("Failed to list service requests", err)
		return nil, err
	}

	logger.Debug("Service requests listed", logger.Fields{
		"count": len(reqs),
	})
	return reqs, nil
}

func (r *serviceRequestRepository) FindByCustomerEmail(email string) ([]model.ServiceRequest, error) {
	var reqs []model.ServiceRequest
	if err := r.db.Preload("Shop").
		Where("LOWER(customer_email) = ?", model.NormalizeEmail(email)).
		Order("created_at DESC").Order("id DESC").
		Find(&reqs).Error; err != nil {
		logger.Error("Failed to list service requests by customer", err, logger.Fields{
			"email": email,
		})
		return nil, err
	}
	return reqs, nil
}

func (r *serviceRequestRepository) UpdateStatus(id uint, status model.ServiceRequestStatus) error {
	logger.Debug("Updating service request status", logger.Fields{
		"service_request_id": id,
		"status":             status,
	})

	result := r.db.Model(&model.ServiceRequest{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update service request status", result.Error, logger.Fields{
			"service_request_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the request and its chat thread.
func (r *serviceRequestRepository) Delete(id uint) error {
	logger.Debug("Deleting service request from database", logger.Fields{
		"service_request_id": id,
	})

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.ServiceRequest{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to delete service request", err, logger.Fields{
				"service_request_id": id,
			})
		}
		return err
	}

	logger.Debug("Service request deleted from database", logger.Fields{
		"service_request_id": id,
	})
	return nil
}
