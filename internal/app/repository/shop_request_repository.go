package repository

import (
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

type ShopRequestRepository interface {
	WithTx(tx *gorm.DB) ShopRequestRepository
	Create(req *model.ShopRequest) error
	FindByID(id uint) (*model.ShopRequest, error)
	FindAll(status model.ShopRequestStatus) ([]model.ShopRequest, error)
	MarkApproved(id, shopID uint, reviewer string, at time.Time) error
	MarkRejected(id uint, reason, reviewer string, at time.Time) error
}

type shopRequestRepository struct {
	db *gorm.DB
}

func NewShopRequestRepository(db *gorm.DB) ShopRequestRepository {
	return &shopRequestRepository{db: db}
}

func (r *shopRequestRepository) WithTx(tx *gorm.DB) ShopRequestRepository {
	return &shopRequestRepository{db: tx}
}

func (r *shopRequestRepository) Create(req *model.ShopRequest) error {
	logger.Debug("Creating shop request in database", logger.Fields{
		"shop_name": req.ShopName,
	})

	if err := r.db.Create(req).Error; err != nil {
		logger.Error("Failed to create shop request in database", err, logger.Fields{
			"shop_name": req.ShopName,
		})
		return err
	}

	logger.Debug("Shop request created in database", logger.Fields{
		"shop_request_id": req.ID,
	})
	return nil
}

func (r *shopRequestRepository) FindByID(id uint) (*model.ShopRequest, error) {
	var req model.ShopRequest
	if err := r.db.First(&req, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find shop request by ID", err, logger.Fields{
				"shop_request_id": id,
			})
		}
		return nil, err
	}
	return &req, nil
}

// FindAll lists requests newest first. An empty status lists all of them.
func (r *shopRequestRepository) FindAll(status model.ShopRequestStatus) ([]model.ShopRequest, error) {
	query := r.db.Model(&model.ShopRequest{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var reqs []model.ShopRequest
	if err := query.Order("created_at DESC").Order("id DESC").Find(&reqs).Error; err != nil {
		logger.Error("Failed to list shop requests", err, logger.Fields{
			"status": status,
		})
		return nil, err
	}

	logger.Debug("Shop requests listed", logger.Fields{
		"status": status,
		"count":  len(reqs),
	})
	return reqs, nil
}

// MarkApproved only touches rows that are still pending and reports
// gorm.ErrRecordNotFound otherwise.
func (r *shopRequestRepository) MarkApproved(id, shopID uint, reviewer string, at time.Time) error {
	result := r.db.Model(&model.ShopRequest{}).
		Where("id = ? AND status = ?", id, model.ShopRequestPending).
		Updates(map[string]interface{}{
			"status":      model.ShopRequestApproved,
			"shop_id":     shopID,
			"reviewed_by": reviewer,
			"reviewed_at": at,
		})
	if result.Error != nil {
		logger.Error("Failed to mark shop request approved", result.Error, logger.Fields{
			"shop_request_id": id,
			"shop_id":         shopID,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *shopRequestRepository) MarkRejected(id uint, reason, reviewer string, at time.Time) error {
	result := r.db.Model(&model.ShopRequest{}).
		Where("id = ? AND status = ?", id, model.ShopRequestPending).
		Updates(map[string]interface{}{
			"status":           model.ShopRequestRejected,
			"rejection_reason": reason,
			"reviewed_by":      reviewer,
			"reviewed_at":      at,
		})
	if result.Error != nil {
		logger.Error("Failed to mark shop request rejected", result.Error, logger.Fields{
			"shop_request_id": id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
