package repository

import (
	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdminGrantRepository interface {
	Create(grant *model.AdminGrant) error
	Exists(email string) (bool, error)
	FindAll() ([]model.AdminGrant, error)
	DeleteByEmail(email string) error
}

type adminGrantRepository struct {
	db *gorm.DB
}

func NewAdminGrantRepository(db *gorm.DB) AdminGrantRepository {
	return &adminGrantRepository{db: db}
}

func (r *adminGrantRepository) Create(grant *model.AdminGrant) error {
	if err := r.db.Create(grant).Error; err != nil {
		logger.Error("Failed to create admin grant", err, logger.Fields{
			"email": grant.Email,
		})
		return err
	}

	logger.Info("Admin grant created", logger.Fields{
		"email":      grant.Email,
		"granted_by": grant.GrantedBy,
	})
	return nil
}

func (r *adminGrantRepository) Exists(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.AdminGrant{}).
		Where("email = ?", model.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		logger.Error("Failed to look up admin grant", err, logger.Fields{
			"email": email,
		})
		return false, err
	}
	return count > 0, nil
}

func (r *adminGrantRepository) FindAll() ([]model.AdminGrant, error) {
	var grants []model.AdminGrant
	if err := r.db.Order("email ASC").Find(&grants).Error; err != nil {
		logger.Error("Failed to list admin grants", err)
		return nil, err
	}
	return grants, nil
}

func (r *adminGrantRepository) DeleteByEmail(email string) error {
	result := r.db.Where("email = ?", model.NormalizeEmail(email)).Delete(&model.AdminGrant{})
	if result.Error != nil {
		logger.Error("Failed to delete admin grant", result.Error, logger.Fields{
			"email": email,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
