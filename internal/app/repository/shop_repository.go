package repository

import (
	"strings"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

type ShopFilter struct {
	City string // exact match; empty means every city
}

type ShopRepository interface {
	WithTx(tx *gorm.DB) ShopRepository
	Create(shop *model.Shop) error
	Update(shop *model.Shop) error
	FindAll(filter ShopFilter) ([]model.Shop, error)
	FindByID(id uint) (*model.Shop, error)
	FindLikelyDuplicate(name, addressPrefix string) (*model.Shop, error)
	BulkCreate(shops []model.Shop, batchSize int) error
}

type shopRepository struct {
	db *gorm.DB
}

func NewShopRepository(db *gorm.DB) ShopRepository {
	return &shopRepository{db: db}
}

func (r *shopRepository) WithTx(tx *gorm.DB) ShopRepository {
	return &shopRepository{db: tx}
}

func (r *shopRepository) Create(shop *model.Shop) error {
	logger.Debug("Creating shop in database", logger.Fields{
		"name": shop.Name,
		"city": shop.City,
	})

	if err := r.db.Create(shop).Error; err != nil {
		logger.Error("Failed to create shop in database", err, logger.Fields{
			"name": shop.Name,
			"city": shop.City,
		})
		return err
	}

	logger.Debug("Shop created in database", logger.Fields{
		"shop_id": shop.ID,
	})
	return nil
}

func (r *shopRepository) Update(shop *model.Shop) error {
	if err := r.db.Save(shop).Error; err != nil {
		logger.Error("Failed to update shop in database", err, logger.Fields{
			"shop_id": shop.ID,
		})
		return err
	}
	return nil
}

// FindAll returns shops ordered by rating, highest first.
func (r *shopRepository) FindAll(filter ShopFilter) ([]model.Shop, error) {
	logger.Debug("Finding shops", logger.Fields{
		"city": filter.City,
	})

	query := r.db.Model(&model.Shop{})
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	var shops []model.Shop
	if err := query.Order("rating DESC").Order("id ASC").Find(&shops).Error; err != nil {
		logger.Error("Failed to find shops", err, logger.Fields{
			"city": filter.City,
		})
		return nil, err
	}

	logger.Debug("Shops found", logger.Fields{
		"count": len(shops),
	})
	return shops, nil
}

func (r *shopRepository) FindByID(id uint) (*model.Shop, error) {
	var shop model.Shop
	if err := r.db.First(&shop, id).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			logger.Error("Failed to find shop by ID", err, logger.Fields{
				"shop_id": id,
			})
		}
		return nil, err
	}
	return &shop, nil
}

// FindLikelyDuplicate matches the name case-insensitively and the address
// by a case-insensitive substring. It returns nil, nil when nothing matches.
func (r *shopRepository) FindLikelyDuplicate(name, addressPrefix string) (*model.Shop, error) {
	logger.Debug("Checking for duplicate shop", logger.Fields{
		"name":           name,
		"address_prefix": addressPrefix,
	})

	var shops []model.Shop
	err := r.db.
		Where("LOWER(name) = ?", strings.ToLower(name)).
		Where("LOWER(address) LIKE ?", "%"+strings.ToLower(addressPrefix)+"%").
		Limit(1).
		Find(&shops).Error
	if err != nil {
		logger.Error("Failed to check for duplicate shop", err, logger.Fields{
			"name": name,
		})
		return nil, err
	}

	if len(shops) == 0 {
		return nil, nil
	}
	return &shops[0], nil
}

func (r *shopRepository) BulkCreate(shops []model.Shop, batchSize int) error {
	logger.Info("Bulk creating shops", logger.Fields{
		"count":      len(shops),
		"batch_size": batchSize,
	})

	if err := r.db.CreateInBatches(shops, batchSize).Error; err != nil {
		logger.Error("Failed to bulk create shops", err)
		return err
	}
	return nil
}
