package db

import (
	"fmt"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models lists every table owned by the service, parents first.
func Models() []interface{} {
	return []interface{}{
		&model.Shop{},
		&model.ShopRequest{},
		&model.ServiceRequest{},
		&model.ChatMessage{},
		&model.User{},
		&model.AdminGrant{},
		&model.PasswordReset{},
		&model.EmailVerification{},
	}
}

// Migrate runs AutoMigrate on the global connection and optionally loads
// the starter shops into an empty directory.
func Migrate(seed bool) error {
	logger.Info("Running database migrations...")

	models := Models()
	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	if seed {
		if _, err := SeedShops(DB, InitialShops(), false); err != nil {
			logger.Error("Failed to seed initial shops during migration", err)
			return err
		}
	}

	logger.Info("Database migrations completed successfully", logger.Fields{
		"models_count": len(models),
	})
	return nil
}

// SeedShops inserts shops. Without reset it does nothing when the directory
// already has rows; with reset every shop (and through the cascade every
// service request and thread) is removed first. It returns the number of
// inserted rows.
func SeedShops(conn *gorm.DB, shops []model.Shop, reset bool) (int, error) {
	inserted := 0
	err := conn.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Shop{}).Count(&count).Error; err != nil {
			return err
		}

		if count > 0 && !reset {
			logger.Info("Shops already seeded, skipping...", logger.Fields{
				"existing_count": count,
			})
			return nil
		}

		if reset && count > 0 {
			logger.Warn("Clearing existing shops", logger.Fields{"existing_count": count})
			if err := tx.Where("request_id IN (?)", tx.Model(&model.ServiceRequest{}).Select("id")).
				Delete(&model.ChatMessage{}).Error; err != nil {
				return fmt.Errorf("clear chat messages: %w", err)
			}
			if err := tx.Where("1 = 1").Delete(&model.ServiceRequest{}).Error; err != nil {
				return fmt.Errorf("clear service requests: %w", err)
			}
			if err := tx.Model(&model.ShopRequest{}).Where("shop_id IS NOT NULL").
				Update("shop_id", nil).Error; err != nil {
				return fmt.Errorf("detach shop requests: %w", err)
			}
			if err := tx.Where("1 = 1").Delete(&model.Shop{}).Error; err != nil {
				return fmt.Errorf("clear shops: %w", err)
			}
		}

		if len(shops) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(shops, 500).Error; err != nil {
			return fmt.Errorf("insert shops: %w", err)
		}
		inserted = len(shops)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if inserted > 0 {
		logger.Info("Shops seeded", logger.Fields{"inserted": inserted})
	}
	return inserted, nil
}
