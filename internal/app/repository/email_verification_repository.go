package repository

import (
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

type EmailVerificationRepository interface {
	Replace(verification *model.EmailVerification) error
	FindLatest(email string) (*model.EmailVerification, error)
	IncrementAttempts(id uint) error
	DeleteByEmail(email string) error
	DeleteExpired(now time.Time, maxAttempts int) (int64, error)
}

type emailVerificationRepository struct {
	db *gorm.DB
}

func NewEmailVerificationRepository(db *gorm.DB) EmailVerificationRepository {
	return &emailVerificationRepository{db: db}
}

// Replace drops any earlier code for the address and stores the new one.
func (r *emailVerificationRepository) Replace(verification *model.EmailVerification) error {
	verification.Email = model.NormalizeEmail(verification.Email)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ?", verification.Email).Delete(&model.EmailVerification{}).Error; err != nil {
			return err
		}
		return tx.Create(verification).Error
	})
	if err != nil {
		logger.Error("Failed to store email verification", err, logger.Fields{
			"email": verification.Email,
		})
		return err
	}
	return nil
}

func (r *emailVerificationRepository) FindLatest(email string) (*model.EmailVerification, error) {
	var verification model.EmailVerification
	err := r.db.Where("email = ?", model.NormalizeEmail(email)).
		Order("created_at DESC, id DESC").
		First(&verification).Error
	if err != nil {
		return nil, err
	}
	return &verification, nil
}

func (r *emailVerificationRepository) IncrementAttempts(id uint) error {
	return r.db.Model(&model.EmailVerification{}).Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + ?", 1)).Error
}

func (r *emailVerificationRepository) DeleteByEmail(email string) error {
	return r.db.Where("email = ?", model.NormalizeEmail(email)).Delete(&model.EmailVerification{}).Error
}

// DeleteExpired purges codes that expired or ran out of attempts.
func (r *emailVerificationRepository) DeleteExpired(now time.Time, maxAttempts int) (int64, error) {
	result := r.db.Where("expires_at < ? OR attempts >= ?", now, maxAttempts).Delete(&model.EmailVerification{})
	if result.Error != nil {
		logger.Error("Failed to delete expired email verifications", result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
