package repository

import (
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	FindByID(id uint) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	Update(user *model.User) error
	UpdatePassword(email, passwordHash string) error
	MarkEmailVerified(email string, at time.Time) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	logger.Debug("Creating user in database", logger.Fields{
		"email": user.Email,
	})

	if err := r.db.Create(user).Error; err != nil {
		logger.Error("Failed to create user in database", err, logger.Fields{
			"email": user.Email,
		})
		return err
	}
	return nil
}

func (r *userRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", model.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *model.User) error {
	if err := r.db.Save(user).Error; err != nil {
		logger.Error("Failed to update user in database", err, logger.Fields{
			"user_id": user.ID,
		})
		return err
	}
	return nil
}

// UpdatePassword also bumps token_version so refresh tokens minted under
// the old password stop working.
func (r *userRepository) UpdatePassword(email, passwordHash string) error {
	result := r.db.Model(&model.User{}).
		Where("email = ?", model.NormalizeEmail(email)).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"token_version": gorm.Expr("token_version + ?", 1),
		})
	if result.Error != nil {
		logger.Error("Failed to update password", result.Error, logger.Fields{
			"email": email,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkEmailVerified is idempotent; an already verified address keeps its
// original timestamp.
func (r *userRepository) MarkEmailVerified(email string, at time.Time) error {
	email = model.NormalizeEmail(email)
	result := r.db.Model(&model.User{}).
		Where("email = ? AND email_verified = ?", email, false).
		Updates(map[string]interface{}{
			"email_verified":    true,
			"email_verified_at": at,
		})
	if result.Error != nil {
		logger.Error("Failed to mark email verified", result.Error, logger.Fields{
			"email": email,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
	}
	return nil
}
