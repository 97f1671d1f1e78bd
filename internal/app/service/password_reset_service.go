package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/repository"
	"github.com/autonear/autonear-backend/pkg/logger"
	"github.com/autonear/autonear-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	ErrResetTokenExpired = errors.New("reset token has expired")
	ErrResetTokenUsed    = errors.New("reset token has already been used")
)

const (
	ResetTokenExpiry = 1 * time.Hour
	resetTokenBytes  = 32
)

type PasswordResetService interface {
	RequestReset(email string) error
	ResetPassword(token, newPassword string) error
	PurgeExpired() (int64, error)
}

type passwordResetService struct {
	resetRepo repository.PasswordResetRepository
	userRepo  repository.UserRepository
	notifier  ResetNotifier
}

func NewPasswordResetService(
	resetRepo repository.PasswordResetRepository,
	userRepo repository.UserRepository,
	notifier ResetNotifier,
) PasswordResetService {
	return &passwordResetService{
		resetRepo: resetRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// RequestReset succeeds silently for unknown addresses.
func (s *passwordResetService) RequestReset(email string) error {
	email = model.NormalizeEmail(email)

	if _, err := s.userRepo.FindByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset requested for unknown email", logger.Fields{"email": email})
			return nil
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	reset := &model.PasswordReset{
		Email:     email,
		Token:     token,
		ExpiresAt: time.Now().Add(ResetTokenExpiry),
	}
	if err := s.resetRepo.Create(reset); err != nil {
		return err
	}

	return s.notifier.SendPasswordReset(email, token, reset.ExpiresAt)
}

func (s *passwordResetService) ResetPassword(token, newPassword string) error {
	if err := util.ValidatePassword(newPassword); err != nil {
		return err
	}

	reset, err := s.resetRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if reset.Used {
		return ErrResetTokenUsed
	}
	if time.Now().After(reset.ExpiresAt) {
		return ErrResetTokenExpired
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(reset.Email, hash); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	// a completed reset proves control of the mailbox
	if err := s.userRepo.MarkEmailVerified(reset.Email, time.Now()); err != nil {
		return err
	}

	if err := s.resetRepo.MarkAsUsed(reset.ID); err != nil {
		// the password has already changed; the purge job removes the token later
		logger.Error("Failed to mark reset token as used", err, logger.Fields{"reset_id": reset.ID})
	}

	logger.Info("Password reset completed", logger.Fields{"email": reset.Email})
	return nil
}

func (s *passwordResetService) PurgeExpired() (int64, error) {
	return s.resetRepo.DeleteExpired(time.Now())
}

func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
