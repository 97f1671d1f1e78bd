package service

import (
	"errors"
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/repository"
	"github.com/autonear/autonear-backend/pkg/logger"
	"github.com/autonear/autonear-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrInvalidVerificationCode = errors.New("invalid or expired verification code")

const (
	VerificationCodeExpiry     = 15 * time.Minute
	VerificationResendInterval = time.Minute
	MaxVerificationAttempts    = 5
)

type EmailVerificationService interface {
	SendCode(email string) error
	Verify(email, code string) (*model.User, error)
	PurgeExpired() (int64, error)
}

type emailVerificationService struct {
	verificationRepo repository.EmailVerificationRepository
	userRepo         repository.UserRepository
	notifier         VerificationNotifier
	now              func() time.Time
}

func NewEmailVerificationService(
	verificationRepo repository.EmailVerificationRepository,
	userRepo repository.UserRepository,
	notifier VerificationNotifier,
) EmailVerificationService {
	return &emailVerificationService{
		verificationRepo: verificationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
		now:              time.Now,
	}
}

// SendCode mails a fresh code. Unknown and already verified addresses, and
// requests inside the resend interval, succeed without sending anything.
func (s *emailVerificationService) SendCode(email string) error {
	email = model.NormalizeEmail(email)

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Verification requested for unknown email", logger.Fields{"email": email})
			return nil
		}
		return err
	}
	if user.EmailVerified {
		return nil
	}

	now := s.now()
	if latest, err := s.verificationRepo.FindLatest(email); err == nil {
		if now.Sub(latest.CreatedAt) < VerificationResendInterval {
			logger.Debug("Verification code resend throttled", logger.Fields{"email": email})
			return nil
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	code, err := util.GenerateVerificationCode()
	if err != nil {
		return err
	}

	verification := &model.EmailVerification{
		Email:     email,
		CodeHash:  util.HashVerificationCode(code),
		ExpiresAt: now.Add(VerificationCodeExpiry),
		CreatedAt: now,
	}
	if err := s.verificationRepo.Replace(verification); err != nil {
		return err
	}

	return s.notifier.SendVerificationCode(email, code, verification.ExpiresAt)
}

// Verify marks the account verified when code matches the live code for
// email. Every failure looks the same to the caller.
func (s *emailVerificationService) Verify(email, code string) (*model.User, error) {
	email = model.NormalizeEmail(email)

	verification, err := s.verificationRepo.FindLatest(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVerificationCode
		}
		return nil, err
	}

	now := s.now()
	if !verification.Usable(now, MaxVerificationAttempts) {
		return nil, ErrInvalidVerificationCode
	}
	if !util.VerificationCodeMatches(verification.CodeHash, code) {
		if err := s.verificationRepo.IncrementAttempts(verification.ID); err != nil {
			return nil, err
		}
		logger.Warn("Wrong verification code", logger.Fields{
			"email":    email,
			"attempts": verification.Attempts + 1,
		})
		return nil, ErrInvalidVerificationCode
	}

	if err := s.userRepo.MarkEmailVerified(email, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidVerificationCode
		}
		return nil, err
	}
	if err := s.verificationRepo.DeleteByEmail(email); err != nil {
		logger.Error("Failed to clear verification codes", err, logger.Fields{"email": email})
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	logger.Info("Email verified", logger.Fields{"user_id": user.ID})
	return user, nil
}

func (s *emailVerificationService) PurgeExpired() (int64, error) {
	return s.verificationRepo.DeleteExpired(s.now(), MaxVerificationAttempts)
}
