package service

import (
	"errors"
	"net/mail"
	"sort"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/repository"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrGrantExists     = errors.New("email already has admin access")
	ErrGrantNotFound   = errors.New("admin grant not found")
	ErrConfiguredAdmin = errors.New("configured administrators cannot be revoked")
)

// AccessService decides who holds administrative capability: addresses in
// the configured allow-list plus any address granted at runtime. Matching is
// case-insensitive.
type AccessService interface {
	IsAdmin(email string) (bool, error)
	ConfiguredAdmins() []string
	ListGrants() ([]model.AdminGrant, error)
	Grant(email, grantedBy string) (*model.AdminGrant, error)
	Revoke(email string) error
}

type accessService struct {
	configured map[string]struct{}
	grantRepo  repository.AdminGrantRepository
}

func NewAccessService(configured []string, grantRepo repository.AdminGrantRepository) AccessService {
	set := make(map[string]struct{}, len(configured))
	for _, email := range configured {
		if email = model.NormalizeEmail(email); email != "" {
			set[email] = struct{}{}
		}
	}
	return &accessService{configured: set, grantRepo: grantRepo}
}

func (s *accessService) IsAdmin(email string) (bool, error) {
	email = model.NormalizeEmail(email)
	if email == "" {
		return false, nil
	}
	if _, ok := s.configured[email]; ok {
		return true, nil
	}
	return s.grantRepo.Exists(email)
}

func (s *accessService) ConfiguredAdmins() []string {
	emails := make([]string, 0, len(s.configured))
	for email := range s.configured {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	return emails
}

func (s *accessService) ListGrants() ([]model.AdminGrant, error) {
	return s.grantRepo.FindAll()
}

func (s *accessService) Grant(email, grantedBy string) (*model.AdminGrant, error) {
	email = model.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return nil, ErrInvalidEmail
	}

	already, err := s.IsAdmin(email)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, ErrGrantExists
	}

	grant := &model.AdminGrant{Email: email, GrantedBy: model.NormalizeEmail(grantedBy)}
	if err := s.grantRepo.Create(grant); err != nil {
		return nil, err
	}
	return grant, nil
}

func (s *accessService) Revoke(email string) error {
	email = model.NormalizeEmail(email)
	if _, ok := s.configured[email]; ok {
		return ErrConfiguredAdmin
	}

	if err := s.grantRepo.DeleteByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGrantNotFound
		}
		return err
	}

	logger.Info("Admin grant revoked", logger.Fields{"email": email})
	return nil
}
