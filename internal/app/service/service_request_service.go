package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/repository"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrServiceRequestNotFound = errors.New("service request not found")
	ErrInvalidServiceStatus   = errors.New("invalid service request status")
)

type SubmitServiceRequestInput struct {
	ShopID        uint
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	VehicleInfo   string
	ServiceType   string
	Message       string
}

type ServiceRequestService interface {
	Submit(input SubmitServiceRequestInput) (*model.ServiceRequest, error)
	ListAll() ([]model.ServiceRequest, error)
	ListByCustomer(email string) ([]model.ServiceRequest, error)
	Get(id uint) (*model.ServiceRequest, error)
	UpdateStatus(id uint, status model.ServiceRequestStatus) (*model.ServiceRequest, error)
	Delete(id uint) error
}

type serviceRequestService struct {
	requestRepo repository.ServiceRequestRepository
	shopRepo    repository.ShopRepository
}

func NewServiceRequestService(
	requestRepo repository.ServiceRequestRepository,
	shopRepo repository.ShopRepository,
) ServiceRequestService {
	return &serviceRequestService{
		requestRepo: requestRepo,
		shopRepo:    shopRepo,
	}
}

func (s *serviceRequestService) Submit(input SubmitServiceRequestInput) (*model.ServiceRequest, error) {
	name := strings.TrimSpace(input.CustomerName)
	phone := strings.TrimSpace(input.CustomerPhone)
	if input.ShopID == 0 || name == "" || phone == "" {
		logger.Warn("Service request missing required fields", logger.Fields{
			"shop_id": input.ShopID,
		})
		return nil, newValidationError(MsgMissingRequiredFields)
	}

	if _, err := s.shopRepo.FindByID(input.ShopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, fmt.Errorf("look up shop: %w", err)
	}

	req := &model.ServiceRequest{
		ShopID:        input.ShopID,
		CustomerName:  name,
		CustomerPhone: phone,
		CustomerEmail: optional(model.NormalizeEmail(input.CustomerEmail)),
		VehicleInfo:   optional(input.VehicleInfo),
		ServiceType:   optional(input.ServiceType),
		Message:       optional(input.Message),
	}
	if err := s.requestRepo.Create(req); err != nil {
		return nil, fmt.Errorf("store service request: %w", err)
	}

	logger.Info("Service request submitted", logger.Fields{
		"service_request_id": req.ID,
		"shop_id":            req.ShopID,
	})
	return req, nil
}

func (s *serviceRequestService) ListAll() ([]model.ServiceRequest, error) {
	return s.requestRepo.FindAll()
}

func (s *serviceRequestService) ListByCustomer(email string) ([]model.ServiceRequest, error) {
	if strings.TrimSpace(email) == "" {
		return []model.ServiceRequest{}, nil
	}
	return s.requestRepo.FindByCustomerEmail(email)
}

func (s *serviceRequestService) Get(id uint) (*model.ServiceRequest, error) {
	req, err := s.requestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

// UpdateStatus accepts any known status regardless of the current one.
func (s *serviceRequestService) UpdateStatus(id uint, status model.ServiceRequestStatus) (*model.ServiceRequest, error) {
	if !status.IsValid() {
		return nil, ErrInvalidServiceStatus
	}

	if err := s.requestRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceRequestNotFound
		}
		return nil, err
	}

	logger.Info("Service request status updated", logger.Fields{
		"service_request_id": id,
		"status":             status,
	})
	return s.Get(id)
}

func (s *serviceRequestService) Delete(id uint) error {
	if err := s.requestRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrServiceRequestNotFound
		}
		return err
	}

	logger.Info("Service request deleted", logger.Fields{
		"service_request_id": id,
	})
	return nil
}

// optional maps blank input to NULL.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
