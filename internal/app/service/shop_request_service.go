package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/policy"
	"github.com/autonear/autonear-backend/internal/app/repository"
	"github.com/autonear/autonear-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrShopRequestNotFound = errors.New("shop request not found")
	ErrShopRequestClosed   = errors.New("shop request has already been reviewed")
	ErrShopInsertFailed    = errors.New("failed to add shop to database")
	ErrShopRequestUpdate   = errors.New("failed to update request status")
	ErrInvalidRequestState = errors.New("invalid shop request status")
)

type SubmitShopRequestInput struct {
	ShopName       string
	OwnerName      string
	ContactDetails string
	Address        string
	GoogleMapsLink string
}

type ShopRequestService interface {
	Submit(input SubmitShopRequestInput) (*model.ShopRequest, error)
	List(status model.ShopRequestStatus) ([]model.ShopRequest, error)
	Get(id uint) (*model.ShopRequest, error)
	Approve(id uint, reviewer string) (*model.ShopRequest, *model.Shop, error)
	Reject(id uint, reason, reviewer string) (*model.ShopRequest, error)
}

type shopRequestService struct {
	db          *gorm.DB
	requestRepo repository.ShopRequestRepository
	shopRepo    repository.ShopRepository
	now         func() time.Time
}

func NewShopRequestService(
	db *gorm.DB,
	requestRepo repository.ShopRequestRepository,
	shopRepo repository.ShopRepository,
) ShopRequestService {
	return &shopRequestService{
		db:          db,
		requestRepo: requestRepo,
		shopRepo:    shopRepo,
		now:         time.Now,
	}
}

func (s *shopRequestService) Submit(input SubmitShopRequestInput) (*model.ShopRequest, error) {
	req := &model.ShopRequest{
		ShopName:       strings.TrimSpace(input.ShopName),
		OwnerName:      strings.TrimSpace(input.OwnerName),
		ContactDetails: strings.TrimSpace(input.ContactDetails),
		Address:        strings.TrimSpace(input.Address),
		GoogleMapsLink: strings.TrimSpace(input.GoogleMapsLink),
		Status:         model.ShopRequestPending,
	}

	if req.ShopName == "" || req.OwnerName == "" || req.ContactDetails == "" ||
		req.Address == "" || req.GoogleMapsLink == "" {
		return nil, newValidationError(MsgMissingFields)
	}

	if !policy.IsMapsLink(req.GoogleMapsLink) {
		logger.Warn("Shop request rejected: not a maps link", logger.Fields{
			"shop_name": req.ShopName,
		})
		return nil, newValidationError(MsgInvalidMapsLink)
	}

	dup, err := s.shopRepo.FindLikelyDuplicate(req.ShopName, policy.AddressPrefix(req.Address))
	if err != nil {
		return nil, fmt.Errorf("duplicate check: %w", err)
	}
	if dup != nil {
		logger.Info("Shop request matches an existing listing", logger.Fields{
			"shop_name": req.ShopName,
			"shop_id":   dup.ID,
		})
		return nil, newValidationError(MsgDuplicateShop)
	}

	if err := s.requestRepo.Create(req); err != nil {
		return nil, fmt.Errorf("store shop request: %w", err)
	}

	logger.Info("Shop request submitted", logger.Fields{
		"shop_request_id": req.ID,
		"shop_name":       req.ShopName,
	})
	return req, nil
}

func (s *shopRequestService) List(status model.ShopRequestStatus) ([]model.ShopRequest, error) {
	if status != "" && !status.IsValid() {
		return nil, ErrInvalidRequestState
	}
	return s.requestRepo.FindAll(status)
}

func (s *shopRequestService) Get(id uint) (*model.ShopRequest, error) {
	req, err := s.requestRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopRequestNotFound
		}
		return nil, err
	}
	return req, nil
}

// Approve creates the shop and closes the request in one transaction.
func (s *shopRequestService) Approve(id uint, reviewer string) (*model.ShopRequest, *model.Shop, error) {
	req, err := s.pending(id)
	if err != nil {
		return nil, nil, err
	}

	loc := policy.InferCity(req.Address)
	shop := &model.Shop{
		Name:        req.ShopName,
		Address:     req.Address,
		City:        loc.City,
		Province:    loc.Province,
		IsVerified:  true,
		Rating:      0,
		ReviewCount: 0,
	}
	reviewedAt := s.now()

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.shopRepo.WithTx(tx).Create(shop); err != nil {
			return fmt.Errorf("%w: %v", ErrShopInsertFailed, err)
		}
		if err := s.requestRepo.WithTx(tx).MarkApproved(req.ID, shop.ID, reviewer, reviewedAt); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// reviewed concurrently
				return ErrShopRequestClosed
			}
			return fmt.Errorf("%w: %v", ErrShopRequestUpdate, err)
		}
		return nil
	})
	if err != nil {
		logger.Error("Shop request approval rolled back", err, logger.Fields{
			"shop_request_id": id,
			"reviewer":        reviewer,
		})
		return nil, nil, err
	}

	logger.Info("Shop request approved", logger.Fields{
		"shop_request_id": id,
		"shop_id":         shop.ID,
		"city":            loc.City,
		"city_inferred":   loc.Inferred,
		"reviewer":        reviewer,
	})

	req.Status = model.ShopRequestApproved
	req.ShopID = &shop.ID
	req.ReviewedBy = reviewer
	req.ReviewedAt = &reviewedAt
	return req, shop, nil
}

func (s *shopRequestService) Reject(id uint, reason, reviewer string) (*model.ShopRequest, error) {
	req, err := s.pending(id)
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = model.DefaultRejectionReason
	}
	reviewedAt := s.now()

	if err := s.requestRepo.MarkRejected(req.ID, reason, reviewer, reviewedAt); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopRequestClosed
		}
		return nil, fmt.Errorf("%w: %v", ErrShopRequestUpdate, err)
	}

	logger.Info("Shop request rejected", logger.Fields{
		"shop_request_id": id,
		"reviewer":        reviewer,
	})

	req.Status = model.ShopRequestRejected
	req.RejectionReason = &reason
	req.ReviewedBy = reviewer
	req.ReviewedAt = &reviewedAt
	return req, nil
}

func (s *shopRequestService) pending(id uint) (*model.ShopRequest, error) {
	req, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !req.IsPending() {
		logger.Warn("Shop request already reviewed", logger.Fields{
			"shop_request_id": id,
			"status":          req.Status,
		})
		return nil, ErrShopRequestClosed
	}
	return req, nil
}
