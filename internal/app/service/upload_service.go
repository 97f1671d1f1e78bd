package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/storage"
	"github.com/autonear/autonear-backend/pkg/logger"
	"github.com/google/uuid"
)

var (
	ErrUnsupportedImageType = errors.New("only JPEG, PNG or WEBP images are allowed")
	ErrForeignImageURL      = errors.New("image URL does not belong to the upload bucket")
	ErrStorageUnavailable   = errors.New("image storage is not configured")
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type UploadService interface {
	PresignShopImage(ctx context.Context, shopID uint, filename, contentType string) (*storage.PresignedUpload, error)
	AttachShopImage(shopID uint, imageURL string) (*model.Shop, error)
}

type uploadService struct {
	storage storage.ObjectStorage
	shops   ShopService
}

// NewUploadService accepts a nil storage; every call then reports
// ErrStorageUnavailable.
func NewUploadService(store storage.ObjectStorage, shops ShopService) UploadService {
	return &uploadService{storage: store, shops: shops}
}

func (s *uploadService) PresignShopImage(ctx context.Context, shopID uint, filename, contentType string) (*storage.PresignedUpload, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}

	defaultExt, ok := allowedImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, ErrUnsupportedImageType
	}
	if _, err := s.shops.GetShop(shopID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = defaultExt
	}
	key := fmt.Sprintf("shops/%d/%s%s", shopID, uuid.NewString(), ext)

	upload, err := s.storage.PresignUpload(ctx, key, contentType)
	if err != nil {
		logger.Error("Failed to presign shop image upload", err, logger.Fields{
			"shop_id": shopID,
		})
		return nil, err
	}
	return upload, nil
}

func (s *uploadService) AttachShopImage(shopID uint, imageURL string) (*model.Shop, error) {
	if s.storage == nil {
		return nil, ErrStorageUnavailable
	}
	if !strings.HasPrefix(imageURL, s.storage.PublicURL(fmt.Sprintf("shops/%d/", shopID))) {
		return nil, ErrForeignImageURL
	}
	return s.shops.UpdateImage(shopID, imageURL)
}
