package controller

import (
	"errors"
	"net/http"

	"github.com/autonear/autonear-backend/internal/app/service"
	apperrors "github.com/autonear/autonear-backend/internal/errors"
	"github.com/autonear/autonear-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type UploadController struct {
	uploadService service.UploadService
}

func NewUploadController(uploadService service.UploadService) *UploadController {
	return &UploadController{
		uploadService: uploadService,
	}
}

type PresignShopImageRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"content_type" binding:"required"`
}

type AttachShopImageRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
}

// PresignShopImage returns a short-lived PUT URL for a shop photo.
// POST /api/v1/admin/shops/:id/image/presign
func (ctrl *UploadController) PresignShopImage(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shopID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req PresignShopImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid presigned URL request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "filename and content_type are required")
		return
	}

	upload, err := ctrl.uploadService.PresignShopImage(c.Request.Context(), shopID, req.Filename, req.ContentType)
	if err != nil {
		ctrl.respondUploadError(c, err)
		return
	}

	log.Info("Presigned URL generated", map[string]interface{}{
		"shop_id": shopID,
		"key":     upload.Key,
	})

	c.JSON(http.StatusOK, upload)
}

// AttachShopImage points the shop at an object uploaded through a presigned URL.
// PUT /api/v1/admin/shops/:id/image
func (ctrl *UploadController) AttachShopImage(c *gin.Context) {
	shopID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req AttachShopImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "image_url is required")
		return
	}

	shop, err := ctrl.uploadService.AttachShopImage(shopID, req.ImageURL)
	if err != nil {
		ctrl.respondUploadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"shop": shop})
}

func (ctrl *UploadController) respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrShopNotFound):
		apperrors.NotFound(c, apperrors.ShopNotFound, "Shop not found.")
	case errors.Is(err, service.ErrUnsupportedImageType):
		apperrors.BadRequest(c, apperrors.UploadInvalidFileType, "Only JPEG, PNG or WEBP images are allowed")
	case errors.Is(err, service.ErrForeignImageURL):
		apperrors.BadRequest(c, apperrors.UploadForeignURL, "Image must be uploaded through a presigned URL")
	case errors.Is(err, service.ErrStorageUnavailable):
		apperrors.RespondWithError(c, http.StatusServiceUnavailable, apperrors.UploadUnavailable, "Image uploads are not configured")
	default:
		middleware.GetLoggerFromContext(c).Error("Upload operation failed", err)
		apperrors.RespondWithError(c, http.StatusInternalServerError, apperrors.UploadFailed, "Failed to prepare upload")
	}
}
