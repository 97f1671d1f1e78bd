package controller

import (
	"errors"
	"net/http"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/service"
	apperrors "github.com/autonear/autonear-backend/internal/errors"
	"github.com/autonear/autonear-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ShopController struct {
	shopService service.ShopService
}

func NewShopController(shopService service.ShopService) *ShopController {
	return &ShopController{shopService: shopService}
}

// ListShopsRaw returns the filtered directory as a bare JSON array.
// GET /api/shops?city=&service=
func (ctrl *ShopController) ListShopsRaw(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	shops, err := ctrl.shopService.ListShops(c.Query("city"), c.Query("service"))
	if err != nil {
		log.Error("Failed to list shops", err)
		apperrors.InternalError(c, "Failed to fetch shops")
		return
	}

	c.JSON(http.StatusOK, shops)
}

// ListShops ranks the directory around an optional origin.
// GET /api/v1/shops?city=&service=&lat=&lng=&q=
func (ctrl *ShopController) ListShops(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	query := service.ShopQuery{
		City:    c.Query("city"),
		Service: c.Query("service"),
		Search:  c.Query("q"),
		Origin:  parseOrigin(c),
	}

	shops, err := ctrl.shopService.SearchShops(query)
	if err != nil {
		log.Error("Failed to search shops", err)
		apperrors.InternalError(c, "Failed to fetch shops")
		return
	}

	log.Info("Shops listed", map[string]interface{}{
		"count":      len(shops),
		"has_origin": query.Origin != nil,
	})

	c.JSON(http.StatusOK, gin.H{
		"shops": shops,
		"count": len(shops),
	})
}

// GET /api/v1/shops/:id
func (ctrl *ShopController) GetShop(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	shop, err := ctrl.shopService.GetShop(id)
	if err != nil {
		if errors.Is(err, service.ErrShopNotFound) {
			apperrors.NotFound(c, apperrors.ShopNotFound, "Shop not found")
			return
		}
		log.Error("Failed to fetch shop", err, map[string]interface{}{
			"shop_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch shop")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop": shop,
	})
}

// GetMeta lists the filter vocabulary.
// GET /api/v1/meta
func (ctrl *ShopController) GetMeta(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cities":        model.Cities,
		"service_types": model.ServiceTypes,
	})
}
