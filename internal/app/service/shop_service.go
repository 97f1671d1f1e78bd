package service

import (
	"errors"
	"sort"
	"strings"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/repository"
	"github.com/autonear/autonear-backend/pkg/logger"
	"github.com/autonear/autonear-backend/pkg/util"
	"gorm.io/gorm"
)

var ErrShopNotFound = errors.New("shop not found")

// PreferredRadiusKm is the distance within which nearby shops are preferred
// over the rest of the directory.
const PreferredRadiusKm = 10.0

// RankedShop is a shop with its distance from the caller, when known.
type RankedShop struct {
	model.Shop
	DistanceKm *float64 `json:"distance_km"`
}

type ShopQuery struct {
	City    string
	Service string
	Search  string
	Origin  *util.Point
}

type ShopService interface {
	ListShops(city, service string) ([]model.Shop, error)
	SearchShops(query ShopQuery) ([]RankedShop, error)
	GetShop(id uint) (*model.Shop, error)
	UpdateImage(id uint, imageURL string) (*model.Shop, error)
}

type shopService struct {
	shopRepo repository.ShopRepository
}

func NewShopService(shopRepo repository.ShopRepository) ShopService {
	return &shopService{shopRepo: shopRepo}
}

// ListShops filters by exact city in the store and by service substring in
// memory. Results keep the store's rating order.
func (s *shopService) ListShops(city, service string) ([]model.Shop, error) {
	shops, err := s.shopRepo.FindAll(repository.ShopFilter{City: strings.TrimSpace(city)})
	if err != nil {
		logger.Error("Failed to list shops", err, logger.Fields{
			"city":    city,
			"service": service,
		})
		return nil, err
	}

	service = strings.ToLower(strings.TrimSpace(service))
	if service == "" {
		return shops, nil
	}

	filtered := make([]model.Shop, 0, len(shops))
	for _, shop := range shops {
		if strings.Contains(strings.ToLower(shop.Services), service) {
			filtered = append(filtered, shop)
		}
	}

	logger.Debug("Shops filtered by service", logger.Fields{
		"service": service,
		"before":  len(shops),
		"after":   len(filtered),
	})
	return filtered, nil
}

func (s *shopService) SearchShops(query ShopQuery) ([]RankedShop, error) {
	shops, err := s.ListShops(query.City, query.Service)
	if err != nil {
		return nil, err
	}
	return RankShops(shops, query.Origin, query.Search), nil
}

func (s *shopService) GetShop(id uint) (*model.Shop, error) {
	shop, err := s.shopRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShopNotFound
		}
		return nil, err
	}
	return shop, nil
}

func (s *shopService) UpdateImage(id uint, imageURL string) (*model.Shop, error) {
	shop, err := s.GetShop(id)
	if err != nil {
		return nil, err
	}

	shop.ImageURL = imageURL
	if err := s.shopRepo.Update(shop); err != nil {
		return nil, err
	}

	logger.Info("Shop image updated", logger.Fields{
		"shop_id": id,
	})
	return shop, nil
}

// RankShops applies search, distance and radius preference to a listing.
//
// A distance is attached only when origin and the shop's coordinates are both
// known. Two shops with distances sort nearest first; any other pair sorts by
// rating, highest first. With an origin, shops within PreferredRadiusKm are
// returned alone unless there are none, in which case the whole sorted list
// is returned.
func RankShops(shops []model.Shop, origin *util.Point, search string) []RankedShop {
	search = strings.ToLower(strings.TrimSpace(search))

	ranked := make([]RankedShop, 0, len(shops))
	for _, shop := range shops {
		if search != "" && !matchesSearch(&shop, search) {
			continue
		}
		r := RankedShop{Shop: shop}
		if origin != nil && shop.HasCoordinates() {
			d := origin.DistanceTo(util.Point{Lat: *shop.Latitude, Lng: *shop.Longitude})
			r.DistanceKm = &d
		}
		ranked = append(ranked, r)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.DistanceKm != nil && b.DistanceKm != nil {
			return *a.DistanceKm < *b.DistanceKm
		}
		return a.Rating > b.Rating
	})

	if origin == nil {
		return ranked
	}

	nearby := make([]RankedShop, 0, len(ranked))
	for _, r := range ranked {
		if r.DistanceKm != nil && *r.DistanceKm <= PreferredRadiusKm {
			nearby = append(nearby, r)
		}
	}
	if len(nearby) == 0 {
		return ranked
	}
	// every nearby shop has a distance; order on that alone
	sort.SliceStable(nearby, func(i, j int) bool {
		return *nearby[i].DistanceKm < *nearby[j].DistanceKm
	})
	return nearby
}

func matchesSearch(shop *model.Shop, search string) bool {
	return strings.Contains(strings.ToLower(shop.Name), search) ||
		strings.Contains(strings.ToLower(shop.Services), search) ||
		strings.Contains(strings.ToLower(shop.City), search)
}
