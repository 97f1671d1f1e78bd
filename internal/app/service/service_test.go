package service

import (
	"sync"
	"testing"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/repository"
	"github.com/autonear/autonear-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServiceTest(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CleanupTestDB(conn) })
	return conn
}

func coord(v float64) *float64 { return &v }

func seedShop(t *testing.T, conn *gorm.DB, shop model.Shop) *model.Shop {
	t.Helper()
	if shop.Province == "" {
		shop.Province = model.ProvinceOf(shop.City)
	}
	require.NoError(t, repository.NewShopRepository(conn).Create(&shop))
	return &shop
}

type recordingPublisher struct {
	mu       sync.Mutex
	messages []model.ChatMessage
}

func (p *recordingPublisher) PublishChatMessage(msg *model.ChatMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, *msg)
}

func (p *recordingPublisher) published() []model.ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]model.ChatMessage(nil), p.messages...)
}
