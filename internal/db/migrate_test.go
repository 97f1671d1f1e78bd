package db

import (
	"testing"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedShops(t *testing.T) {
	conn, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(conn)

	shops := InitialShops()
	inserted, err := SeedShops(conn, shops, false)
	require.NoError(t, err)
	assert.Equal(t, 13, inserted)

	// second run without reset leaves the directory alone
	inserted, err = SeedShops(conn, InitialShops(), false)
	require.NoError(t, err)
	assert.Equal(t, 0, inserted)

	var count int64
	require.NoError(t, conn.Model(&model.Shop{}).Count(&count).Error)
	assert.Equal(t, int64(13), count)

	var rapide model.Shop
	require.NoError(t, conn.Where("city = ?", "Makati").First(&rapide).Error)
	assert.Equal(t, "Rapide Auto Service - Pasong Tamo", rapide.Name)
	require.True(t, rapide.HasCoordinates())
	assert.InDelta(t, 14.5512, *rapide.Latitude, 1e-6)
}

func TestSeedShopsReset(t *testing.T) {
	conn, err := SetupTestDB()
	require.NoError(t, err)
	defer CleanupTestDB(conn)

	_, err = SeedShops(conn, InitialShops(), false)
	require.NoError(t, err)

	var first model.Shop
	require.NoError(t, conn.First(&first).Error)
	require.NoError(t, conn.Create(&model.ServiceRequest{ShopID: first.ID, CustomerName: "Ana", CustomerPhone: "0917"}).Error)

	replacement := []model.Shop{{Name: "Only Shop", City: "Pasig", Province: "Metro Manila"}}
	inserted, err := SeedShops(conn, replacement, true)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	var shops, requests int64
	require.NoError(t, conn.Model(&model.Shop{}).Count(&shops).Error)
	require.NoError(t, conn.Model(&model.ServiceRequest{}).Count(&requests).Error)
	assert.Equal(t, int64(1), shops)
	assert.Equal(t, int64(0), requests)
}
