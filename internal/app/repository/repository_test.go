package repository

import (
	"testing"
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.CleanupTestDB(conn) })
	return conn
}

func coord(v float64) *float64 { return &v }

func createShop(t *testing.T, repo ShopRepository, name, city string, rating float64) *model.Shop {
	t.Helper()
	shop := &model.Shop{Name: name, City: city, Province: model.ProvinceOf(city), Rating: rating, Address: name + " Street"}
	require.NoError(t, repo.Create(shop))
	return shop
}

func TestShopRepositoryFindAll(t *testing.T) {
	repo := NewShopRepository(setupRepositoryTest(t))

	createShop(t, repo, "Low", "Makati", 3.1)
	createShop(t, repo, "High", "Makati", 4.9)
	createShop(t, repo, "Elsewhere", "Pasig", 5.0)
	createShop(t, repo, "Prefix", "Makati City", 4.0)

	shops, err := repo.FindAll(ShopFilter{City: "Makati"})
	require.NoError(t, err)
	require.Len(t, shops, 2)
	assert.Equal(t, "High", shops[0].Name)
	assert.Equal(t, "Low", shops[1].Name)

	all, err := repo.FindAll(ShopFilter{})
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Elsewhere", all[0].Name)

	none, err := repo.FindAll(ShopFilter{City: "makati"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestShopRepositoryRejectsInvalidShop(t *testing.T) {
	repo := NewShopRepository(setupRepositoryTest(t))

	err := repo.Create(&model.Shop{Name: "Half", City: "Manila", Province: "Metro Manila", Latitude: coord(14.6)})
	assert.ErrorIs(t, err, model.ErrPartialCoordinates)

	err = repo.Create(&model.Shop{Name: "Too good", City: "Manila", Province: "Metro Manila", Rating: 7})
	assert.ErrorIs(t, err, model.ErrInvalidRating)
}

func TestShopRepositoryFindLikelyDuplicate(t *testing.T) {
	repo := NewShopRepository(setupRepositoryTest(t))
	require.NoError(t, repo.Create(&model.Shop{
		Name:     "Auto Quix - Masterson Ave",
		Address:  "Masterson Ave, Uptown",
		City:     "Cagayan de Oro",
		Province: "Misamis Oriental",
	}))

	dup, err := repo.FindLikelyDuplicate("auto quix - masterson ave", "maste")
	require.NoError(t, err)
	require.NotNil(t, dup)
	assert.Equal(t, "Auto Quix - Masterson Ave", dup.Name)

	dup, err = repo.FindLikelyDuplicate("Auto Quix - Masterson Ave", "Corra")
	require.NoError(t, err)
	assert.Nil(t, dup)

	dup, err = repo.FindLikelyDuplicate("Auto Quix", "Maste")
	require.NoError(t, err)
	assert.Nil(t, dup)
}

func TestShopRequestRepositoryTransitions(t *testing.T) {
	conn := setupRepositoryTest(t)
	repo := NewShopRequestRepository(conn)
	shop := createShop(t, NewShopRepository(conn), "Approved Shop", "Pasig", 0)

	req := &model.ShopRequest{
		ShopName:       "Approved Shop",
		OwnerName:      "Jun",
		ContactDetails: "0917 000 0000",
		Address:        "Ortigas Ave, Pasig",
		GoogleMapsLink: "https://maps.app.goo.gl/x",
	}
	require.NoError(t, repo.Create(req))

	stored, err := repo.FindByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShopRequestPending, stored.Status)

	now := time.Now()
	require.NoError(t, repo.MarkApproved(req.ID, shop.ID, "ops@autonear.ph", now))

	// terminal: a second transition touches no row
	assert.ErrorIs(t, repo.MarkRejected(req.ID, "late", "ops@autonear.ph", now), gorm.ErrRecordNotFound)

	stored, err = repo.FindByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ShopRequestApproved, stored.Status)
	require.NotNil(t, stored.ShopID)
	assert.Equal(t, shop.ID, *stored.ShopID)
	assert.Equal(t, "ops@autonear.ph", stored.ReviewedBy)

	pending, err := repo.FindAll(model.ShopRequestPending)
	require.NoError(t, err)
	assert.Empty(t, pending)

	all, err := repo.FindAll("")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestServiceRequestRepositoryDelete(t *testing.T) {
	conn := setupRepositoryTest(t)
	shop := createShop(t, NewShopRepository(conn), "KarrJackson", "Cagayan de Oro", 4.7)
	repo := NewServiceRequestRepository(conn)
	chats := NewChatRepository(conn)

	email := "driver@example.com"
	req := &model.ServiceRequest{ShopID: shop.ID, CustomerName: "Ana", CustomerPhone: "0917", CustomerEmail: &email}
	require.NoError(t, repo.Create(req))
	require.NoError(t, chats.Create(&model.ChatMessage{RequestID: req.ID, SenderRole: model.SenderCustomer, SenderEmail: email, Content: "Hello"}))

	stored, err := repo.FindByID(req.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ServiceRequestPending, stored.Status)
	require.NotNil(t, stored.Shop)
	assert.Equal(t, "KarrJackson", stored.Shop.Name)

	mine, err := repo.FindByCustomerEmail("Driver@Example.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, repo.Delete(req.ID))

	all, err := repo.FindAll()
	require.NoError(t, err)
	assert.Empty(t, all)

	mine, err = repo.FindByCustomerEmail(email)
	require.NoError(t, err)
	assert.Empty(t, mine)

	thread, err := chats.FindByRequestID(req.ID)
	require.NoError(t, err)
	assert.Empty(t, thread)

	assert.ErrorIs(t, repo.Delete(req.ID), gorm.ErrRecordNotFound)
}

func TestServiceRequestRepositoryUpdateStatus(t *testing.T) {
	conn := setupRepositoryTest(t)
	shop := createShop(t, NewShopRepository(conn), "Rapide", "Makati", 4.1)
	repo := NewServiceRequestRepository(conn)

	req := &model.ServiceRequest{ShopID: shop.ID, CustomerName: "Ben", CustomerPhone: "0918"}
	require.NoError(t, repo.Create(req))

	for _, status := range []model.ServiceRequestStatus{model.ServiceRequestCompleted, model.ServiceRequestPending, model.ServiceRequestOngoing} {
		require.NoError(t, repo.UpdateStatus(req.ID, status))
		stored, err := repo.FindByID(req.ID)
		require.NoError(t, err)
		assert.Equal(t, status, stored.Status)
	}

	assert.ErrorIs(t, repo.UpdateStatus(9999, model.ServiceRequestOngoing), gorm.ErrRecordNotFound)
}

func TestChatRepositoryOrdersAscending(t *testing.T) {
	conn := setupRepositoryTest(t)
	shop := createShop(t, NewShopRepository(conn), "HPI", "Cagayan de Oro", 4.9)
	req := &model.ServiceRequest{ShopID: shop.ID, CustomerName: "Cy", CustomerPhone: "0919"}
	require.NoError(t, NewServiceRequestRepository(conn).Create(req))
	repo := NewChatRepository(conn)

	base := time.Now().Add(-time.Hour)
	// inserted out of order on purpose
	for i, offset := range []time.Duration{3 * time.Minute, 1 * time.Minute, 2 * time.Minute} {
		require.NoError(t, repo.Create(&model.ChatMessage{
			RequestID:   req.ID,
			SenderRole:  model.SenderAdmin,
			SenderEmail: "ops@autonear.ph",
			Content:     []string{"third", "first", "second"}[i],
			CreatedAt:   base.Add(offset),
		}))
	}

	thread, err := repo.FindByRequestID(req.ID)
	require.NoError(t, err)
	require.Len(t, thread, 3)
	assert.Equal(t, "first", thread[0].Content)
	assert.Equal(t, "second", thread[1].Content)
	assert.Equal(t, "third", thread[2].Content)
}

func TestAdminGrantRepository(t *testing.T) {
	repo := NewAdminGrantRepository(setupRepositoryTest(t))

	require.NoError(t, repo.Create(&model.AdminGrant{Email: "  Staff@AutoNear.ph ", GrantedBy: "owner@autonear.ph"}))

	ok, err := repo.Exists("staff@autonear.ph")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Exists("STAFF@autonear.PH")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, repo.DeleteByEmail("Staff@autonear.ph"))
	ok, err = repo.Exists("staff@autonear.ph")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, repo.DeleteByEmail("nobody@autonear.ph"), gorm.ErrRecordNotFound)
}

func TestPasswordResetRepositoryDeleteExpired(t *testing.T) {
	repo := NewPasswordResetRepository(setupRepositoryTest(t))
	now := time.Now()

	require.NoError(t, repo.Create(&model.PasswordReset{Email: "a@example.com", Token: "live", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Create(&model.PasswordReset{Email: "b@example.com", Token: "stale", ExpiresAt: now.Add(-time.Hour)}))
	used := &model.PasswordReset{Email: "c@example.com", Token: "used", ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(used))
	require.NoError(t, repo.MarkAsUsed(used.ID))

	deleted, err := repo.DeleteExpired(now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.FindByToken("live")
	assert.NoError(t, err)
	_, err = repo.FindByToken("stale")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepositoryVerificationAndPassword(t *testing.T) {
	repo := NewUserRepository(setupRepositoryTest(t))
	require.NoError(t, repo.Create(&model.User{Email: "Ivy@Example.com", PasswordHash: "old", Name: "Ivy"}))

	first := time.Now().Add(-time.Hour)
	require.NoError(t, repo.MarkEmailVerified("ivy@example.com", first))
	require.NoError(t, repo.MarkEmailVerified("IVY@example.com", time.Now()))

	user, err := repo.FindByEmail("ivy@example.com")
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)
	require.NotNil(t, user.EmailVerifiedAt)
	assert.WithinDuration(t, first, *user.EmailVerifiedAt, time.Second)
	assert.Zero(t, user.TokenVersion)

	require.NoError(t, repo.UpdatePassword("ivy@example.com", "new"))
	require.NoError(t, repo.UpdatePassword("ivy@example.com", "newer"))
	user, err = repo.FindByEmail("ivy@example.com")
	require.NoError(t, err)
	assert.Equal(t, "newer", user.PasswordHash)
	assert.Equal(t, 2, user.TokenVersion)

	assert.ErrorIs(t, repo.MarkEmailVerified("nobody@example.com", time.Now()), gorm.ErrRecordNotFound)
	assert.ErrorIs(t, repo.UpdatePassword("nobody@example.com", "x"), gorm.ErrRecordNotFound)
}

func TestEmailVerificationRepository(t *testing.T) {
	repo := NewEmailVerificationRepository(setupRepositoryTest(t))
	now := time.Now()

	require.NoError(t, repo.Replace(&model.EmailVerification{Email: "jo@example.com", CodeHash: "first", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.Replace(&model.EmailVerification{Email: "JO@example.com", CodeHash: "second", ExpiresAt: now.Add(time.Hour)}))

	latest, err := repo.FindLatest("jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, "second", latest.CodeHash)

	require.NoError(t, repo.IncrementAttempts(latest.ID))
	require.NoError(t, repo.IncrementAttempts(latest.ID))
	latest, err = repo.FindLatest("jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, latest.Attempts)

	require.NoError(t, repo.Replace(&model.EmailVerification{Email: "stale@example.com", CodeHash: "x", ExpiresAt: now.Add(-time.Minute)}))

	deleted, err := repo.DeleteExpired(now, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.FindLatest("jo@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Replace(&model.EmailVerification{Email: "kit@example.com", CodeHash: "y", ExpiresAt: now.Add(time.Hour)}))
	require.NoError(t, repo.DeleteByEmail("kit@example.com"))
	_, err = repo.FindLatest("kit@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
