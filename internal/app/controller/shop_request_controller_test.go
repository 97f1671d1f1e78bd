package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/service"
	apperrors "github.com/autonear/autonear-backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubShopRequestService struct {
	service.ShopRequestService
	err      error
	reviewer string
	reason   string
}

func (s *stubShopRequestService) Submit(input service.SubmitShopRequestInput) (*model.ShopRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &model.ShopRequest{ID: 1, ShopName: input.ShopName}, nil
}

func (s *stubShopRequestService) List(status model.ShopRequestStatus) ([]model.ShopRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []model.ShopRequest{}, nil
}

func (s *stubShopRequestService) Approve(id uint, reviewer string) (*model.ShopRequest, *model.Shop, error) {
	s.reviewer = reviewer
	if s.err != nil {
		return nil, nil, s.err
	}
	return &model.ShopRequest{ID: id, Status: model.ShopRequestApproved}, &model.Shop{ID: 10, Name: "Tagoloan Tire Center"}, nil
}

func (s *stubShopRequestService) Reject(id uint, reason, reviewer string) (*model.ShopRequest, error) {
	s.reviewer, s.reason = reviewer, reason
	if s.err != nil {
		return nil, s.err
	}
	return &model.ShopRequest{ID: id, Status: model.ShopRequestRejected}, nil
}

func TestShopRequestReviewErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "Unknown request", err: service.ErrShopRequestNotFound, status: http.StatusNotFound, code: apperrors.ShopRequestNotFound},
		{name: "Already reviewed", err: service.ErrShopRequestClosed, status: http.StatusConflict, code: apperrors.ShopRequestClosed},
		{name: "Directory insert failed", err: fmt.Errorf("approve: %w", service.ErrShopInsertFailed), status: http.StatusInternalServerError, code: apperrors.ShopInsertFailed},
		{name: "Unexpected", err: assert.AnError, status: http.StatusInternalServerError, code: apperrors.InternalServerError},
	}

	for _, tt := range tests {
		for _, action := range []string{"approve", "reject"} {
			t.Run(tt.name+"/"+action, func(t *testing.T) {
				ctrl := NewShopRequestController(&stubShopRequestService{err: tt.err})
				engine := newTestEngine()
				engine.POST("/shop-requests/:id/approve", signedIn(1, "admin@autonear.ph", true), ctrl.Approve)
				engine.POST("/shop-requests/:id/reject", signedIn(1, "admin@autonear.ph", true), ctrl.Reject)

				w := perform(t, engine, http.MethodPost, "/shop-requests/5/"+action, nil)
				assert.Equal(t, tt.status, w.Code)
				var resp apperrors.ErrorResponse
				decodeBody(t, w, &resp)
				assert.Equal(t, tt.code, resp.Error)
			})
		}
	}
}

func TestShopRequestReview(t *testing.T) {
	requests := &stubShopRequestService{}
	ctrl := NewShopRequestController(requests)
	engine := newTestEngine()
	engine.POST("/shop-requests/:id/approve", signedIn(1, "admin@autonear.ph", true), ctrl.Approve)
	engine.POST("/shop-requests/:id/reject", signedIn(1, "admin@autonear.ph", true), ctrl.Reject)

	w := perform(t, engine, http.MethodPost, "/shop-requests/5/approve", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var approved struct {
		Success     bool              `json:"success"`
		ShopRequest model.ShopRequest `json:"shop_request"`
		Shop        model.Shop        `json:"shop"`
	}
	decodeBody(t, w, &approved)
	assert.True(t, approved.Success)
	assert.Equal(t, uint(10), approved.Shop.ID)
	assert.Equal(t, "admin@autonear.ph", requests.reviewer)

	// a missing body falls back to the default reason
	w = perform(t, engine, http.MethodPost, "/shop-requests/5/reject", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, requests.reason)

	w = perform(t, engine, http.MethodPost, "/shop-requests/5/reject", map[string]string{"reason": "Duplicate"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Duplicate", requests.reason)

	w = perform(t, engine, http.MethodPost, "/shop-requests/nope/approve", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShopRequestSubmitAndList(t *testing.T) {
	t.Run("Submit validation", func(t *testing.T) {
		engine := newTestEngine()
		engine.POST("/shop-requests", NewShopRequestController(&stubShopRequestService{
			err: &service.ValidationError{Message: service.MsgInvalidMapsLink},
		}).Submit)

		w := perform(t, engine, http.MethodPost, "/shop-requests", map[string]string{"shop_name": "X"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp apperrors.FormResponse
		decodeBody(t, w, &resp)
		assert.False(t, resp.Success)
		assert.Equal(t, service.MsgInvalidMapsLink, resp.Error)
	})

	t.Run("Submit malformed", func(t *testing.T) {
		engine := newTestEngine()
		engine.POST("/shop-requests", NewShopRequestController(&stubShopRequestService{}).Submit)

		w := perform(t, engine, http.MethodPost, "/shop-requests", "not json")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp apperrors.FormResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, service.MsgMissingFields, resp.Error)
	})

	t.Run("List with unknown status", func(t *testing.T) {
		engine := newTestEngine()
		engine.GET("/shop-requests", NewShopRequestController(&stubShopRequestService{err: service.ErrInvalidRequestState}).List)

		w := perform(t, engine, http.MethodGet, "/shop-requests?status=archived", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp apperrors.ErrorResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, apperrors.ValidationInvalidInput, resp.Error)
	})
}
