package controller

import (
	"net/http"
	"testing"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/service"
	apperrors "github.com/autonear/autonear-backend/internal/errors"
	"github.com/autonear/autonear-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	service.AuthService
	registerErr error
	issuedFor   *model.User
}

func (s *stubAuthService) Register(email, password, name, phone string) (*service.AuthResult, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &service.AuthResult{User: &model.User{ID: 7, Email: email, Name: name}}, nil
}

func (s *stubAuthService) IssueTokens(user *model.User, redirectTo string) (*service.AuthResult, error) {
	s.issuedFor = user
	return &service.AuthResult{
		User:       user,
		Tokens:     &util.TokenPair{AccessToken: "access", RefreshToken: "refresh"},
		RedirectTo: redirectTo,
	}, nil
}

type stubVerificationService struct {
	service.EmailVerificationService
	sent      []string
	sendErr   error
	verifyErr error
}

func (s *stubVerificationService) SendCode(email string) error {
	s.sent = append(s.sent, email)
	return s.sendErr
}

func (s *stubVerificationService) Verify(email, code string) (*model.User, error) {
	if s.verifyErr != nil {
		return nil, s.verifyErr
	}
	return &model.User{ID: 7, Email: email, EmailVerified: true}, nil
}

func newAuthTestEngine(auth *stubAuthService, verification *stubVerificationService) *gin.Engine {
	ctrl := NewAuthController(auth, nil, verification)
	engine := newTestEngine()
	engine.POST("/auth/register", ctrl.Register)
	engine.POST("/auth/send-verification", ctrl.SendVerification)
	engine.POST("/auth/verify-email", ctrl.VerifyEmail)
	return engine
}

func TestRegisterSendsVerificationCode(t *testing.T) {
	verification := &stubVerificationService{}
	engine := newAuthTestEngine(&stubAuthService{}, verification)

	w := perform(t, engine, http.MethodPost, "/auth/register", map[string]string{
		"email": "rhea@example.com", "password": "longenough",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, []string{"rhea@example.com"}, verification.sent)

	// a mail failure does not undo the account
	verification.sendErr = assert.AnError
	w = perform(t, engine, http.MethodPost, "/auth/register", map[string]string{
		"email": "joel@example.com", "password": "longenough",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	engine = newAuthTestEngine(&stubAuthService{registerErr: service.ErrEmailAlreadyExists}, &stubVerificationService{})
	w = perform(t, engine, http.MethodPost, "/auth/register", map[string]string{
		"email": "rhea@example.com", "password": "longenough",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	var resp apperrors.ErrorResponse
	decodeBody(t, w, &resp)
	assert.Equal(t, apperrors.AuthEmailAlreadyExists, resp.Error)
}

func TestSendVerificationAlwaysAnswersOK(t *testing.T) {
	verification := &stubVerificationService{sendErr: assert.AnError}
	engine := newAuthTestEngine(&stubAuthService{}, verification)

	w := perform(t, engine, http.MethodPost, "/auth/send-verification", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, verification.sent, 1)

	w = perform(t, engine, http.MethodPost, "/auth/send-verification", map[string]string{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, verification.sent, 1)
}

func TestVerifyEmail(t *testing.T) {
	t.Run("Wrong code", func(t *testing.T) {
		auth := &stubAuthService{}
		engine := newAuthTestEngine(auth, &stubVerificationService{verifyErr: service.ErrInvalidVerificationCode})

		w := perform(t, engine, http.MethodPost, "/auth/verify-email", map[string]string{
			"email": "rhea@example.com", "code": "000000",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp apperrors.ErrorResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, apperrors.AuthCodeInvalid, resp.Error)
		assert.Nil(t, auth.issuedFor)
	})

	t.Run("Missing code", func(t *testing.T) {
		engine := newAuthTestEngine(&stubAuthService{}, &stubVerificationService{})

		w := perform(t, engine, http.MethodPost, "/auth/verify-email", map[string]string{"email": "rhea@example.com"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		var resp apperrors.ErrorResponse
		decodeBody(t, w, &resp)
		assert.Equal(t, apperrors.ValidationInvalidInput, resp.Error)
	})

	t.Run("Store failure", func(t *testing.T) {
		engine := newAuthTestEngine(&stubAuthService{}, &stubVerificationService{verifyErr: assert.AnError})

		w := perform(t, engine, http.MethodPost, "/auth/verify-email", map[string]string{
			"email": "rhea@example.com", "code": "123456",
		})
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("Issues a verified session", func(t *testing.T) {
		auth := &stubAuthService{}
		engine := newAuthTestEngine(auth, &stubVerificationService{})

		w := perform(t, engine, http.MethodPost, "/auth/verify-email", map[string]string{
			"email": "rhea@example.com", "code": "123456", "redirect_to": "/requests",
		})
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, auth.issuedFor)
		assert.True(t, auth.issuedFor.EmailVerified)

		var result service.AuthResult
		decodeBody(t, w, &result)
		assert.Equal(t, "access", result.Tokens.AccessToken)
		assert.Equal(t, "/requests", result.RedirectTo)
	})
}
