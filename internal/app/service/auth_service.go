package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/autonear/autonear-backend/internal/app/model"
	"github.com/autonear/autonear-backend/internal/app/policy"
	"github.com/autonear/autonear-backend/internal/app/repository"
	"github.com/autonear/autonear-backend/pkg/logger"
	"github.com/autonear/autonear-backend/pkg/redis"
	"github.com/autonear/autonear-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// AuthResult is what a successful sign-in hands back to the client.
type AuthResult struct {
	User       *model.User     `json:"user"`
	Tokens     *util.TokenPair `json:"tokens"`
	IsAdmin    bool            `json:"is_admin"`
	RedirectTo string          `json:"redirect_to"`
}

type AuthService interface {
	Register(email, password, name, phone string) (*AuthResult, error)
	Login(email, password, redirectTo string) (*AuthResult, error)
	Refresh(refreshToken string) (*util.TokenPair, error)
	Logout(ctx context.Context, access *util.Claims, refreshToken string) error
	GetUserByID(id uint) (*model.User, error)
	UpdateProfile(userID uint, name, phone string) (*model.User, error)
	IssueTokens(user *model.User, redirectTo string) (*AuthResult, error)
}

type authService struct {
	userRepo      repository.UserRepository
	access        AccessService
	jwtSecret     string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	access AccessService,
	jwtSecret string,
	accessExpiry, refreshExpiry time.Duration,
) AuthService {
	return &authService{
		userRepo:      userRepo,
		access:        access,
		jwtSecret:     jwtSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

func (s *authService) Register(email, password, name, phone string) (*AuthResult, error) {
	email = model.NormalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if err := util.ValidatePassword(password); err != nil {
		return nil, err
	}

	logger.Info("Attempting user registration", logger.Fields{
		"email": email,
	})

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, logger.Fields{"email": email})
		return nil, err
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user := &model.User{
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Phone:        strings.TrimSpace(phone),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	logger.Info("User registered", logger.Fields{"user_id": user.ID})
	return s.issue(user, "")
}

func (s *authService) Login(email, password, redirectTo string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: unknown email", logger.Fields{"email": email})
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: wrong password", logger.Fields{"user_id": user.ID})
		return nil, ErrInvalidCredentials
	}

	logger.Info("User logged in", logger.Fields{"user_id": user.ID})
	return s.issue(user, redirectTo)
}

func (s *authService) Refresh(refreshToken string) (*util.TokenPair, error) {
	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil || claims.TokenType != util.TokenTypeRefresh {
		return nil, ErrInvalidRefresh
	}
	if revoked, err := redis.IsTokenRevoked(context.Background(), claims.ID); err == nil && revoked {
		return nil, ErrInvalidRefresh
	}

	user, err := s.GetUserByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenVersion != user.TokenVersion {
		logger.Warn("Refresh token predates password change", logger.Fields{"user_id": user.ID})
		return nil, ErrInvalidRefresh
	}

	result, err := s.issue(user, "")
	if err != nil {
		return nil, err
	}
	return result.Tokens, nil
}

// Logout revokes the presented access token and, when given, the refresh
// token until they would have expired anyway. Without Redis it is a no-op.
func (s *authService) Logout(ctx context.Context, access *util.Claims, refreshToken string) error {
	if access != nil {
		if err := redis.RevokeToken(ctx, access.ID, time.Until(access.ExpiresAt.Time)); err != nil {
			return err
		}
	}
	if refreshToken == "" {
		return nil
	}

	claims, err := util.ValidateToken(refreshToken, s.jwtSecret)
	if err != nil || claims.TokenType != util.TokenTypeRefresh {
		// already unusable
		return nil
	}
	return redis.RevokeToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) UpdateProfile(userID uint, name, phone string) (*model.User, error) {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		user.Name = name
	}
	user.Phone = strings.TrimSpace(phone)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// IssueTokens signs a fresh session for user, used once the account's
// verification state has changed.
func (s *authService) IssueTokens(user *model.User, redirectTo string) (*AuthResult, error) {
	return s.issue(user, redirectTo)
}

// issue grants the admin role only to verified addresses on the allow-list.
func (s *authService) issue(user *model.User, redirectTo string) (*AuthResult, error) {
	isAdmin := false
	if user.EmailVerified {
		var err error
		if isAdmin, err = s.access.IsAdmin(user.Email); err != nil {
			return nil, err
		}
	}

	role := RoleCustomer
	if isAdmin {
		role = RoleAdmin
	}

	tokens, err := util.GenerateTokenPair(util.Subject{
		UserID:        user.ID,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
		Role:          role,
		TokenVersion:  user.TokenVersion,
	}, s.jwtSecret, s.accessExpiry, s.refreshExpiry)
	if err != nil {
		logger.Error("Failed to generate tokens", err, logger.Fields{"user_id": user.ID})
		return nil, err
	}

	return &AuthResult{
		User:       user,
		Tokens:     tokens,
		IsAdmin:    isAdmin,
		RedirectTo: policy.PostLoginRedirect(redirectTo, isAdmin),
	}, nil
}
