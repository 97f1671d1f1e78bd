package controller

import (
	"errors"
	"net/http"

	"github.com/autonear/autonear-backend/internal/app/service"
	apperrors "github.com/autonear/autonear-backend/internal/errors"
	"github.com/autonear/autonear-backend/internal/middleware"
	"github.com/autonear/autonear-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService          service.AuthService
	passwordResetService service.PasswordResetService
	verificationService  service.EmailVerificationService
}

func NewAuthController(
	authService service.AuthService,
	passwordResetService service.PasswordResetService,
	verificationService service.EmailVerificationService,
) *AuthController {
	return &AuthController{
		authService:          authService,
		passwordResetService: passwordResetService,
		verificationService:  verificationService,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RedirectTo string `json:"redirect_to"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type SendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyEmailRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Code       string `json:"code" binding:"required"`
	RedirectTo string `json:"redirect_to"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Register handles user registration
// POST /api/v1/auth/register
func (ctrl *AuthController) Register(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid registration request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email and password are required")
		return
	}

	result, err := ctrl.authService.Register(req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailAlreadyExists):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "This email is already registered")
		case errors.Is(err, service.ErrInvalidEmail):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid email address")
		case errors.Is(err, util.ErrWeakPassword):
			apperrors.BadRequest(c, apperrors.AuthWeakPassword, "Password must be at least 8 characters")
		default:
			log.Error("Registration failed", err)
			apperrors.ParseAndRespond(c, err, "register user")
		}
		return
	}

	if err := ctrl.verificationService.SendCode(result.User.Email); err != nil {
		log.Error("Failed to send verification code", err, map[string]interface{}{
			"user_id": result.User.ID,
		})
	}

	c.JSON(http.StatusCreated, result)
}

// Login handles user login
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email and password are required")
		return
	}
	if req.RedirectTo == "" {
		req.RedirectTo = c.Query("redirect_to")
	}

	result, err := ctrl.authService.Login(req.Email, req.Password, req.RedirectTo)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "Invalid email or password")
			return
		}
		log.Error("Login failed", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetMe returns the signed-in user and whether they are an administrator.
// GET /api/v1/auth/me
func (ctrl *AuthController) GetMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to load user", err)
		apperrors.InternalError(c, "")
		return
	}

	claims, _ := middleware.GetClaims(c)
	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"is_admin": claims != nil && claims.Role == service.RoleAdmin,
	})
}

// PUT /api/v1/auth/me
func (ctrl *AuthController) UpdateMe(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid profile")
		return
	}

	user, err := ctrl.authService.UpdateProfile(userID, req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "User not found")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to update profile", err)
		apperrors.ParseAndRespond(c, err, "update user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ForgotPassword always answers 200 so addresses cannot be probed.
// POST /api/v1/auth/forgot-password
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A valid email is required")
		return
	}

	if err := ctrl.passwordResetService.RequestReset(req.Email); err != nil {
		middleware.GetLoggerFromContext(c).Error("Password reset request failed", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If the email is registered, a reset link has been sent",
	})
}

// POST /api/v1/auth/reset-password
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Token and new password are required")
		return
	}

	if err := ctrl.passwordResetService.ResetPassword(req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, util.ErrWeakPassword):
			apperrors.BadRequest(c, apperrors.AuthWeakPassword, "Password must be at least 8 characters")
		case errors.Is(err, service.ErrInvalidResetToken),
			errors.Is(err, service.ErrResetTokenExpired),
			errors.Is(err, service.ErrResetTokenUsed):
			apperrors.BadRequest(c, apperrors.AuthResetTokenInvalid, "This reset link is invalid or has expired")
		default:
			middleware.GetLoggerFromContext(c).Error("Password reset failed", err)
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// SendVerification mails a new code. Like ForgotPassword it always answers 200.
// POST /api/v1/auth/send-verification
func (ctrl *AuthController) SendVerification(c *gin.Context) {
	var req SendVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A valid email is required")
		return
	}

	if err := ctrl.verificationService.SendCode(req.Email); err != nil {
		middleware.GetLoggerFromContext(c).Error("Verification request failed", err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If the email is registered and unverified, a code has been sent",
	})
}

// VerifyEmail confirms the code and returns a fresh session whose tokens
// carry the verified address.
// POST /api/v1/auth/verify-email
func (ctrl *AuthController) VerifyEmail(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Email and code are required")
		return
	}

	user, err := ctrl.verificationService.Verify(req.Email, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidVerificationCode) {
			apperrors.BadRequest(c, apperrors.AuthCodeInvalid, "This code is invalid or has expired")
			return
		}
		log.Error("Email verification failed", err)
		apperrors.InternalError(c, "")
		return
	}

	result, err := ctrl.authService.IssueTokens(user, req.RedirectTo)
	if err != nil {
		log.Error("Failed to issue tokens after verification", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, result)
}

// POST /api/v1/auth/refresh
func (ctrl *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Refresh token is required")
		return
	}

	tokens, err := ctrl.authService.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Please sign in again")
			return
		}
		middleware.GetLoggerFromContext(c).Error("Failed to refresh token", err)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// Logout always succeeds from the caller's point of view.
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LogoutRequest
	_ = c.ShouldBindJSON(&req)

	claims, _ := middleware.GetClaims(c)
	if err := ctrl.authService.Logout(c.Request.Context(), claims, req.RefreshToken); err != nil {
		log.Error("Failed to revoke tokens during logout", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
