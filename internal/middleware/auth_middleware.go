package middleware

import (
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/autonear/autonear-backend/internal/errors"
	"github.com/autonear/autonear-backend/pkg/redis"
	"github.com/autonear/autonear-backend/pkg/util"
	"github.com/gin-gonic/gin"
)

// Context keys for user information
const (
	UserIDKey      = "user_id"
	UserEmailKey   = "user_email"
	UserRoleKey    = "user_role"
	TokenClaimsKey = "token_claims"
)

// AdminChecker reports whether an address currently holds admin capability.
type AdminChecker interface {
	IsAdmin(email string) (bool, error)
}

type AuthMiddleware struct {
	jwtSecret string
}

func NewAuthMiddleware(jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
	}
}

// Authenticate requires a valid access token, taken from the Authorization
// header or, for websocket upgrades, the token query parameter.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		var token string
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Warn("Invalid authorization header format", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Malformed authorization header")
				c.Abort()
				return
			}
			token = parts[1]
		} else {
			token = c.Query("token")
			if token == "" {
				log.Warn("Missing authorization header", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				apperrors.Unauthorized(c, "")
				c.Abort()
				return
			}
		}

		claims, err := m.validate(c, token)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			switch {
			case errors.Is(err, util.ErrExpiredToken):
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenExpired, "Your session has expired")
			case errors.Is(err, errTokenRevoked):
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenRevoked, "This session has been signed out")
			default:
				apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		setClaims(c, claims)
		log.Debug("User authenticated", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    claims.Role,
		})

		c.Next()
	}
}

// OptionalAuthenticate sets the user when a valid token is present and
// otherwise continues as a guest.
func (m *AuthMiddleware) OptionalAuthenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.Split(authHeader, " ")
		if authHeader == "" || len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}

		claims, err := m.validate(c, parts[1])
		if err != nil {
			GetLoggerFromContext(c).Debug("Token validation failed - continuing as guest", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			c.Next()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate. The check is made against the
// live allow-list so grants and revocations apply without a new token.
func (m *AuthMiddleware) RequireAdmin(access AdminChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		if _, ok := GetUserID(c); !ok {
			apperrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		email, ok := GetUserEmail(c)
		if !ok {
			respondUnverified(c)
			return
		}

		isAdmin, err := access.IsAdmin(email)
		if err != nil {
			log.Error("Admin check failed", err, map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.InternalError(c, "")
			c.Abort()
			return
		}
		if !isAdmin {
			userID, _ := GetUserID(c)
			log.Warn("Admin access denied", map[string]interface{}{
				"user_id": userID,
				"path":    c.Request.URL.Path,
			})
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzAdminOnly, "Administrator access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireVerifiedEmail must run after Authenticate. It guards routes whose
// authority comes from the caller's address.
func (m *AuthMiddleware) RequireVerifiedEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserEmail(c); !ok {
			respondUnverified(c)
			return
		}
		c.Next()
	}
}

func respondUnverified(c *gin.Context) {
	userID, _ := GetUserID(c)
	GetLoggerFromContext(c).Warn("Unverified email denied", map[string]interface{}{
		"user_id": userID,
		"path":    c.Request.URL.Path,
	})
	apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzEmailUnverified, "Verify your email address first")
	c.Abort()
}

var errTokenRevoked = errors.New("token revoked")

func (m *AuthMiddleware) validate(c *gin.Context, token string) (*util.Claims, error) {
	claims, err := util.ValidateToken(token, m.jwtSecret)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != util.TokenTypeAccess {
		return nil, util.ErrInvalidToken
	}

	revoked, err := redis.IsTokenRevoked(c.Request.Context(), claims.ID)
	if err != nil {
		// fail open: a Redis outage must not sign everyone out
		GetLoggerFromContext(c).Warn("Revocation check unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return claims, nil
	}
	if revoked {
		return nil, errTokenRevoked
	}
	return claims, nil
}

// setClaims exposes the email only when the token says it was verified, so
// GetUserEmail never hands out an unproven address.
func setClaims(c *gin.Context, claims *util.Claims) {
	c.Set(UserIDKey, claims.UserID)
	if claims.EmailVerified {
		c.Set(UserEmailKey, claims.Email)
	}
	c.Set(UserRoleKey, claims.Role)
	c.Set(TokenClaimsKey, claims)
}

func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

func GetUserEmail(c *gin.Context) (string, bool) {
	email, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	s, ok := email.(string)
	return s, ok
}

// GetClaims returns the validated token claims, used by logout to revoke
// the presented token.
func GetClaims(c *gin.Context) (*util.Claims, bool) {
	v, exists := c.Get(TokenClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*util.Claims)
	return claims, ok
}
