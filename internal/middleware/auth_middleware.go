package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	authz "github.com/zhangjiang/campuswall/internal/app/auth"
	"github.com/zhangjiang/campuswall/internal/app/models/dto"
	"github.com/zhangjiang/campuswall/internal/pkg/auth"
)

// Context keys set by the auth middleware.
const (
	ContextUserID     = "userID"
	ContextStudentID  = "studentID"
	ContextIsVerified = "isVerified"
	ContextIsAdmin    = "isAdmin"
)

// AuthMiddleware validates session tokens. The token itself carries all
// authorization state; no per-request user lookup happens here.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func (m *AuthMiddleware) claimsFromRequest(c *gin.Context) (*auth.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, auth.ErrInvalidFormat
	}

	tokenString, err := auth.ExtractBearerToken(authHeader)
	if err != nil {
		return nil, err
	}

	return m.jwtService.ValidateAndExtractClaims(tokenString)
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextStudentID, claims.StudentID)
	c.Set(ContextIsVerified, claims.IsVerified)
	c.Set(ContextIsAdmin, claims.IsAdmin)
}

// JWTAuth requires a valid session token
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.claimsFromRequest(c)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			if errors.Is(err, auth.ErrExpiredToken) {
				errorDetail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalJWTAuth attaches the viewer identity when a valid token is
// present and continues anonymously otherwise. A token that is present
// but invalid is still rejected.
func (m *AuthMiddleware) OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}

		claims, err := m.claimsFromRequest(c)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		setIdentity(c, claims)
		c.Next()
	}
}

// AdminRequired allows only admin sessions through. Must run after JWTAuth.
func (m *AuthMiddleware) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		isAdmin, exists := c.Get(ContextIsAdmin)
		if !exists {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		if admin, ok := isAdmin.(bool); !ok || !admin {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Admin access required")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Next()
	}
}

// CurrentViewer returns the authenticated caller set by the auth
// middleware. The zero Viewer means the request is anonymous.
func CurrentViewer(c *gin.Context) authz.Viewer {
	viewer := authz.Viewer{}
	if userID, ok := c.Get(ContextUserID); ok {
		if id, ok := userID.(int64); ok {
			viewer.UserID = id
		}
	}
	if isAdmin, ok := c.Get(ContextIsAdmin); ok {
		if admin, ok := isAdmin.(bool); ok {
			viewer.IsAdmin = admin
		}
	}
	return viewer
}
