package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/villageedu/api/internal/app/models"
	"github.com/villageedu/api/internal/app/models/dto"
	"github.com/villageedu/api/internal/pkg/auth"
)

// Context keys of the resolved identity
const (
	ContextStudentKey = "student"
	ContextAdminKey   = "admin"
)

// IdentityLookup resolves token subjects to accounts
type IdentityLookup interface {
	GetStudent(ctx context.Context, id string) (*models.Student, error)
	GetAdmin(ctx context.Context, id string) (*models.Admin, error)
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	identities IdentityLookup
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, identities IdentityLookup) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		identities: identities,
	}
}

// StudentAuth admits requests carrying a valid student token
func (m *AuthMiddleware) StudentAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c, models.PrincipalStudent)
		if !ok {
			return
		}

		student, err := m.identities.GetStudent(c.Request.Context(), claims.Subject)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(ContextStudentKey, student)
		c.Next()
	}
}

// AdminAuth admits requests carrying a valid token of an admin or superadmin
func (m *AuthMiddleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := m.authenticate(c, models.PrincipalAdmin)
		if !ok {
			return
		}

		admin, err := m.identities.GetAdmin(c.Request.Context(), claims.Subject)
		if err != nil {
			HandleAPIError(c, err)
			return
		}
		if !admin.Role.IsValid() {
			forbid(c, "Access restricted to admins only")
			return
		}

		c.Set(ContextAdminKey, admin)
		c.Next()
	}
}

// authenticate validates the bearer token and its principal. It aborts the request
// and returns false on failure.
func (m *AuthMiddleware) authenticate(c *gin.Context, want models.PrincipalType) (*auth.Claims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		detail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "No token provided")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return nil, false
	}

	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token").WithDetails("Invalid token format")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return nil, false
	}

	claims, err := m.jwtService.ValidateAndExtractClaims(token)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
		if errors.Is(err, auth.ErrExpiredToken) {
			detail = dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
		return nil, false
	}

	if claims.Principal != want {
		if want == models.PrincipalAdmin {
			forbid(c, "Access restricted to admins only")
		} else {
			forbid(c, "Access restricted to students only")
		}
		return nil, false
	}

	return claims, true
}

func forbid(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeForbidden, message)))
}

// CurrentStudent returns the student resolved by StudentAuth
func CurrentStudent(c *gin.Context) (*models.Student, bool) {
	v, ok := c.Get(ContextStudentKey)
	if !ok {
		return nil, false
	}
	student, ok := v.(*models.Student)
	return student, ok
}

// CurrentAdmin returns the admin resolved by AdminAuth
func CurrentAdmin(c *gin.Context) (*models.Admin, bool) {
	v, ok := c.Get(ContextAdminKey)
	if !ok {
		return nil, false
	}
	admin, ok := v.(*models.Admin)
	return admin, ok
}
