package middleware

import (
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/octavertex/workhub/internal/auth"
	"github.com/octavertex/workhub/internal/constants"
	apierrors "github.com/octavertex/workhub/internal/errors"
	"github.com/octavertex/workhub/internal/models"
)

// RequireAuth checks if the user is authenticated, first via session cookie,
// then via a Bearer token. Either way the identity lands in the request
// context under the same keys.
func RequireAuth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get(constants.ContextKeyUserID)

		if userID != nil {
			c.Set(constants.ContextKeyUserID, userID)
			if role := session.Get(constants.ContextKeyRole); role != nil {
				c.Set(constants.ContextKeyRole, role)
			}
			if orgID := session.Get(constants.ContextKeyOrgID); orgID != nil {
				c.Set(constants.ContextKeyOrgID, orgID)
			}
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			claims, err := auth.ParseToken(jwtSecret, strings.TrimPrefix(header, "Bearer "))
			if err == nil {
				c.Set(constants.ContextKeyUserID, claims.UserID)
				c.Set(constants.ContextKeyRole, string(claims.Role))
				if claims.OrganizationID != nil {
					c.Set(constants.ContextKeyOrgID, *claims.OrganizationID)
				}
				c.Next()
				return
			}
		}

		apierrors.Unauthorized(c, "")
		c.Abort()
	}
}

// RequireRole rejects requests whose authenticated role ranks below min.
func RequireRole(min models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetRole(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !models.HasMinimumRole(role, min) {
			apierrors.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetRole retrieves the current user's role from context
func GetRole(c *gin.Context) (models.Role, bool) {
	value, exists := c.Get(constants.ContextKeyRole)
	if !exists {
		return "", false
	}

	switch v := value.(type) {
	case models.Role:
		return v, v.Valid()
	case string:
		role := models.Role(v)
		return role, role.Valid()
	default:
		return "", false
	}
}

// GetOrgID retrieves the current user's organization ID from context
func GetOrgID(c *gin.Context) (uint64, bool) {
	value, exists := c.Get(constants.ContextKeyOrgID)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
