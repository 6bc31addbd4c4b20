package middleware

import (
	"context"
	"errors"

	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/auth"
	apperrors "github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/common/errors"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/models"
	"github.com/kartikeyan-sudo/better-bite-Grocery-ecom/backend/services/storefront-service/repository"

	"github.com/gin-gonic/gin"
)

const (
	UserContextKey  = "userID"
	AdminContextKey = "isAdmin"
)

// TokenValidator resolves a bearer token to a user id.
type TokenValidator interface {
	Validate(tokenStr string) (string, error)
}

// UserFinder loads the token's user so blocks and role changes apply
// immediately.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// RequireAuth accepts "Authorization: Bearer <token>" and rejects blocked
// accounts.
func RequireAuth(tokens TokenValidator, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abort(c, apperrors.ErrNoToken)
			return
		}

		userID, err := tokens.Validate(token)
		if err != nil {
			abort(c, apperrors.ErrInvalidToken)
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				abort(c, apperrors.ErrInvalidToken)
				return
			}
			abort(c, apperrors.Internal(err))
			return
		}
		if user.IsBlocked {
			abort(c, apperrors.ErrBlocked)
			return
		}

		c.Set(UserContextKey, userID)
		c.Set(AdminContextKey, user.IsAdmin)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			abort(c, apperrors.ErrAdminOnly)
			return
		}
		c.Next()
	}
}

// RequireOwner allows the request only when the path parameter names the
// caller. Admins are not exempt.
func RequireOwner(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserID(c)
		if err != nil || c.Param(param) != userID {
			abort(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("user ID not found in context")
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(AdminContextKey)
}

func abort(c *gin.Context, err *apperrors.Error) {
	_ = c.Error(err)
	c.Abort()
}
