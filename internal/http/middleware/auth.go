package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/service"
)

// Context ключи для gin.Context.
const (
	ContextUserIDKey   = "userID"
	ContextRoleKey     = "role"
	ContextIdentityKey = "identity"
)

// AuthMiddleware проверяет JWT access токен провайдера авторизации.
func AuthMiddleware(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			response.Unauthorized(c, "требуется авторизация")
			c.Abort()
			return
		}

		identity, err := tokens.ParseAccess(strings.TrimPrefix(auth, "Bearer "))
		if err != nil || identity.UserID == uuid.Nil {
			response.Unauthorized(c, "токен невалиден")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, identity.UserID)
		c.Set(ContextRoleKey, identity.Role)
		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// AdminOnly пропускает только администраторов. Ставится после AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok {
			response.Unauthorized(c, "требуется авторизация")
			c.Abort()
			return
		}
		if !identity.Role.IsAdmin() {
			response.Forbidden(c, "доступно только администратору")
			c.Abort()
			return
		}
		c.Next()
	}
}

func IdentityFrom(c *gin.Context) (entity.Identity, bool) {
	v, ok := c.Get(ContextIdentityKey)
	if !ok {
		return entity.Identity{}, false
	}
	identity, ok := v.(entity.Identity)
	return identity, ok
}

func UserIDFrom(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok && id != uuid.Nil
}

func IsAdmin(c *gin.Context) bool {
	v, ok := c.Get(ContextRoleKey)
	if !ok {
		return false
	}
	role, ok := v.(valueobject.Role)
	return ok && role.IsAdmin()
}
