package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
)

// UUIDValidator проверяет, что параметры пути являются валидными UUID.
// Использование: router.GET("/requests/:id", UUIDValidator("id"), handler.Get)
func UUIDValidator(paramNames ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, name := range paramNames {
			if _, err := uuid.Parse(c.Param(name)); err != nil {
				response.BadRequest(c, "параметр "+name+" должен быть валидным UUID")
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
