package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/http/middleware"
)

const maxPageLimit = 100

func getUserID(c *gin.Context) (uuid.UUID, error) {
	userID, ok := middleware.UserIDFrom(c)
	if !ok {
		return uuid.Nil, errors.New("userID не найден в контексте")
	}
	return userID, nil
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil || value < 0 {
		return defaultValue
	}

	return value
}

// pagination читает limit/offset и ограничивает limit сверху.
func pagination(c *gin.Context, defaultLimit int) (int, int) {
	limit := parseIntQuery(c, "limit", defaultLimit)
	if limit == 0 {
		limit = defaultLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return limit, parseIntQuery(c, "offset", 0)
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
