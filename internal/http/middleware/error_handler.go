package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/photomarket-backend/internal/interface/http/response"
	"github.com/ignatzorin/photomarket-backend/internal/logger"
)

// ErrorHandler отвечает конвертом ошибки, если хендлер положил её через c.Error и ничего не записал.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		response.Error(c, c.Errors.Last().Err)
	}
}

// RequestLogger пишет одну строку на запрос.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := logger.Log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
			"ip":       c.ClientIP(),
		})
		if userID, ok := UserIDFrom(c); ok {
			entry = entry.WithField("user_id", userID)
		}

		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// Recovery превращает panic хендлера в 500 с логом.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(logger.Log.Writer(), func(c *gin.Context, recovered any) {
		logger.Log.WithField("panic", recovered).WithField("path", c.FullPath()).Error("handler panic")
		response.Error(c, fmt.Errorf("panic: %v", recovered))
		c.Abort()
	})
}
