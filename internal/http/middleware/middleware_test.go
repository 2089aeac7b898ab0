package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/logger"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Discard()
}

type envelope struct {
	Success bool `json:"success"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func authRouter(tokens *service.TokenManager, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	chain := append([]gin.HandlerFunc{AuthMiddleware(tokens)}, extra...)
	chain = append(chain, func(c *gin.Context) {
		identity, _ := IdentityFrom(c)
		userID, _ := UserIDFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "email": identity.Email, "admin": IsAdmin(c)})
	})
	r.GET("/me", chain...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := service.NewTokenManager("test-secret", time.Hour)
	identity := entity.Identity{UserID: uuid.New(), Email: "ph@example.com", Role: valueobject.RolePhotographer}
	token, err := tokens.GenerateAccess(identity)
	require.NoError(t, err)

	r := authRouter(tokens)

	t.Run("без заголовка", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, string(apperror.ErrCodeUnauthorized), decode(t, w).Error.Code)
	})

	t.Run("чужая подпись", func(t *testing.T) {
		foreign, err := service.NewTokenManager("other", time.Hour).GenerateAccess(identity)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+foreign)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("валидный токен", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, identity.UserID.String(), body["user_id"])
		assert.Equal(t, "ph@example.com", body["email"])
		assert.Equal(t, false, body["admin"])
	})
}

func TestAdminOnly(t *testing.T) {
	tokens := service.NewTokenManager("test-secret", time.Hour)
	r := authRouter(tokens, AdminOnly())

	client, err := tokens.GenerateAccess(entity.Identity{UserID: uuid.New(), Role: valueobject.RoleClient})
	require.NoError(t, err)
	admin, err := tokens.GenerateAccess(entity.Identity{UserID: uuid.New(), Role: valueobject.RoleAdmin})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+client)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://app.example.com"}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestUUIDValidator(t *testing.T) {
	r := gin.New()
	r.GET("/requests/:id", UUIDValidator("id"), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requests/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/requests/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddleware_MemoryStore(t *testing.T) {
	store, client, err := NewRateLimitStore("")
	require.NoError(t, err)
	assert.Nil(t, client)

	r := gin.New()
	r.Use(RateLimitMiddleware(store, 2, time.Minute))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestNewRateLimitStore_InvalidRedisURL(t *testing.T) {
	_, _, err := NewRateLimitStore("not a url")
	assert.Error(t, err)
}

func TestErrorHandler_WritesEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/fail", func(c *gin.Context) { _ = c.Error(apperror.ErrRequestNotFound) })
	r.GET("/boom", func(c *gin.Context) { _ = c.Error(errors.New("db down")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w).Success)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, string(apperror.ErrCodeInternal), decode(t, w).Error.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
