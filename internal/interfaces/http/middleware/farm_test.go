package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stubAuthorizer struct {
	err     error
	gotUser uuid.UUID
	gotFarm uuid.UUID
	called  bool
}

func (s *stubAuthorizer) AuthorizeMember(_ context.Context, userID, farmID uuid.UUID) error {
	s.called = true
	s.gotUser = userID
	s.gotFarm = farmID
	return s.err
}

func newFarmScopedRouter(authorizer FarmAuthorizer, userID uuid.UUID) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		// simulate the JWT middleware having run
		c.Set(JWTUserIDKey, userID.String())
	})
	router.Use(FarmScopeMiddleware(authorizer))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"farm_id": GetFarmID(c)})
	})
	return router
}

func TestFarmScopeMiddlewareAuthorized(t *testing.T) {
	userID := uuid.New()
	farmID := uuid.New()
	authorizer := &stubAuthorizer{}
	router := newFarmScopedRouter(authorizer, userID)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(FarmHeaderKey, farmID.String())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, authorizer.called)
	assert.Equal(t, userID, authorizer.gotUser)
	assert.Equal(t, farmID, authorizer.gotFarm)
	assert.Contains(t, w.Body.String(), farmID.String())
}

func TestFarmScopeMiddlewareMissingHeader(t *testing.T) {
	router := newFarmScopedRouter(&stubAuthorizer{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "MISSING_FARM")
}

func TestFarmScopeMiddlewareInvalidHeader(t *testing.T) {
	router := newFarmScopedRouter(&stubAuthorizer{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(FarmHeaderKey, "not-a-uuid")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_FARM")
}

func TestFarmScopeMiddlewareForbidden(t *testing.T) {
	authorizer := &stubAuthorizer{err: shared.ErrForbidden}
	router := newFarmScopedRouter(authorizer, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(FarmHeaderKey, uuid.NewString())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFarmScopeMiddlewareUnknownFarm(t *testing.T) {
	authorizer := &stubAuthorizer{err: shared.ErrNotFound}
	router := newFarmScopedRouter(authorizer, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(FarmHeaderKey, uuid.NewString())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFarmScopeMiddlewareSkipsFarmManagement(t *testing.T) {
	authorizer := &stubAuthorizer{err: shared.ErrForbidden}
	router := gin.New()
	router.Use(FarmScopeMiddleware(authorizer))
	router.GET("/api/v1/farms", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/farms", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, authorizer.called)
}
