package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	farmapp "github.com/farmledger/backend/internal/application/farm"
	"github.com/farmledger/backend/internal/domain/farm"
	"github.com/farmledger/backend/internal/domain/shared"
	"github.com/farmledger/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockFarmRepository is a mock implementation of farm.FarmRepository
type MockFarmRepository struct {
	mock.Mock
}

func (m *MockFarmRepository) FindByID(ctx context.Context, id uuid.UUID) (*farm.Farm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*farm.Farm), args.Error(1)
}

func (m *MockFarmRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]farm.Farm, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]farm.Farm), args.Error(1)
}

func (m *MockFarmRepository) FindAll(ctx context.Context, filter shared.Filter) ([]farm.Farm, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]farm.Farm), args.Error(1)
}

func (m *MockFarmRepository) Save(ctx context.Context, f *farm.Farm) error {
	args := m.Called(ctx, f)
	return args.Error(0)
}

func (m *MockFarmRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newFarmRouter(repo farm.FarmRepository, userID uuid.UUID) *gin.Engine {
	service := farmapp.NewFarmService(repo)
	h := NewFarmHandler(service)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.JWTUserIDKey, userID.String())
	})
	router.POST("/farms", h.Create)
	router.GET("/farms/:id", h.Get)
	return router
}

func TestFarmHandlerCreate(t *testing.T) {
	userID := uuid.New()
	repo := new(MockFarmRepository)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*farm.Farm")).Return(nil)
	router := newFarmRouter(repo, userID)

	body, _ := json.Marshal(gin.H{
		"name":  "Fazenda Boa Vista",
		"city":  "Uberaba",
		"state": "MG",
	})
	req := httptest.NewRequest(http.MethodPost, "/farms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	repo.AssertExpectations(t)
}

func TestFarmHandlerCreateValidation(t *testing.T) {
	router := newFarmRouter(new(MockFarmRepository), uuid.New())

	body, _ := json.Marshal(gin.H{"city": "Uberaba"})
	req := httptest.NewRequest(http.MethodPost, "/farms", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFarmHandlerGetForbiddenForNonOwner(t *testing.T) {
	ownerID := uuid.New()
	intruderID := uuid.New()

	f, err := farm.NewFarm("Fazenda Santa Fe", ownerID)
	require.NoError(t, err)

	repo := new(MockFarmRepository)
	repo.On("FindByID", mock.Anything, f.ID).Return(f, nil)
	router := newFarmRouter(repo, intruderID)

	req := httptest.NewRequest(http.MethodGet, "/farms/"+f.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, "FORBIDDEN", resp.Error.Code)
}

func TestFarmHandlerGetNotFound(t *testing.T) {
	repo := new(MockFarmRepository)
	repo.On("FindByID", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil, shared.ErrNotFound)
	router := newFarmRouter(repo, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/farms/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFarmHandlerGetInvalidID(t *testing.T) {
	router := newFarmRouter(new(MockFarmRepository), uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/farms/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
