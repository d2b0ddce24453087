package handler

import (
	"context"
	"io"
	"log/slog"

	"brickhub/internal/http-api/models"
	"brickhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testRouter returns a router with a fake auth context, the way the real auth
// middleware would populate it after validating a token.
func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", "user-1")
		c.Set("scopes", []string{"read:collection", "write:collection", "read:wishlist", "write:wishlist"})
		c.Next()
	})
	return r
}

// unauthenticatedRouter returns a router whose requests carry no user context.
func unauthenticatedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("scopes", []string{"*"})
		c.Next()
	})
	return r
}

// MockCollectionService mocks service.CollectionService
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) List(ctx context.Context, userID string) ([]models.CollectionEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CollectionEntry), args.Error(1)
}

func (m *MockCollectionService) AddSets(ctx context.Context, userID string, items []service.SetQuantity) error {
	args := m.Called(ctx, userID, items)
	return args.Error(0)
}

func (m *MockCollectionService) RemoveSet(ctx context.Context, userID, setNum string) error {
	args := m.Called(ctx, userID, setNum)
	return args.Error(0)
}

func (m *MockCollectionService) UpdateQuantity(ctx context.Context, userID, setNum string, quantity int) (*models.CollectionEntry, error) {
	args := m.Called(ctx, userID, setNum, quantity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionEntry), args.Error(1)
}

func (m *MockCollectionService) UpdateCompleteCount(ctx context.Context, userID, setNum string, count int) (int, error) {
	args := m.Called(ctx, userID, setNum, count)
	return args.Int(0), args.Error(1)
}

func (m *MockCollectionService) UpdateSealedCount(ctx context.Context, userID, setNum string, count int) (int, error) {
	args := m.Called(ctx, userID, setNum, count)
	return args.Int(0), args.Error(1)
}

func (m *MockCollectionService) ToggleComplete(ctx context.Context, userID, setNum string, complete bool) (*models.CollectionEntry, error) {
	args := m.Called(ctx, userID, setNum, complete)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionEntry), args.Error(1)
}

func (m *MockCollectionService) ToggleSealed(ctx context.Context, userID, setNum string, sealed bool) (*models.CollectionEntry, error) {
	args := m.Called(ctx, userID, setNum, sealed)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionEntry), args.Error(1)
}

// MockWishlistService mocks service.WishlistService
type MockWishlistService struct {
	mock.Mock
}

func (m *MockWishlistService) List(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WishlistEntry), args.Error(1)
}

func (m *MockWishlistService) Add(ctx context.Context, userID, setNum string) error {
	args := m.Called(ctx, userID, setNum)
	return args.Error(0)
}

func (m *MockWishlistService) Remove(ctx context.Context, userID, setNum string) error {
	args := m.Called(ctx, userID, setNum)
	return args.Error(0)
}

func (m *MockWishlistService) MoveToCollection(ctx context.Context, userID, setNum string) (*models.CollectionEntry, error) {
	args := m.Called(ctx, userID, setNum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionEntry), args.Error(1)
}

// MockMinifigService mocks service.MinifigService
type MockMinifigService struct {
	mock.Mock
}

func (m *MockMinifigService) ListSetMinifigs(ctx context.Context, userID, setNum string) ([]service.MinifigStatus, error) {
	args := m.Called(ctx, userID, setNum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]service.MinifigStatus), args.Error(1)
}

func (m *MockMinifigService) UpdateOwned(ctx context.Context, userID, setNum, figNum string, quantity int) (int, int, error) {
	args := m.Called(ctx, userID, setNum, figNum, quantity)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockMinifigService) BatchUpdate(ctx context.Context, userID, setNum string, items []service.MinifigQuantity) (*service.BatchResult, error) {
	args := m.Called(ctx, userID, setNum, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchResult), args.Error(1)
}

// MockMigrationService mocks service.MigrationService
type MockMigrationService struct {
	mock.Mock
}

func (m *MockMigrationService) MigrateCollection(ctx context.Context, userID string) (*service.MigrationReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.MigrationReport), args.Error(1)
}

func (m *MockMigrationService) Status(ctx context.Context, userID string) (bool, int, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Int(1), args.Error(2)
}
