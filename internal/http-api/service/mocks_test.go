package service

import (
	"context"

	"brickhub/internal/http-api/models"
	"brickhub/internal/http-api/repository"

	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockTxManager runs the callback directly, no database involved.
type MockTxManager struct{}

func (m *MockTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

// MockCollectionRepository mocks repository.CollectionRepository
type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) WithTx(tx *gorm.DB) repository.CollectionRepository {
	return m
}

func (m *MockCollectionRepository) Get(ctx context.Context, userID, setNum string) (*models.CollectionEntry, error) {
	args := m.Called(ctx, userID, setNum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CollectionEntry), args.Error(1)
}

func (m *MockCollectionRepository) List(ctx context.Context, userID string) ([]models.CollectionEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CollectionEntry), args.Error(1)
}

func (m *MockCollectionRepository) Create(ctx context.Context, entry *models.CollectionEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCollectionRepository) Update(ctx context.Context, entry *models.CollectionEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, userID, setNum string) (bool, error) {
	args := m.Called(ctx, userID, setNum)
	return args.Bool(0), args.Error(1)
}

// MockWishlistRepository mocks repository.WishlistRepository
type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) WithTx(tx *gorm.DB) repository.WishlistRepository {
	return m
}

func (m *MockWishlistRepository) Exists(ctx context.Context, userID, setNum string) (bool, error) {
	args := m.Called(ctx, userID, setNum)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) Add(ctx context.Context, userID, setNum string) error {
	args := m.Called(ctx, userID, setNum)
	return args.Error(0)
}

func (m *MockWishlistRepository) Remove(ctx context.Context, userID, setNum string) (bool, error) {
	args := m.Called(ctx, userID, setNum)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) List(ctx context.Context, userID string) ([]models.WishlistEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.WishlistEntry), args.Error(1)
}

// MockMinifigLedgerRepository mocks repository.MinifigLedgerRepository
type MockMinifigLedgerRepository struct {
	mock.Mock
}

func (m *MockMinifigLedgerRepository) WithTx(tx *gorm.DB) repository.MinifigLedgerRepository {
	return m
}

func (m *MockMinifigLedgerRepository) ListBySet(ctx context.Context, userID, setNum string) ([]models.MinifigOwnership, error) {
	args := m.Called(ctx, userID, setNum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MinifigOwnership), args.Error(1)
}

func (m *MockMinifigLedgerRepository) CountBySet(ctx context.Context, userID, setNum string) (int64, error) {
	args := m.Called(ctx, userID, setNum)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMinifigLedgerRepository) Accumulate(ctx context.Context, userID, setNum, figNum string, delta int) error {
	args := m.Called(ctx, userID, setNum, figNum, delta)
	return args.Error(0)
}

func (m *MockMinifigLedgerRepository) SetQuantity(ctx context.Context, userID, setNum, figNum string, quantity int) error {
	args := m.Called(ctx, userID, setNum, figNum, quantity)
	return args.Error(0)
}

func (m *MockMinifigLedgerRepository) Delete(ctx context.Context, userID, setNum, figNum string) error {
	args := m.Called(ctx, userID, setNum, figNum)
	return args.Error(0)
}

func (m *MockMinifigLedgerRepository) DeleteBySet(ctx context.Context, userID, setNum string) error {
	args := m.Called(ctx, userID, setNum)
	return args.Error(0)
}

// MockCatalogRepository mocks repository.CatalogRepository
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) GetSet(ctx context.Context, setNum string) (*models.Set, error) {
	args := m.Called(ctx, setNum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Set), args.Error(1)
}

func (m *MockCatalogRepository) Composition(ctx context.Context, setNum string) ([]models.SetFigure, error) {
	args := m.Called(ctx, setNum)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SetFigure), args.Error(1)
}

// MockAuditRepository mocks repository.AuditRepository
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) Record(ctx context.Context, userID, action, setNum, detail string) error {
	args := m.Called(ctx, userID, action, setNum, detail)
	return args.Error(0)
}

// relaxedAudit returns an audit mock that accepts anything.
func relaxedAudit() *MockAuditRepository {
	auditRepo := new(MockAuditRepository)
	auditRepo.On("Record", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Maybe()
	return auditRepo
}
