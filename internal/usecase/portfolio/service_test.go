package portfolio

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dealflow/dealflow-backend/internal/domain"
)

// MockPropertyRepository is a mock implementation of PropertyRepository for testing
type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) List(ctx context.Context, statusFilter domain.PropertyStatus) ([]*domain.Property, error) {
	args := m.Called(ctx, statusFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestGetSummary(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPropertyRepository)
	service := NewService(mockRepo)

	properties := []*domain.Property{
		{
			ID:            uuid.New(),
			Address:       "1420 Oakhurst Ave",
			PurchasePrice: decimal.NewFromInt(185000),
			RepairCost:    decimal.NewFromInt(42000),
			ARV:           decimal.NewFromInt(290000),
			Status:        domain.PropertyStatusUnderContract,
		},
		{
			ID:            uuid.New(),
			Address:       "88 Sycamore Dr",
			PurchasePrice: decimal.NewFromInt(120000),
			RepairCost:    decimal.NewFromInt(15000),
			ARV:           decimal.Zero, // no ARV yet: excluded from the projection
			Status:        domain.PropertyStatusLead,
		},
		{
			ID:            uuid.New(),
			Address:       "230 Elm Ct",
			PurchasePrice: decimal.NewFromInt(95000),
			RepairCost:    decimal.NewFromInt(30000),
			ARV:           decimal.NewFromInt(185000),
			Status:        domain.PropertyStatusLead,
		},
	}
	mockRepo.On("List", ctx, domain.PropertyStatus("")).Return(properties, nil)

	summary, err := service.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalProperties)
	assert.Equal(t, 2, summary.ByStatus[domain.PropertyStatusLead])
	assert.Equal(t, 1, summary.ByStatus[domain.PropertyStatusUnderContract])
	assert.True(t, summary.TotalPurchasePrice.Equal(decimal.NewFromInt(400000)))
	assert.True(t, summary.TotalRepairCost.Equal(decimal.NewFromInt(87000)))
	assert.Equal(t, 2, summary.AnalyzedProperties)

	// First property nets 29800 under default assumptions; third nets
	// 185000 - (95000+30000+5000+5000) - 185000*8% = 35200
	assert.True(t, summary.ProjectedNetProfit.Equal(decimal.NewFromInt(65000)),
		"projected: %s", summary.ProjectedNetProfit)
}

func TestGetSummary_Empty(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPropertyRepository)
	service := NewService(mockRepo)

	mockRepo.On("List", ctx, domain.PropertyStatus("")).Return([]*domain.Property{}, nil)

	summary, err := service.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 0, summary.TotalProperties)
	assert.True(t, summary.ProjectedNetProfit.IsZero())
}
