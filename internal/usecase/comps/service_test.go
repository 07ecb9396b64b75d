package comps

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dealflow/dealflow-backend/internal/domain"
	"github.com/dealflow/dealflow-backend/internal/usecase/arv"
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

// MockCompRepository is a mock implementation of CompRepository for testing
type MockCompRepository struct {
	mock.Mock
}

func (m *MockCompRepository) Create(ctx context.Context, c *domain.Comp) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCompRepository) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*domain.Comp, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Comp), args.Error(1)
}

func (m *MockCompRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func subjectProperty(id uuid.UUID) *domain.Property {
	return &domain.Property{
		ID:            id,
		Address:       "1420 Oakhurst Ave",
		SquareFootage: 1600,
		Status:        domain.PropertyStatusAnalyzing,
	}
}

func TestAdd_RequiresExistingProperty(t *testing.T) {
	ctx := context.Background()
	mockPropertyRepo := new(MockPropertyRepository)
	mockCompRepo := new(MockCompRepository)
	service := NewService(mockPropertyRepo, mockCompRepo)

	propertyID := uuid.New()
	mockPropertyRepo.On("GetByID", ctx, propertyID).Return(nil, assert.AnError)

	_, err := service.Add(ctx, AddInput{
		PropertyID: propertyID,
		SoldPrice:  decimal.NewFromInt(275000),
	})
	assert.Error(t, err)
	mockCompRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAdd_CreatesComp(t *testing.T) {
	ctx := context.Background()
	mockPropertyRepo := new(MockPropertyRepository)
	mockCompRepo := new(MockCompRepository)
	service := NewService(mockPropertyRepo, mockCompRepo)

	propertyID := uuid.New()
	mockPropertyRepo.On("GetByID", ctx, propertyID).Return(subjectProperty(propertyID), nil)
	mockCompRepo.On("Create", ctx, mock.MatchedBy(func(c *domain.Comp) bool {
		return c.PropertyID == propertyID && c.SoldPrice.Equal(decimal.NewFromInt(275000))
	})).Return(nil)

	c, err := service.Add(ctx, AddInput{
		PropertyID:    propertyID,
		Address:       "1428 Oakhurst Ave",
		SoldPrice:     decimal.NewFromInt(275000),
		SquareFootage: 1580,
		SoldDate:      time.Now().AddDate(0, -2, 0),
		DistanceMiles: decimal.NewFromFloat(0.3),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, c.ID)
	mockCompRepo.AssertNumberOfCalls(t, "Create", 1)
}

func TestEstimateARV_ProjectsPerSquareFoot(t *testing.T) {
	ctx := context.Background()
	mockPropertyRepo := new(MockPropertyRepository)
	mockCompRepo := new(MockCompRepository)
	service := NewService(mockPropertyRepo, mockCompRepo)

	propertyID := uuid.New()
	mockPropertyRepo.On("GetByID", ctx, propertyID).Return(subjectProperty(propertyID), nil)
	mockCompRepo.On("ListByPropertyID", ctx, propertyID).Return([]*domain.Comp{
		{SoldPrice: decimal.NewFromInt(300000), SquareFootage: 1500}, // 200/sqft
		{SoldPrice: decimal.NewFromInt(250000), SquareFootage: 1000}, // 250/sqft
	}, nil)

	est, err := service.EstimateARV(ctx, propertyID)
	require.NoError(t, err)

	assert.True(t, est.HasEstimate)
	assert.Equal(t, arv.BasisPricePerSquareFoot, est.Basis)
	assert.Equal(t, 2, est.CompCount)
	assert.True(t, est.Value.Equal(decimal.NewFromInt(225)))
	// 225/sqft across the subject's 1600 sqft
	assert.True(t, est.ProjectedARV.Equal(decimal.NewFromInt(360000)), "projected: %s", est.ProjectedARV)
}

func TestEstimateARV_NoUsableComps(t *testing.T) {
	ctx := context.Background()
	mockPropertyRepo := new(MockPropertyRepository)
	mockCompRepo := new(MockCompRepository)
	service := NewService(mockPropertyRepo, mockCompRepo)

	propertyID := uuid.New()
	mockPropertyRepo.On("GetByID", ctx, propertyID).Return(subjectProperty(propertyID), nil)
	mockCompRepo.On("ListByPropertyID", ctx, propertyID).Return([]*domain.Comp{
		{SoldPrice: decimal.Zero, SquareFootage: 1500},
	}, nil)

	est, err := service.EstimateARV(ctx, propertyID)
	require.NoError(t, err)

	// No estimate rather than a misleading $0 ARV
	assert.False(t, est.HasEstimate)
	assert.True(t, est.Value.IsZero())
	assert.Equal(t, 1, est.CompCount)
}
