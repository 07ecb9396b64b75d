package property

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
	"github.com/dealflow/dealflow-backend/internal/store"
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

func newTestService(repo domain.PropertyRepository) (*Service, *store.Store) {
	st := store.New(repo, 10*time.Millisecond)
	return NewService(st), st
}

func TestCreate_DefaultsAndPersists(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPropertyRepository)
	service, st := newTestService(mockRepo)
	defer st.Close()

	var created *domain.Property
	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Property) bool {
		created = p
		return true
	})).Return(nil)

	p, err := service.Create(ctx, CreateInput{
		Address:       "1420 Oakhurst Ave",
		City:          "Fort Worth",
		State:         "TX",
		ZipCode:       "76111",
		Bedrooms:      3,
		Bathrooms:     decimal.NewFromFloat(2.0),
		SquareFootage: 1650,
		PurchasePrice: decimal.NewFromInt(185000),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, domain.PropertyStatusLead, p.Status, "status defaults to LEAD")
	assert.False(t, p.CreatedAt.IsZero())
	require.NotNil(t, created)
	assert.Equal(t, p.ID, created.ID)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPropertyRepository)
	service, st := newTestService(mockRepo)
	defer st.Close()

	_, err := service.Create(ctx, CreateInput{Address: ""})
	assert.ErrorContains(t, err, "address cannot be empty")

	_, err = service.Create(ctx, CreateInput{
		Address:       "1 Main St",
		PurchasePrice: decimal.NewFromInt(-1),
	})
	assert.ErrorContains(t, err, "purchase price cannot be negative")

	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdate_ReturnsPatchedSnapshotAndPending(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPropertyRepository)
	service, st := newTestService(mockRepo)
	defer st.Close()

	id := uuid.New()
	existing := &domain.Property{
		ID:            id,
		Address:       "1420 Oakhurst Ave",
		PurchasePrice: decimal.NewFromInt(185000),
		Status:        domain.PropertyStatusLead,
	}
	mockRepo.On("GetByID", mock.Anything, id).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	status := domain.PropertyStatusUnderContract
	snap, pending, err := service.Update(ctx, id, domain.PropertyPatch{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.PropertyStatusUnderContract, snap.Status)

	waitCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	require.NoError(t, pending.Wait(waitCtx))
	mockRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestDelete_Passthrough(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPropertyRepository)
	service, st := newTestService(mockRepo)
	defer st.Close()

	id := uuid.New()
	mockRepo.On("Delete", ctx, id).Return(nil)

	require.NoError(t, service.Delete(ctx, id))
	mockRepo.AssertCalled(t, "Delete", ctx, id)
}
