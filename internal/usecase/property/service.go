package property

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
	"github.com/dealflow/dealflow-backend/internal/store"
)

// CreateInput represents the input for tracking a new property
type CreateInput struct {
	Address       string
	City          string
	State         string
	ZipCode       string
	Bedrooms      int
	Bathrooms     decimal.Decimal
	SquareFootage int
	PurchasePrice decimal.Decimal
	ARV           decimal.Decimal
	RepairCost    decimal.Decimal
	Status        domain.PropertyStatus // defaults to LEAD when empty
}

// Service handles property lifecycle operations through the state container,
// so every caller sees the same optimistic state and change feed
type Service struct {
	Store *store.Store
}

// NewService creates a new property Service instance
func NewService(s *store.Store) *Service {
	return &Service{Store: s}
}

// Create validates and persists a new property
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Property, error) {
	status := input.Status
	if status == "" {
		status = domain.PropertyStatusLead
	}

	now := time.Now()
	p := &domain.Property{
		ID:            uuid.New(),
		Address:       input.Address,
		City:          input.City,
		State:         input.State,
		ZipCode:       input.ZipCode,
		Bedrooms:      input.Bedrooms,
		Bathrooms:     input.Bathrooms,
		SquareFootage: input.SquareFootage,
		PurchasePrice: input.PurchasePrice,
		ARV:           input.ARV,
		RepairCost:    input.RepairCost,
		Status:        status,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.Store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get retrieves a property by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	return s.Store.Get(ctx, id)
}

// List retrieves properties, optionally filtered by status
func (s *Service) List(ctx context.Context, statusFilter domain.PropertyStatus) ([]*domain.Property, error) {
	return s.Store.List(ctx, statusFilter)
}

// Update applies a partial update. The returned snapshot reflects the patch
// immediately; the pending handle resolves once the coalesced write lands
func (s *Service) Update(ctx context.Context, id uuid.UUID, patch domain.PropertyPatch) (*domain.Property, *store.Pending, error) {
	return s.Store.Apply(ctx, id, patch)
}

// Delete removes a property
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.Store.Delete(ctx, id)
}
