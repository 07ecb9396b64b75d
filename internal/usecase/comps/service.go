package comps

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
	"github.com/dealflow/dealflow-backend/internal/usecase/arv"
)

// AddInput represents the input for recording a comparable sale
type AddInput struct {
	PropertyID    uuid.UUID
	Address       string
	SoldPrice     decimal.Decimal
	SquareFootage int
	SoldDate      time.Time
	DistanceMiles decimal.Decimal
}

// ARVEstimate is the comp-derived ARV for a subject property.
// HasEstimate is false when no comp carried a usable price; Value and
// ProjectedARV are meaningless in that case and stay zero
type ARVEstimate struct {
	PropertyID   uuid.UUID
	CompCount    int
	HasEstimate  bool
	Basis        arv.Basis
	Value        decimal.Decimal
	ProjectedARV decimal.Decimal
}

// Service handles comparable-sale operations
type Service struct {
	PropertyRepo domain.PropertyRepository
	CompRepo     domain.CompRepository
}

// NewService creates a new comps Service instance
func NewService(propertyRepo domain.PropertyRepository, compRepo domain.CompRepository) *Service {
	return &Service{
		PropertyRepo: propertyRepo,
		CompRepo:     compRepo,
	}
}

// Add records a comparable sale against an existing property
func (s *Service) Add(ctx context.Context, input AddInput) (*domain.Comp, error) {
	// The property must exist before comps can hang off it
	if _, err := s.PropertyRepo.GetByID(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	c := &domain.Comp{
		ID:            uuid.New(),
		PropertyID:    input.PropertyID,
		Address:       input.Address,
		SoldPrice:     input.SoldPrice,
		SquareFootage: input.SquareFootage,
		SoldDate:      input.SoldDate,
		DistanceMiles: input.DistanceMiles,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.CompRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List retrieves the comps recorded for a property
func (s *Service) List(ctx context.Context, propertyID uuid.UUID) ([]*domain.Comp, error) {
	return s.CompRepo.ListByPropertyID(ctx, propertyID)
}

// Remove deletes a comp
func (s *Service) Remove(ctx context.Context, id uuid.UUID) error {
	return s.CompRepo.Delete(ctx, id)
}

// EstimateARV derives the subject property's ARV from its comps.
// Per-sqft estimates are projected onto the property's square footage
func (s *Service) EstimateARV(ctx context.Context, propertyID uuid.UUID) (*ARVEstimate, error) {
	property, err := s.PropertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	comps, err := s.CompRepo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	result := &ARVEstimate{
		PropertyID: propertyID,
		CompCount:  len(comps),
	}

	est := arv.FromComps(comps)
	if est == nil {
		return result, nil
	}

	result.HasEstimate = true
	result.Basis = est.Basis
	result.Value = est.Value
	result.ProjectedARV = est.ProjectedValue(property.SquareFootage)
	return result, nil
}
