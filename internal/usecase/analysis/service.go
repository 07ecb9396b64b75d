package analysis

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
	"github.com/dealflow/dealflow-backend/internal/usecase/arv"
)

// ARVSource records where the ARV used in a flip analysis came from
type ARVSource string

const (
	ARVSourceProperty ARVSource = "PROPERTY" // the property's own ARV field
	ARVSourceComps    ARVSource = "COMPS"    // estimated from comparable sales
	ARVSourceNone     ARVSource = "NONE"     // no ARV available, analysis ran against 0
)

// FlipAnalysis is a flip calculation resolved against a stored property
type FlipAnalysis struct {
	PropertyID uuid.UUID
	ARV        decimal.Decimal
	ARVSource  ARVSource
	Metrics    FlipMetrics
}

// RentalAnalysis is a rental calculation resolved against a stored property
type RentalAnalysis struct {
	PropertyID    uuid.UUID
	PropertyValue decimal.Decimal
	DownPayment   decimal.Decimal
	Metrics       RentalMetrics
}

// RentalRequest carries the caller-supplied side of a rental analysis
// Nil optional fields fall back to defaults derived from the property
type RentalRequest struct {
	MonthlyRent decimal.Decimal
	DownPayment *decimal.Decimal
	Assumptions *domain.RentalAssumptions
}

// Service resolves analyses against stored properties and their comps
type Service struct {
	PropertyRepo domain.PropertyRepository
	CompRepo     domain.CompRepository
}

// NewService creates a new analysis Service instance
func NewService(propertyRepo domain.PropertyRepository, compRepo domain.CompRepository) *Service {
	return &Service{
		PropertyRepo: propertyRepo,
		CompRepo:     compRepo,
	}
}

// AnalyzeFlip runs a flip analysis for a property
// The property's own ARV is used when set; otherwise the comp-based estimate
// is projected onto the property's square footage. With neither available the
// analysis still runs (against a 0 ARV) and reports ARVSource NONE
func (s *Service) AnalyzeFlip(ctx context.Context, propertyID uuid.UUID, assumptions *domain.FlipAssumptions) (*FlipAnalysis, error) {
	property, err := s.PropertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	a := domain.DefaultFlipAssumptions()
	if assumptions != nil {
		a = *assumptions
	}

	arvValue := property.ARV
	source := ARVSourceProperty

	if !arvValue.IsPositive() {
		comps, err := s.CompRepo.ListByPropertyID(ctx, propertyID)
		if err != nil {
			return nil, fmt.Errorf("failed to list comps for ARV fallback: %w", err)
		}

		if est := arv.FromComps(comps); est != nil {
			arvValue = est.ProjectedValue(property.SquareFootage)
			source = ARVSourceComps
		} else {
			arvValue = decimal.Zero
			source = ARVSourceNone
		}
	}

	metrics := CalculateFlip(FlipInput{
		PurchasePrice: property.PurchasePrice,
		RepairCost:    property.RepairCost,
		ARV:           arvValue,
	}, a)

	return &FlipAnalysis{
		PropertyID: propertyID,
		ARV:        arvValue,
		ARVSource:  source,
		Metrics:    metrics,
	}, nil
}

// AnalyzeRental runs a rental analysis for a property
// Property value comes from the purchase price, falling back to the ARV for
// properties tracked without one. Down payment defaults to the non-financed
// portion of the property value under the request's loan assumptions
func (s *Service) AnalyzeRental(ctx context.Context, propertyID uuid.UUID, req RentalRequest) (*RentalAnalysis, error) {
	property, err := s.PropertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	a := domain.DefaultRentalAssumptions()
	if req.Assumptions != nil {
		a = *req.Assumptions
	}

	propertyValue := property.PurchasePrice
	if !propertyValue.IsPositive() {
		propertyValue = property.ARV
	}

	var downPayment decimal.Decimal
	if req.DownPayment != nil {
		downPayment = *req.DownPayment
	} else {
		downPayment = propertyValue.Sub(a.LoanAmount)
		if downPayment.IsNegative() {
			downPayment = decimal.Zero
		}
	}

	metrics := CalculateRental(RentalInput{
		MonthlyRent:   req.MonthlyRent,
		PropertyValue: propertyValue,
		DownPayment:   downPayment,
	}, a)

	return &RentalAnalysis{
		PropertyID:    propertyID,
		PropertyValue: propertyValue,
		DownPayment:   downPayment,
		Metrics:       metrics,
	}, nil
}
