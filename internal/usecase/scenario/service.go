package scenario

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
	"github.com/dealflow/dealflow-backend/internal/usecase/mortgage"
)

// CreateInput represents the input for creating a financing scenario
type CreateInput struct {
	PropertyID uuid.UUID
	Name       string
	Details    domain.ScenarioDetails
}

// View is a scenario decorated with its derived numbers. The monthly payment
// is always recomputed from the details; it is never read from storage
type View struct {
	Scenario        *domain.FinancingScenario
	LoanAmount      decimal.Decimal
	MonthlyPayment  decimal.Decimal
	TotalCashNeeded decimal.Decimal
}

// Service handles financing-scenario operations
type Service struct {
	PropertyRepo domain.PropertyRepository
	ScenarioRepo domain.ScenarioRepository
}

// NewService creates a new scenario Service instance
func NewService(propertyRepo domain.PropertyRepository, scenarioRepo domain.ScenarioRepository) *Service {
	return &Service{
		PropertyRepo: propertyRepo,
		ScenarioRepo: scenarioRepo,
	}
}

// Create validates and persists a new financing scenario for a property
func (s *Service) Create(ctx context.Context, input CreateInput) (*View, error) {
	if _, err := s.PropertyRepo.GetByID(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	details := input.Details
	if details.Version == 0 {
		details.Version = domain.ScenarioDetailsVersion
	}

	now := time.Now()
	scenario := &domain.FinancingScenario{
		ID:         uuid.New(),
		PropertyID: input.PropertyID,
		Name:       input.Name,
		Details:    details,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	if err := s.ScenarioRepo.Create(ctx, scenario); err != nil {
		return nil, err
	}
	return decorate(scenario), nil
}

// Get retrieves a scenario with its derived numbers
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	scenario, err := s.ScenarioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return decorate(scenario), nil
}

// ListByProperty retrieves all scenarios for a property with derived numbers
func (s *Service) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*View, error) {
	if _, err := s.PropertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}

	scenarios, err := s.ScenarioRepo.ListByPropertyID(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	views := make([]*View, 0, len(scenarios))
	for _, sc := range scenarios {
		views = append(views, decorate(sc))
	}
	return views, nil
}

// Update replaces a scenario's name and details
func (s *Service) Update(ctx context.Context, id uuid.UUID, name string, details domain.ScenarioDetails) (*View, error) {
	scenario, err := s.ScenarioRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if details.Version == 0 {
		details.Version = domain.ScenarioDetailsVersion
	}

	scenario.Name = name
	scenario.Details = details
	scenario.UpdatedAt = time.Now()

	if err := scenario.Validate(); err != nil {
		return nil, err
	}

	if err := s.ScenarioRepo.Update(ctx, scenario); err != nil {
		return nil, err
	}
	return decorate(scenario), nil
}

// Delete removes a scenario
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ScenarioRepo.Delete(ctx, id)
}

func decorate(sc *domain.FinancingScenario) *View {
	d := sc.Details
	loan := d.LoanAmount()
	return &View{
		Scenario:        sc,
		LoanAmount:      loan,
		MonthlyPayment:  mortgage.MonthlyPayment(loan, d.InterestRate, d.TermYears),
		TotalCashNeeded: d.TotalCashNeeded(),
	}
}
