package domain

import (
	"context"

	"github.com/google/uuid"
)

// PropertyRepository defines the interface for property persistence operations
type PropertyRepository interface {
	// Create creates a new property
	Create(ctx context.Context, p *Property) error

	// GetByID retrieves a property by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Property, error)

	// List retrieves properties, optionally filtered by status
	// If statusFilter is empty, returns all properties
	List(ctx context.Context, statusFilter PropertyStatus) ([]*Property, error)

	// Update persists the full current state of a property
	Update(ctx context.Context, p *Property) error

	// Delete removes a property and its dependent rows
	Delete(ctx context.Context, id uuid.UUID) error
}

// CompRepository defines the interface for comparable-sale persistence operations
type CompRepository interface {
	// Create creates a new comp
	Create(ctx context.Context, c *Comp) error

	// ListByPropertyID retrieves all comps for a property, most recent sale first
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*Comp, error)

	// Delete removes a comp
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScenarioRepository defines the interface for financing-scenario persistence operations
type ScenarioRepository interface {
	// Create creates a new financing scenario
	Create(ctx context.Context, s *FinancingScenario) error

	// GetByID retrieves a scenario by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*FinancingScenario, error)

	// ListByPropertyID retrieves all scenarios for a property, oldest first
	ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*FinancingScenario, error)

	// Update persists the scenario's name and details
	Update(ctx context.Context, s *FinancingScenario) error

	// Delete removes a scenario
	Delete(ctx context.Context, id uuid.UUID) error
}
