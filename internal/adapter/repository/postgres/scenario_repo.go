package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dealflow/dealflow-backend/internal/domain"
)

// scenarioRepository implements domain.ScenarioRepository.
// Details are stored as a versioned JSONB blob and run through
// domain.ParseScenarioDetails on every read, so legacy rows are
// migrated transparently
type scenarioRepository struct {
	db *DB
}

// NewScenarioRepository creates a new scenario repository
func NewScenarioRepository(db *DB) domain.ScenarioRepository {
	return &scenarioRepository{db: db}
}

// Create creates a new financing scenario
func (r *scenarioRepository) Create(ctx context.Context, s *domain.FinancingScenario) error {
	raw, err := domain.MarshalDetails(s.Details)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO scenarios (id, property_id, name, details, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.ExecContext(ctx, query,
		s.ID,
		s.PropertyID,
		s.Name,
		raw,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create scenario: %w", err)
	}

	return nil
}

// GetByID retrieves a scenario by its ID
func (r *scenarioRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.FinancingScenario, error) {
	query := `
		SELECT id, property_id, name, details, created_at, updated_at
		FROM scenarios
		WHERE id = $1
	`

	s, err := scanScenario(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("scenario %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get scenario by ID: %w", err)
	}

	return s, nil
}

// ListByPropertyID retrieves all scenarios for a property, oldest first
func (r *scenarioRepository) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*domain.FinancingScenario, error) {
	query := `
		SELECT id, property_id, name, details, created_at, updated_at
		FROM scenarios
		WHERE property_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scenarios: %w", err)
	}
	defer rows.Close()

	var scenarios []*domain.FinancingScenario
	for rows.Next() {
		s, err := scanScenario(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		scenarios = append(scenarios, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scenarios: %w", err)
	}

	return scenarios, nil
}

// Update persists the scenario's name and details
func (r *scenarioRepository) Update(ctx context.Context, s *domain.FinancingScenario) error {
	raw, err := domain.MarshalDetails(s.Details)
	if err != nil {
		return err
	}

	query := `
		UPDATE scenarios
		SET name = $2, details = $3, updated_at = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, s.ID, s.Name, raw, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update scenario: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("scenario %s: %w", s.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a scenario
func (r *scenarioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM scenarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scenario: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("scenario %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

func scanScenario(row rowScanner) (*domain.FinancingScenario, error) {
	var s domain.FinancingScenario
	var raw []byte

	err := row.Scan(
		&s.ID,
		&s.PropertyID,
		&s.Name,
		&raw,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.Details, err = domain.ParseScenarioDetails(raw)
	if err != nil {
		return nil, err
	}

	return &s, nil
}
