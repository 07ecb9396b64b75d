package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
)

// propertyRepository implements domain.PropertyRepository
type propertyRepository struct {
	db *DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *DB) domain.PropertyRepository {
	return &propertyRepository{db: db}
}

const propertyColumns = `
	id, address, city, state, zip_code, bedrooms, bathrooms, square_footage,
	purchase_price, arv, repair_cost, status, created_at, updated_at
`

// Create creates a new property
func (r *propertyRepository) Create(ctx context.Context, p *domain.Property) error {
	query := `
		INSERT INTO properties (` + propertyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.Bedrooms,
		p.Bathrooms.String(),
		p.SquareFootage,
		p.PurchasePrice.String(),
		p.ARV.String(),
		p.RepairCost.String(),
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	return nil
}

// GetByID retrieves a property by its ID
func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE id = $1
	`

	p, err := scanProperty(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get property by ID: %w", err)
	}

	return p, nil
}

// List retrieves properties, optionally filtered by status
func (r *propertyRepository) List(ctx context.Context, statusFilter domain.PropertyStatus) ([]*domain.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
	`
	var args []interface{}
	if statusFilter != "" {
		query += ` WHERE status = $1`
		args = append(args, string(statusFilter))
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []*domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		properties = append(properties, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating properties: %w", err)
	}

	return properties, nil
}

// Update persists the full current state of a property
func (r *propertyRepository) Update(ctx context.Context, p *domain.Property) error {
	query := `
		UPDATE properties
		SET address = $2, city = $3, state = $4, zip_code = $5, bedrooms = $6,
		    bathrooms = $7, square_footage = $8, purchase_price = $9, arv = $10,
		    repair_cost = $11, status = $12, updated_at = $13
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Address,
		p.City,
		p.State,
		p.ZipCode,
		p.Bedrooms,
		p.Bathrooms.String(),
		p.SquareFootage,
		p.PurchasePrice.String(),
		p.ARV.String(),
		p.RepairCost.String(),
		string(p.Status),
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("property %s: %w", p.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a property. Dependent comps and scenarios are removed by
// ON DELETE CASCADE on their foreign keys
func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("property %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var p domain.Property
	var bathroomsStr, purchaseStr, arvStr, repairStr string

	err := row.Scan(
		&p.ID,
		&p.Address,
		&p.City,
		&p.State,
		&p.ZipCode,
		&p.Bedrooms,
		&bathroomsStr,
		&p.SquareFootage,
		&purchaseStr,
		&arvStr,
		&repairStr,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, field := range []struct {
		name string
		raw  string
		dst  *decimal.Decimal
	}{
		{"bathrooms", bathroomsStr, &p.Bathrooms},
		{"purchase_price", purchaseStr, &p.PurchasePrice},
		{"arv", arvStr, &p.ARV},
		{"repair_cost", repairStr, &p.RepairCost},
	} {
		value, err := decimal.NewFromString(field.raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field.name, err)
		}
		*field.dst = value
	}

	return &p, nil
}
