package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
)

// compRepository implements domain.CompRepository
type compRepository struct {
	db *DB
}

// NewCompRepository creates a new comp repository
func NewCompRepository(db *DB) domain.CompRepository {
	return &compRepository{db: db}
}

// Create creates a new comp
func (r *compRepository) Create(ctx context.Context, c *domain.Comp) error {
	query := `
		INSERT INTO comps (id, property_id, address, sold_price, square_footage, sold_date, distance_miles)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.PropertyID,
		c.Address,
		c.SoldPrice.String(),
		c.SquareFootage,
		c.SoldDate,
		c.DistanceMiles.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to create comp: %w", err)
	}

	return nil
}

// ListByPropertyID retrieves all comps for a property, most recent sale first
func (r *compRepository) ListByPropertyID(ctx context.Context, propertyID uuid.UUID) ([]*domain.Comp, error) {
	query := `
		SELECT id, property_id, address, sold_price, square_footage, sold_date, distance_miles
		FROM comps
		WHERE property_id = $1
		ORDER BY sold_date DESC
	`

	rows, err := r.db.QueryContext(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comps: %w", err)
	}
	defer rows.Close()

	var comps []*domain.Comp
	for rows.Next() {
		var c domain.Comp
		var soldPriceStr, distanceStr string

		err := rows.Scan(
			&c.ID,
			&c.PropertyID,
			&c.Address,
			&soldPriceStr,
			&c.SquareFootage,
			&c.SoldDate,
			&distanceStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comp: %w", err)
		}

		c.SoldPrice, err = decimal.NewFromString(soldPriceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse sold_price: %w", err)
		}
		c.DistanceMiles, err = decimal.NewFromString(distanceStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse distance_miles: %w", err)
		}

		comps = append(comps, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comps: %w", err)
	}

	return comps, nil
}

// Delete removes a comp
func (r *compRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comps WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comp: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("comp %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
