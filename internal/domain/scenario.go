package domain

import (
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScenarioDetailsVersion is the current version of the details record.
// Version 0 (legacy, unversioned blobs) is migrated on parse
const ScenarioDetailsVersion = 1

// FinancingScenario represents a named what-if loan configuration for a property
// Invariant: the monthly payment is always recomputed from the details,
// never stored alongside them
type FinancingScenario struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	Name       string
	Details    ScenarioDetails
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate ensures the scenario adheres to domain rules
func (s *FinancingScenario) Validate() error {
	if s.PropertyID == uuid.Nil {
		return fmt.Errorf("%w: scenario must reference a property", ErrInvalid)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: scenario name cannot be empty", ErrInvalid)
	}
	return s.Details.Validate()
}

// ScenarioDetails is the versioned, validated financing record behind a scenario
type ScenarioDetails struct {
	Version       int             `json:"version" validate:"eq=1"`
	PurchasePrice decimal.Decimal `json:"purchase_price" validate:"gte=0"`
	DownPayment   decimal.Decimal `json:"down_payment" validate:"gte=0"`
	InterestRate  decimal.Decimal `json:"interest_rate" validate:"gte=0,lte=100"` // annual percent
	TermYears     int             `json:"term_years" validate:"gte=0,lte=50"`
	ClosingCosts  decimal.Decimal `json:"closing_costs" validate:"gte=0"`
}

var detailsValidator = newDetailsValidator()

func newDetailsValidator() *validator.Validate {
	v := validator.New()
	// Teach the validator to treat decimal.Decimal as a float for gte/lte tags
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks the details record against its field constraints
func (d ScenarioDetails) Validate() error {
	if err := detailsValidator.Struct(d); err != nil {
		return fmt.Errorf("%w: invalid scenario details: %w", ErrInvalid, err)
	}
	if d.DownPayment.GreaterThan(d.PurchasePrice) {
		return fmt.Errorf("%w: down payment cannot exceed purchase price", ErrInvalid)
	}
	return nil
}

// LoanAmount is the financed portion: purchase price minus down payment
func (d ScenarioDetails) LoanAmount() decimal.Decimal {
	loan := d.PurchasePrice.Sub(d.DownPayment)
	if loan.IsNegative() {
		return decimal.Zero
	}
	return loan
}

// TotalCashNeeded is the upfront cash a scenario requires
func (d ScenarioDetails) TotalCashNeeded() decimal.Decimal {
	return d.DownPayment.Add(d.ClosingCosts)
}

// legacyScenarioDetails matches the unversioned blobs written before the
// record was formalized: camelCase keys, down payment stored as a percentage
type legacyScenarioDetails struct {
	PurchasePrice      decimal.Decimal `json:"purchasePrice"`
	DownPayment        decimal.Decimal `json:"downPayment"`
	DownPaymentPercent decimal.Decimal `json:"downPaymentPercent"`
	Rate               decimal.Decimal `json:"rate"`
	TermYears          int             `json:"termYears"`
	ClosingCosts       decimal.Decimal `json:"closingCosts"`
}

// ParseScenarioDetails decodes a raw details blob, migrating legacy
// version-0 records to the current version, and validates the result.
// Malformed or unsupported blobs are rejected here rather than surfacing
// as missing fields at read time
func ParseScenarioDetails(raw []byte) (ScenarioDetails, error) {
	if len(raw) == 0 {
		d := ScenarioDetails{Version: ScenarioDetailsVersion}
		return d, nil
	}

	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return ScenarioDetails{}, fmt.Errorf("malformed scenario details: %w", err)
	}

	var details ScenarioDetails
	switch probe.Version {
	case 0:
		var legacy legacyScenarioDetails
		if err := json.Unmarshal(raw, &legacy); err != nil {
			return ScenarioDetails{}, fmt.Errorf("malformed legacy scenario details: %w", err)
		}
		details = migrateLegacyDetails(legacy)
	case ScenarioDetailsVersion:
		if err := json.Unmarshal(raw, &details); err != nil {
			return ScenarioDetails{}, fmt.Errorf("malformed scenario details: %w", err)
		}
	default:
		return ScenarioDetails{}, fmt.Errorf("unsupported scenario details version %d", probe.Version)
	}

	if err := details.Validate(); err != nil {
		return ScenarioDetails{}, err
	}
	return details, nil
}

// migrateLegacyDetails converts a version-0 record to the current version.
// An absolute down payment wins over a percentage when both are present
func migrateLegacyDetails(legacy legacyScenarioDetails) ScenarioDetails {
	downPayment := legacy.DownPayment
	if downPayment.IsZero() && !legacy.DownPaymentPercent.IsZero() {
		downPayment = legacy.PurchasePrice.
			Mul(legacy.DownPaymentPercent).
			Div(decimal.NewFromInt(100)).
			Round(2)
	}

	return ScenarioDetails{
		Version:       ScenarioDetailsVersion,
		PurchasePrice: legacy.PurchasePrice,
		DownPayment:   downPayment,
		InterestRate:  legacy.Rate,
		TermYears:     legacy.TermYears,
		ClosingCosts:  legacy.ClosingCosts,
	}
}

// MarshalDetails encodes details for storage
func MarshalDetails(d ScenarioDetails) ([]byte, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scenario details: %w", err)
	}
	return raw, nil
}
