package http

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dealflow/dealflow-backend/internal/domain"
	"github.com/dealflow/dealflow-backend/internal/usecase/analysis"
	"github.com/dealflow/dealflow-backend/internal/usecase/comps"
	"github.com/dealflow/dealflow-backend/internal/usecase/portfolio"
	"github.com/dealflow/dealflow-backend/internal/usecase/scenario"
)

// Monetary values cross the wire as decimal strings, matching how they are
// stored. decimal.Decimal marshals that way by default

type createPropertyRequest struct {
	Address       string          `json:"address" binding:"required"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	ZipCode       string          `json:"zip_code"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     decimal.Decimal `json:"bathrooms"`
	SquareFootage int             `json:"square_footage"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ARV           decimal.Decimal `json:"arv"`
	RepairCost    decimal.Decimal `json:"repair_cost"`
	Status        string          `json:"status"`
}

type updatePropertyRequest struct {
	Address       *string          `json:"address"`
	City          *string          `json:"city"`
	State         *string          `json:"state"`
	ZipCode       *string          `json:"zip_code"`
	Bedrooms      *int             `json:"bedrooms"`
	Bathrooms     *decimal.Decimal `json:"bathrooms"`
	SquareFootage *int             `json:"square_footage"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	ARV           *decimal.Decimal `json:"arv"`
	RepairCost    *decimal.Decimal `json:"repair_cost"`
	Status        *string          `json:"status"`
}

func (r updatePropertyRequest) toPatch() domain.PropertyPatch {
	patch := domain.PropertyPatch{
		Address:       r.Address,
		City:          r.City,
		State:         r.State,
		ZipCode:       r.ZipCode,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		SquareFootage: r.SquareFootage,
		PurchasePrice: r.PurchasePrice,
		ARV:           r.ARV,
		RepairCost:    r.RepairCost,
	}
	if r.Status != nil {
		status := domain.PropertyStatus(*r.Status)
		patch.Status = &status
	}
	return patch
}

type propertyResponse struct {
	ID            uuid.UUID       `json:"id"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	ZipCode       string          `json:"zip_code"`
	Bedrooms      int             `json:"bedrooms"`
	Bathrooms     decimal.Decimal `json:"bathrooms"`
	SquareFootage int             `json:"square_footage"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	ARV           decimal.Decimal `json:"arv"`
	RepairCost    decimal.Decimal `json:"repair_cost"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toPropertyResponse(p *domain.Property) propertyResponse {
	return propertyResponse{
		ID:            p.ID,
		Address:       p.Address,
		City:          p.City,
		State:         p.State,
		ZipCode:       p.ZipCode,
		Bedrooms:      p.Bedrooms,
		Bathrooms:     p.Bathrooms,
		SquareFootage: p.SquareFootage,
		PurchasePrice: p.PurchasePrice,
		ARV:           p.ARV,
		RepairCost:    p.RepairCost,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type addCompRequest struct {
	Address       string          `json:"address"`
	SoldPrice     decimal.Decimal `json:"sold_price"`
	SquareFootage int             `json:"square_footage"`
	SoldDate      time.Time       `json:"sold_date"`
	DistanceMiles decimal.Decimal `json:"distance_miles"`
}

type compResponse struct {
	ID            uuid.UUID       `json:"id"`
	PropertyID    uuid.UUID       `json:"property_id"`
	Address       string          `json:"address"`
	SoldPrice     decimal.Decimal `json:"sold_price"`
	SquareFootage int             `json:"square_footage"`
	SoldDate      time.Time       `json:"sold_date"`
	DistanceMiles decimal.Decimal `json:"distance_miles"`
}

func toCompResponse(c *domain.Comp) compResponse {
	return compResponse{
		ID:            c.ID,
		PropertyID:    c.PropertyID,
		Address:       c.Address,
		SoldPrice:     c.SoldPrice,
		SquareFootage: c.SquareFootage,
		SoldDate:      c.SoldDate,
		DistanceMiles: c.DistanceMiles,
	}
}

type arvEstimateResponse struct {
	PropertyID   uuid.UUID       `json:"property_id"`
	CompCount    int             `json:"comp_count"`
	HasEstimate  bool            `json:"has_estimate"`
	Basis        string          `json:"basis,omitempty"`
	Value        decimal.Decimal `json:"value"`
	ProjectedARV decimal.Decimal `json:"projected_arv"`
}

func toARVEstimateResponse(e *comps.ARVEstimate) arvEstimateResponse {
	return arvEstimateResponse{
		PropertyID:   e.PropertyID,
		CompCount:    e.CompCount,
		HasEstimate:  e.HasEstimate,
		Basis:        string(e.Basis),
		Value:        e.Value,
		ProjectedARV: e.ProjectedARV,
	}
}

// flipAssumptionsRequest carries optional overrides; nil fields keep the
// default assumptions
type flipAssumptionsRequest struct {
	SellingCostRate *decimal.Decimal `json:"selling_cost_rate"`
	ClosingCosts    *decimal.Decimal `json:"closing_costs"`
	HoldingCosts    *decimal.Decimal `json:"holding_costs"`
}

func (r *flipAssumptionsRequest) apply(a domain.FlipAssumptions) domain.FlipAssumptions {
	if r == nil {
		return a
	}
	if r.SellingCostRate != nil {
		a.SellingCostRate = *r.SellingCostRate
	}
	if r.ClosingCosts != nil {
		a.ClosingCosts = *r.ClosingCosts
	}
	if r.HoldingCosts != nil {
		a.HoldingCosts = *r.HoldingCosts
	}
	return a
}

type flipAnalysisRequest struct {
	Assumptions *flipAssumptionsRequest `json:"assumptions"`
}

type flipAnalysisResponse struct {
	PropertyID            uuid.UUID       `json:"property_id"`
	ARV                   decimal.Decimal `json:"arv"`
	ARVSource             string          `json:"arv_source"`
	TotalInvestment       decimal.Decimal `json:"total_investment"`
	SellingCosts          decimal.Decimal `json:"selling_costs"`
	GrossProfit           decimal.Decimal `json:"gross_profit"`
	NetProfit             decimal.Decimal `json:"net_profit"`
	ROI                   decimal.Decimal `json:"roi"`
	MaximumAllowableOffer decimal.Decimal `json:"maximum_allowable_offer"`
}

func toFlipAnalysisResponse(a *analysis.FlipAnalysis) flipAnalysisResponse {
	return flipAnalysisResponse{
		PropertyID:            a.PropertyID,
		ARV:                   a.ARV,
		ARVSource:             string(a.ARVSource),
		TotalInvestment:       a.Metrics.TotalInvestment,
		SellingCosts:          a.Metrics.SellingCosts,
		GrossProfit:           a.Metrics.GrossProfit,
		NetProfit:             a.Metrics.NetProfit,
		ROI:                   a.Metrics.ROI,
		MaximumAllowableOffer: a.Metrics.MaximumAllowableOffer,
	}
}

// rentalAssumptionsRequest carries optional overrides; nil fields keep the
// default assumptions
type rentalAssumptionsRequest struct {
	VacancyRate     *decimal.Decimal `json:"vacancy_rate"`
	ManagementRate  *decimal.Decimal `json:"management_rate"`
	MaintenanceRate *decimal.Decimal `json:"maintenance_rate"`
	InsuranceAnnual *decimal.Decimal `json:"insurance_annual"`
	TaxAnnual       *decimal.Decimal `json:"tax_annual"`
	HOAMonthly      *decimal.Decimal `json:"hoa_monthly"`
	LoanAmount      *decimal.Decimal `json:"loan_amount"`
	InterestRate    *decimal.Decimal `json:"interest_rate"`
	TermYears       *int             `json:"term_years"`
}

func (r *rentalAssumptionsRequest) apply(a domain.RentalAssumptions) domain.RentalAssumptions {
	if r == nil {
		return a
	}
	if r.VacancyRate != nil {
		a.VacancyRate = *r.VacancyRate
	}
	if r.ManagementRate != nil {
		a.ManagementRate = *r.ManagementRate
	}
	if r.MaintenanceRate != nil {
		a.MaintenanceRate = *r.MaintenanceRate
	}
	if r.InsuranceAnnual != nil {
		a.InsuranceAnnual = *r.InsuranceAnnual
	}
	if r.TaxAnnual != nil {
		a.TaxAnnual = *r.TaxAnnual
	}
	if r.HOAMonthly != nil {
		a.HOAMonthly = *r.HOAMonthly
	}
	if r.LoanAmount != nil {
		a.LoanAmount = *r.LoanAmount
	}
	if r.InterestRate != nil {
		a.InterestRate = *r.InterestRate
	}
	if r.TermYears != nil {
		a.TermYears = *r.TermYears
	}
	return a
}

type rentalAnalysisRequest struct {
	MonthlyRent decimal.Decimal           `json:"monthly_rent"`
	DownPayment *decimal.Decimal          `json:"down_payment"`
	Assumptions *rentalAssumptionsRequest `json:"assumptions"`
}

type rentalAnalysisResponse struct {
	PropertyID          uuid.UUID       `json:"property_id"`
	PropertyValue       decimal.Decimal `json:"property_value"`
	DownPayment         decimal.Decimal `json:"down_payment"`
	HasRentalData       bool            `json:"has_rental_data"`
	MonthlyExpenses     decimal.Decimal `json:"monthly_expenses"`
	MonthlyMortgage     decimal.Decimal `json:"monthly_mortgage"`
	MonthlyCashFlow     decimal.Decimal `json:"monthly_cash_flow"`
	AnnualCashFlow      decimal.Decimal `json:"annual_cash_flow"`
	CapRate             decimal.Decimal `json:"cap_rate"`
	CashOnCashReturn    decimal.Decimal `json:"cash_on_cash_return"`
	GrossRentMultiplier decimal.Decimal `json:"gross_rent_multiplier"`
}

func toRentalAnalysisResponse(a *analysis.RentalAnalysis) rentalAnalysisResponse {
	return rentalAnalysisResponse{
		PropertyID:          a.PropertyID,
		PropertyValue:       a.PropertyValue,
		DownPayment:         a.DownPayment,
		HasRentalData:       a.Metrics.HasRentalData,
		MonthlyExpenses:     a.Metrics.MonthlyExpenses,
		MonthlyMortgage:     a.Metrics.MonthlyMortgage,
		MonthlyCashFlow:     a.Metrics.MonthlyCashFlow,
		AnnualCashFlow:      a.Metrics.AnnualCashFlow,
		CapRate:             a.Metrics.CapRate,
		CashOnCashReturn:    a.Metrics.CashOnCashReturn,
		GrossRentMultiplier: a.Metrics.GrossRentMultiplier,
	}
}

type createScenarioRequest struct {
	Name    string                 `json:"name" binding:"required"`
	Details domain.ScenarioDetails `json:"details"`
}

type updateScenarioRequest struct {
	Name    string                 `json:"name" binding:"required"`
	Details domain.ScenarioDetails `json:"details"`
}

type scenarioResponse struct {
	ID              uuid.UUID              `json:"id"`
	PropertyID      uuid.UUID              `json:"property_id"`
	Name            string                 `json:"name"`
	Details         domain.ScenarioDetails `json:"details"`
	LoanAmount      decimal.Decimal        `json:"loan_amount"`
	MonthlyPayment  decimal.Decimal        `json:"monthly_payment"`
	TotalCashNeeded decimal.Decimal        `json:"total_cash_needed"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func toScenarioResponse(v *scenario.View) scenarioResponse {
	return scenarioResponse{
		ID:              v.Scenario.ID,
		PropertyID:      v.Scenario.PropertyID,
		Name:            v.Scenario.Name,
		Details:         v.Scenario.Details,
		LoanAmount:      v.LoanAmount,
		MonthlyPayment:  v.MonthlyPayment,
		TotalCashNeeded: v.TotalCashNeeded,
		CreatedAt:       v.Scenario.CreatedAt,
		UpdatedAt:       v.Scenario.UpdatedAt,
	}
}

type portfolioSummaryResponse struct {
	TotalProperties    int             `json:"total_properties"`
	ByStatus           map[string]int  `json:"by_status"`
	TotalPurchasePrice decimal.Decimal `json:"total_purchase_price"`
	TotalRepairCost    decimal.Decimal `json:"total_repair_cost"`
	ProjectedNetProfit decimal.Decimal `json:"projected_net_profit"`
	AnalyzedProperties int             `json:"analyzed_properties"`
}

func toPortfolioSummaryResponse(s *portfolio.Summary) portfolioSummaryResponse {
	byStatus := make(map[string]int, len(s.ByStatus))
	for status, count := range s.ByStatus {
		byStatus[string(status)] = count
	}
	return portfolioSummaryResponse{
		TotalProperties:    s.TotalProperties,
		ByStatus:           byStatus,
		TotalPurchasePrice: s.TotalPurchasePrice,
		TotalRepairCost:    s.TotalRepairCost,
		ProjectedNetProfit: s.ProjectedNetProfit,
		AnalyzedProperties: s.AnalyzedProperties,
	}
}
