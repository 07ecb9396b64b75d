// Package http exposes the deal pipeline over a JSON REST API plus a
// WebSocket change feed.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dealflow/dealflow-backend/internal/domain"
	"github.com/dealflow/dealflow-backend/internal/usecase/analysis"
	"github.com/dealflow/dealflow-backend/internal/usecase/comps"
	"github.com/dealflow/dealflow-backend/internal/usecase/portfolio"
	"github.com/dealflow/dealflow-backend/internal/usecase/property"
	"github.com/dealflow/dealflow-backend/internal/usecase/scenario"
)

// Handler holds the use case services the API dispatches into
type Handler struct {
	Properties *property.Service
	Comps      *comps.Service
	Scenarios  *scenario.Service
	Analysis   *analysis.Service
	Portfolio  *portfolio.Service
}

// NewHandler creates a new Handler instance
func NewHandler(
	properties *property.Service,
	compsService *comps.Service,
	scenarios *scenario.Service,
	analysisService *analysis.Service,
	portfolioService *portfolio.Service,
) *Handler {
	return &Handler{
		Properties: properties,
		Comps:      compsService,
		Scenarios:  scenarios,
		Analysis:   analysisService,
		Portfolio:  portfolioService,
	}
}

// NewRouter builds the gin engine: an authenticated /api/v1 group plus an
// open health endpoint
func NewRouter(h *Handler, hub *Hub, apiToken string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1", AuthMiddleware(apiToken))

	api.POST("/properties", h.createProperty)
	api.GET("/properties", h.listProperties)
	api.GET("/properties/:id", h.getProperty)
	api.PATCH("/properties/:id", h.updateProperty)
	api.DELETE("/properties/:id", h.deleteProperty)

	api.POST("/properties/:id/comps", h.addComp)
	api.GET("/properties/:id/comps", h.listComps)
	api.DELETE("/comps/:id", h.deleteComp)
	api.GET("/properties/:id/arv", h.estimateARV)

	api.POST("/properties/:id/analysis/flip", h.analyzeFlip)
	api.POST("/properties/:id/analysis/rental", h.analyzeRental)

	api.POST("/properties/:id/scenarios", h.createScenario)
	api.GET("/properties/:id/scenarios", h.listScenarios)
	api.GET("/scenarios/:id", h.getScenario)
	api.PUT("/scenarios/:id", h.updateScenario)
	api.DELETE("/scenarios/:id", h.deleteScenario)

	api.GET("/portfolio/summary", h.portfolioSummary)
	api.GET("/events", hub.ServeWS)

	return r
}

// respondError maps domain errors to HTTP status codes:
// invalid input 400, not found 404, everything else 500
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrInvalid):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) createProperty(c *gin.Context) {
	var req createPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, err := h.Properties.Create(c.Request.Context(), property.CreateInput{
		Address:       req.Address,
		City:          req.City,
		State:         req.State,
		ZipCode:       req.ZipCode,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		SquareFootage: req.SquareFootage,
		PurchasePrice: req.PurchasePrice,
		ARV:           req.ARV,
		RepairCost:    req.RepairCost,
		Status:        domain.PropertyStatus(req.Status),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPropertyResponse(p))
}

func (h *Handler) listProperties(c *gin.Context) {
	statusFilter := domain.PropertyStatus(c.Query("status"))

	properties, err := h.Properties.List(c.Request.Context(), statusFilter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]propertyResponse, 0, len(properties))
	for _, p := range properties {
		out = append(out, toPropertyResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"properties": out})
}

func (h *Handler) getProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.Properties.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPropertyResponse(p))
}

// updateProperty applies a partial update. The response carries the patched
// snapshot immediately; the coalesced write lands in the background unless
// the caller asks to wait for it with ?wait=true
func (h *Handler) updateProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p, pending, err := h.Properties.Update(c.Request.Context(), id, req.toPatch())
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("wait") == "true" {
		if err := pending.Wait(c.Request.Context()); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, toPropertyResponse(p))
}

func (h *Handler) deleteProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Properties.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) addComp(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req addCompRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comp, err := h.Comps.Add(c.Request.Context(), comps.AddInput{
		PropertyID:    id,
		Address:       req.Address,
		SoldPrice:     req.SoldPrice,
		SquareFootage: req.SquareFootage,
		SoldDate:      req.SoldDate,
		DistanceMiles: req.DistanceMiles,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toCompResponse(comp))
}

func (h *Handler) listComps(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	list, err := h.Comps.List(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]compResponse, 0, len(list))
	for _, comp := range list {
		out = append(out, toCompResponse(comp))
	}
	c.JSON(http.StatusOK, gin.H{"comps": out})
}

func (h *Handler) deleteComp(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Comps.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) estimateARV(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	est, err := h.Comps.EstimateARV(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toARVEstimateResponse(est))
}

func (h *Handler) analyzeFlip(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	// The body is optional: a bare POST runs with default assumptions
	var req flipAnalysisRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	assumptions := req.Assumptions.apply(domain.DefaultFlipAssumptions())
	result, err := h.Analysis.AnalyzeFlip(c.Request.Context(), id, &assumptions)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toFlipAnalysisResponse(result))
}

func (h *Handler) analyzeRental(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req rentalAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assumptions := req.Assumptions.apply(domain.DefaultRentalAssumptions())
	result, err := h.Analysis.AnalyzeRental(c.Request.Context(), id, analysis.RentalRequest{
		MonthlyRent: req.MonthlyRent,
		DownPayment: req.DownPayment,
		Assumptions: &assumptions,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toRentalAnalysisResponse(result))
}

func (h *Handler) createScenario(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req createScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.Scenarios.Create(c.Request.Context(), scenario.CreateInput{
		PropertyID: id,
		Name:       req.Name,
		Details:    req.Details,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toScenarioResponse(view))
}

func (h *Handler) listScenarios(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	views, err := h.Scenarios.ListByProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]scenarioResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toScenarioResponse(v))
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": out})
}

func (h *Handler) getScenario(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.Scenarios.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toScenarioResponse(view))
}

func (h *Handler) updateScenario(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req updateScenarioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.Scenarios.Update(c.Request.Context(), id, req.Name, req.Details)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toScenarioResponse(view))
}

func (h *Handler) deleteScenario(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.Scenarios.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) portfolioSummary(c *gin.Context) {
	summary, err := h.Portfolio.GetSummary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPortfolioSummaryResponse(summary))
}
