package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// financialYearHandler handles HTTP requests for the period lifecycle.
type financialYearHandler struct {
	fyService portssvc.FinancialYearSvcFacade
}

// newFinancialYearHandler creates a new financialYearHandler.
func newFinancialYearHandler(fyService portssvc.FinancialYearSvcFacade) *financialYearHandler {
	return &financialYearHandler{fyService: fyService}
}

func (h *financialYearHandler) createFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createFinancialYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	fy, err := h.fyService.CreateFinancialYear(c.Request.Context(), companyID, req, actor)
	if err != nil {
		logger.Warn("Failed to create financial year", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to create financial year")
		return
	}

	c.JSON(http.StatusCreated, dto.ToFinancialYearResponse(fy))
}

func (h *financialYearHandler) getActiveFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	fy, err := h.fyService.GetActiveFinancialYear(c.Request.Context(), companyID)
	if err != nil {
		logger.Warn("Failed to get active financial year", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to retrieve active financial year")
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(fy))
}

func (h *financialYearHandler) getFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	financialYearID := c.Param("financial_year_id")

	fy, err := h.fyService.GetFinancialYearByID(c.Request.Context(), companyID, financialYearID)
	if err != nil {
		logger.Warn("Failed to get financial year", slog.String("error", err.Error()), slog.String("financial_year_id", financialYearID))
		respondWithError(c, err, "Failed to retrieve financial year")
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(fy))
}

func (h *financialYearHandler) listFinancialYears(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	years, err := h.fyService.ListFinancialYears(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list financial years", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to list financial years")
		return
	}

	responses := make([]dto.FinancialYearResponse, len(years))
	for i := range years {
		responses[i] = dto.ToFinancialYearResponse(&years[i])
	}
	c.JSON(http.StatusOK, gin.H{"financialYears": responses})
}

func (h *financialYearHandler) closeFinancialYear(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	financialYearID := c.Param("financial_year_id")

	var req dto.CloseFinancialYearRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for closeFinancialYear", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	fy, err := h.fyService.CloseFinancialYear(c.Request.Context(), companyID, financialYearID, req.Remarks, actor)
	if err != nil {
		logger.Warn("Failed to close financial year", slog.String("error", err.Error()), slog.String("financial_year_id", financialYearID))
		respondWithError(c, err, "Failed to close financial year")
		return
	}

	c.JSON(http.StatusOK, dto.ToFinancialYearResponse(fy))
}

func (h *financialYearHandler) carryForward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	financialYearID := c.Param("financial_year_id")

	var req dto.CarryForwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for carryForward", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	if err := h.fyService.CarryForward(c.Request.Context(), companyID, financialYearID, req.ToFinancialYearID, actor); err != nil {
		logger.Warn("Failed to carry forward balances", slog.String("error", err.Error()), slog.String("from_financial_year_id", financialYearID))
		respondWithError(c, err, "Failed to carry forward balances")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerFinancialYearRoutes registers period lifecycle routes
func registerFinancialYearRoutes(group *gin.RouterGroup, fyService portssvc.FinancialYearSvcFacade) {
	h := newFinancialYearHandler(fyService)

	years := group.Group("/financial-years")
	{
		years.POST("", h.createFinancialYear)
		years.GET("", h.listFinancialYears)
		years.GET("/active", h.getActiveFinancialYear)
		years.GET("/:financial_year_id", h.getFinancialYear)
		years.POST("/:financial_year_id/close", h.closeFinancialYear)
		years.POST("/:financial_year_id/carry-forward", h.carryForward)
	}
}
