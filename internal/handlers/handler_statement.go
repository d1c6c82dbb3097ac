package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler handles HTTP requests for financial statement generation
// and snapshot retrieval.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

// newStatementHandler creates a new statementHandler.
func newStatementHandler(statementService portssvc.StatementSvcFacade) *statementHandler {
	return &statementHandler{statementService: statementService}
}

func (h *statementHandler) generateTrialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	financialYearID := c.Param("financial_year_id")

	var params dto.StatementAsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for trial balance", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters; asOf is required as YYYY-MM-DD"})
		return
	}

	tb, err := h.statementService.TrialBalance(c.Request.Context(), companyID, financialYearID, params.AsOf)
	if err != nil {
		logger.Warn("Failed to generate trial balance", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to generate trial balance")
		return
	}

	c.JSON(http.StatusCreated, tb)
}

func (h *statementHandler) generateBalanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.StatementAsOfParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for balance sheet", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters; asOf is required as YYYY-MM-DD"})
		return
	}

	bs, err := h.statementService.BalanceSheet(c.Request.Context(), companyID, params.AsOf)
	if err != nil {
		logger.Warn("Failed to generate balance sheet", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to generate balance sheet")
		return
	}

	c.JSON(http.StatusCreated, bs)
}

func (h *statementHandler) generateProfitLoss(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.StatementPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for profit and loss", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters; from and to are required as YYYY-MM-DD"})
		return
	}

	pl, err := h.statementService.ProfitLoss(c.Request.Context(), companyID, params.From, params.To)
	if err != nil {
		logger.Warn("Failed to generate profit and loss", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to generate profit and loss statement")
		return
	}

	c.JSON(http.StatusCreated, pl)
}

func (h *statementHandler) generateCashFlow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.StatementPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for cash flow", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters; from and to are required as YYYY-MM-DD"})
		return
	}

	cf, err := h.statementService.CashFlow(c.Request.Context(), companyID, params.From, params.To)
	if err != nil {
		logger.Warn("Failed to generate cash flow", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to generate cash flow statement")
		return
	}

	c.JSON(http.StatusCreated, cf)
}

func (h *statementHandler) getTrialBalance(c *gin.Context) {
	companyID := c.Param("company_id")
	statementID := c.Param("statement_id")

	tb, err := h.statementService.GetTrialBalance(c.Request.Context(), companyID, statementID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve trial balance")
		return
	}
	c.JSON(http.StatusOK, tb)
}

func (h *statementHandler) getBalanceSheet(c *gin.Context) {
	companyID := c.Param("company_id")
	statementID := c.Param("statement_id")

	bs, err := h.statementService.GetBalanceSheet(c.Request.Context(), companyID, statementID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve balance sheet")
		return
	}
	c.JSON(http.StatusOK, bs)
}

func (h *statementHandler) getProfitLoss(c *gin.Context) {
	companyID := c.Param("company_id")
	statementID := c.Param("statement_id")

	pl, err := h.statementService.GetProfitLoss(c.Request.Context(), companyID, statementID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve profit and loss statement")
		return
	}
	c.JSON(http.StatusOK, pl)
}

func (h *statementHandler) getCashFlow(c *gin.Context) {
	companyID := c.Param("company_id")
	statementID := c.Param("statement_id")

	cf, err := h.statementService.GetCashFlow(c.Request.Context(), companyID, statementID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve cash flow statement")
		return
	}
	c.JSON(http.StatusOK, cf)
}

// registerStatementRoutes registers financial statement routes
func registerStatementRoutes(group *gin.RouterGroup, statementService portssvc.StatementSvcFacade) {
	h := newStatementHandler(statementService)

	statements := group.Group("/statements")
	{
		statements.POST("/trial-balance/:financial_year_id", h.generateTrialBalance)
		statements.POST("/balance-sheet", h.generateBalanceSheet)
		statements.POST("/profit-loss", h.generateProfitLoss)
		statements.POST("/cash-flow", h.generateCashFlow)

		statements.GET("/trial-balance/:statement_id", h.getTrialBalance)
		statements.GET("/balance-sheet/:statement_id", h.getBalanceSheet)
		statements.GET("/profit-loss/:statement_id", h.getProfitLoss)
		statements.GET("/cash-flow/:statement_id", h.getCashFlow)
	}
}
