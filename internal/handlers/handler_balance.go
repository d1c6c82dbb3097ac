package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// balanceHandler handles HTTP requests for balance reads and the drift check.
type balanceHandler struct {
	balanceService portssvc.BalanceSvcFacade
}

// newBalanceHandler creates a new balanceHandler.
func newBalanceHandler(balanceService portssvc.BalanceSvcFacade) *balanceHandler {
	return &balanceHandler{balanceService: balanceService}
}

func (h *balanceHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	accountID := c.Param("account_id")
	financialYearID := c.Query("financialYearID")

	if financialYearID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "financialYearID query parameter is required"})
		return
	}

	detail, err := h.balanceService.GetBalanceDetail(c.Request.Context(), companyID, accountID, financialYearID)
	if err != nil {
		logger.Warn("Failed to get balance", slog.String("error", err.Error()), slog.String("account_id", accountID))
		respondWithError(c, err, "Failed to retrieve balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID:       detail.AccountID,
		FinancialYearID: detail.FinancialYearID,
		OpeningBalance:  detail.OpeningBalance,
		DebitTotal:      detail.DebitTotal,
		CreditTotal:     detail.CreditTotal,
		CurrentBalance:  detail.CurrentBalance,
	})
}

// recomputeBalances replays the year's posted lines and reports drift. The
// stored rows are never mutated by this endpoint.
func (h *balanceHandler) recomputeBalances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	financialYearID := c.Param("financial_year_id")

	balances, err := h.balanceService.RecomputeAll(c.Request.Context(), companyID, financialYearID)
	if err != nil {
		if errors.Is(err, apperrors.ErrIntegrity) {
			logger.Error("Balance drift detected during recompute", slog.String("financial_year_id", financialYearID))
			c.JSON(http.StatusConflict, gin.H{
				"error":    err.Error(),
				"balances": balances,
			})
			return
		}
		logger.Error("Failed to recompute balances", slog.String("error", err.Error()), slog.String("financial_year_id", financialYearID))
		respondWithError(c, err, "Failed to recompute balances")
		return
	}

	c.JSON(http.StatusOK, gin.H{"balances": balances})
}

// registerBalanceRoutes registers balance read and recompute routes
func registerBalanceRoutes(group *gin.RouterGroup, balanceService portssvc.BalanceSvcFacade) {
	h := newBalanceHandler(balanceService)

	group.GET("/accounts/:account_id/balance", h.getBalance)
	group.POST("/financial-years/:financial_year_id/recompute-balances", h.recomputeBalances)
}
