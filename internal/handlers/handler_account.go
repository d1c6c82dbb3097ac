package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	account, err := h.accountService.CreateAccount(c.Request.Context(), companyID, req, actor)
	if err != nil {
		logger.Warn("Failed to create account", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to create account")
		return
	}

	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	accountID := c.Param("account_id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), companyID, accountID)
	if err != nil {
		logger.Warn("Failed to get account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		respondWithError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": dto.ToAccountResponses(accounts)})
}

func (h *accountHandler) getHierarchy(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	roots, err := h.accountService.GetHierarchy(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to build account hierarchy", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to build account hierarchy")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": roots})
}

func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	accountID := c.Param("account_id")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	account, err := h.accountService.UpdateAccount(c.Request.Context(), companyID, accountID, req, actor)
	if err != nil {
		logger.Warn("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		respondWithError(c, err, "Failed to update account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	accountID := c.Param("account_id")

	actor := middleware.GetActorFromContext(c)
	if err := h.accountService.DeactivateAccount(c.Request.Context(), companyID, accountID, actor); err != nil {
		logger.Warn("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		respondWithError(c, err, "Failed to deactivate account")
		return
	}

	c.Status(http.StatusNoContent)
}

// registerAccountRoutes registers chart-of-accounts routes
func registerAccountRoutes(group *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/hierarchy", h.getHierarchy)
		accounts.GET("/:account_id", h.getAccount)
		accounts.PUT("/:account_id", h.updateAccount)
		accounts.DELETE("/:account_id", h.deactivateAccount)
	}
}
