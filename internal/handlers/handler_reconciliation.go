package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles HTTP requests for bank reconciliation records.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(reconciliationService portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{reconciliationService: reconciliationService}
}

func (h *reconciliationHandler) createReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateReconciliationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createReconciliation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	rec, err := h.reconciliationService.CreateReconciliation(c.Request.Context(), companyID, req, actor)
	if err != nil {
		logger.Warn("Failed to create reconciliation", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		respondWithError(c, err, "Failed to create reconciliation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReconciliationResponse(rec))
}

func (h *reconciliationHandler) addItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	reconciliationID := c.Param("reconciliation_id")

	var req dto.AddReconciliationItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for addItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	rec, err := h.reconciliationService.AddItems(c.Request.Context(), companyID, reconciliationID, req, actor)
	if err != nil {
		logger.Warn("Failed to add reconciliation items", slog.String("error", err.Error()), slog.String("reconciliation_id", reconciliationID))
		respondWithError(c, err, "Failed to add reconciliation items")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

func (h *reconciliationHandler) finalizeReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	reconciliationID := c.Param("reconciliation_id")

	actor := middleware.GetActorFromContext(c)
	rec, err := h.reconciliationService.FinalizeReconciliation(c.Request.Context(), companyID, reconciliationID, actor)
	if err != nil {
		logger.Warn("Failed to finalize reconciliation", slog.String("error", err.Error()), slog.String("reconciliation_id", reconciliationID))
		respondWithError(c, err, "Failed to finalize reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

func (h *reconciliationHandler) getReconciliation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	reconciliationID := c.Param("reconciliation_id")

	rec, err := h.reconciliationService.GetReconciliation(c.Request.Context(), companyID, reconciliationID)
	if err != nil {
		logger.Warn("Failed to get reconciliation", slog.String("error", err.Error()), slog.String("reconciliation_id", reconciliationID))
		respondWithError(c, err, "Failed to retrieve reconciliation")
		return
	}

	c.JSON(http.StatusOK, dto.ToReconciliationResponse(rec))
}

func (h *reconciliationHandler) listReconciliations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	accountID := c.Query("accountID")

	if accountID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "accountID query parameter is required"})
		return
	}

	recs, err := h.reconciliationService.ListReconciliations(c.Request.Context(), companyID, accountID)
	if err != nil {
		logger.Error("Failed to list reconciliations", slog.String("error", err.Error()), slog.String("account_id", accountID))
		respondWithError(c, err, "Failed to list reconciliations")
		return
	}

	responses := make([]dto.ReconciliationResponse, len(recs))
	for i := range recs {
		responses[i] = dto.ToReconciliationResponse(&recs[i])
	}
	c.JSON(http.StatusOK, gin.H{"reconciliations": responses})
}

// registerReconciliationRoutes registers bank reconciliation routes
func registerReconciliationRoutes(group *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	recs := group.Group("/reconciliations")
	{
		recs.POST("", h.createReconciliation)
		recs.GET("", h.listReconciliations)
		recs.GET("/:reconciliation_id", h.getReconciliation)
		recs.PUT("/:reconciliation_id/items", h.addItems)
		recs.POST("/:reconciliation_id/finalize", h.finalizeReconciliation)
	}
}
