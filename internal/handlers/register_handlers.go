package handlers

import (
	"errors"
	"net/http"

	"github.com/finbooks/ledger_backend/internal/apperrors"
	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	registerCustomValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	registerHomeRoutes(r)

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations.
// Every resource is scoped under its owning company; authentication is owned
// by the hosting application, the ledger only consumes the actor header.
func setupAPIV1Routes(
	r *gin.Engine,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")
	companies := v1.Group("/companies/:company_id")

	registerAccountRoutes(companies, services.Account)
	registerJournalRoutes(companies, services.Journal)
	registerBalanceRoutes(companies, services.Balance)
	registerStatementRoutes(companies, services.Statement)
	registerFinancialYearRoutes(companies, services.FinancialYear)
	registerReconciliationRoutes(companies, services.Reconciliation)
}

// registerCustomValidations adds decimal-aware rules to gin's validator
// engine. Built-in comparison tags cannot inspect decimal.Decimal fields.
func registerCustomValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("dnonneg", func(fl validator.FieldLevel) bool {
			d, ok := fl.Field().Interface().(decimal.Decimal)
			return ok && !d.IsNegative()
		})
	}
}

// respondWithError maps service errors onto HTTP status codes. The sentinel
// wrapping convention keeps this mapping in one place.
func respondWithError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrIntegrity):
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
