package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/ledger_backend/internal/core/ports/services"
	"github.com/finbooks/ledger_backend/internal/dto"
	"github.com/finbooks/ledger_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests for the journal entry lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{journalService: journalService}
}

func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	entry, err := h.journalService.CreateEntry(c.Request.Context(), companyID, req, actor)
	if err != nil {
		logger.Warn("Failed to create entry", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) addLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	var req dto.AddLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for addLines", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	entry, err := h.journalService.AddLines(c.Request.Context(), companyID, entryID, req, actor)
	if err != nil {
		logger.Warn("Failed to add lines", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondWithError(c, err, "Failed to add entry lines")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// submitJournal is the collaborator contract: one call creating a draft entry
// with its lines.
func (h *journalHandler) submitJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var req dto.SubmitJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for submitJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	entry, err := h.journalService.SubmitJournal(c.Request.Context(), companyID, req, actor)
	if err != nil {
		logger.Warn("Failed to submit journal", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to submit journal")
		return
	}

	c.JSON(http.StatusCreated, dto.SubmitJournalResponse{EntryID: entry.EntryID, Status: entry.Status})
}

func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	actor := middleware.GetActorFromContext(c)
	entry, err := h.journalService.Post(c.Request.Context(), companyID, entryID, actor)
	if err != nil {
		logger.Warn("Failed to post entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondWithError(c, err, "Failed to post entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for reverseEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor := middleware.GetActorFromContext(c)
	reversal, err := h.journalService.Reverse(c.Request.Context(), companyID, entryID, req.Date, req.Reason, actor)
	if err != nil {
		logger.Warn("Failed to reverse entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondWithError(c, err, "Failed to reverse entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")
	entryID := c.Param("entry_id")

	entry, err := h.journalService.GetEntry(c.Request.Context(), companyID, entryID)
	if err != nil {
		logger.Warn("Failed to get entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		respondWithError(c, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("company_id")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), companyID, params)
	if err != nil {
		logger.Error("Failed to list entries", slog.String("error", err.Error()), slog.String("company_id", companyID))
		respondWithError(c, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerJournalRoutes registers journal entry lifecycle routes
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := group.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.POST("/submit", h.submitJournal)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id/lines", h.addLines)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
	}
}
