package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// entryHandler handles HTTP requests for ledger entries, generated series and
// transfer pairs within an organization.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(es portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{
		entryService: es,
	}
}

// registerEntryRoutes registers entry routes nested under an organization.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.POST("/series", h.createSeries)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
	}

	transfers := rg.Group("/transfers")
	{
		transfers.POST("", h.createTransfer)
		transfers.DELETE("/:transfer_id", h.deleteTransfer)
	}
}

// respondEntryError maps service errors to HTTP statuses for entry endpoints.
func respondEntryError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, services.ErrInvalidSpec),
		errors.Is(err, services.ErrInvalidTransfer),
		errors.Is(err, services.ErrSeriesNotFound),
		errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions for this organization"})
	case errors.Is(err, services.ErrAccountNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalMsg})
	}
}

// createEntry godoc
// @Summary Create a ledger entry
// @Description Creates a single ledger entry in the organization.
// @Tags entries
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// createSeries godoc
// @Summary Create an entry series
// @Description Generates an installment or recurring series from a single spec and persists it atomically.
// @Tags entries
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param series body dto.CreateSeriesRequest true "Series specification"
// @Success 201 {object} dto.CreateSeriesResponse
// @Failure 400 {object} ErrorResponse "Invalid series specification"
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/series [post]
func (h *entryHandler) createSeries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateSeriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	entries, err := h.entryService.CreateSeries(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to create series")
		return
	}

	resp := dto.CreateSeriesResponse{Entries: dto.ToEntryResponses(entries)}
	if len(entries) > 0 {
		resp.SeriesID = entries[0].SeriesID
	}

	c.JSON(http.StatusCreated, resp)
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists entries in an organization, newest due date first, with token pagination.
// @Tags entries
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param limit query int false "Max results" default(20)
// @Param nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.entryService.ListEntries(c.Request.Context(), organizationID, userID, params)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to list entries")
		return
	}

	c.JSON(http.StatusOK, page)
}

// getEntry godoc
// @Summary Get a ledger entry
// @Description Retrieves a single entry by ID.
// @Tags entries
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), organizationID, entryID, userID)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// updateEntry godoc
// @Summary Update a ledger entry
// @Description Applies an edit with the requested scope. Scope FUTURE cascades the edit across every later entry of the same series and returns all updated entries.
// @Tags entries
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Param entry body dto.UpdateEntryRequest true "Fields to update plus scope"
// @Success 200 {array} dto.EntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.entryService.UpdateEntry(c.Request.Context(), organizationID, entryID, req, userID)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to update entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponses(updated))
}

// deleteEntry godoc
// @Summary Delete a ledger entry
// @Description Deletes an entry. Deleting a transfer leg removes both legs.
// @Tags entries
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param entry_id path string true "Entry ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/entries/{entry_id} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	entryID := c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), organizationID, entryID, userID); err != nil {
		respondEntryError(c, logger, err, "Failed to delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// createTransfer godoc
// @Summary Create a transfer
// @Description Creates both legs of an inter-account transfer as one atomic pair.
// @Tags transfers
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param transfer body dto.CreateTransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} ErrorResponse "Invalid transfer"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Account not found"
// @Security BearerAuth
// @Router /organizations/{organization_id}/transfers [post]
func (h *entryHandler) createTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	legs, err := h.entryService.CreateTransfer(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondEntryError(c, logger, err, "Failed to create transfer")
		return
	}
	if len(legs) != 2 {
		logger.Error("Transfer creation returned unexpected leg count", slog.Int("legs", len(legs)))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create transfer"})
		return
	}

	resp := dto.TransferResponse{
		TransferID: legs[0].TransferID,
		Outgoing:   dto.ToEntryResponse(&legs[0]),
		Incoming:   dto.ToEntryResponse(&legs[1]),
	}

	c.JSON(http.StatusCreated, resp)
}

// deleteTransfer godoc
// @Summary Delete a transfer
// @Description Deletes both legs of a transfer pair atomically.
// @Tags transfers
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param transfer_id path string true "Transfer ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/transfers/{transfer_id} [delete]
func (h *entryHandler) deleteTransfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	transferID := c.Param("transfer_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.entryService.DeleteTransfer(c.Request.Context(), organizationID, transferID, userID); err != nil {
		respondEntryError(c, logger, err, "Failed to delete transfer")
		return
	}

	c.Status(http.StatusNoContent)
}
