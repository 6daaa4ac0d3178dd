package handlers

import (
	"net/http"
	"strconv"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// counterpartyHandler handles HTTP requests for counterparties.
type counterpartyHandler struct {
	counterpartyService portssvc.CounterpartySvcFacade
}

func newCounterpartyHandler(cs portssvc.CounterpartySvcFacade) *counterpartyHandler {
	return &counterpartyHandler{
		counterpartyService: cs,
	}
}

// registerCounterpartyRoutes registers counterparty routes nested under an
// organization.
func registerCounterpartyRoutes(rg *gin.RouterGroup, counterpartyService portssvc.CounterpartySvcFacade) {
	h := newCounterpartyHandler(counterpartyService)

	counterparties := rg.Group("/counterparties")
	{
		counterparties.POST("", h.createCounterparty)
		counterparties.GET("", h.listCounterparties)
		counterparties.GET("/:counterparty_id", h.getCounterparty)
		counterparties.PUT("/:counterparty_id", h.updateCounterparty)
		counterparties.DELETE("/:counterparty_id", h.deactivateCounterparty)
	}
}

// createCounterparty godoc
// @Summary Create a counterparty
// @Tags counterparties
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param counterparty body dto.CreateCounterpartyRequest true "Counterparty details"
// @Success 201 {object} dto.CounterpartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/counterparties [post]
func (h *counterpartyHandler) createCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	counterparty, err := h.counterpartyService.CreateCounterparty(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondReferenceError(c, logger, err, "Failed to create counterparty")
		return
	}

	c.JSON(http.StatusCreated, dto.ToCounterpartyResponse(counterparty))
}

// getCounterparty godoc
// @Summary Get a counterparty
// @Tags counterparties
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param counterparty_id path string true "Counterparty ID"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/counterparties/{counterparty_id} [get]
func (h *counterpartyHandler) getCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	counterpartyID := c.Param("counterparty_id")

	counterparty, err := h.counterpartyService.GetCounterpartyByID(c.Request.Context(), organizationID, counterpartyID)
	if err != nil {
		respondReferenceError(c, logger, err, "Failed to retrieve counterparty")
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(counterparty))
}

// listCounterparties godoc
// @Summary List counterparties
// @Tags counterparties
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param limit query int false "Max results" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.CounterpartyResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/counterparties [get]
func (h *counterpartyHandler) listCounterparties(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit <= 0 {
		limit = 50
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	counterparties, err := h.counterpartyService.ListCounterparties(c.Request.Context(), organizationID, limit, offset)
	if err != nil {
		respondReferenceError(c, logger, err, "Failed to list counterparties")
		return
	}

	c.JSON(http.StatusOK, dto.ToListCounterpartyResponse(counterparties))
}

// updateCounterparty godoc
// @Summary Update a counterparty
// @Tags counterparties
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param counterparty_id path string true "Counterparty ID"
// @Param counterparty body dto.UpdateCounterpartyRequest true "Fields to update"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/counterparties/{counterparty_id} [put]
func (h *counterpartyHandler) updateCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	counterpartyID := c.Param("counterparty_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	counterparty, err := h.counterpartyService.UpdateCounterparty(c.Request.Context(), organizationID, counterpartyID, req, userID)
	if err != nil {
		respondReferenceError(c, logger, err, "Failed to update counterparty")
		return
	}

	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(counterparty))
}

// deactivateCounterparty godoc
// @Summary Deactivate a counterparty
// @Tags counterparties
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param counterparty_id path string true "Counterparty ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/counterparties/{counterparty_id} [delete]
func (h *counterpartyHandler) deactivateCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	counterpartyID := c.Param("counterparty_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.counterpartyService.DeactivateCounterparty(c.Request.Context(), organizationID, counterpartyID, userID); err != nil {
		respondReferenceError(c, logger, err, "Failed to deactivate counterparty")
		return
	}

	c.Status(http.StatusNoContent)
}
