package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

const reportDateLayout = "2006-01-02"

// reportingHandler handles HTTP requests for aggregate reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
	}
}

// registerReportingRoutes registers reporting routes nested under an
// organization.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/cashflow-summary", h.getCashflowSummary)
	}
}

// getCashflowSummary godoc
// @Summary Cashflow summary
// @Description Aggregates entries over a date range, split by nature and settlement status, with per-category breakdowns. Transfer legs are excluded.
// @Tags reports
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param from query string true "Range start (YYYY-MM-DD)"
// @Param to query string true "Range end (YYYY-MM-DD)"
// @Success 200 {object} dto.CashflowSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/reports/cashflow-summary [get]
func (h *reportingHandler) getCashflowSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.CashflowSummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	from, err := time.Parse(reportDateLayout, params.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'from' date, expected YYYY-MM-DD"})
		return
	}
	to, err := time.Parse(reportDateLayout, params.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid 'to' date, expected YYYY-MM-DD"})
		return
	}

	summary, err := h.reportingService.GetCashflowSummary(c.Request.Context(), organizationID, userID, from, to)
	if err != nil {
		respondReferenceError(c, logger, err, "Failed to compute cashflow summary")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashflowSummaryResponse(summary))
}
