package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// contractHandler handles HTTP requests for contracts and their payment plans.
type contractHandler struct {
	contractService portssvc.ContractSvcFacade
}

func newContractHandler(cs portssvc.ContractSvcFacade) *contractHandler {
	return &contractHandler{
		contractService: cs,
	}
}

// registerContractRoutes registers contract routes nested under an organization.
func registerContractRoutes(rg *gin.RouterGroup, contractService portssvc.ContractSvcFacade) {
	h := newContractHandler(contractService)

	contracts := rg.Group("/contracts")
	{
		contracts.POST("", h.createContract)
		contracts.GET("", h.listContracts)

		contract := contracts.Group("/:contract_id")
		{
			contract.GET("/payment-plan", h.getPaymentPlan)
			contract.PUT("/total", h.updateTotalPrice)
			contract.POST("/residual/resync", h.resyncResidual)

			installments := contract.Group("/installments")
			{
				installments.POST("", h.addInstallment)
				installments.PUT("/:installment_id", h.updateInstallment)
				installments.DELETE("/:installment_id", h.removeInstallment)
			}

			tradeIns := contract.Group("/trade-ins")
			{
				tradeIns.POST("", h.addTradeIn)
				tradeIns.DELETE("/:trade_in_id", h.removeTradeIn)
			}
		}
	}
}

// respondContractError maps service errors to HTTP statuses for contract
// endpoints.
func respondContractError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions for this organization"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Resource not found"})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalMsg})
	}
}

// createContract godoc
// @Summary Create a contract
// @Description Creates a contract whose residual installment starts equal to the total price.
// @Tags contracts
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param contract body dto.CreateContractRequest true "Contract details"
// @Success 201 {object} dto.ContractResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/contracts [post]
func (h *contractHandler) createContract(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	contract, err := h.contractService.CreateContract(c.Request.Context(), organizationID, req, userID)
	if err != nil {
		respondContractError(c, logger, err, "Failed to create contract")
		return
	}

	c.JSON(http.StatusCreated, dto.ToContractResponse(contract))
}

// listContracts godoc
// @Summary List contracts
// @Description Lists an organization's contracts.
// @Tags contracts
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param limit query int false "Max results" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {array} dto.ContractResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/contracts [get]
func (h *contractHandler) listContracts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	contracts, err := h.contractService.ListContracts(c.Request.Context(), organizationID, userID, limit, offset)
	if err != nil {
		respondContractError(c, logger, err, "Failed to list contracts")
		return
	}

	responses := make([]dto.ContractResponse, len(contracts))
	for i := range contracts {
		responses[i] = dto.ToContractResponse(&contracts[i])
	}
	c.JSON(http.StatusOK, responses)
}

// getPaymentPlan godoc
// @Summary Get a contract's payment plan
// @Description Returns the plan with the residual freshly recomputed and a drift advisory against the persisted cache.
// @Tags contracts
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param contract_id path string true "Contract ID"
// @Success 200 {object} dto.PaymentPlanResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/contracts/{contract_id}/payment-plan [get]
func (h *contractHandler) getPaymentPlan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	contractID := c.Param("contract_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	plan, err := h.contractService.GetPaymentPlan(c.Request.Context(), organizationID, contractID, userID)
	if err != nil {
		respondContractError(c, logger, err, "Failed to retrieve payment plan")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentPlanResponse(plan))
}

// updateTotalPrice godoc
// @Summary Update a contract's total price
// @Description Updates the authoritative total. The residual cache is untouched and will show drift until resynced.
// @Tags contracts
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param contract_id path string true "Contract ID"
// @Param total body dto.UpdateContractTotalRequest true "New total price"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/contracts/{contract_id}/total [put]
func (h *contractHandler) updateTotalPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	contractID := c.Param("contract_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateContractTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	if err := h.contractService.UpdateTotalPrice(c.Request.Context(), organizationID, contractID, req, userID); err != nil {
		respondContractError(c, logger, err, "Failed to update contract total")
		return
	}

	c.Status(http.StatusNoContent)
}

// addInstallment godoc
// @Summary Add an explicit installment
// @Description Appends an installment to the payment plan; the residual shrinks accordingly on the next read.
// @Tags contracts
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param contract_id path string true "Contract ID"
// @Param installment body dto.CreateContractInstallmentRequest true "Installment details"
// @Success 201 {object} dto.ContractInstallmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/contracts/{contract_id}/installments [post]
func (h *contractHandler) addInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	contractID := c.Param("contract_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateContractInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	installment, err := h.contractService.AddInstallment(c.Request.Context(), organizationID, contractID, req, userID)
	if err != nil {
		respondContractError(c, logger, err, "Failed to add installment")
		return
	}

	c.JSON(http.StatusCreated, dto.ContractInstallmentResponse{
		InstallmentID: installment.InstallmentID,
		Description:   installment.Description,
		Kind:          installment.Kind,
		DueDate:       installment.DueDate,
		Amount:        installment.Amount,
	})
}

// updateInstallment godoc
// @Summary Update an explicit installment
// @Tags contracts
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param contract_id path string true "Contract ID"
// @Param installment_id path string true "Installment ID"
// @Param installment body dto.UpdateContractInstallmentRequest true "Fields to update"
// @Success 200 {object} dto.ContractInstallmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/contracts/{contract_id}/installments/{installment_id} [put]
func (h *contractHandler) updateInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	contractID := c.Param("contract_id")
	installmentID := c.Param("installment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateContractInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	installment, err := h.contractService.UpdateInstallment(c.Request.Context(), organizationID, contractID, installmentID, req, userID)
	if err != nil {
		respondContractError(c, logger, err, "Failed to update installment")
		return
	}

	c.JSON(http.StatusOK, dto.ContractInstallmentResponse{
		InstallmentID: installment.InstallmentID,
		Description:   installment.Description,
		Kind:          installment.Kind,
		DueDate:       installment.DueDate,
		Amount:        installment.Amount,
	})
}

// removeInstallment godoc
// @Summary Remove an explicit installment
// @Tags contracts
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param contract_id path string true "Contract ID"
// @Param installment_id path string true "Installment ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/contracts/{contract_id}/installments/{installment_id} [delete]
func (h *contractHandler) removeInstallment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	contractID := c.Param("contract_id")
	installmentID := c.Param("installment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.contractService.RemoveInstallment(c.Request.Context(), organizationID, contractID, installmentID, userID); err != nil {
		respondContractError(c, logger, err, "Failed to remove installment")
		return
	}

	c.Status(http.StatusNoContent)
}

// addTradeIn godoc
// @Summary Add a trade-in credit
// @Description Appends a trade-in credit to the payment plan.
// @Tags contracts
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param contract_id path string true "Contract ID"
// @Param tradeIn body dto.CreateTradeInRequest true "Trade-in details"
// @Success 201 {object} dto.TradeInResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/contracts/{contract_id}/trade-ins [post]
func (h *contractHandler) addTradeIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	contractID := c.Param("contract_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateTradeInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	tradeIn, err := h.contractService.AddTradeIn(c.Request.Context(), organizationID, contractID, req, userID)
	if err != nil {
		respondContractError(c, logger, err, "Failed to add trade-in")
		return
	}

	c.JSON(http.StatusCreated, dto.TradeInResponse{
		TradeInID:   tradeIn.TradeInID,
		Description: tradeIn.Description,
		Date:        tradeIn.Date,
		Amount:      tradeIn.Amount,
	})
}

// removeTradeIn godoc
// @Summary Remove a trade-in credit
// @Tags contracts
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param contract_id path string true "Contract ID"
// @Param trade_in_id path string true "Trade-in ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/contracts/{contract_id}/trade-ins/{trade_in_id} [delete]
func (h *contractHandler) removeTradeIn(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	contractID := c.Param("contract_id")
	tradeInID := c.Param("trade_in_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.contractService.RemoveTradeIn(c.Request.Context(), organizationID, contractID, tradeInID, userID); err != nil {
		respondContractError(c, logger, err, "Failed to remove trade-in")
		return
	}

	c.Status(http.StatusNoContent)
}

// resyncResidual godoc
// @Summary Resynchronize the residual cache
// @Description Overwrites the persisted residual cache with the freshly recomputed value. This is the only write path for the cache and runs only on explicit request.
// @Tags contracts
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param contract_id path string true "Contract ID"
// @Success 200 {object} dto.ResidualAdvisoryResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/contracts/{contract_id}/residual/resync [post]
func (h *contractHandler) resyncResidual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")
	contractID := c.Param("contract_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	recon, err := h.contractService.ResyncResidual(c.Request.Context(), organizationID, contractID, userID)
	if err != nil {
		respondContractError(c, logger, err, "Failed to resync residual")
		return
	}

	c.JSON(http.StatusOK, dto.ResidualAdvisoryResponse{
		Computed: recon.Computed,
		Cached:   recon.Cached,
		Drift:    recon.Drift,
		HasDrift: recon.HasDrift,
	})
}
