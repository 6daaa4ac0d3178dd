package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// organizationHandler handles HTTP requests for organizations and their members.
type organizationHandler struct {
	organizationService portssvc.OrganizationSvcFacade
}

func newOrganizationHandler(os portssvc.OrganizationSvcFacade) *organizationHandler {
	return &organizationHandler{
		organizationService: os,
	}
}

// registerOrganizationRoutes registers organization routes and nests every
// organization-scoped resource under /organizations/:organization_id.
func registerOrganizationRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newOrganizationHandler(services.Organization)

	organizationsTopLevel := rg.Group("/organizations")
	{
		organizationsTopLevel.POST("", h.createOrganization)
		organizationsTopLevel.GET("", h.listUserOrganizations)
	}

	organizationSpecific := rg.Group("/organizations/:organization_id")
	{
		organizationSpecific.GET("", h.getOrganization)
		organizationSpecific.DELETE("", h.deactivateOrganization)

		organizationUsers := organizationSpecific.Group("/users")
		{
			organizationUsers.GET("", h.listOrganizationUsers)
			organizationUsers.POST("", h.addUserToOrganization)
		}

		registerEntryRoutes(organizationSpecific, services.Entry)
		registerAccountRoutes(organizationSpecific, services.Account)
		registerCategoryRoutes(organizationSpecific, services.Category)
		registerCounterpartyRoutes(organizationSpecific, services.Counterparty)
		registerContractRoutes(organizationSpecific, services.Contract)
		registerReportingRoutes(organizationSpecific, services.Reporting)
	}
}

// createOrganization godoc
// @Summary Create a new organization
// @Description Creates a new organization and makes the creator its admin.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationRequest true "Organization details"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations [post]
func (h *organizationHandler) createOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createOrganization", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	newOrg, err := h.organizationService.CreateOrganization(c.Request.Context(), req.Name, req.Description, creatorUserID)
	if err != nil {
		logger.Error("Failed to create organization", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create organization"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationResponse(newOrg))
}

// listUserOrganizations godoc
// @Summary List the caller's organizations
// @Description Lists all organizations the authenticated user belongs to.
// @Tags organizations
// @Produce json
// @Param includeDisabled query bool false "Include deactivated organizations" default(false)
// @Success 200 {array} dto.OrganizationResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations [get]
func (h *organizationHandler) listUserOrganizations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	includeDisabled := c.Query("includeDisabled") == "true"

	orgs, err := h.organizationService.ListUserOrganizations(c.Request.Context(), userID, includeDisabled)
	if err != nil {
		logger.Error("Failed to list organizations", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list organizations"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListOrganizationResponse(orgs))
}

// getOrganization godoc
// @Summary Get an organization
// @Description Retrieves a single organization the caller is a member of.
// @Tags organizations
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id} [get]
func (h *organizationHandler) getOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.organizationService.AuthorizeUserAction(c.Request.Context(), userID, organizationID, domain.RoleReadOnly); err != nil {
		respondOrganizationError(c, logger, err, "Failed to authorize organization access")
		return
	}

	org, err := h.organizationService.FindOrganizationByID(c.Request.Context(), organizationID)
	if err != nil {
		respondOrganizationError(c, logger, err, "Failed to retrieve organization")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationResponse(org))
}

// listOrganizationUsers godoc
// @Summary List organization members
// @Description Lists the members of an organization and their roles.
// @Tags organizations
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 200 {array} dto.OrganizationMemberResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/users [get]
func (h *organizationHandler) listOrganizationUsers(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	members, err := h.organizationService.ListOrganizationUsers(c.Request.Context(), organizationID, userID)
	if err != nil {
		respondOrganizationError(c, logger, err, "Failed to list organization members")
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationMemberResponses(members))
}

// addUserToOrganization godoc
// @Summary Add a user to an organization
// @Description Adds a user with a specific role. Only admins may do this.
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Param membership body dto.AddUserToOrganizationRequest true "User and role"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id}/users [post]
func (h *organizationHandler) addUserToOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	addingUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.AddUserToOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	err := h.organizationService.AddUserToOrganization(c.Request.Context(), addingUserID, req.UserID, organizationID, req.Role)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		respondOrganizationError(c, logger, err, "Failed to add user to organization")
		return
	}

	c.Status(http.StatusNoContent)
}

// deactivateOrganization godoc
// @Summary Deactivate an organization
// @Description Marks an organization inactive. Only admins may do this.
// @Tags organizations
// @Produce json
// @Param organization_id path string true "Organization ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /organizations/{organization_id} [delete]
func (h *organizationHandler) deactivateOrganization(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	organizationID := c.Param("organization_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	err := h.organizationService.DeactivateOrganization(c.Request.Context(), organizationID, userID)
	if err != nil {
		respondOrganizationError(c, logger, err, "Failed to deactivate organization")
		return
	}

	c.Status(http.StatusNoContent)
}

// respondOrganizationError maps service errors to HTTP statuses for
// organization endpoints.
func respondOrganizationError(c *gin.Context, logger *slog.Logger, err error, internalMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient permissions for this organization"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Organization not found"})
	default:
		logger.Error(internalMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: internalMsg})
	}
}
