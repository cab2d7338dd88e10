package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/pension_management_app/internal/core/ports/services"
	"github.com/SscSPs/pension_management_app/internal/dto"
	"github.com/SscSPs/pension_management_app/internal/middleware"
)

// contributionHandler handles HTTP requests related to contributions.
type contributionHandler struct {
	contributionService portssvc.ContributionSvcFacade
}

// registerContributionRoutes registers all contribution routes.
func registerContributionRoutes(rg *gin.RouterGroup, contributionService portssvc.ContributionSvcFacade) {
	h := &contributionHandler{contributionService: contributionService}

	contributionRoutes := rg.Group("/contributions")
	{
		contributionRoutes.POST("", h.submitContribution)
		contributionRoutes.POST("/validate", h.validateContribution)
		contributionRoutes.GET("", h.listContributions)
		contributionRoutes.GET("/summary", h.getSummary)
		contributionRoutes.GET("/:contributionID", h.getContribution)
		contributionRoutes.PUT("/:contributionID", h.updateContribution)
		contributionRoutes.PATCH("/:contributionID/status", h.updateContributionStatus) // Admin only
	}
}

// submitContribution godoc
// @Summary Submit a contribution
// @Description Validates a contribution against the member's history and stores it as pending.
// @Tags contributions
// @Accept json
// @Produce json
// @Param contribution body dto.CreateContributionRequest true "Contribution details"
// @Success 201 {object} dto.ContributionResponse
// @Failure 400 {object} RejectionResponse "Rejected or malformed contribution"
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} RejectionResponse "Duplicate mandatory month or reference"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /contributions [post]
func (h *contributionHandler) submitContribution(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	contribution, err := h.contributionService.SubmitContribution(c.Request.Context(), userID, req, time.Now())
	if err != nil {
		respondError(c, err, "Failed to submit contribution")
		return
	}
	c.JSON(http.StatusCreated, dto.ToContributionResponse(contribution))
}

// validateContribution godoc
// @Summary Check a contribution without storing it
// @Description Runs the admission rules against the member's history and reports whether the contribution would be accepted.
// @Tags contributions
// @Accept json
// @Produce json
// @Param contribution body dto.CreateContributionRequest true "Contribution details"
// @Success 200 {object} dto.ValidateContributionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /contributions/validate [post]
func (h *contributionHandler) validateContribution(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	res, err := h.contributionService.CheckContribution(c.Request.Context(), userID, req, time.Now())
	if err != nil {
		respondError(c, err, "Failed to validate contribution")
		return
	}
	c.JSON(http.StatusOK, dto.ToValidateContributionResponse(res))
}

// listContributions godoc
// @Summary List contributions
// @Description Lists the member's contributions with filters, sorting and token pagination.
// @Tags contributions
// @Produce json
// @Param type query []string false "Contribution type filter" collectionFormat(multi)
// @Param status query []string false "Status filter" collectionFormat(multi)
// @Param from query string false "Earliest date (YYYY-MM-DD)"
// @Param to query string false "Latest date (YYYY-MM-DD)"
// @Param sortBy query string false "date, amount or status"
// @Param sortOrder query string false "asc or desc"
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListContributionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /contributions [get]
func (h *contributionHandler) listContributions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.ListContributionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	list, next, err := h.contributionService.ListContributions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list contributions")
		return
	}
	c.JSON(http.StatusOK, dto.ListContributionsResponse{
		Contributions: dto.ToContributionResponses(list),
		NextToken:     next,
	})
}

// getSummary godoc
// @Summary Contribution summary
// @Description Totals the member's contributions overall, per type and per month.
// @Tags contributions
// @Produce json
// @Param status query []string false "Only count these statuses" collectionFormat(multi)
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /contributions/summary [get]
func (h *contributionHandler) getSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	summary, err := h.contributionService.GetSummary(c.Request.Context(), userID, dto.ToContributionStatuses(params.Statuses), time.Now())
	if err != nil {
		respondError(c, err, "Failed to summarise contributions")
		return
	}
	c.JSON(http.StatusOK, dto.ToSummaryResponse(*summary))
}

// getContribution godoc
// @Summary Get a contribution
// @Tags contributions
// @Produce json
// @Param contributionID path string true "Contribution ID"
// @Success 200 {object} dto.ContributionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /contributions/{contributionID} [get]
func (h *contributionHandler) getContribution(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	contribution, err := h.contributionService.GetContribution(c.Request.Context(), userID, c.Param("contributionID"))
	if err != nil {
		respondError(c, err, "Failed to get contribution")
		return
	}
	c.JSON(http.StatusOK, dto.ToContributionResponse(contribution))
}

// updateContribution godoc
// @Summary Edit a pending contribution
// @Description Re-validates the edited contribution against the member's other contributions.
// @Tags contributions
// @Accept json
// @Produce json
// @Param contributionID path string true "Contribution ID"
// @Param contribution body dto.UpdateContributionRequest true "Contribution details"
// @Success 200 {object} dto.ContributionResponse
// @Failure 400 {object} RejectionResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} RejectionResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /contributions/{contributionID} [put]
func (h *contributionHandler) updateContribution(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	contribution, err := h.contributionService.UpdateContribution(c.Request.Context(), userID, c.Param("contributionID"), req, time.Now())
	if err != nil {
		respondError(c, err, "Failed to update contribution")
		return
	}
	c.JSON(http.StatusOK, dto.ToContributionResponse(contribution))
}

// updateContributionStatus godoc
// @Summary Approve or reject a contribution
// @Description Moves a pending contribution to approved or rejected. Requires the admin role.
// @Tags contributions
// @Accept json
// @Produce json
// @Param contributionID path string true "Contribution ID"
// @Param status body dto.UpdateContributionStatusRequest true "New status"
// @Success 200 {object} dto.ContributionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /contributions/{contributionID}/status [patch]
func (h *contributionHandler) updateContributionStatus(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContributionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	contributionID := c.Param("contributionID")
	contribution, err := h.contributionService.UpdateContributionStatus(c.Request.Context(), userID, contributionID, domain.ContributionStatus(req.Status), time.Now())
	if err != nil {
		respondError(c, err, "Failed to update contribution status")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Contribution status updated",
		slog.String("contribution_id", contributionID),
		slog.String("status", req.Status))
	c.JSON(http.StatusOK, dto.ToContributionResponse(contribution))
}
