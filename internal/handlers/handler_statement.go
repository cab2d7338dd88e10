package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/pension_management_app/internal/core/ports/services"
	"github.com/SscSPs/pension_management_app/internal/dto"
)

type statementHandler struct {
	statementService portssvc.StatementSvcFacade
}

func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade) {
	h := &statementHandler{statementService: statementService}

	rg.POST("/statements", h.generateStatement)
}

// generateStatement godoc
// @Summary Generate a contribution statement
// @Description Builds a statement of the member's contributions for a period, with benefits projected from approved contributions. Statements are not stored.
// @Tags statements
// @Accept json
// @Produce json
// @Param statement body dto.GenerateStatementRequest true "Statement period"
// @Success 200 {object} dto.StatementResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /statements [post]
func (h *statementHandler) generateStatement(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.GenerateStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	statement, err := h.statementService.GenerateStatement(c.Request.Context(), userID, req, time.Now())
	if err != nil {
		respondError(c, err, "Failed to generate statement")
		return
	}
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement))
}
