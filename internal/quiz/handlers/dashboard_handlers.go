package handlers

import (
	"net/http"

	"github.com/architect/quiztracker/internal/common/middleware"
	"github.com/architect/quiztracker/internal/quiz/services"
	"github.com/gin-gonic/gin"
)

// DashboardHandler serves the composite dashboard endpoint
type DashboardHandler struct {
	dashboard *services.DashboardService
}

func NewDashboardHandler(dashboard *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// GetDashboard returns the user with progress, achievements and recent
// activity, with the overall grade recomputed.
// GET /api/dashboard/:userId
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	dashboard, err := h.dashboard.GetDashboard(userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
