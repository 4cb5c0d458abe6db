package handlers

import (
	"net/http"
	"strconv"

	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/common/middleware"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/services"
	"github.com/gin-gonic/gin"
)

// ActivityHandler serves daily-activity endpoints
type ActivityHandler struct {
	activity *services.ActivityService
}

func NewActivityHandler(activity *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

// GetActivity lists the last N days of activity (default 7)
// GET /api/activity/:userId?days=
func (h *ActivityHandler) GetActivity(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil {
		days = 7
	}

	activity, err := h.activity.GetActivity(userID, days)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, activity)
}

// RecordActivity adds deltas to today's activity row
// POST /api/activity/:userId
func (h *ActivityHandler) RecordActivity(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	var req models.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	row, err := h.activity.RecordActivity(userID, &req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}
