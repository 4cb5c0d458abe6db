package handlers

import (
	"net/http"

	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/common/middleware"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/services"
	"github.com/gin-gonic/gin"
)

// ProgressHandler serves course-progress endpoints
type ProgressHandler struct {
	progress *services.ProgressService
}

func NewProgressHandler(progress *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

// GetProgress lists a user's progress, optionally filtered by topic
// GET /api/progress/:userId?topicId=
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	progress, err := h.progress.GetProgress(userID, c.Query("topicId"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// UpdateProgress upserts a (user, topic) progress row
// PUT /api/progress/:userId/:topicId
func (h *ProgressHandler) UpdateProgress(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	var req models.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	row, err := h.progress.UpdateProgress(userID, c.Param("topicId"), &req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, row)
}
