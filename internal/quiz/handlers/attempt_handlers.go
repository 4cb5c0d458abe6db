package handlers

import (
	"net/http"

	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/common/middleware"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/services"
	"github.com/gin-gonic/gin"
)

// AttemptHandler serves quiz-attempt endpoints
type AttemptHandler struct {
	attempts *services.AttemptService
}

func NewAttemptHandler(attempts *services.AttemptService) *AttemptHandler {
	return &AttemptHandler{attempts: attempts}
}

// SaveAttempt records a quiz attempt and its progress/activity cascade
// POST /api/quiz-attempts
func (h *AttemptHandler) SaveAttempt(c *gin.Context) {
	var req models.SaveAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	attempt, err := h.attempts.SaveAttempt(&req)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, attempt)
}

// GetAttempts lists a user's attempts newest first
// GET /api/quiz-attempts/:userId?topicId=
func (h *AttemptHandler) GetAttempts(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	attempts, err := h.attempts.GetAttempts(userID, c.Query("topicId"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, attempts)
}
