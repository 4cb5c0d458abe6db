package handlers

import (
	"net/http"

	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/common/middleware"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/services"
	"github.com/gin-gonic/gin"
)

// AchievementHandler serves achievement endpoints
type AchievementHandler struct {
	achievements *services.AchievementService
}

func NewAchievementHandler(achievements *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements}
}

// GetUserAchievements lists all achievements for a user
// GET /api/achievements/:userId
func (h *AchievementHandler) GetUserAchievements(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	achievements, err := h.achievements.GetUserAchievements(userID)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, achievements)
}

// UpdateProgress sets the progress counter of one achievement
// PUT /api/achievements/:userId/:achievementType/progress
func (h *AchievementHandler) UpdateProgress(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	var req models.UpdateAchievementProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	ach, err := h.achievements.UpdateProgress(userID, c.Param("achievementType"), req.Progress)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, ach)
}

// Unlock unlocks an achievement and awards its XP once
// PUT /api/achievements/:userId/:achievementType/unlock
func (h *AchievementHandler) Unlock(c *gin.Context) {
	userID, ok := parseID(c, "userId")
	if !ok {
		return
	}

	ach, err := h.achievements.Unlock(userID, c.Param("achievementType"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, ach)
}
