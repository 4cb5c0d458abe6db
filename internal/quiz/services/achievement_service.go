package services

import (
	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/repository"
)

// AchievementService handles achievement progress and unlocks
type AchievementService struct {
	store *repository.Store
}

func NewAchievementService(store *repository.Store) *AchievementService {
	return &AchievementService{store: store}
}

// GetUserAchievements lists all achievements for a user
func (s *AchievementService) GetUserAchievements(userID uint) ([]*models.Achievement, error) {
	if userID == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}
	return s.store.GetUserAchievements(userID)
}

// UpdateProgress sets the progress counter of one achievement
func (s *AchievementService) UpdateProgress(userID uint, achievementType string, progress int) (*models.Achievement, error) {
	if userID == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}
	if achievementType == "" {
		return nil, errors.BadRequest("invalid achievement type")
	}
	if progress < 0 {
		return nil, errors.BadRequest("progress cannot be negative")
	}
	return s.store.UpdateAchievementProgress(userID, achievementType, progress)
}

// Unlock marks the achievement unlocked and awards its XP once
func (s *AchievementService) Unlock(userID uint, achievementType string) (*models.Achievement, error) {
	if userID == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}
	if achievementType == "" {
		return nil, errors.BadRequest("invalid achievement type")
	}
	return s.store.UnlockAchievement(userID, achievementType)
}
