package services

import (
	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/repository"
)

// ActivityService handles daily activity accumulation
type ActivityService struct {
	store *repository.Store
}

func NewActivityService(store *repository.Store) *ActivityService {
	return &ActivityService{store: store}
}

// GetActivity lists activity for the last N days (default 7)
func (s *ActivityService) GetActivity(userID uint, days int) ([]*models.DailyActivity, error) {
	if userID == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}
	if days <= 0 || days > 365 {
		days = 7
	}
	return s.store.GetDailyActivity(userID, days)
}

// RecordActivity adds the deltas to today's row and refreshes the streak
func (s *ActivityService) RecordActivity(userID uint, req *models.UpdateActivityRequest) (*models.DailyActivity, error) {
	if userID == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}
	return s.store.UpdateDailyActivity(userID, req)
}
