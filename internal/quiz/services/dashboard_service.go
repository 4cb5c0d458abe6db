package services

import (
	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/repository"
	"github.com/architect/quiztracker/pkg/logger"
	"go.uber.org/zap"
)

// DashboardService assembles the composite dashboard view
type DashboardService struct {
	store *repository.Store
}

func NewDashboardService(store *repository.Store) *DashboardService {
	return &DashboardService{store: store}
}

// GetDashboard fetches the user with all progress, achievements and the last
// seven days of activity. The overall grade is recomputed from completed
// progress rows; if it drifted from the stored value it is written back, but
// the response always carries the freshly computed grade.
func (s *DashboardService) GetDashboard(userID uint) (*models.DashboardResponse, error) {
	if userID == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}

	user, err := s.store.GetUser(userID)
	if err != nil {
		return nil, err
	}

	progress, err := s.store.GetCourseProgress(userID, "")
	if err != nil {
		return nil, err
	}

	achievements, err := s.store.GetUserAchievements(userID)
	if err != nil {
		return nil, err
	}

	activity, err := s.store.GetDailyActivity(userID, 7)
	if err != nil {
		return nil, err
	}

	grade := repository.OverallGrade(progress)
	if grade != user.OverallGrade {
		if _, err := s.store.UpdateUser(userID, map[string]interface{}{"overall_grade": grade}); err != nil {
			logger.Warn("failed to persist overall grade",
				zap.Uint("user_id", userID),
				zap.Error(err),
			)
		}
	}
	user.OverallGrade = grade

	return &models.DashboardResponse{
		User:         user,
		Progress:     progress,
		Achievements: achievements,
		Activity:     activity,
	}, nil
}
