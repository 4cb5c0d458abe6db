package services

import (
	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/repository"
)

// UserService handles user accounts and the XP leaderboard
type UserService struct {
	store *repository.Store
}

func NewUserService(store *repository.Store) *UserService {
	return &UserService{store: store}
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(id uint) (*models.User, error) {
	if id == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}
	return s.store.GetUser(id)
}

// CreateUser registers a new user with the default achievement set
func (s *UserService) CreateUser(req *models.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		Username: req.Username,
		Level:    1,
	}
	if err := s.store.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser applies an administrative partial update. When total_xp changes,
// level is recomputed in the same write so the invariant holds.
func (s *UserService) UpdateUser(id uint, req *models.UpdateUserRequest) (*models.User, error) {
	if id == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}

	updates := map[string]interface{}{}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.TotalXP != nil {
		updates["total_xp"] = *req.TotalXP
		updates["level"] = repository.LevelForXP(*req.TotalXP)
	}
	if req.CurrentStreak != nil {
		updates["current_streak"] = *req.CurrentStreak
	}
	if req.LongestStreak != nil {
		updates["longest_streak"] = *req.LongestStreak
	}
	if req.OverallGrade != nil {
		updates["overall_grade"] = *req.OverallGrade
	}

	if len(updates) == 0 {
		return nil, errors.BadRequest("no fields to update")
	}

	return s.store.UpdateUser(id, updates)
}

// GetLeaderboard retrieves the top users by total XP
func (s *UserService) GetLeaderboard(limit int) ([]*models.LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.store.GetLeaderboard(limit)
}
