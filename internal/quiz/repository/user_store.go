package repository

import (
	stderrors "errors"

	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"gorm.io/gorm"
)

// defaultAchievements returns the four achievements seeded for a new user
func defaultAchievements(userID uint) []models.Achievement {
	return []models.Achievement{
		{UserID: userID, AchievementType: "number_master", Title: "Number Master", Description: "Complete your first topic", Icon: "🔢", MaxProgress: 1, XPReward: 100},
		{UserID: userID, AchievementType: "perfect_score", Title: "Perfect Score", Description: "Score 100% on five quizzes", Icon: "💯", MaxProgress: 5, XPReward: 250},
		{UserID: userID, AchievementType: "streak_master", Title: "Streak Master", Description: "Practice seven days in a row", Icon: "🔥", MaxProgress: 7, XPReward: 200},
		{UserID: userID, AchievementType: "math_graduate", Title: "Math Graduate", Description: "Complete all eight topics", Icon: "🎓", MaxProgress: 8, XPReward: 500},
	}
}

// GetUser retrieves a user by ID
func (s *Store) GetUser(id uint) (*models.User, error) {
	var user models.User
	result := s.db.First(&user, id)
	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.Internal("failed to fetch user", result.Error.Error())
	}
	return &user, nil
}

// CreateUser inserts the user and seeds the default achievements in one
// transaction, so a failed seed never leaves a half-initialized account.
func (s *Store) CreateUser(user *models.User) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(user); result.Error != nil {
			return result.Error
		}

		achievements := defaultAchievements(user.ID)
		if result := tx.Create(&achievements); result.Error != nil {
			return result.Error
		}

		return nil
	})
	if err != nil {
		return errors.Internal("failed to create user", err.Error())
	}
	return nil
}

// UpdateUser merges the given fields into the user row and returns the
// updated record. updated_at is stamped by the ORM.
func (s *Store) UpdateUser(id uint, updates map[string]interface{}) (*models.User, error) {
	result := s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, errors.Internal("failed to update user", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return nil, errors.NotFound("user")
	}

	return s.GetUser(id)
}

// GetLeaderboard retrieves users ranked by total XP
func (s *Store) GetLeaderboard(limit int) ([]*models.LeaderboardEntry, error) {
	var users []*models.User
	result := s.db.Order("total_xp DESC, id ASC").Limit(limit).Find(&users)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch leaderboard", result.Error.Error())
	}

	entries := make([]*models.LeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = &models.LeaderboardEntry{
			Rank:     i + 1,
			UserID:   u.ID,
			Username: u.Username,
			TotalXP:  u.TotalXP,
			Level:    u.Level,
		}
	}

	return entries, nil
}
