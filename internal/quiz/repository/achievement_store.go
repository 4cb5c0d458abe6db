package repository

import (
	stderrors "errors"
	"time"

	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"gorm.io/gorm"
)

// GetUserAchievements retrieves all achievement rows for a user
func (s *Store) GetUserAchievements(userID uint) ([]*models.Achievement, error) {
	var achievements []*models.Achievement
	result := s.db.Where("user_id = ?", userID).Order("id ASC").Find(&achievements)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch achievements", result.Error.Error())
	}
	return achievements, nil
}

// UpdateAchievementProgress sets the progress counter of one achievement
func (s *Store) UpdateAchievementProgress(userID uint, achievementType string, progress int) (*models.Achievement, error) {
	result := s.db.Model(&models.Achievement{}).
		Where("user_id = ? AND achievement_type = ?", userID, achievementType).
		Update("progress", progress)
	if result.Error != nil {
		return nil, errors.Internal("failed to update achievement progress", result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return nil, errors.NotFound("achievement")
	}

	var ach models.Achievement
	if err := s.db.Where("user_id = ? AND achievement_type = ?", userID, achievementType).First(&ach).Error; err != nil {
		return nil, errors.Internal("failed to fetch achievement", err.Error())
	}
	return &ach, nil
}

// UnlockAchievement marks the achievement unlocked and awards its XP.
// Re-invoking on an already unlocked achievement is a no-op, so XP can only
// be awarded once. The XP increment and the level recompute happen in a
// single UPDATE statement to stay correct under concurrent awards.
func (s *Store) UnlockAchievement(userID uint, achievementType string) (*models.Achievement, error) {
	var unlocked models.Achievement

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ach models.Achievement
		if err := tx.Where("user_id = ? AND achievement_type = ?", userID, achievementType).First(&ach).Error; err != nil {
			if stderrors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NotFound("achievement")
			}
			return errors.Internal("failed to fetch achievement", err.Error())
		}

		if ach.Unlocked {
			unlocked = ach
			return nil
		}

		now := time.Now()
		result := tx.Model(&models.Achievement{}).
			Where("id = ? AND unlocked = ?", ach.ID, false).
			Updates(map[string]interface{}{
				"unlocked":    true,
				"unlocked_at": now,
			})
		if result.Error != nil {
			return errors.Internal("failed to unlock achievement", result.Error.Error())
		}
		if result.RowsAffected == 0 {
			// Lost the race to a concurrent unlock; treat as already unlocked
			unlocked = ach
			unlocked.Unlocked = true
			return nil
		}

		if ach.XPReward > 0 {
			result := tx.Model(&models.User{}).Where("id = ?", userID).
				Updates(map[string]interface{}{
					"total_xp": gorm.Expr("total_xp + ?", ach.XPReward),
					"level":    gorm.Expr("(total_xp + ?) / 100 + 1", ach.XPReward),
				})
			if result.Error != nil {
				return errors.Internal("failed to award achievement XP", result.Error.Error())
			}
		}

		ach.Unlocked = true
		ach.UnlockedAt = &now
		unlocked = ach
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &unlocked, nil
}
