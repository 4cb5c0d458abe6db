package repository

import (
	"time"

	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// streakWindow is how many recent daily-activity rows the streak scan reads
const streakWindow = 30

// GetDailyActivity retrieves activity rows from the last N days, most recent
// first. days defaults to 7.
func (s *Store) GetDailyActivity(userID uint, days int) ([]*models.DailyActivity, error) {
	if days <= 0 {
		days = 7
	}
	since := dayStart(time.Now()).AddDate(0, 0, -days)

	var activity []*models.DailyActivity
	result := s.db.
		Where("user_id = ? AND date >= ?", userID, since).
		Order("date DESC").
		Find(&activity)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch daily activity", result.Error.Error())
	}
	return activity, nil
}

// UpdateDailyActivity adds the deltas to today's activity row, creating it if
// absent, then refreshes the user's streak. Returns today's row.
func (s *Store) UpdateDailyActivity(userID uint, req *models.UpdateActivityRequest) (*models.DailyActivity, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := upsertDailyActivity(tx, userID, req.QuestionsAnswered, req.TimeSpent, req.XPEarned); err != nil {
			return err
		}
		return refreshUserStreak(tx, userID)
	})
	if err != nil {
		return nil, err
	}

	var row models.DailyActivity
	result := s.db.Where("user_id = ? AND date = ?", userID, dayStart(time.Now())).First(&row)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch daily activity", result.Error.Error())
	}
	return &row, nil
}

// upsertDailyActivity accumulates deltas into the (user, today) row with a
// single atomic statement. The additive assignments run inside the database,
// so concurrent same-day writes cannot lose each other's counts.
func upsertDailyActivity(tx *gorm.DB, userID uint, questions, minutes, xp int) error {
	now := time.Now()
	row := models.DailyActivity{
		UserID:            userID,
		Date:              dayStart(now),
		QuestionsAnswered: questions,
		TimeSpent:         minutes,
		XPEarned:          xp,
		StreakMaintained:  true,
	}

	result := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"questions_answered": gorm.Expr("questions_answered + ?", questions),
			"time_spent":         gorm.Expr("time_spent + ?", minutes),
			"xp_earned":          gorm.Expr("xp_earned + ?", xp),
			"streak_maintained":  true,
			"updated_at":         now,
		}),
	}).Create(&row)

	if result.Error != nil {
		return errors.Internal("failed to upsert daily activity", result.Error.Error())
	}
	return nil
}

// refreshUserStreak recomputes current and longest streaks from the last 30
// activity rows and persists them with last_active_date. The scan is pure, so
// running it after every activity write is safe.
func refreshUserStreak(tx *gorm.DB, userID uint) error {
	var activity []*models.DailyActivity
	result := tx.
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(streakWindow).
		Find(&activity)
	if result.Error != nil {
		return errors.Internal("failed to fetch activity for streak", result.Error.Error())
	}

	maintained := make([]bool, len(activity))
	for i, a := range activity {
		maintained[i] = a.StreakMaintained
	}
	current, longest := ComputeStreaks(maintained)

	result = tx.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{
			"current_streak":   current,
			"longest_streak":   longest,
			"last_active_date": time.Now(),
		})
	if result.Error != nil {
		return errors.Internal("failed to update user streak", result.Error.Error())
	}
	return nil
}
