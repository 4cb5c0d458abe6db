package repository

import (
	"time"

	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"gorm.io/gorm"
)

// SaveQuizAttempt records the attempt and cascades into course progress,
// daily activity and the user's streak, all inside one transaction so a
// partial failure never leaves the three tables inconsistent.
func (s *Store) SaveQuizAttempt(req *models.SaveAttemptRequest) (*models.QuizAttempt, error) {
	attempt := &models.QuizAttempt{
		UserID:           req.UserID,
		TopicID:          req.TopicID,
		Score:            req.Score,
		QuestionsCorrect: req.QuestionsCorrect,
		QuestionsTotal:   req.QuestionsTotal,
		Difficulty:       req.Difficulty,
		TimeSpent:        req.TimeSpent,
		CompletedAt:      time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if result := tx.Create(attempt); result.Error != nil {
			return errors.Internal("failed to save quiz attempt", result.Error.Error())
		}

		completed := req.Score >= CompletionScore
		progress := &models.UpdateProgressRequest{
			Score:            &req.Score,
			QuestionsCorrect: &req.QuestionsCorrect,
			QuestionsTotal:   &req.QuestionsTotal,
			Completed:        &completed,
			Difficulty:       &req.Difficulty,
		}
		if err := upsertCourseProgress(tx, req.UserID, req.TopicID, progress); err != nil {
			return err
		}

		// Seconds spent become whole minutes of daily activity; the score
		// rounds down to earned XP.
		if err := upsertDailyActivity(tx, req.UserID, req.QuestionsTotal, req.TimeSpent/60, int(req.Score)); err != nil {
			return err
		}

		return refreshUserStreak(tx, req.UserID)
	})
	if err != nil {
		return nil, err
	}

	return attempt, nil
}

// GetQuizAttempts retrieves a user's attempts, newest first. An empty topicID
// returns attempts for all topics.
func (s *Store) GetQuizAttempts(userID uint, topicID string) ([]*models.QuizAttempt, error) {
	query := s.db.Where("user_id = ?", userID)
	if topicID != "" {
		query = query.Where("topic_id = ?", topicID)
	}

	var attempts []*models.QuizAttempt
	result := query.Order("completed_at DESC").Find(&attempts)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch quiz attempts", result.Error.Error())
	}
	return attempts, nil
}
