package repository

import (
	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
)

// GetPracticeQuestions retrieves practice questions for a topic, optionally
// filtered by difficulty.
func (s *Store) GetPracticeQuestions(topicID string, difficulty string) ([]*models.PracticeQuestion, error) {
	query := s.db.Where("topic_id = ?", topicID)
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}

	var questions []*models.PracticeQuestion
	result := query.Order("id ASC").Find(&questions)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch practice questions", result.Error.Error())
	}
	return questions, nil
}
