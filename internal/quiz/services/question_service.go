package services

import (
	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/repository"
)

// QuestionService serves practice-question reference data
type QuestionService struct {
	store *repository.Store
}

func NewQuestionService(store *repository.Store) *QuestionService {
	return &QuestionService{store: store}
}

// GetQuestions lists practice questions for a topic, optionally by difficulty
func (s *QuestionService) GetQuestions(topicID string, difficulty string) ([]*models.PracticeQuestion, error) {
	if topicID == "" {
		return nil, errors.BadRequest("invalid topic ID")
	}
	return s.store.GetPracticeQuestions(topicID, difficulty)
}
