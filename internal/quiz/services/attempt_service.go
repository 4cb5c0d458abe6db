package services

import (
	"fmt"

	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/common/validation"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/repository"
)

// AttemptService handles the quiz-attempt log and its write cascade
type AttemptService struct {
	store *repository.Store
}

func NewAttemptService(store *repository.Store) *AttemptService {
	return &AttemptService{store: store}
}

// SaveAttempt validates and records a quiz attempt. The store cascades the
// write into course progress, daily activity and the user streak.
func (s *AttemptService) SaveAttempt(req *models.SaveAttemptRequest) (*models.QuizAttempt, error) {
	if fieldErrs := validation.Validate(req); fieldErrs != nil {
		return nil, errors.Validation("invalid quiz attempt", fmt.Sprintf("%s: %s", fieldErrs[0].Field, fieldErrs[0].Message))
	}
	if err := validation.ValidateIntRange(req.QuestionsCorrect, 0, req.QuestionsTotal); err != nil {
		return nil, errors.Validation("invalid quiz attempt", "questions_correct cannot exceed questions_total")
	}

	return s.store.SaveQuizAttempt(req)
}

// GetAttempts lists a user's attempts newest first, optionally by topic
func (s *AttemptService) GetAttempts(userID uint, topicID string) ([]*models.QuizAttempt, error) {
	if userID == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}
	return s.store.GetQuizAttempts(userID, topicID)
}
