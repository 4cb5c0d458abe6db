package services

import (
	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/repository"
)

// ProgressService handles per-topic course progress
type ProgressService struct {
	store *repository.Store
}

func NewProgressService(store *repository.Store) *ProgressService {
	return &ProgressService{store: store}
}

// GetProgress lists progress rows for a user, optionally scoped to one topic
func (s *ProgressService) GetProgress(userID uint, topicID string) ([]*models.CourseProgress, error) {
	if userID == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}
	return s.store.GetCourseProgress(userID, topicID)
}

// UpdateProgress upserts the (user, topic) progress row with the provided
// fields and refreshes last_accessed.
func (s *ProgressService) UpdateProgress(userID uint, topicID string, req *models.UpdateProgressRequest) (*models.CourseProgress, error) {
	if userID == 0 {
		return nil, errors.BadRequest("invalid user ID")
	}
	if topicID == "" {
		return nil, errors.BadRequest("invalid topic ID")
	}
	return s.store.UpsertCourseProgress(userID, topicID, req)
}
