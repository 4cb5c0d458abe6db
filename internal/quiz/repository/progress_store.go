package repository

import (
	"time"

	"github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetCourseProgress retrieves progress rows for a user. An empty topicID
// returns all topics.
func (s *Store) GetCourseProgress(userID uint, topicID string) ([]*models.CourseProgress, error) {
	query := s.db.Where("user_id = ?", userID)
	if topicID != "" {
		query = query.Where("topic_id = ?", topicID)
	}

	var progress []*models.CourseProgress
	result := query.Order("topic_id ASC").Find(&progress)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch course progress", result.Error.Error())
	}
	return progress, nil
}

// UpsertCourseProgress merges the provided fields into the (user, topic) row,
// inserting it if absent, and returns the resulting record.
func (s *Store) UpsertCourseProgress(userID uint, topicID string, req *models.UpdateProgressRequest) (*models.CourseProgress, error) {
	if err := upsertCourseProgress(s.db, userID, topicID, req); err != nil {
		return nil, err
	}

	var row models.CourseProgress
	result := s.db.Where("user_id = ? AND topic_id = ?", userID, topicID).First(&row)
	if result.Error != nil {
		return nil, errors.Internal("failed to fetch course progress", result.Error.Error())
	}
	return &row, nil
}

// upsertCourseProgress performs a single atomic insert-or-update guarded by
// the (user_id, topic_id) unique index, so concurrent writers for the same
// key cannot produce duplicate rows.
func upsertCourseProgress(tx *gorm.DB, userID uint, topicID string, req *models.UpdateProgressRequest) error {
	now := time.Now()
	row := models.CourseProgress{
		UserID:       userID,
		TopicID:      topicID,
		LastAccessed: now,
	}
	assign := map[string]interface{}{
		"last_accessed": now,
		"updated_at":    now,
	}

	if req.Score != nil {
		row.Score = *req.Score
		assign["score"] = *req.Score
	}
	if req.QuestionsCorrect != nil {
		row.QuestionsCorrect = *req.QuestionsCorrect
		assign["questions_correct"] = *req.QuestionsCorrect
	}
	if req.QuestionsTotal != nil {
		row.QuestionsTotal = *req.QuestionsTotal
		assign["questions_total"] = *req.QuestionsTotal
	}
	if req.Completed != nil {
		row.Completed = *req.Completed
		assign["completed"] = *req.Completed
	}
	if req.Difficulty != nil {
		row.Difficulty = *req.Difficulty
		assign["difficulty"] = *req.Difficulty
	}

	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
		DoUpdates: clause.Assignments(assign),
	}).Create(&row)

	if result.Error != nil {
		return errors.Internal("failed to upsert course progress", result.Error.Error())
	}
	return nil
}
