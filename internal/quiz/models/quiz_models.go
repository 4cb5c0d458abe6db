package models

import (
	"time"

	"gorm.io/datatypes"
)

// User represents a learner account
type User struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	Username       string     `gorm:"unique;not null" json:"username"`
	TotalXP        int        `gorm:"default:0" json:"total_xp"`
	Level          int        `gorm:"default:1" json:"level"`
	CurrentStreak  int        `gorm:"default:0" json:"current_streak"`
	LongestStreak  int        `gorm:"default:0" json:"longest_streak"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`
	OverallGrade   float64    `gorm:"default:0" json:"overall_grade"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// CourseProgress tracks a user's progress on one topic. One row per
// (user_id, topic_id); writes go through an atomic upsert on that key.
type CourseProgress struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;uniqueIndex:idx_progress_user_topic" json:"user_id"`
	TopicID          string    `gorm:"not null;uniqueIndex:idx_progress_user_topic" json:"topic_id"`
	Score            float64   `gorm:"default:0" json:"score"`
	QuestionsCorrect int       `gorm:"default:0" json:"questions_correct"`
	QuestionsTotal   int       `gorm:"default:0" json:"questions_total"`
	Completed        bool      `gorm:"default:false" json:"completed"`
	Difficulty       string    `json:"difficulty"`
	LastAccessed     time.Time `json:"last_accessed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Achievement is a per-user badge with unlock state. Four defaults are seeded
// when the user is created.
type Achievement struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;uniqueIndex:idx_achievement_user_type" json:"user_id"`
	AchievementType string     `gorm:"not null;uniqueIndex:idx_achievement_user_type" json:"achievement_type"`
	Title           string     `gorm:"not null" json:"title"`
	Description     string     `json:"description"`
	Icon            string     `json:"icon"`
	Progress        int        `gorm:"default:0" json:"progress"`
	MaxProgress     int        `gorm:"default:1" json:"max_progress"`
	Unlocked        bool       `gorm:"default:false" json:"unlocked"`
	UnlockedAt      *time.Time `json:"unlocked_at,omitempty"`
	XPReward        int        `gorm:"default:0" json:"xp_reward"`
	CreatedAt       time.Time  `json:"created_at"`
}

// QuizAttempt is an append-only log of completed quizzes
type QuizAttempt struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	TopicID          string    `gorm:"not null;index" json:"topic_id"`
	Score            float64   `gorm:"not null" json:"score"`
	QuestionsCorrect int       `gorm:"not null" json:"questions_correct"`
	QuestionsTotal   int       `gorm:"not null" json:"questions_total"`
	Difficulty       string    `json:"difficulty"`
	TimeSpent        int       `gorm:"default:0" json:"time_spent"` // seconds
	CompletedAt      time.Time `gorm:"autoCreateTime" json:"completed_at"`
}

// DailyActivity accumulates per-day practice totals. One row per
// (user_id, calendar day); same-day writes add to the stored counters.
type DailyActivity struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;uniqueIndex:idx_activity_user_date" json:"user_id"`
	Date              time.Time `gorm:"not null;uniqueIndex:idx_activity_user_date" json:"date"`
	QuestionsAnswered int       `gorm:"default:0" json:"questions_answered"`
	TimeSpent         int       `gorm:"default:0" json:"time_spent"` // minutes
	XPEarned          int       `gorm:"default:0" json:"xp_earned"`
	StreakMaintained  bool      `gorm:"default:false" json:"streak_maintained"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PracticeQuestion is read-only reference data
type PracticeQuestion struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	TopicID       string         `gorm:"not null;index" json:"topic_id"`
	Difficulty    string         `gorm:"index" json:"difficulty"`
	Question      string         `gorm:"not null" json:"question"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer string         `json:"correct_answer"`
	Explanation   string         `json:"explanation"`
	CreatedAt     time.Time      `json:"created_at"`
}

// CreateUserRequest is the request body for registration
type CreateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
}

// UpdateUserRequest carries partial administrative updates. Pointer fields
// distinguish "not provided" from zero values.
type UpdateUserRequest struct {
	Username      *string  `json:"username,omitempty"`
	TotalXP       *int     `json:"total_xp,omitempty"`
	CurrentStreak *int     `json:"current_streak,omitempty"`
	LongestStreak *int     `json:"longest_streak,omitempty"`
	OverallGrade  *float64 `json:"overall_grade,omitempty"`
}

// UpdateProgressRequest carries partial course-progress updates
type UpdateProgressRequest struct {
	Score            *float64 `json:"score,omitempty"`
	QuestionsCorrect *int     `json:"questions_correct,omitempty"`
	QuestionsTotal   *int     `json:"questions_total,omitempty"`
	Completed        *bool    `json:"completed,omitempty"`
	Difficulty       *string  `json:"difficulty,omitempty"`
}

// SaveAttemptRequest is the request body for recording a quiz attempt
type SaveAttemptRequest struct {
	UserID           uint    `json:"user_id" binding:"required,gt=0"`
	TopicID          string  `json:"topic_id" binding:"required"`
	Score            float64 `json:"score" binding:"gte=0,lte=100"`
	QuestionsCorrect int     `json:"questions_correct" binding:"gte=0"`
	QuestionsTotal   int     `json:"questions_total" binding:"required,gt=0"`
	Difficulty       string  `json:"difficulty"`
	TimeSpent        int     `json:"time_spent" binding:"gte=0"` // seconds
}

// UpdateActivityRequest carries additive daily-activity deltas
type UpdateActivityRequest struct {
	QuestionsAnswered int `json:"questions_answered" binding:"gte=0"`
	TimeSpent         int `json:"time_spent" binding:"gte=0"` // minutes
	XPEarned          int `json:"xp_earned" binding:"gte=0"`
}

// UpdateAchievementProgressRequest sets the progress counter of one achievement
type UpdateAchievementProgressRequest struct {
	Progress int `json:"progress" binding:"gte=0"`
}

// DashboardResponse is the composite dashboard view
type DashboardResponse struct {
	User         *User             `json:"user"`
	Progress     []*CourseProgress `json:"progress"`
	Achievements []*Achievement    `json:"achievements"`
	Activity     []*DailyActivity  `json:"activity"`
}

// LeaderboardEntry represents a position in the XP leaderboard
type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	TotalXP  int    `json:"total_xp"`
	Level    int    `json:"level"`
}
