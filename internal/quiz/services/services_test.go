package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	commonerrors "github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/architect/quiztracker/internal/quiz/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int64

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.CourseProgress{},
		&models.Achievement{},
		&models.QuizAttempt{},
		&models.DailyActivity{},
		&models.PracticeQuestion{},
	))

	return repository.NewStore(db)
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()
	require.NotNil(t, err)
	appErr, ok := err.(*commonerrors.AppError)
	require.True(t, ok, "expected an AppError, got %T", err)
	assert.Equal(t, status, appErr.Status)
}

func TestUserService_GetUser_ZeroID(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	_, err := svc.GetUser(0)

	assertStatus(t, err, 400)
}

func TestUserService_CreateAndGet(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	created, err := svc.CreateUser(&models.CreateUserRequest{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.Level)
	assert.Equal(t, 0, created.TotalXP)

	fetched, err := svc.GetUser(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", fetched.Username)
}

func TestUserService_UpdateUser_RecomputesLevel(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	created, err := svc.CreateUser(&models.CreateUserRequest{Username: "bob"})
	require.NoError(t, err)

	xp := 250
	updated, err := svc.UpdateUser(created.ID, &models.UpdateUserRequest{TotalXP: &xp})
	require.NoError(t, err)
	assert.Equal(t, 250, updated.TotalXP)
	assert.Equal(t, 3, updated.Level)
}

func TestUserService_UpdateUser_NoFields(t *testing.T) {
	svc := NewUserService(newTestStore(t))

	_, err := svc.UpdateUser(1, &models.UpdateUserRequest{})

	assertStatus(t, err, 400)
}

func TestUserService_Leaderboard_ClampsLimit(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	_, err := svc.CreateUser(&models.CreateUserRequest{Username: "carol"})
	require.NoError(t, err)

	entries, err := svc.GetLeaderboard(-5)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Rank)
}

func TestAttemptService_SaveAttempt_CorrectExceedsTotal(t *testing.T) {
	svc := NewAttemptService(newTestStore(t))

	_, err := svc.SaveAttempt(&models.SaveAttemptRequest{
		UserID: 1, TopicID: "algebra", Score: 90,
		QuestionsCorrect: 11, QuestionsTotal: 10,
	})

	assertStatus(t, err, 400)
}

func TestAttemptService_SaveAttempt_Cascade(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store)
	attempts := NewAttemptService(store)
	progress := NewProgressService(store)

	user, err := users.CreateUser(&models.CreateUserRequest{Username: "dave"})
	require.NoError(t, err)

	attempt, err := attempts.SaveAttempt(&models.SaveAttemptRequest{
		UserID: user.ID, TopicID: "fractions", Score: 85,
		QuestionsCorrect: 17, QuestionsTotal: 20, TimeSpent: 480,
	})
	require.NoError(t, err)
	assert.NotZero(t, attempt.ID)

	rows, err := progress.GetProgress(user.ID, "fractions")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Completed)
	assert.Equal(t, 85.0, rows[0].Score)
}

func TestAchievementService_UnlockAwardsOnce(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store)
	achievements := NewAchievementService(store)

	user, err := users.CreateUser(&models.CreateUserRequest{Username: "erin"})
	require.NoError(t, err)

	first, err := achievements.Unlock(user.ID, "streak_master")
	require.NoError(t, err)
	assert.True(t, first.Unlocked)

	second, err := achievements.Unlock(user.ID, "streak_master")
	require.NoError(t, err)
	assert.True(t, second.Unlocked)

	fetched, err := users.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 200, fetched.TotalXP)
	assert.Equal(t, 3, fetched.Level)
}

func TestActivityService_RecordAccumulates(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store)
	activity := NewActivityService(store)

	user, err := users.CreateUser(&models.CreateUserRequest{Username: "frank"})
	require.NoError(t, err)

	_, err = activity.RecordActivity(user.ID, &models.UpdateActivityRequest{QuestionsAnswered: 4, TimeSpent: 6, XPEarned: 30})
	require.NoError(t, err)

	row, err := activity.RecordActivity(user.ID, &models.UpdateActivityRequest{QuestionsAnswered: 2, TimeSpent: 3, XPEarned: 10})
	require.NoError(t, err)
	assert.Equal(t, 6, row.QuestionsAnswered)
	assert.Equal(t, 9, row.TimeSpent)
	assert.Equal(t, 40, row.XPEarned)
}

func TestDashboardService_ComputesAndPersistsGrade(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store)
	progress := NewProgressService(store)
	dashboard := NewDashboardService(store)

	user, err := users.CreateUser(&models.CreateUserRequest{Username: "grace"})
	require.NoError(t, err)

	completed := true
	scores := map[string]float64{"addition": 100, "subtraction": 80, "geometry": 60}
	for topic, score := range scores {
		s := score
		_, err := progress.UpdateProgress(user.ID, topic, &models.UpdateProgressRequest{
			Score: &s, Completed: &completed,
		})
		require.NoError(t, err)
	}

	view, err := dashboard.GetDashboard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, view.User.OverallGrade)
	assert.Len(t, view.Progress, 3)
	assert.Len(t, view.Achievements, 4)

	// Grade is written back, not just returned
	fetched, err := users.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.0, fetched.OverallGrade)
}

func TestDashboardService_GradeIgnoresIncompleteTopics(t *testing.T) {
	store := newTestStore(t)
	users := NewUserService(store)
	attempts := NewAttemptService(store)
	dashboard := NewDashboardService(store)

	user, err := users.CreateUser(&models.CreateUserRequest{Username: "holly"})
	require.NoError(t, err)

	// The score-60 attempt stays below the completion threshold, so only the
	// two passing topics count toward the grade.
	for topic, score := range map[string]float64{"addition": 100, "subtraction": 80, "geometry": 60} {
		_, err := attempts.SaveAttempt(&models.SaveAttemptRequest{
			UserID: user.ID, TopicID: topic, Score: score,
			QuestionsCorrect: 8, QuestionsTotal: 10, TimeSpent: 120,
		})
		require.NoError(t, err)
	}

	view, err := dashboard.GetDashboard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 90.0, view.User.OverallGrade)
	assert.NotEmpty(t, view.Activity)
}

func TestDashboardService_MissingUser(t *testing.T) {
	dashboard := NewDashboardService(newTestStore(t))

	_, err := dashboard.GetDashboard(123)

	assertStatus(t, err, 404)
}
