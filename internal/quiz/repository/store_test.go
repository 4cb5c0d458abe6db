package repository

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	commonerrors "github.com/architect/quiztracker/internal/common/errors"
	"github.com/architect/quiztracker/internal/quiz/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int64

// setupTestStore opens a fresh in-memory SQLite database per test
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:storetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
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

	return NewStore(db)
}

func createTestUser(t *testing.T, store *Store, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Level: 1}
	require.NoError(t, store.CreateUser(user))
	return user
}

func TestCreateUser_SeedsDefaultAchievements(t *testing.T) {
	store := setupTestStore(t)

	user := createTestUser(t, store, "alice")
	assert.NotZero(t, user.ID)

	achievements, err := store.GetUserAchievements(user.ID)
	require.NoError(t, err)
	require.Len(t, achievements, 4)

	byType := map[string]*models.Achievement{}
	for _, a := range achievements {
		assert.False(t, a.Unlocked)
		assert.Nil(t, a.UnlockedAt)
		byType[a.AchievementType] = a
	}

	assert.Equal(t, 100, byType["number_master"].XPReward)
	assert.Equal(t, 250, byType["perfect_score"].XPReward)
	assert.Equal(t, 200, byType["streak_master"].XPReward)
	assert.Equal(t, 500, byType["math_graduate"].XPReward)
	assert.Equal(t, 7, byType["streak_master"].MaxProgress)
	assert.Equal(t, 8, byType["math_graduate"].MaxProgress)
}

func TestGetUser_NotFound(t *testing.T) {
	store := setupTestStore(t)

	user, err := store.GetUser(999)

	assert.Nil(t, user)
	require.NotNil(t, err)
	assert.Equal(t, 404, err.(*commonerrors.AppError).Status)
}

func TestGetUser_StorageFailureIsInternal(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "zoe")

	// A broken connection must surface as a storage error, not a miss
	sqlDB, err := store.DB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, getErr := store.GetUser(user.ID)
	require.NotNil(t, getErr)
	assert.Equal(t, 500, getErr.(*commonerrors.AppError).Status)
}

func TestUpdateUser_MergesFields(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "bob")

	updated, err := store.UpdateUser(user.ID, map[string]interface{}{
		"total_xp": 250,
		"level":    LevelForXP(250),
	})

	require.NoError(t, err)
	assert.Equal(t, 250, updated.TotalXP)
	assert.Equal(t, 3, updated.Level)
	assert.Equal(t, "bob", updated.Username)
}

func TestUpdateUser_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.UpdateUser(42, map[string]interface{}{"total_xp": 10})

	require.NotNil(t, err)
	assert.Equal(t, 404, err.(*commonerrors.AppError).Status)
}

func TestUpsertCourseProgress_InsertThenUpdate(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "carol")

	score := 80.0
	_, err := store.UpsertCourseProgress(user.ID, "algebra", &models.UpdateProgressRequest{Score: &score})
	require.NoError(t, err)

	score = 90.0
	row, err := store.UpsertCourseProgress(user.ID, "algebra", &models.UpdateProgressRequest{Score: &score})
	require.NoError(t, err)
	assert.Equal(t, 90.0, row.Score)

	// Exactly one row for the (user, topic) key
	var count int64
	require.NoError(t, store.DB().Model(&models.CourseProgress{}).
		Where("user_id = ? AND topic_id = ?", user.ID, "algebra").
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertCourseProgress_PartialFieldsPreserved(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "dave")

	score := 85.0
	difficulty := "hard"
	_, err := store.UpsertCourseProgress(user.ID, "geometry", &models.UpdateProgressRequest{
		Score:      &score,
		Difficulty: &difficulty,
	})
	require.NoError(t, err)

	// Updating only the score must not clear the difficulty
	score = 95.0
	row, err := store.UpsertCourseProgress(user.ID, "geometry", &models.UpdateProgressRequest{Score: &score})
	require.NoError(t, err)
	assert.Equal(t, 95.0, row.Score)
	assert.Equal(t, "hard", row.Difficulty)
}

func TestUnlockAchievement_AwardsXPAndRecomputesLevel(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "erin")

	_, err := store.UpdateUser(user.ID, map[string]interface{}{
		"total_xp": 250,
		"level":    LevelForXP(250),
	})
	require.NoError(t, err)

	ach, err := store.UnlockAchievement(user.ID, "number_master")
	require.NoError(t, err)
	assert.True(t, ach.Unlocked)
	assert.NotNil(t, ach.UnlockedAt)

	updated, err := store.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 350, updated.TotalXP)
	assert.Equal(t, 4, updated.Level)
}

func TestUnlockAchievement_Idempotent(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "frank")

	_, err := store.UnlockAchievement(user.ID, "number_master")
	require.NoError(t, err)

	// Second unlock must not re-award XP
	ach, err := store.UnlockAchievement(user.ID, "number_master")
	require.NoError(t, err)
	assert.True(t, ach.Unlocked)

	updated, err := store.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, updated.TotalXP)
	assert.Equal(t, 2, updated.Level)
}

func TestUnlockAchievement_NotFound(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "grace")

	_, err := store.UnlockAchievement(user.ID, "unknown_badge")

	require.NotNil(t, err)
	assert.Equal(t, 404, err.(*commonerrors.AppError).Status)
}

func TestUpdateAchievementProgress(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "heidi")

	ach, err := store.UpdateAchievementProgress(user.ID, "perfect_score", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, ach.Progress)
	assert.False(t, ach.Unlocked)
}

func TestUpdateDailyActivity_AccumulatesSameDay(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "ivan")

	_, err := store.UpdateDailyActivity(user.ID, &models.UpdateActivityRequest{
		QuestionsAnswered: 5, TimeSpent: 10, XPEarned: 40,
	})
	require.NoError(t, err)

	row, err := store.UpdateDailyActivity(user.ID, &models.UpdateActivityRequest{
		QuestionsAnswered: 3, TimeSpent: 5, XPEarned: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, 8, row.QuestionsAnswered)
	assert.Equal(t, 15, row.TimeSpent)
	assert.Equal(t, 60, row.XPEarned)
	assert.True(t, row.StreakMaintained)

	var count int64
	require.NoError(t, store.DB().Model(&models.DailyActivity{}).
		Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpdateDailyActivity_RefreshesStreak(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "judy")

	_, err := store.UpdateDailyActivity(user.ID, &models.UpdateActivityRequest{QuestionsAnswered: 1})
	require.NoError(t, err)

	updated, err := store.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentStreak)
	assert.Equal(t, 1, updated.LongestStreak)
	assert.NotNil(t, updated.LastActiveDate)
}

func TestGetDailyActivity_Window(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "karl")

	today := dayStart(time.Now())
	rows := []models.DailyActivity{
		{UserID: user.ID, Date: today, QuestionsAnswered: 5, StreakMaintained: true},
		{UserID: user.ID, Date: today.AddDate(0, 0, -3), QuestionsAnswered: 2, StreakMaintained: true},
		{UserID: user.ID, Date: today.AddDate(0, 0, -10), QuestionsAnswered: 9, StreakMaintained: true},
	}
	require.NoError(t, store.DB().Create(&rows).Error)

	activity, err := store.GetDailyActivity(user.ID, 7)
	require.NoError(t, err)
	require.Len(t, activity, 2)

	// Most recent first
	assert.Equal(t, 5, activity[0].QuestionsAnswered)
	assert.Equal(t, 2, activity[1].QuestionsAnswered)
}

func TestSaveQuizAttempt_CompletionThreshold(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "lisa")

	_, err := store.SaveQuizAttempt(&models.SaveAttemptRequest{
		UserID: user.ID, TopicID: "fractions", Score: 75,
		QuestionsCorrect: 7, QuestionsTotal: 10, TimeSpent: 300,
	})
	require.NoError(t, err)

	_, err = store.SaveQuizAttempt(&models.SaveAttemptRequest{
		UserID: user.ID, TopicID: "decimals", Score: 65,
		QuestionsCorrect: 6, QuestionsTotal: 10, TimeSpent: 300,
	})
	require.NoError(t, err)

	passed, err := store.GetCourseProgress(user.ID, "fractions")
	require.NoError(t, err)
	require.Len(t, passed, 1)
	assert.True(t, passed[0].Completed)
	assert.Equal(t, 75.0, passed[0].Score)

	failed, err := store.GetCourseProgress(user.ID, "decimals")
	require.NoError(t, err)
	require.Len(t, failed, 1)
	assert.False(t, failed[0].Completed)
}

func TestSaveQuizAttempt_CascadesIntoActivityAndStreak(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "mallory")

	attempt, err := store.SaveQuizAttempt(&models.SaveAttemptRequest{
		UserID: user.ID, TopicID: "algebra", Score: 82.5,
		QuestionsCorrect: 8, QuestionsTotal: 10,
		Difficulty: "medium", TimeSpent: 610,
	})
	require.NoError(t, err)
	assert.NotZero(t, attempt.ID)

	activity, err := store.GetDailyActivity(user.ID, 1)
	require.NoError(t, err)
	require.Len(t, activity, 1)
	assert.Equal(t, 10, activity[0].QuestionsAnswered)
	assert.Equal(t, 10, activity[0].TimeSpent) // 610s -> 10 whole minutes
	assert.Equal(t, 82, activity[0].XPEarned)  // floor of the score
	assert.True(t, activity[0].StreakMaintained)

	updated, err := store.GetUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentStreak)
}

func TestGetQuizAttempts_NewestFirstWithTopicFilter(t *testing.T) {
	store := setupTestStore(t)
	user := createTestUser(t, store, "nina")

	now := time.Now()
	attempts := []models.QuizAttempt{
		{UserID: user.ID, TopicID: "algebra", Score: 60, QuestionsCorrect: 6, QuestionsTotal: 10, CompletedAt: now.Add(-2 * time.Hour)},
		{UserID: user.ID, TopicID: "algebra", Score: 90, QuestionsCorrect: 9, QuestionsTotal: 10, CompletedAt: now},
		{UserID: user.ID, TopicID: "geometry", Score: 70, QuestionsCorrect: 7, QuestionsTotal: 10, CompletedAt: now.Add(-time.Hour)},
	}
	require.NoError(t, store.DB().Create(&attempts).Error)

	all, err := store.GetQuizAttempts(user.ID, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 90.0, all[0].Score)

	algebra, err := store.GetQuizAttempts(user.ID, "algebra")
	require.NoError(t, err)
	require.Len(t, algebra, 2)
	for _, a := range algebra {
		assert.Equal(t, "algebra", a.TopicID)
	}
}

func TestGetPracticeQuestions_FilteredByDifficulty(t *testing.T) {
	store := setupTestStore(t)

	questions := []models.PracticeQuestion{
		{TopicID: "addition", Difficulty: "easy", Question: "What is 1 + 1?", CorrectAnswer: "2"},
		{TopicID: "addition", Difficulty: "hard", Question: "What is 17 + 26?", CorrectAnswer: "43"},
		{TopicID: "geometry", Difficulty: "easy", Question: "How many sides does a square have?", CorrectAnswer: "4"},
	}
	require.NoError(t, store.DB().Create(&questions).Error)

	all, err := store.GetPracticeQuestions("addition", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	easy, err := store.GetPracticeQuestions("addition", "easy")
	require.NoError(t, err)
	require.Len(t, easy, 1)
	assert.Equal(t, "What is 1 + 1?", easy[0].Question)
}

func TestGetLeaderboard_RanksByTotalXP(t *testing.T) {
	store := setupTestStore(t)

	for i, xp := range []int{150, 400, 50} {
		user := createTestUser(t, store, fmt.Sprintf("player%d", i))
		_, err := store.UpdateUser(user.ID, map[string]interface{}{
			"total_xp": xp,
			"level":    LevelForXP(xp),
		})
		require.NoError(t, err)
	}

	entries, err := store.GetLeaderboard(10)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, 400, entries[0].TotalXP)
	assert.Equal(t, "player1", entries[0].Username)
	assert.Equal(t, 50, entries[2].TotalXP)
}
