package repository

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"wellspring/internal/database"
	"wellspring/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Exit(m.Run())
}

// openRepoDB returns a fresh in-memory database per test.
func openRepoDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: database.NewGormLogger(),
	})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...), "migrate")
	return db
}

var fixtureSeq int

func mkUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	fixtureSeq++
	user := &models.User{
		Username: fmt.Sprintf("user%d", fixtureSeq),
		Email:    fmt.Sprintf("user%d@example.com", fixtureSeq),
		Password: "hashed",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error, "create user")
	return user
}

func mkCategory(t *testing.T, db *gorm.DB, mutate ...func(*models.Category)) *models.Category {
	t.Helper()
	fixtureSeq++
	category := &models.Category{
		Name:     fmt.Sprintf("Category %d", fixtureSeq),
		IsActive: true,
	}
	for _, fn := range mutate {
		fn(category)
	}
	require.NoError(t, db.Create(category).Error, "create category")
	return category
}

func mkSession(t *testing.T, db *gorm.DB, owner *models.User, category *models.Category, mutate ...func(*models.Session)) *models.Session {
	t.Helper()
	fixtureSeq++
	now := time.Now().UTC()
	session := &models.Session{
		Title:           fmt.Sprintf("Session %d", fixtureSeq),
		CategoryID:      category.ID,
		CreatedByID:     owner.ID,
		Difficulty:      models.DifficultyBeginner,
		DurationMinutes: 30,
		Status:          models.SessionStatusPublished,
		Privacy:         models.SessionPrivacyPublic,
		PublishedAt:     &now,
	}
	for _, fn := range mutate {
		fn(session)
	}
	require.NoError(t, db.Create(session).Error, "create session")
	return session
}

func mkCompletion(t *testing.T, db *gorm.DB, user *models.User, session *models.Session, completedAt time.Time, minutes, calories int) *models.SessionTracking {
	t.Helper()
	tracking := &models.SessionTracking{
		UserID:               user.ID,
		SessionID:            session.ID,
		CompletedAt:          completedAt,
		DurationCompleted:    minutes,
		CaloriesBurned:       calories,
		CompletionPercentage: 100,
	}
	require.NoError(t, db.Create(tracking).Error, "create completion")
	return tracking
}

func testCtx() context.Context {
	return context.Background()
}
