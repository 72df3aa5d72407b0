package seed

import (
	"testing"
	"time"

	"wellspring/internal/database"
	"wellspring/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: database.NewGormLogger(),
	})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(database.PersistentModels()...), "migrate")
	return db
}

func TestCategoriesIdempotent(t *testing.T) {
	db := openSeedDB(t)

	require.NoError(t, Categories(db), "first run")
	require.NoError(t, Categories(db), "second run")

	var count int64
	db.Model(&models.Category{}).Count(&count)
	assert.EqualValues(t, len(BuiltInCategories), count)
}

func TestFactoryCreateUserHashesPassword(t *testing.T) {
	db := openSeedDB(t)
	f := NewFactory(db, Options{})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID, "persisted user should have an ID")
	assert.NotEqual(t, "password123", user.Password, "password should be hashed")
}

func TestFactoryDryRunWritesNothing(t *testing.T) {
	db := openSeedDB(t)
	f := NewFactory(db, Options{DryRun: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID, "expected synthetic ID in dry-run mode")

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count, "dry run must not write users")
}

func TestSeedSessionsRequiresCategories(t *testing.T) {
	db := openSeedDB(t)
	s := NewSeeder(db)

	users, err := s.SeedCommunity(3)
	require.NoError(t, err)
	_, err = s.SeedSessions(users, 5)
	assert.Error(t, err, "expected error when no categories exist")
}

func TestSeedEndToEnd(t *testing.T) {
	db := openSeedDB(t)
	s := NewSeeder(db)

	require.NoError(t, Categories(db))
	users, err := s.SeedCommunity(5)
	require.NoError(t, err)
	sessions, err := s.SeedSessions(users, 20)
	require.NoError(t, err)
	require.NoError(t, s.SeedEngagement(users, sessions))
	require.NoError(t, s.SeedCompletionHistories(users, sessions))

	var sessionCount, trackingCount int64
	db.Model(&models.Session{}).Count(&sessionCount)
	db.Model(&models.SessionTracking{}).Count(&trackingCount)
	assert.EqualValues(t, 20, sessionCount)
	assert.NotZero(t, trackingCount, "expected at least one completion")

	// No completion may land in the future.
	var future int64
	db.Model(&models.SessionTracking{}).Where("completed_at > ?", time.Now()).Count(&future)
	assert.Zero(t, future, "no completion may be future-dated")
}

func TestClearAllRemovesSeededData(t *testing.T) {
	db := openSeedDB(t)
	s := NewSeeder(db)

	require.NoError(t, Categories(db))
	users, err := s.SeedCommunity(3)
	require.NoError(t, err)
	_, err = s.SeedSessions(users, 5)
	require.NoError(t, err)

	require.NoError(t, s.ClearAll())

	var users2, sessions2 int64
	db.Model(&models.User{}).Count(&users2)
	db.Model(&models.Session{}).Count(&sessions2)
	assert.Zero(t, users2, "expected no users after clear")
	assert.Zero(t, sessions2, "expected no sessions after clear")
}
