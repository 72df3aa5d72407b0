package repository

import (
	"regexp"
	"testing"
	"time"

	"wellspring/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestGetByEmailMissingReturnsNilNil(t *testing.T) {
	db := openRepoDB(t)
	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(testCtx(), "nobody@example.com")
	require.NoError(t, err, "a missing email is not an error")
	assert.Nil(t, user)
}

func TestCreateDuplicateUsernameConflicts(t *testing.T) {
	db := openRepoDB(t)
	repo := NewUserRepository(db)
	existing := mkUser(t, db)

	err := repo.Create(testCtx(), &models.User{
		Username: existing.Username,
		Email:    "different@example.com",
		Password: "hashed",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestGetByIDComputesFollowCounts(t *testing.T) {
	db := openRepoDB(t)
	userRepo := NewUserRepository(db)
	followRepo := NewFollowRepository(db)

	target := mkUser(t, db)
	for i := 0; i < 2; i++ {
		fan := mkUser(t, db)
		require.NoError(t, followRepo.Follow(testCtx(), fan.ID, target.ID))
	}

	got, err := userRepo.GetByID(testCtx(), target.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.FollowersCount)
	assert.EqualValues(t, 0, got.FollowingCount)
}

func TestGetByIDWithSessionsFiltersDrafts(t *testing.T) {
	db := openRepoDB(t)
	repo := NewUserRepository(db)
	owner := mkUser(t, db)
	category := mkCategory(t, db)

	mkSession(t, db, owner, category)
	mkSession(t, db, owner, category, func(s *models.Session) {
		s.Status = models.SessionStatusDraft
		s.PublishedAt = nil
	})
	mkSession(t, db, owner, category, func(s *models.Session) {
		s.Privacy = models.SessionPrivacyPrivate
	})

	got, err := repo.GetByIDWithSessions(testCtx(), owner.ID, 10)
	require.NoError(t, err)
	assert.Len(t, got.Sessions, 1, "only the published public session should preload")
}

func TestDeactivateFlipsFlag(t *testing.T) {
	db := openRepoDB(t)
	repo := NewUserRepository(db)
	user := mkUser(t, db)

	require.NoError(t, repo.Deactivate(testCtx(), user.ID))

	got, err := repo.GetByID(testCtx(), user.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

// openMockDB wires gorm's postgres dialector over a sqlmock connection so we
// can assert the exact SQL the repository emits against production syntax.
func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err, "sqlmock")
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err, "gorm open")
	return db, mock
}

func TestUpdateStatsWritesEmbeddedColumns(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewUserRepository(db)

	lastSession := time.Date(2026, 8, 30, 7, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "users" SET`)).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateStats(testCtx(), 7, models.UserStats{
		TotalSessions: 12,
		TotalMinutes:  360,
		StreakDays:    4,
		LastSession:   &lastSession,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
