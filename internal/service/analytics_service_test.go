package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"wellspring/internal/models"
	"wellspring/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnalyticsService(tracking *trackingRepoStub, sessions *sessionRepoStub, users *userRepoStub) *AnalyticsService {
	return NewAnalyticsService(tracking, sessions, users, NewStreakService(tracking))
}

func TestDashboardAggregates(t *testing.T) {
	now := time.Now().UTC()
	tracking := noopTrackingRepo()
	tracking.totalsFn = func(context.Context, uint, time.Time) (repository.ActivityTotals, error) {
		return repository.ActivityTotals{Completions: 12, Minutes: 340, Calories: 2100}, nil
	}
	tracking.completionTimesFn = func(context.Context, uint, int) ([]time.Time, error) {
		return []time.Time{now, now.AddDate(0, 0, -1)}, nil
	}
	tracking.dailyActivityFn = func(context.Context, uint, time.Time) ([]repository.DayActivity, error) {
		return []repository.DayActivity{
			{Day: now.AddDate(0, 0, -1).Format("2006-01-02"), Count: 1, Minutes: 30, Calories: 200},
			{Day: now.Format("2006-01-02"), Count: 2, Minutes: 45, Calories: 300},
		}, nil
	}

	svc := newAnalyticsService(tracking, noopSessionRepo(), noopUserRepo())
	dash, err := svc.Dashboard(context.Background(), 1, "week")
	require.NoError(t, err)

	assert.EqualValues(t, 12, dash.UserStats.Completions)
	assert.EqualValues(t, 340, dash.UserStats.Minutes)
	assert.Equal(t, 2, dash.CurrentStreak)

	// Goal progress tracks lifetime totals, not the windowed series.
	assert.EqualValues(t, 12, dash.Goals["sessions"].Current)
	assert.EqualValues(t, GoalSessionsTarget, dash.Goals["sessions"].Target)
	assert.EqualValues(t, 340, dash.Goals["minutes"].Current)
	assert.EqualValues(t, GoalMinutesTarget, dash.Goals["minutes"].Target)
	assert.EqualValues(t, 2, dash.Goals["streak"].Current)
	assert.EqualValues(t, GoalStreakTarget, dash.Goals["streak"].Target)
}

func TestDashboardDegradesPartially(t *testing.T) {
	tracking := noopTrackingRepo()
	tracking.totalsFn = func(context.Context, uint, time.Time) (repository.ActivityTotals, error) {
		return repository.ActivityTotals{}, models.NewInternalError(errors.New("totals query timed out"))
	}
	tracking.dailyActivityFn = func(context.Context, uint, time.Time) ([]repository.DayActivity, error) {
		return []repository.DayActivity{{Day: "2026-03-14", Count: 1, Minutes: 30}}, nil
	}

	svc := newAnalyticsService(tracking, noopSessionRepo(), noopUserRepo())
	dash, err := svc.Dashboard(context.Background(), 1, "week")
	require.NoError(t, err, "one failed sub-aggregation must not fail the dashboard")
	assert.Zero(t, dash.UserStats.Completions, "degraded field should be zero value")
	assert.Len(t, dash.WeeklyActivity, 1, "healthy field lost")
}

func TestDashboardFailsWhenAllSubQueriesFail(t *testing.T) {
	boom := models.NewInternalError(errors.New("db down"))
	tracking := &trackingRepoStub{
		createFn: func(context.Context, *models.SessionTracking) error { return boom },
		completionTimesFn: func(context.Context, uint, int) ([]time.Time, error) {
			return nil, boom
		},
		totalsFn: func(context.Context, uint, time.Time) (repository.ActivityTotals, error) {
			return repository.ActivityTotals{}, boom
		},
		dailyActivityFn: func(context.Context, uint, time.Time) ([]repository.DayActivity, error) {
			return nil, boom
		},
		categoryActivityFn: func(context.Context, uint, time.Time) ([]repository.CategoryActivity, error) {
			return nil, boom
		},
		recentCompletionsFn: func(context.Context, uint, int) ([]models.SessionTracking, error) {
			return nil, boom
		},
		sessionAggregateFn: func(context.Context, uint) (repository.SessionAggregate, error) {
			return repository.SessionAggregate{}, boom
		},
		sessionMoodBreakdownFn: func(context.Context, uint) ([]repository.MoodCount, error) {
			return nil, boom
		},
	}

	svc := newAnalyticsService(tracking, noopSessionRepo(), noopUserRepo())
	_, err := svc.Dashboard(context.Background(), 1, "week")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeUnavailable, appErr.Code)
}

func TestDashboardUnknownRangeDefaultsToWeek(t *testing.T) {
	var gotSince time.Time
	tracking := noopTrackingRepo()
	tracking.dailyActivityFn = func(_ context.Context, _ uint, since time.Time) ([]repository.DayActivity, error) {
		gotSince = since
		return nil, nil
	}

	svc := newAnalyticsService(tracking, noopSessionRepo(), noopUserRepo())
	_, err := svc.Dashboard(context.Background(), 1, "fortnight")
	require.NoError(t, err)

	days := time.Since(gotSince).Hours() / 24
	assert.InDelta(t, 7, days, 0.1, "expected ~7 day lookback")
}

func TestDashboardEmptyUser(t *testing.T) {
	svc := newAnalyticsService(noopTrackingRepo(), noopSessionRepo(), noopUserRepo())
	dash, err := svc.Dashboard(context.Background(), 1, "month")
	require.NoError(t, err)
	assert.Zero(t, dash.CurrentStreak)
	assert.Zero(t, dash.UserStats.Completions)
	assert.NotNil(t, dash.WeeklyActivity, "collection fields must serialize as empty arrays, not null")
	assert.NotNil(t, dash.CategoryStats, "collection fields must serialize as empty arrays, not null")
	assert.NotNil(t, dash.RecentCompletions, "collection fields must serialize as empty arrays, not null")
}

func TestRecordCompletionWritesBackStats(t *testing.T) {
	var created *models.SessionTracking
	var wroteStats *models.UserStats
	tracking := noopTrackingRepo()
	tracking.createFn = func(_ context.Context, tr *models.SessionTracking) error {
		created = tr
		return nil
	}
	tracking.totalsFn = func(context.Context, uint, time.Time) (repository.ActivityTotals, error) {
		return repository.ActivityTotals{Completions: 4, Minutes: 120, Calories: 800}, nil
	}
	tracking.completionTimesFn = func(context.Context, uint, int) ([]time.Time, error) {
		return []time.Time{time.Now().UTC()}, nil
	}
	users := noopUserRepo()
	users.updateStatsFn = func(_ context.Context, _ uint, stats models.UserStats) error {
		wroteStats = &stats
		return nil
	}

	svc := newAnalyticsService(tracking, noopSessionRepo(), users)
	record, err := svc.RecordCompletion(context.Background(), 3, CompletionInput{
		SessionID:            10,
		DurationCompleted:    30,
		CompletionPercentage: 90,
		MoodBefore:           "tired",
		MoodAfter:            "energized",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.EqualValues(t, 3, created.UserID)
	assert.EqualValues(t, 10, created.SessionID)
	assert.Equal(t, 90, record.CompletionPercentage)
	require.NotNil(t, wroteStats, "expected stats write-back")
	assert.EqualValues(t, 4, wroteStats.TotalSessions)
	assert.EqualValues(t, 120, wroteStats.TotalMinutes)
	assert.Equal(t, 1, wroteStats.StreakDays)
}

func TestRecordCompletionRejectsInvalidInput(t *testing.T) {
	svc := newAnalyticsService(noopTrackingRepo(), noopSessionRepo(), noopUserRepo())
	_, err := svc.RecordCompletion(context.Background(), 3, CompletionInput{
		SessionID:         10,
		DurationCompleted: 0,
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeValidationError, appErr.Code)
}

func TestRecordCompletionBoundsCompletedAt(t *testing.T) {
	// A forged timestamp would let a client fabricate streaks or record
	// activity that has not happened yet, so both directions are bounded.
	tests := []struct {
		name        string
		completedAt time.Time
	}{
		{"Far Future", time.Now().UTC().Add(30 * 24 * time.Hour)},
		{"Deep Backdate", time.Now().UTC().Add(-9 * 24 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAnalyticsService(noopTrackingRepo(), noopSessionRepo(), noopUserRepo())
			_, err := svc.RecordCompletion(context.Background(), 3, CompletionInput{
				SessionID:         10,
				DurationCompleted: 30,
				CompletedAt:       &tt.completedAt,
			})
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, models.CodeValidationError, appErr.Code)
		})
	}
}

func TestRecordCompletionAcceptsRecentCompletedAt(t *testing.T) {
	var created *models.SessionTracking
	tracking := noopTrackingRepo()
	tracking.createFn = func(_ context.Context, tr *models.SessionTracking) error {
		created = tr
		return nil
	}

	completedAt := time.Now().UTC().Add(-2 * time.Hour)
	svc := newAnalyticsService(tracking, noopSessionRepo(), noopUserRepo())
	_, err := svc.RecordCompletion(context.Background(), 3, CompletionInput{
		SessionID:         10,
		DurationCompleted: 30,
		CompletedAt:       &completedAt,
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.True(t, created.CompletedAt.Equal(completedAt), "a recent client timestamp is stored as given")
}

func TestRecordCompletionPrivateSessionHidden(t *testing.T) {
	sessions := noopSessionRepo()
	sessions.getByIDFn = func(_ context.Context, id, _ uint) (*models.Session, error) {
		return &models.Session{
			ID:          id,
			CreatedByID: 2,
			Status:      models.SessionStatusPublished,
			Privacy:     models.SessionPrivacyPrivate,
		}, nil
	}

	svc := newAnalyticsService(noopTrackingRepo(), sessions, noopUserRepo())
	_, err := svc.RecordCompletion(context.Background(), 3, CompletionInput{
		SessionID:         10,
		DurationCompleted: 30,
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestSessionAnalyticsOwnerOnly(t *testing.T) {
	sessions := noopSessionRepo()
	sessions.getByIDFn = func(_ context.Context, id, _ uint) (*models.Session, error) {
		return &models.Session{ID: id, CreatedByID: 2, Status: models.SessionStatusPublished, Privacy: models.SessionPrivacyPublic}, nil
	}

	svc := newAnalyticsService(noopTrackingRepo(), sessions, noopUserRepo())
	_, err := svc.SessionAnalyticsFor(context.Background(), 1, 10)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeAccessDenied, appErr.Code)
}

func TestSessionAnalyticsAggregates(t *testing.T) {
	tracking := noopTrackingRepo()
	tracking.sessionAggregateFn = func(context.Context, uint) (repository.SessionAggregate, error) {
		return repository.SessionAggregate{Completions: 8, TotalMinutes: 240, TotalCalories: 1600}, nil
	}
	tracking.sessionMoodBreakdownFn = func(context.Context, uint) ([]repository.MoodCount, error) {
		return []repository.MoodCount{{Mood: "energized", Count: 6}}, nil
	}

	svc := newAnalyticsService(tracking, noopSessionRepo(), noopUserRepo())
	report, err := svc.SessionAnalyticsFor(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 8, report.Stats.Completions)
	assert.EqualValues(t, 1600, report.Stats.TotalCalories)
	require.Len(t, report.Moods, 1)
	assert.Equal(t, "energized", report.Moods[0].Mood)
}
