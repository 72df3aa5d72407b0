package service

import (
	"context"
	"sync"
	"time"

	"wellspring/internal/cache"
	"wellspring/internal/middleware"
	"wellspring/internal/models"
	"wellspring/internal/observability"
	"wellspring/internal/repository"
	"wellspring/internal/validation"
)

// Weekly goal targets shown on the dashboard.
const (
	GoalSessionsTarget = 7
	GoalMinutesTarget  = 300
	GoalStreakTarget   = 10
)

// aggregateTimeout bounds the storage work behind one analytics call so a
// slow store surfaces as UNAVAILABLE instead of a hung request.
const aggregateTimeout = 5 * time.Second

// dashboardWindows maps the requested time range onto a lookback in days.
var dashboardWindows = map[string]int{
	"week":  7,
	"month": 30,
	"year":  365,
}

// GoalProgress is one goal row on the dashboard.
type GoalProgress struct {
	Current int64 `json:"current"`
	Target  int64 `json:"target"`
}

// Dashboard is the aggregated analytics view for one user and window.
type Dashboard struct {
	UserStats         repository.ActivityTotals     `json:"user_stats"`
	CurrentStreak     int                           `json:"current_streak"`
	WeeklyActivity    []repository.DayActivity      `json:"weekly_activity"`
	CategoryStats     []repository.CategoryActivity `json:"category_stats"`
	RecentCompletions []models.SessionTracking      `json:"recent_completions"`
	Goals             map[string]GoalProgress       `json:"goals"`
}

// SessionAnalytics is the owner-facing completion report for one session.
type SessionAnalytics struct {
	SessionID uint                        `json:"session_id"`
	Title     string                      `json:"title"`
	Stats     repository.SessionAggregate `json:"stats"`
	Moods     []repository.MoodCount      `json:"mood_breakdown"`
}

// CompletionInput carries the fields of a completion record submission.
type CompletionInput struct {
	SessionID            uint       `json:"session_id"`
	DurationCompleted    int        `json:"duration_completed"`
	CaloriesBurned       int        `json:"calories_burned"`
	CompletionPercentage int        `json:"completion_percentage"`
	MoodBefore           string     `json:"mood_before"`
	MoodAfter            string     `json:"mood_after"`
	Notes                string     `json:"notes"`
	CompletedAt          *time.Time `json:"completed_at"`
}

// AnalyticsService aggregates completion history into dashboards and
// per-session reports, and records new completions.
type AnalyticsService struct {
	trackingRepo repository.TrackingRepository
	sessionRepo  repository.SessionRepository
	userRepo     repository.UserRepository
	streaks      *StreakService
}

// NewAnalyticsService returns a new AnalyticsService.
func NewAnalyticsService(trackingRepo repository.TrackingRepository, sessionRepo repository.SessionRepository, userRepo repository.UserRepository, streaks *StreakService) *AnalyticsService {
	return &AnalyticsService{
		trackingRepo: trackingRepo,
		sessionRepo:  sessionRepo,
		userRepo:     userRepo,
		streaks:      streaks,
	}
}

// Dashboard builds the analytics dashboard for a user. Sub-aggregations run
// concurrently and degrade independently: a failed sub-query logs and leaves
// its field at the zero value; the call errors only when every sub-query
// fails. Only non-degraded results are cached.
func (s *AnalyticsService) Dashboard(ctx context.Context, userID uint, timeRange string) (*Dashboard, error) {
	days, ok := dashboardWindows[timeRange]
	if !ok {
		timeRange = "week"
		days = dashboardWindows["week"]
	}

	key := cache.DashboardKey(userID, timeRange)
	var cached Dashboard
	if hit, err := cache.GetJSON(ctx, key, &cached); err == nil && hit {
		observability.DashboardRequests.WithLabelValues(timeRange, "cached").Inc()
		return &cached, nil
	}

	ctx, cancel := context.WithTimeout(ctx, aggregateTimeout)
	defer cancel()

	now := time.Now().UTC()
	since := now.AddDate(0, 0, -days)

	var (
		dash Dashboard
		mu   sync.Mutex
		wg   sync.WaitGroup
		errs []error
	)

	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				middleware.Logger.WarnContext(ctx, "dashboard sub-aggregation failed",
					"aggregation", name, "error", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}

	run("user_stats", func() error {
		totals, err := s.trackingRepo.Totals(ctx, userID, time.Time{})
		if err != nil {
			return err
		}
		dash.UserStats = totals
		return nil
	})
	run("streak", func() error {
		streak, err := s.streaks.CurrentStreak(ctx, userID, now)
		if err != nil {
			return err
		}
		dash.CurrentStreak = streak
		return nil
	})
	run("weekly_activity", func() error {
		days, err := s.trackingRepo.DailyActivity(ctx, userID, since)
		if err != nil {
			return err
		}
		dash.WeeklyActivity = days
		return nil
	})
	run("category_stats", func() error {
		cats, err := s.trackingRepo.CategoryActivity(ctx, userID, time.Time{})
		if err != nil {
			return err
		}
		dash.CategoryStats = cats
		return nil
	})
	run("recent_completions", func() error {
		recent, err := s.trackingRepo.RecentCompletions(ctx, userID, 5)
		if err != nil {
			return err
		}
		dash.RecentCompletions = recent
		return nil
	})

	wg.Wait()

	const subAggregations = 5
	if len(errs) == subAggregations {
		observability.DashboardRequests.WithLabelValues(timeRange, "error").Inc()
		return nil, models.NewUnavailableError(errs[0])
	}

	// Goal progress reads the lifetime totals, not the windowed series, so it
	// is stable across time ranges.
	dash.Goals = map[string]GoalProgress{
		"sessions": {Current: dash.UserStats.Completions, Target: GoalSessionsTarget},
		"minutes":  {Current: dash.UserStats.Minutes, Target: GoalMinutesTarget},
		"streak":   {Current: int64(dash.CurrentStreak), Target: GoalStreakTarget},
	}
	if dash.WeeklyActivity == nil {
		dash.WeeklyActivity = []repository.DayActivity{}
	}
	if dash.CategoryStats == nil {
		dash.CategoryStats = []repository.CategoryActivity{}
	}
	if dash.RecentCompletions == nil {
		dash.RecentCompletions = []models.SessionTracking{}
	}

	if len(errs) > 0 {
		observability.DashboardRequests.WithLabelValues(timeRange, "degraded").Inc()
		return &dash, nil
	}

	observability.DashboardRequests.WithLabelValues(timeRange, "ok").Inc()
	if err := cache.SetJSON(ctx, key, dash, cache.DashboardTTL); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to cache dashboard", "error", err)
	}
	return &dash, nil
}

// RecordCompletion validates and stores a completion record, then performs
// the denormalized stats write-back on the user row.
func (s *AnalyticsService) RecordCompletion(ctx context.Context, userID uint, input CompletionInput) (*models.SessionTracking, error) {
	if errs := validation.ValidateCompletionInput(input.DurationCompleted, input.CompletionPercentage, input.MoodBefore, input.MoodAfter, input.Notes); len(errs) > 0 {
		return nil, models.NewValidationError("Invalid completion input", errs...)
	}

	session, err := s.sessionRepo.GetByID(ctx, input.SessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.CreatedByID != userID &&
		(!session.IsPublished() || session.Privacy != models.SessionPrivacyPublic) {
		return nil, models.NewNotFoundError("Session", input.SessionID)
	}

	completedAt := time.Now().UTC()
	if input.CompletedAt != nil {
		completedAt = input.CompletedAt.UTC()
		if err := validation.ValidateCompletedAt(completedAt, time.Now().UTC()); err != nil {
			return nil, models.NewValidationError("Invalid completion input", err.Error())
		}
	}
	percentage := input.CompletionPercentage
	if percentage == 0 {
		percentage = 100
	}

	tracking := &models.SessionTracking{
		UserID:               userID,
		SessionID:            input.SessionID,
		CompletedAt:          completedAt,
		DurationCompleted:    input.DurationCompleted,
		CaloriesBurned:       input.CaloriesBurned,
		CompletionPercentage: percentage,
		MoodBefore:           input.MoodBefore,
		MoodAfter:            input.MoodAfter,
		Notes:                input.Notes,
	}
	if err := s.trackingRepo.Create(ctx, tracking); err != nil {
		return nil, err
	}

	if err := s.writeBackStats(ctx, userID, completedAt); err != nil {
		// The completion row is already durable; a failed write-back only
		// stales the denormalized counters until the next completion.
		middleware.Logger.WarnContext(ctx, "stats write-back failed", "error", err)
	}
	cache.InvalidateDashboard(ctx, userID)

	category := ""
	if session.Category != nil {
		category = session.Category.Name
	}
	observability.CompletionsRecorded.WithLabelValues(category).Inc()

	return tracking, nil
}

// writeBackStats recomputes the user's lifetime totals and streak from the
// tracking rows. The streak calculator is the single source of truth; the
// denormalized column is never incremented in place.
func (s *AnalyticsService) writeBackStats(ctx context.Context, userID uint, lastSession time.Time) error {
	totals, err := s.trackingRepo.Totals(ctx, userID, time.Time{})
	if err != nil {
		return err
	}
	streak, err := s.streaks.CurrentStreak(ctx, userID, time.Now().UTC())
	if err != nil {
		return err
	}
	return s.userRepo.UpdateStats(ctx, userID, models.UserStats{
		TotalSessions: int(totals.Completions),
		TotalMinutes:  int(totals.Minutes),
		StreakDays:    streak,
		LastSession:   &lastSession,
	})
}

// SessionAnalyticsFor returns completion stats for a session the user owns.
func (s *AnalyticsService) SessionAnalyticsFor(ctx context.Context, userID, sessionID uint) (*SessionAnalytics, error) {
	ctx, cancel := context.WithTimeout(ctx, aggregateTimeout)
	defer cancel()

	session, err := s.sessionRepo.GetByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.CreatedByID != userID {
		return nil, models.NewAccessDeniedError("You can only view analytics for your own sessions")
	}

	agg, err := s.trackingRepo.SessionAggregate(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	moods, err := s.trackingRepo.SessionMoodBreakdown(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if moods == nil {
		moods = []repository.MoodCount{}
	}
	return &SessionAnalytics{
		SessionID: session.ID,
		Title:     session.Title,
		Stats:     agg,
		Moods:     moods,
	}, nil
}
