package repository

import (
	"context"
	"time"

	"wellspring/internal/models"

	"gorm.io/gorm"
)

// ActivityTotals aggregates a user's completion history over a window.
type ActivityTotals struct {
	Completions int64 `json:"sessions"`
	Minutes     int64 `json:"minutes"`
	Calories    int64 `json:"calories"`
}

// DayActivity is one day's completion rollup. Day is a "2006-01-02" date.
type DayActivity struct {
	Day      string `json:"date"`
	Count    int64  `json:"sessions"`
	Minutes  int64  `json:"minutes"`
	Calories int64  `json:"calories"`
}

// CategoryActivity is a per-category completion rollup.
type CategoryActivity struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
	Minutes  int64  `json:"minutes"`
	Calories int64  `json:"calories"`
}

// SessionAggregate summarizes all completions of a single session.
type SessionAggregate struct {
	Completions   int64   `json:"total_completions"`
	UniqueUsers   int64   `json:"unique_users"`
	AvgCompletion float64 `json:"avg_completion"`
	TotalMinutes  int64   `json:"total_minutes"`
	TotalCalories int64   `json:"total_calories"`
}

// MoodCount is a (mood, count) pair from completion records.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int64  `json:"count"`
}

// TrackingRepository defines the interface for completion record operations
type TrackingRepository interface {
	Create(ctx context.Context, tracking *models.SessionTracking) error
	CompletionTimes(ctx context.Context, userID uint, limit int) ([]time.Time, error)
	Totals(ctx context.Context, userID uint, since time.Time) (ActivityTotals, error)
	DailyActivity(ctx context.Context, userID uint, since time.Time) ([]DayActivity, error)
	CategoryActivity(ctx context.Context, userID uint, since time.Time) ([]CategoryActivity, error)
	RecentCompletions(ctx context.Context, userID uint, limit int) ([]models.SessionTracking, error)
	SessionAggregate(ctx context.Context, sessionID uint) (SessionAggregate, error)
	SessionMoodBreakdown(ctx context.Context, sessionID uint) ([]MoodCount, error)
}

// trackingRepository implements TrackingRepository
type trackingRepository struct {
	db *gorm.DB
}

// NewTrackingRepository creates a new tracking repository
func NewTrackingRepository(db *gorm.DB) TrackingRepository {
	return &trackingRepository{db: db}
}

func (r *trackingRepository) Create(ctx context.Context, tracking *models.SessionTracking) error {
	if err := r.db.WithContext(ctx).Create(tracking).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Completion already recorded for that timestamp")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *trackingRepository) CompletionTimes(ctx context.Context, userID uint, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 500
	}
	var times []time.Time
	if err := r.db.WithContext(ctx).
		Model(&models.SessionTracking{}).
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Pluck("completed_at", &times).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return times, nil
}

func (r *trackingRepository) Totals(ctx context.Context, userID uint, since time.Time) (ActivityTotals, error) {
	var totals ActivityTotals
	if err := r.db.WithContext(ctx).
		Model(&models.SessionTracking{}).
		Select("COUNT(*) as completions, COALESCE(SUM(duration_completed), 0) as minutes, COALESCE(SUM(calories_burned), 0) as calories").
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Scan(&totals).Error; err != nil {
		return ActivityTotals{}, models.NewInternalError(err)
	}
	return totals, nil
}

func (r *trackingRepository) DailyActivity(ctx context.Context, userID uint, since time.Time) ([]DayActivity, error) {
	var days []DayActivity
	if err := r.db.WithContext(ctx).
		Model(&models.SessionTracking{}).
		Select("DATE(completed_at) as day, COUNT(*) as count, COALESCE(SUM(duration_completed), 0) as minutes, COALESCE(SUM(calories_burned), 0) as calories").
		Where("user_id = ? AND completed_at >= ?", userID, since).
		Group("DATE(completed_at)").
		Order("day ASC").
		Scan(&days).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return days, nil
}

func (r *trackingRepository) CategoryActivity(ctx context.Context, userID uint, since time.Time) ([]CategoryActivity, error) {
	var cats []CategoryActivity
	if err := r.db.WithContext(ctx).
		Model(&models.SessionTracking{}).
		Select("categories.name as category, COUNT(*) as count, COALESCE(SUM(session_trackings.duration_completed), 0) as minutes, COALESCE(SUM(session_trackings.calories_burned), 0) as calories").
		Joins("JOIN sessions ON sessions.id = session_trackings.session_id").
		Joins("JOIN categories ON categories.id = sessions.category_id").
		Where("session_trackings.user_id = ? AND session_trackings.completed_at >= ?", userID, since).
		Group("categories.name").
		Order("count DESC").
		Scan(&cats).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return cats, nil
}

func (r *trackingRepository) RecentCompletions(ctx context.Context, userID uint, limit int) ([]models.SessionTracking, error) {
	if limit <= 0 {
		limit = 5
	}
	var records []models.SessionTracking
	if err := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Category").
		Where("user_id = ?", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return records, nil
}

func (r *trackingRepository) SessionAggregate(ctx context.Context, sessionID uint) (SessionAggregate, error) {
	var agg SessionAggregate
	if err := r.db.WithContext(ctx).
		Model(&models.SessionTracking{}).
		Select("COUNT(*) as completions, "+
			"COUNT(DISTINCT user_id) as unique_users, "+
			"COALESCE(AVG(completion_percentage), 0) as avg_completion, "+
			"COALESCE(SUM(duration_completed), 0) as total_minutes, "+
			"COALESCE(SUM(calories_burned), 0) as total_calories").
		Where("session_id = ?", sessionID).
		Scan(&agg).Error; err != nil {
		return SessionAggregate{}, models.NewInternalError(err)
	}
	return agg, nil
}

func (r *trackingRepository) SessionMoodBreakdown(ctx context.Context, sessionID uint) ([]MoodCount, error) {
	var moods []MoodCount
	if err := r.db.WithContext(ctx).
		Model(&models.SessionTracking{}).
		Select("mood_after as mood, COUNT(*) as count").
		Where("session_id = ? AND mood_after <> ''", sessionID).
		Group("mood_after").
		Order("count DESC").
		Scan(&moods).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return moods, nil
}
