// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"

	"wellspring/internal/cache"
	"wellspring/internal/models"

	"gorm.io/gorm"
)

// SessionFilters narrows and orders a session browse query.
type SessionFilters struct {
	CategoryID  uint
	Difficulty  string
	DurationMin int
	DurationMax int
	Tag         string
	Search      string
	Sort        string // "newest", "oldest", "popular", "duration"
	Limit       int
	Offset      int
}

// SessionRepository defines the interface for session data operations
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Session, error)
	List(ctx context.Context, filters SessionFilters, currentUserID uint) ([]*models.Session, error)
	Count(ctx context.Context, filters SessionFilters) (int64, error)
	ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, sessionID uint) (bool, error)
	Like(ctx context.Context, userID, sessionID uint) error
	Unlike(ctx context.Context, userID, sessionID uint) error
	CountLikes(ctx context.Context, sessionID uint) (int64, error)
}

// sessionRepository implements SessionRepository
type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// applyEngagement adds subqueries to fetch counts and liked status in a single query.
// likes_count, comments_count and completions_count are never persisted; they are
// recomputed from relation rows on every read.
func (r *sessionRepository) applyEngagement(db *gorm.DB, currentUserID uint) *gorm.DB {
	selectQuery := "sessions.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.session_id = sessions.id) as likes_count, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.session_id = sessions.id AND comments.deleted_at IS NULL) as comments_count, " +
		"(SELECT COUNT(*) FROM session_trackings WHERE session_trackings.session_id = sessions.id) as completions_count"

	if currentUserID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.session_id = sessions.id AND likes.user_id = ?) as liked"+
			", (SELECT MAX(completed_at) FROM session_trackings WHERE session_trackings.session_id = sessions.id AND session_trackings.user_id = ?) as last_completed_at",
			currentUserID, currentUserID)
	}

	return db.Select(selectQuery + ", false as liked")
}

// applyFilters appends the WHERE clauses shared by List and Count.
func applyFilters(db *gorm.DB, filters SessionFilters) *gorm.DB {
	db = db.Where("sessions.status = ? AND sessions.privacy = ?", models.SessionStatusPublished, models.SessionPrivacyPublic)

	if filters.CategoryID != 0 {
		db = db.Where("sessions.category_id = ?", filters.CategoryID)
	}
	if filters.Difficulty != "" {
		db = db.Where("sessions.difficulty = ?", filters.Difficulty)
	}
	if filters.DurationMin > 0 {
		db = db.Where("sessions.duration_minutes >= ?", filters.DurationMin)
	}
	if filters.DurationMax > 0 {
		db = db.Where("sessions.duration_minutes <= ?", filters.DurationMax)
	}
	if filters.Tag != "" {
		db = db.Where("sessions.tags LIKE ?", "%"+filters.Tag+"%")
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		db = db.Where("sessions.title LIKE ? OR sessions.description LIKE ?", like, like)
	}
	return db
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id uint, currentUserID uint) (*models.Session, error) {
	var session models.Session

	fetch := func() error {
		if err := r.applyEngagement(r.db.WithContext(ctx), currentUserID).
			Preload("Category").
			Preload("CreatedBy").
			First(&session, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Session", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	}

	var err error
	if currentUserID == 0 {
		// Anonymous reads share a cache entry; authenticated reads carry the
		// per-viewer liked flag and skip the cache.
		err = cache.Aside(ctx, cache.SessionKey(id), &session, cache.SessionTTL, fetch)
	} else {
		err = fetch()
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) List(ctx context.Context, filters SessionFilters, currentUserID uint) ([]*models.Session, error) {
	var sessions []*models.Session

	db := applyFilters(r.applyEngagement(r.db.WithContext(ctx), currentUserID), filters).
		Preload("Category").
		Preload("CreatedBy")

	limit := filters.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	err := r.applySort(db, filters.Sort).
		Limit(limit).
		Offset(filters.Offset).
		Find(&sessions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return sessions, nil
}

// applySort appends the ORDER BY clause for the requested sort type.
// likes_count is a SELECT alias from applyEngagement; PostgreSQL allows
// referencing it in ORDER BY within the same query level.
func (r *sessionRepository) applySort(db *gorm.DB, sort string) *gorm.DB {
	switch sort {
	case "oldest":
		return db.Order("published_at ASC")
	case "popular":
		return db.Order("likes_count DESC, completions_count DESC, published_at DESC")
	case "duration":
		return db.Order("duration_minutes ASC, published_at DESC")
	default: // "newest" and anything unrecognized
		return db.Order("published_at DESC")
	}
}

// Count returns the total rows matching filters, for pagination metadata.
func (r *sessionRepository) Count(ctx context.Context, filters SessionFilters) (int64, error) {
	var count int64
	if err := applyFilters(r.db.WithContext(ctx).Model(&models.Session{}), filters).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *sessionRepository) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Session, error) {
	var sessions []*models.Session
	if limit <= 0 {
		limit = 20
	}
	err := r.applyEngagement(r.db.WithContext(ctx), ownerID).
		Preload("Category").
		Where("sessions.created_by_id = ?", ownerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&sessions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return sessions, nil
}

func (r *sessionRepository) Update(ctx context.Context, session *models.Session) error {
	if err := r.db.WithContext(ctx).Save(session).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSession(ctx, session.ID)
	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("session_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("session_id = ?", id).Delete(&models.SessionTracking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Session{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSession(ctx, id)
	return nil
}

func (r *sessionRepository) IncrementViews(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("id = ?", id).
		UpdateColumn("views_count", gorm.Expr("views_count + 1")).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *sessionRepository) IsLiked(ctx context.Context, userID, sessionID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *sessionRepository) Like(ctx context.Context, userID, sessionID uint) error {
	// INSERT ... ON CONFLICT DO NOTHING handles concurrent double-taps
	// atomically and prevents duplicate key errors.
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, session_id, created_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (user_id, session_id) DO NOTHING`,
		userID, sessionID,
	)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	cache.InvalidateSession(ctx, sessionID)
	return nil
}

func (r *sessionRepository) Unlike(ctx context.Context, userID, sessionID uint) error {
	// Hard delete the like record (not soft delete)
	if err := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Delete(&models.Like{}).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateSession(ctx, sessionID)
	return nil
}

func (r *sessionRepository) CountLikes(ctx context.Context, sessionID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("session_id = ?", sessionID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}
