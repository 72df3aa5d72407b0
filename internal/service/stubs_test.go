package service

import (
	"context"
	"time"

	"wellspring/internal/models"
	"wellspring/internal/repository"
)

type userRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.User, error)
	getByIDWithSessionsFn func(context.Context, uint, int) (*models.User, error)
	getByEmailFn          func(context.Context, string) (*models.User, error)
	getByUsernameFn       func(context.Context, string) (*models.User, error)
	createFn              func(context.Context, *models.User) error
	updateFn              func(context.Context, *models.User) error
	updateStatsFn         func(context.Context, uint, models.UserStats) error
	deactivateFn          func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDWithSessions(ctx context.Context, id uint, limit int) (*models.User, error) {
	return s.getByIDWithSessionsFn(ctx, id, limit)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) UpdateStats(ctx context.Context, userID uint, stats models.UserStats) error {
	return s.updateStatsFn(ctx, userID, stats)
}
func (s *userRepoStub) Deactivate(ctx context.Context, id uint) error {
	return s.deactivateFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, IsActive: true}, nil
		},
		getByIDWithSessionsFn: func(_ context.Context, id uint, _ int) (*models.User, error) {
			return &models.User{ID: id, IsActive: true}, nil
		},
		getByEmailFn:    func(context.Context, string) (*models.User, error) { return nil, nil },
		getByUsernameFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:        func(context.Context, *models.User) error { return nil },
		updateFn:        func(context.Context, *models.User) error { return nil },
		updateStatsFn:   func(context.Context, uint, models.UserStats) error { return nil },
		deactivateFn:    func(context.Context, uint) error { return nil },
	}
}

type followRepoStub struct {
	followFn         func(context.Context, uint, uint) error
	unfollowFn       func(context.Context, uint, uint) error
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
	countFollowersFn func(context.Context, uint) (int64, error)
	countFollowingFn func(context.Context, uint) (int64, error)
	getFollowersFn   func(context.Context, uint, int, int) ([]models.User, error)
	getFollowingFn   func(context.Context, uint, int, int) ([]models.User, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followingID uint) error {
	return s.followFn(ctx, followerID, followingID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followingID uint) error {
	return s.unfollowFn(ctx, followerID, followingID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followingID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}
func (s *followRepoStub) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowingFn(ctx, userID)
}
func (s *followRepoStub) GetFollowers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.getFollowersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) GetFollowing(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	return s.getFollowingFn(ctx, userID, limit, offset)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		followFn:         func(context.Context, uint, uint) error { return nil },
		unfollowFn:       func(context.Context, uint, uint) error { return nil },
		isFollowingFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		countFollowersFn: func(context.Context, uint) (int64, error) { return 0, nil },
		countFollowingFn: func(context.Context, uint) (int64, error) { return 0, nil },
		getFollowersFn:   func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
		getFollowingFn:   func(context.Context, uint, int, int) ([]models.User, error) { return nil, nil },
	}
}

type sessionRepoStub struct {
	createFn         func(context.Context, *models.Session) error
	getByIDFn        func(context.Context, uint, uint) (*models.Session, error)
	listFn           func(context.Context, repository.SessionFilters, uint) ([]*models.Session, error)
	countFn          func(context.Context, repository.SessionFilters) (int64, error)
	listByOwnerFn    func(context.Context, uint, int, int) ([]*models.Session, error)
	updateFn         func(context.Context, *models.Session) error
	deleteFn         func(context.Context, uint) error
	incrementViewsFn func(context.Context, uint) error
	isLikedFn        func(context.Context, uint, uint) (bool, error)
	likeFn           func(context.Context, uint, uint) error
	unlikeFn         func(context.Context, uint, uint) error
	countLikesFn     func(context.Context, uint) (int64, error)
}

func (s *sessionRepoStub) Create(ctx context.Context, session *models.Session) error {
	return s.createFn(ctx, session)
}
func (s *sessionRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Session, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *sessionRepoStub) List(ctx context.Context, filters repository.SessionFilters, currentUserID uint) ([]*models.Session, error) {
	return s.listFn(ctx, filters, currentUserID)
}
func (s *sessionRepoStub) Count(ctx context.Context, filters repository.SessionFilters) (int64, error) {
	return s.countFn(ctx, filters)
}
func (s *sessionRepoStub) ListByOwner(ctx context.Context, ownerID uint, limit, offset int) ([]*models.Session, error) {
	return s.listByOwnerFn(ctx, ownerID, limit, offset)
}
func (s *sessionRepoStub) Update(ctx context.Context, session *models.Session) error {
	return s.updateFn(ctx, session)
}
func (s *sessionRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *sessionRepoStub) IncrementViews(ctx context.Context, id uint) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *sessionRepoStub) IsLiked(ctx context.Context, userID, sessionID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, sessionID)
}
func (s *sessionRepoStub) Like(ctx context.Context, userID, sessionID uint) error {
	return s.likeFn(ctx, userID, sessionID)
}
func (s *sessionRepoStub) Unlike(ctx context.Context, userID, sessionID uint) error {
	return s.unlikeFn(ctx, userID, sessionID)
}
func (s *sessionRepoStub) CountLikes(ctx context.Context, sessionID uint) (int64, error) {
	return s.countLikesFn(ctx, sessionID)
}

func noopSessionRepo() *sessionRepoStub {
	return &sessionRepoStub{
		createFn: func(_ context.Context, session *models.Session) error {
			session.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Session, error) {
			return &models.Session{
				ID:          id,
				Title:       "Morning Flow",
				CategoryID:  1,
				CreatedByID: 1,
				Status:      models.SessionStatusPublished,
				Privacy:     models.SessionPrivacyPublic,
			}, nil
		},
		listFn:           func(context.Context, repository.SessionFilters, uint) ([]*models.Session, error) { return nil, nil },
		countFn:          func(context.Context, repository.SessionFilters) (int64, error) { return 0, nil },
		listByOwnerFn:    func(context.Context, uint, int, int) ([]*models.Session, error) { return nil, nil },
		updateFn:         func(context.Context, *models.Session) error { return nil },
		deleteFn:         func(context.Context, uint) error { return nil },
		incrementViewsFn: func(context.Context, uint) error { return nil },
		isLikedFn:        func(context.Context, uint, uint) (bool, error) { return false, nil },
		likeFn:           func(context.Context, uint, uint) error { return nil },
		unlikeFn:         func(context.Context, uint, uint) error { return nil },
		countLikesFn:     func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type trackingRepoStub struct {
	createFn               func(context.Context, *models.SessionTracking) error
	completionTimesFn      func(context.Context, uint, int) ([]time.Time, error)
	totalsFn               func(context.Context, uint, time.Time) (repository.ActivityTotals, error)
	dailyActivityFn        func(context.Context, uint, time.Time) ([]repository.DayActivity, error)
	categoryActivityFn     func(context.Context, uint, time.Time) ([]repository.CategoryActivity, error)
	recentCompletionsFn    func(context.Context, uint, int) ([]models.SessionTracking, error)
	sessionAggregateFn     func(context.Context, uint) (repository.SessionAggregate, error)
	sessionMoodBreakdownFn func(context.Context, uint) ([]repository.MoodCount, error)
}

func (s *trackingRepoStub) Create(ctx context.Context, tracking *models.SessionTracking) error {
	return s.createFn(ctx, tracking)
}
func (s *trackingRepoStub) CompletionTimes(ctx context.Context, userID uint, limit int) ([]time.Time, error) {
	return s.completionTimesFn(ctx, userID, limit)
}
func (s *trackingRepoStub) Totals(ctx context.Context, userID uint, since time.Time) (repository.ActivityTotals, error) {
	return s.totalsFn(ctx, userID, since)
}
func (s *trackingRepoStub) DailyActivity(ctx context.Context, userID uint, since time.Time) ([]repository.DayActivity, error) {
	return s.dailyActivityFn(ctx, userID, since)
}
func (s *trackingRepoStub) CategoryActivity(ctx context.Context, userID uint, since time.Time) ([]repository.CategoryActivity, error) {
	return s.categoryActivityFn(ctx, userID, since)
}
func (s *trackingRepoStub) RecentCompletions(ctx context.Context, userID uint, limit int) ([]models.SessionTracking, error) {
	return s.recentCompletionsFn(ctx, userID, limit)
}
func (s *trackingRepoStub) SessionAggregate(ctx context.Context, sessionID uint) (repository.SessionAggregate, error) {
	return s.sessionAggregateFn(ctx, sessionID)
}
func (s *trackingRepoStub) SessionMoodBreakdown(ctx context.Context, sessionID uint) ([]repository.MoodCount, error) {
	return s.sessionMoodBreakdownFn(ctx, sessionID)
}

func noopTrackingRepo() *trackingRepoStub {
	return &trackingRepoStub{
		createFn:          func(context.Context, *models.SessionTracking) error { return nil },
		completionTimesFn: func(context.Context, uint, int) ([]time.Time, error) { return nil, nil },
		totalsFn: func(context.Context, uint, time.Time) (repository.ActivityTotals, error) {
			return repository.ActivityTotals{}, nil
		},
		dailyActivityFn: func(context.Context, uint, time.Time) ([]repository.DayActivity, error) {
			return nil, nil
		},
		categoryActivityFn: func(context.Context, uint, time.Time) ([]repository.CategoryActivity, error) {
			return nil, nil
		},
		recentCompletionsFn: func(context.Context, uint, int) ([]models.SessionTracking, error) {
			return nil, nil
		},
		sessionAggregateFn: func(context.Context, uint) (repository.SessionAggregate, error) {
			return repository.SessionAggregate{}, nil
		},
		sessionMoodBreakdownFn: func(context.Context, uint) ([]repository.MoodCount, error) {
			return nil, nil
		},
	}
}

type commentRepoStub struct {
	createFn         func(context.Context, *models.Comment) error
	getByIDFn        func(context.Context, uint) (*models.Comment, error)
	listBySessionFn  func(context.Context, uint, int, int) ([]*models.Comment, error)
	listRepliesFn    func(context.Context, uint, int) ([]*models.Comment, error)
	updateFn         func(context.Context, *models.Comment) error
	deleteFn         func(context.Context, uint) error
	countBySessionFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListBySession(ctx context.Context, sessionID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listBySessionFn(ctx, sessionID, limit, offset)
}
func (s *commentRepoStub) ListReplies(ctx context.Context, parentID uint, limit int) ([]*models.Comment, error) {
	return s.listRepliesFn(ctx, parentID, limit)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *commentRepoStub) CountBySession(ctx context.Context, sessionID uint) (int64, error) {
	return s.countBySessionFn(ctx, sessionID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, comment *models.Comment) error {
			comment.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, SessionID: 1, UserID: 1, Content: "nice"}, nil
		},
		listBySessionFn:  func(context.Context, uint, int, int) ([]*models.Comment, error) { return nil, nil },
		listRepliesFn:    func(context.Context, uint, int) ([]*models.Comment, error) { return nil, nil },
		updateFn:         func(context.Context, *models.Comment) error { return nil },
		deleteFn:         func(context.Context, uint) error { return nil },
		countBySessionFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type categoryRepoStub struct {
	listFn    func(context.Context) ([]models.Category, error)
	getByIDFn func(context.Context, uint) (*models.Category, error)
	createFn  func(context.Context, *models.Category) error
	upsertFn  func(context.Context, *models.Category) error
}

func (s *categoryRepoStub) List(ctx context.Context) ([]models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) GetByID(ctx context.Context, id uint) (*models.Category, error) {
	return s.getByIDFn(ctx, id)
}
func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) Upsert(ctx context.Context, category *models.Category) error {
	return s.upsertFn(ctx, category)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		listFn: func(context.Context) ([]models.Category, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Category, error) {
			return &models.Category{ID: id, Name: "Yoga", IsActive: true}, nil
		},
		createFn: func(_ context.Context, category *models.Category) error {
			category.ID = 1
			return nil
		},
		upsertFn: func(context.Context, *models.Category) error { return nil },
	}
}
