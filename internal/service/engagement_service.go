// Package service contains the application's business logic layer.
package service

import (
	"context"

	"wellspring/internal/models"
	"wellspring/internal/observability"
	"wellspring/internal/repository"
)

// EngagementService provides follow and like toggle logic. Counts returned
// from toggles are live counts of the relation rows, never cached values.
type EngagementService struct {
	followRepo  repository.FollowRepository
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
}

// NewEngagementService returns a new EngagementService.
func NewEngagementService(followRepo repository.FollowRepository, sessionRepo repository.SessionRepository, userRepo repository.UserRepository) *EngagementService {
	return &EngagementService{
		followRepo:  followRepo,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

// ToggleFollow follows targetID if the actor is not following them, and
// unfollows otherwise. Returns the resulting state and the target's live
// follower count.
func (s *EngagementService) ToggleFollow(ctx context.Context, actorID, targetID uint) (bool, int64, error) {
	if actorID == targetID {
		return false, 0, models.NewInvalidOperationError("You cannot follow yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return false, 0, err
	}

	following, err := s.followRepo.IsFollowing(ctx, actorID, targetID)
	if err != nil {
		return false, 0, err
	}

	if following {
		if err := s.followRepo.Unfollow(ctx, actorID, targetID); err != nil {
			return false, 0, err
		}
		observability.EngagementToggles.WithLabelValues("follow", "off").Inc()
	} else {
		if err := s.followRepo.Follow(ctx, actorID, targetID); err != nil {
			return false, 0, err
		}
		observability.EngagementToggles.WithLabelValues("follow", "on").Inc()
	}

	count, err := s.followRepo.CountFollowers(ctx, targetID)
	if err != nil {
		return false, 0, err
	}
	return !following, count, nil
}

// ToggleLike likes sessionID if the user has not liked it, and unlikes
// otherwise. Returns the resulting state and the session's live like count.
func (s *EngagementService) ToggleLike(ctx context.Context, userID, sessionID uint) (bool, int64, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID, userID)
	if err != nil {
		return false, 0, err
	}
	// Drafts and private sessions are invisible to everyone but the owner.
	if session.CreatedByID != userID &&
		(!session.IsPublished() || session.Privacy != models.SessionPrivacyPublic) {
		return false, 0, models.NewNotFoundError("Session", sessionID)
	}

	liked, err := s.sessionRepo.IsLiked(ctx, userID, sessionID)
	if err != nil {
		return false, 0, err
	}

	if liked {
		if err := s.sessionRepo.Unlike(ctx, userID, sessionID); err != nil {
			return false, 0, err
		}
		observability.EngagementToggles.WithLabelValues("like", "off").Inc()
	} else {
		if err := s.sessionRepo.Like(ctx, userID, sessionID); err != nil {
			return false, 0, err
		}
		observability.EngagementToggles.WithLabelValues("like", "on").Inc()
	}

	count, err := s.sessionRepo.CountLikes(ctx, sessionID)
	if err != nil {
		return false, 0, err
	}
	return !liked, count, nil
}

// FollowerCount returns the live follower count for a user.
func (s *EngagementService) FollowerCount(ctx context.Context, userID uint) (int64, error) {
	return s.followRepo.CountFollowers(ctx, userID)
}

// FollowingCount returns the live following count for a user.
func (s *EngagementService) FollowingCount(ctx context.Context, userID uint) (int64, error) {
	return s.followRepo.CountFollowing(ctx, userID)
}

// Followers returns a page of the user's followers with pagination metadata.
func (s *EngagementService) Followers(ctx context.Context, userID uint, page, perPage int) ([]models.UserSummary, models.Pagination, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, models.Pagination{}, err
	}
	page, perPage, offset := normalizePage(page, perPage)

	users, err := s.followRepo.GetFollowers(ctx, userID, perPage, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.followRepo.CountFollowers(ctx, userID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return summarize(users), models.NewPagination(page, perPage, total), nil
}

// Following returns a page of users the user follows with pagination metadata.
func (s *EngagementService) Following(ctx context.Context, userID uint, page, perPage int) ([]models.UserSummary, models.Pagination, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, models.Pagination{}, err
	}
	page, perPage, offset := normalizePage(page, perPage)

	users, err := s.followRepo.GetFollowing(ctx, userID, perPage, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.followRepo.CountFollowing(ctx, userID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return summarize(users), models.NewPagination(page, perPage, total), nil
}

// normalizePage clamps page inputs and derives the row offset.
func normalizePage(page, perPage int) (int, int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage, (page - 1) * perPage
}

func summarize(users []models.User) []models.UserSummary {
	summaries := make([]models.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries
}
