package service

import (
	"context"
	"testing"

	"wellspring/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollowSelf(t *testing.T) {
	svc := NewEngagementService(noopFollowRepo(), noopSessionRepo(), noopUserRepo())
	_, _, err := svc.ToggleFollow(context.Background(), 3, 3)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInvalidOperation, appErr.Code)
}

func TestToggleFollowMissingTarget(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewEngagementService(noopFollowRepo(), noopSessionRepo(), users)
	_, _, err := svc.ToggleFollow(context.Background(), 1, 99)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestToggleFollowRoundTrip(t *testing.T) {
	// In-memory edge set so two toggles return to the original state.
	edges := map[[2]uint]bool{}
	follows := noopFollowRepo()
	follows.followFn = func(_ context.Context, a, b uint) error {
		edges[[2]uint{a, b}] = true
		return nil
	}
	follows.unfollowFn = func(_ context.Context, a, b uint) error {
		delete(edges, [2]uint{a, b})
		return nil
	}
	follows.isFollowingFn = func(_ context.Context, a, b uint) (bool, error) {
		return edges[[2]uint{a, b}], nil
	}
	follows.countFollowersFn = func(_ context.Context, target uint) (int64, error) {
		var n int64
		for edge := range edges {
			if edge[1] == target {
				n++
			}
		}
		return n, nil
	}

	svc := NewEngagementService(follows, noopSessionRepo(), noopUserRepo())

	following, count, err := svc.ToggleFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, following)
	assert.EqualValues(t, 1, count)

	following, count, err = svc.ToggleFollow(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, following, "second toggle must return to the original state")
	assert.EqualValues(t, 0, count)
}

func TestToggleLikeRoundTrip(t *testing.T) {
	liked := false
	sessions := noopSessionRepo()
	sessions.isLikedFn = func(context.Context, uint, uint) (bool, error) { return liked, nil }
	sessions.likeFn = func(context.Context, uint, uint) error {
		liked = true
		return nil
	}
	sessions.unlikeFn = func(context.Context, uint, uint) error {
		liked = false
		return nil
	}
	sessions.countLikesFn = func(context.Context, uint) (int64, error) {
		if liked {
			return 1, nil
		}
		return 0, nil
	}

	svc := NewEngagementService(noopFollowRepo(), sessions, noopUserRepo())

	isLiked, count, err := svc.ToggleLike(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.True(t, isLiked)
	assert.EqualValues(t, 1, count)

	isLiked, count, err = svc.ToggleLike(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.False(t, isLiked, "second toggle must return to the original state")
	assert.EqualValues(t, 0, count)
}

func TestToggleLikeDraftInvisible(t *testing.T) {
	sessions := noopSessionRepo()
	sessions.getByIDFn = func(_ context.Context, id, _ uint) (*models.Session, error) {
		return &models.Session{
			ID:          id,
			CreatedByID: 2,
			Status:      models.SessionStatusDraft,
			Privacy:     models.SessionPrivacyPublic,
		}, nil
	}

	svc := NewEngagementService(noopFollowRepo(), sessions, noopUserRepo())
	_, _, err := svc.ToggleLike(context.Background(), 1, 10)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code, "a stranger's draft must look absent")
}

func TestFollowersPagination(t *testing.T) {
	follows := noopFollowRepo()
	follows.getFollowersFn = func(_ context.Context, _ uint, limit, offset int) ([]models.User, error) {
		assert.Equal(t, 20, limit)
		assert.Equal(t, 20, offset)
		return []models.User{{ID: 5, Username: "ada"}}, nil
	}
	follows.countFollowersFn = func(context.Context, uint) (int64, error) { return 45, nil }

	svc := NewEngagementService(follows, noopSessionRepo(), noopUserRepo())
	users, page, err := svc.Followers(context.Background(), 1, 2, 0)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ada", users[0].Username)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 3, page.TotalPages)
	assert.EqualValues(t, 45, page.Total)
}
