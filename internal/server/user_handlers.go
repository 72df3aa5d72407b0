package server

import (
	"wellspring/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetUserProfile handles GET /api/users/:id. Auth is optional; a signed-in
// viewer also learns whether they follow the user.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	profile, err := s.userService.PublicProfile(c.Context(), viewerID, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"user":         profile.User,
		"is_following": profile.IsFollowing,
	}, "")
}

// ToggleFollow handles POST /api/users/:id/follow
func (s *Server) ToggleFollow(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	isFollowing, followersCount, err := s.engagementService.ToggleFollow(c.Context(), currentUserID(c), targetID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	message := "Unfollowed"
	if isFollowing {
		message = "Following"
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"is_following":    isFollowing,
		"followers_count": followersCount,
	}, message)
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page, perPage := parsePageQuery(c)

	followers, pagination, err := s.engagementService.Followers(c.Context(), userID, page, perPage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"followers":  followers,
		"pagination": pagination,
	}, "")
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	page, perPage := parsePageQuery(c)

	following, pagination, err := s.engagementService.Following(c.Context(), userID, page, perPage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"following":  following,
		"pagination": pagination,
	}, "")
}
