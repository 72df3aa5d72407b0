package server

import (
	"wellspring/internal/models"
	"wellspring/internal/repository"
	"wellspring/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPublicSessions handles GET /api/sessions. Auth is optional; signed-in
// viewers get per-session liked state and their latest completion.
func (s *Server) GetPublicSessions(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)
	page, perPage := parsePageQuery(c)

	filters := repository.SessionFilters{
		CategoryID:  uint(c.QueryInt("category", 0)),
		Difficulty:  c.Query("difficulty"),
		DurationMin: c.QueryInt("duration_min", 0),
		DurationMax: c.QueryInt("duration_max", 0),
		Tag:         c.Query("tag"),
		Search:      c.Query("search"),
		Sort:        c.Query("sort", "newest"),
		Limit:       perPage,
	}

	sessions, pagination, err := s.sessionService.Browse(c.Context(), viewerID, filters, page)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if sessions == nil {
		sessions = []*models.Session{}
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"sessions":   sessions,
		"pagination": pagination,
	}, "")
}

// GetMySessions handles GET /api/sessions/my/all. Returns the owner's
// sessions in every state, drafts included.
func (s *Server) GetMySessions(c *fiber.Ctx) error {
	page, perPage := parsePageQuery(c)

	sessions, err := s.sessionService.ListMine(c.Context(), currentUserID(c), page, perPage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if sessions == nil {
		sessions = []*models.Session{}
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"sessions": sessions,
	}, "")
}

// GetSession handles GET /api/sessions/:id
func (s *Server) GetSession(c *fiber.Ctx) error {
	sessionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	session, err := s.sessionService.Get(c.Context(), viewerID, sessionID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, session, "")
}

// SaveDraft handles POST /api/sessions/save-draft. With a session_id it
// partially updates an existing draft, otherwise it creates one.
func (s *Server) SaveDraft(c *fiber.Ctx) error {
	var req struct {
		SessionID uint `json:"session_id"`
		service.SessionInput
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	session, err := s.sessionService.SaveDraft(c.Context(), currentUserID(c), req.SessionID, req.SessionInput)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	status := fiber.StatusOK
	message := "Draft updated"
	if req.SessionID == 0 {
		status = fiber.StatusCreated
		message = "Draft created"
	}
	return models.Respond(c, status, session, message)
}

// PublishSession handles POST /api/sessions/publish
func (s *Server) PublishSession(c *fiber.Ctx) error {
	var req struct {
		SessionID uint `json:"session_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.SessionID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("session_id is required"))
	}

	session, err := s.sessionService.Publish(c.Context(), currentUserID(c), req.SessionID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, session, "Session published")
}

// UpdateSession handles POST /api/sessions/update/:id
func (s *Server) UpdateSession(c *fiber.Ctx) error {
	sessionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var input service.SessionInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	session, err := s.sessionService.Update(c.Context(), currentUserID(c), sessionID, input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, session, "Session updated")
}

// DeleteSession handles DELETE /api/sessions/delete/:id
func (s *Server) DeleteSession(c *fiber.Ctx) error {
	sessionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.sessionService.Delete(c.Context(), currentUserID(c), sessionID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Session deleted")
}

// ToggleLike handles POST /api/sessions/:id/like
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	sessionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	isLiked, likesCount, err := s.engagementService.ToggleLike(c.Context(), currentUserID(c), sessionID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	message := "Like removed"
	if isLiked {
		message = "Session liked"
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"is_liked":    isLiked,
		"likes_count": likesCount,
	}, message)
}

// AddComment handles POST /api/sessions/:id/comment
func (s *Server) AddComment(c *fiber.Ctx) error {
	sessionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content         string `json:"content"`
		ParentCommentID *uint  `json:"parent_comment_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Add(c.Context(), currentUserID(c), sessionID, req.ParentCommentID, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, comment, "Comment added")
}

// GetComments handles GET /api/sessions/:id/comments
func (s *Server) GetComments(c *fiber.Ctx) error {
	sessionID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)
	page, perPage := parsePageQuery(c)

	comments, pagination, err := s.commentService.List(c.Context(), viewerID, sessionID, page, perPage)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{
		"comments":   comments,
		"pagination": pagination,
	}, "")
}

// GetCommentReplies handles GET /api/sessions/comments/:commentId/replies
func (s *Server) GetCommentReplies(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	replies, err := s.commentService.Replies(c.Context(), commentID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	if replies == nil {
		replies = []*models.Comment{}
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"replies": replies}, "")
}

// UpdateComment handles PUT /api/sessions/comments/:commentId
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Update(c.Context(), currentUserID(c), commentID, req.Content)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, comment, "Comment updated")
}

// DeleteComment handles DELETE /api/sessions/comments/:commentId
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "commentId")
	if err != nil {
		return nil
	}

	if err := s.commentService.Delete(c.Context(), currentUserID(c), commentID); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Comment deleted")
}
