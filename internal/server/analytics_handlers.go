package server

import (
	"wellspring/internal/models"
	"wellspring/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetDashboard handles GET /api/analytics/dashboard?timeRange=week|month|year
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := s.analyticsService.Dashboard(c.Context(), currentUserID(c), c.Query("timeRange", "week"))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, dashboard, "")
}

// CompleteSession handles POST /api/analytics/complete
func (s *Server) CompleteSession(c *fiber.Ctx) error {
	var input service.CompletionInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}
	if input.SessionID == 0 {
		return models.RespondWithError(c,
			models.NewValidationError("session_id is required"))
	}

	record, err := s.analyticsService.RecordCompletion(c.Context(), currentUserID(c), input)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusCreated, record, "Completion recorded")
}

// GetSessionAnalytics handles GET /api/analytics/analytics/:sessionId
func (s *Server) GetSessionAnalytics(c *fiber.Ctx) error {
	sessionID, err := s.parseID(c, "sessionId")
	if err != nil {
		return nil
	}

	report, err := s.analyticsService.SessionAnalyticsFor(c.Context(), currentUserID(c), sessionID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, report, "")
}
