package service

import (
	"context"
	"time"

	"wellspring/internal/models"
	"wellspring/internal/observability"
	"wellspring/internal/repository"
	"wellspring/internal/validation"
)

// SessionInput carries the user-editable session fields. Pointer fields
// distinguish "not provided" from zero values on partial draft updates.
type SessionInput struct {
	Title           *string `json:"title"`
	Description     *string `json:"description"`
	CategoryID      *uint   `json:"category_id"`
	Difficulty      *string `json:"difficulty"`
	DurationMinutes *int    `json:"duration_minutes"`
	Tags            *string `json:"tags"`
	Instructions    *string `json:"instructions"`
	Equipment       *string `json:"equipment"`
	CaloriesBurned  *int    `json:"calories_burned"`
	Privacy         *string `json:"privacy"`
	Thumbnail       *string `json:"thumbnail"`
}

// SessionService implements the session publication state machine and CRUD.
type SessionService struct {
	sessionRepo  repository.SessionRepository
	categoryRepo repository.CategoryRepository
}

// NewSessionService returns a new SessionService.
func NewSessionService(sessionRepo repository.SessionRepository, categoryRepo repository.CategoryRepository) *SessionService {
	return &SessionService{sessionRepo: sessionRepo, categoryRepo: categoryRepo}
}

// SaveDraft creates a new draft or partially updates an existing one.
// Drafts may be saved with missing fields; completeness is enforced at
// publish time. Only the owner may update, and only while still a draft.
func (s *SessionService) SaveDraft(ctx context.Context, userID uint, sessionID uint, input SessionInput) (*models.Session, error) {
	if errs := validateDraftInput(input); len(errs) > 0 {
		return nil, models.NewValidationError("Invalid session input", errs...)
	}

	if sessionID == 0 {
		session := &models.Session{
			CreatedByID: userID,
			Status:      models.SessionStatusDraft,
			Privacy:     models.SessionPrivacyPublic,
			Difficulty:  models.DifficultyBeginner,
		}
		applyInput(session, input)
		if err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, err
		}
		return s.sessionRepo.GetByID(ctx, session.ID, userID)
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.CreatedByID != userID {
		return nil, models.NewAccessDeniedError("You can only edit your own sessions")
	}
	if session.IsPublished() {
		return nil, models.NewInvalidOperationError("Published sessions cannot be saved as drafts")
	}

	applyInput(session, input)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, sessionID, userID)
}

// Publish transitions a draft to published. Publishing an already-published
// session is a no-op success, so retried requests stay safe.
func (s *SessionService) Publish(ctx context.Context, userID, sessionID uint) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.CreatedByID != userID {
		return nil, models.NewAccessDeniedError("You can only publish your own sessions")
	}
	if session.IsPublished() {
		return session, nil
	}

	var missing []string
	if session.Title == "" {
		missing = append(missing, "title is required")
	}
	if session.CategoryID == 0 {
		missing = append(missing, "category_id is required")
	}
	if session.DurationMinutes <= 0 {
		missing = append(missing, "duration_minutes is required")
	}
	if len(missing) > 0 {
		return nil, models.NewInvalidOperationError("Session is missing required fields", missing...)
	}
	if _, err := s.categoryRepo.GetByID(ctx, session.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	session.Status = models.SessionStatusPublished
	session.PublishedAt = &now
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	observability.SessionsPublished.Inc()

	return s.sessionRepo.GetByID(ctx, sessionID, userID)
}

// Get fetches a single session. Drafts and private sessions read as
// NOT_FOUND for anyone but the owner, so their existence never leaks. A
// non-owner authenticated view of a published session bumps the view count.
func (s *SessionService) Get(ctx context.Context, viewerID, sessionID uint) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID, viewerID)
	if err != nil {
		return nil, err
	}

	if session.CreatedByID != viewerID {
		if !session.IsPublished() || session.Privacy != models.SessionPrivacyPublic {
			return nil, models.NewNotFoundError("Session", sessionID)
		}
		if viewerID != 0 {
			if err := s.sessionRepo.IncrementViews(ctx, sessionID); err != nil {
				return nil, err
			}
			session.ViewsCount++
		}
	}
	return session, nil
}

// Browse lists public published sessions with filters, sorting and pagination.
func (s *SessionService) Browse(ctx context.Context, viewerID uint, filters repository.SessionFilters, page int) ([]*models.Session, models.Pagination, error) {
	page, perPage, offset := normalizePage(page, filters.Limit)
	filters.Limit = perPage
	filters.Offset = offset

	sessions, err := s.sessionRepo.List(ctx, filters, viewerID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.sessionRepo.Count(ctx, filters)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return sessions, models.NewPagination(page, perPage, total), nil
}

// ListMine lists all of the owner's sessions, drafts included.
func (s *SessionService) ListMine(ctx context.Context, ownerID uint, page, perPage int) ([]*models.Session, error) {
	page, perPage, offset := normalizePage(page, perPage)
	_ = page
	return s.sessionRepo.ListByOwner(ctx, ownerID, perPage, offset)
}

// Update edits a session the user owns. Published sessions stay published;
// only their content changes.
func (s *SessionService) Update(ctx context.Context, userID, sessionID uint, input SessionInput) (*models.Session, error) {
	if errs := validateDraftInput(input); len(errs) > 0 {
		return nil, models.NewValidationError("Invalid session input", errs...)
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.CreatedByID != userID {
		return nil, models.NewAccessDeniedError("You can only edit your own sessions")
	}

	applyInput(session, input)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}
	return s.sessionRepo.GetByID(ctx, sessionID, userID)
}

// Delete removes a session the user owns, cascading its likes, comments and
// completion records in one transaction.
func (s *SessionService) Delete(ctx context.Context, userID, sessionID uint) error {
	session, err := s.sessionRepo.GetByID(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if session.CreatedByID != userID {
		return models.NewAccessDeniedError("You can only delete your own sessions")
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

// validateDraftInput checks only the fields the input actually carries.
func validateDraftInput(input SessionInput) []string {
	title := "draft"
	if input.Title != nil {
		title = *input.Title
	}
	duration := 1
	if input.DurationMinutes != nil {
		duration = *input.DurationMinutes
	}
	difficulty := ""
	if input.Difficulty != nil {
		difficulty = *input.Difficulty
	}
	privacy := ""
	if input.Privacy != nil {
		privacy = *input.Privacy
	}
	tags := ""
	if input.Tags != nil {
		tags = *input.Tags
	}
	return validation.ValidateSessionInput(title, duration, difficulty, privacy, tags)
}

func applyInput(session *models.Session, input SessionInput) {
	if input.Title != nil {
		session.Title = *input.Title
	}
	if input.Description != nil {
		session.Description = *input.Description
	}
	if input.CategoryID != nil {
		session.CategoryID = *input.CategoryID
		session.Category = nil
	}
	if input.Difficulty != nil && *input.Difficulty != "" {
		session.Difficulty = *input.Difficulty
	}
	if input.DurationMinutes != nil {
		session.DurationMinutes = *input.DurationMinutes
	}
	if input.Tags != nil {
		session.Tags = *input.Tags
	}
	if input.Instructions != nil {
		session.Instructions = *input.Instructions
	}
	if input.Equipment != nil {
		session.Equipment = *input.Equipment
	}
	if input.CaloriesBurned != nil {
		session.CaloriesBurned = *input.CaloriesBurned
	}
	if input.Privacy != nil && *input.Privacy != "" {
		session.Privacy = *input.Privacy
	}
	if input.Thumbnail != nil {
		session.Thumbnail = *input.Thumbnail
	}
}
