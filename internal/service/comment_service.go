package service

import (
	"context"

	"wellspring/internal/models"
	"wellspring/internal/repository"
	"wellspring/internal/validation"
)

// CommentService provides comment business logic for sessions.
type CommentService struct {
	commentRepo repository.CommentRepository
	sessionRepo repository.SessionRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, sessionRepo repository.SessionRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, sessionRepo: sessionRepo}
}

// Add creates a comment on a session. For replies, the parent comment must
// belong to the same session; a parent from another session reads as
// NOT_FOUND so comment IDs never leak across sessions.
func (s *CommentService) Add(ctx context.Context, userID, sessionID uint, parentCommentID *uint, content string) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.CreatedByID != userID &&
		(!session.IsPublished() || session.Privacy != models.SessionPrivacyPublic) {
		return nil, models.NewNotFoundError("Session", sessionID)
	}

	if parentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *parentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.SessionID != sessionID {
			return nil, models.NewNotFoundError("Comment", *parentCommentID)
		}
		if parent.ParentCommentID != nil {
			return nil, models.NewInvalidOperationError("Replies cannot be nested further")
		}
	}

	comment := &models.Comment{
		UserID:          userID,
		SessionID:       sessionID,
		ParentCommentID: parentCommentID,
		Content:         content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// List returns a page of top-level comments, each with a reply preview, plus
// pagination metadata.
func (s *CommentService) List(ctx context.Context, viewerID, sessionID uint, page, perPage int) ([]*models.Comment, models.Pagination, error) {
	session, err := s.sessionRepo.GetByID(ctx, sessionID, viewerID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if session.CreatedByID != viewerID &&
		(!session.IsPublished() || session.Privacy != models.SessionPrivacyPublic) {
		return nil, models.Pagination{}, models.NewNotFoundError("Session", sessionID)
	}

	page, perPage, offset := normalizePage(page, perPage)
	comments, err := s.commentRepo.ListBySession(ctx, sessionID, perPage, offset)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	total, err := s.commentRepo.CountBySession(ctx, sessionID)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return comments, models.NewPagination(page, perPage, total), nil
}

// Replies returns all replies under a top-level comment, oldest first.
func (s *CommentService) Replies(ctx context.Context, parentID uint) ([]*models.Comment, error) {
	if _, err := s.commentRepo.GetByID(ctx, parentID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListReplies(ctx, parentID, 0)
}

// Update edits a comment the user authored.
func (s *CommentService) Update(ctx context.Context, userID, commentID uint, content string) (*models.Comment, error) {
	if err := validation.ValidateCommentContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, models.NewAccessDeniedError("You can only edit your own comments")
	}

	comment.Content = content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment. The author may always delete their own comment;
// the session owner may moderate any comment on their session.
func (s *CommentService) Delete(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.UserID != userID {
		session, err := s.sessionRepo.GetByID(ctx, comment.SessionID, userID)
		if err != nil {
			return err
		}
		if session.CreatedByID != userID {
			return models.NewAccessDeniedError("You can only delete your own comments")
		}
	}

	return s.commentRepo.Delete(ctx, commentID)
}
