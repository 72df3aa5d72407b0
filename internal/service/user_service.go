package service

import (
	"context"

	"wellspring/internal/models"
	"wellspring/internal/repository"
)

// UserService provides profile business logic.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// UpdateProfileInput carries the editable profile fields. Pointer fields
// distinguish "not provided" from clearing a value.
type UpdateProfileInput struct {
	FirstName          *string `json:"first_name"`
	LastName           *string `json:"last_name"`
	Avatar             *string `json:"avatar"`
	Bio                *string `json:"bio"`
	Location           *string `json:"location"`
	FitnessGoals       *string `json:"fitness_goals"`
	DietaryPreferences *string `json:"dietary_preferences"`
	ExperienceLevel    *string `json:"experience_level"`
	Age                *int    `json:"age"`
	HeightCm           *int    `json:"height_cm"`
	WeightKg           *int    `json:"weight_kg"`
}

// PublicProfile is a user profile as seen by another (possibly anonymous) user.
type PublicProfile struct {
	User        *models.User `json:"user"`
	IsFollowing bool         `json:"is_following"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{userRepo: userRepo, followRepo: followRepo}
}

// Get returns a user by ID.
func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// PublicProfile returns a user's profile with follower counts, their recent
// published sessions and whether the viewer follows them.
func (s *UserService) PublicProfile(ctx context.Context, viewerID, userID uint) (*PublicProfile, error) {
	user, err := s.userRepo.GetByIDWithSessions(ctx, userID, 10)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.NewNotFoundError("User", userID)
	}

	profile := &PublicProfile{User: user}
	if viewerID != 0 && viewerID != userID {
		following, err := s.followRepo.IsFollowing(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
		profile.IsFollowing = following
	}
	return profile, nil
}

// UpdateProfile applies the provided fields to the user's own profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var errs []string
	if input.Bio != nil && len(*input.Bio) > 500 {
		errs = append(errs, "bio must not exceed 500 characters")
	}
	if input.ExperienceLevel != nil && *input.ExperienceLevel != "" {
		switch *input.ExperienceLevel {
		case models.ExperienceBeginner, models.ExperienceIntermediate, models.ExperienceAdvanced:
		default:
			errs = append(errs, "experience_level must be beginner, intermediate or advanced")
		}
	}
	if input.Age != nil && (*input.Age < 13 || *input.Age > 120) {
		errs = append(errs, "age must be between 13 and 120")
	}
	if len(errs) > 0 {
		return nil, models.NewValidationError("Invalid profile input", errs...)
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.FitnessGoals != nil {
		user.FitnessGoals = *input.FitnessGoals
	}
	if input.DietaryPreferences != nil {
		user.DietaryPreferences = *input.DietaryPreferences
	}
	if input.ExperienceLevel != nil && *input.ExperienceLevel != "" {
		user.ExperienceLevel = *input.ExperienceLevel
	}
	if input.Age != nil {
		user.Age = input.Age
	}
	if input.HeightCm != nil {
		user.HeightCm = input.HeightCm
	}
	if input.WeightKg != nil {
		user.WeightKg = input.WeightKg
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// Deactivate soft-disables the user's own account.
func (s *UserService) Deactivate(ctx context.Context, userID uint) error {
	return s.userRepo.Deactivate(ctx, userID)
}
