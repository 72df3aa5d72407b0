package validation

import (
	"fmt"
	"strings"
	"time"

	"wellspring/internal/models"
)

const (
	maxTitleLength       = 150
	maxDurationMinutes   = 300
	maxNotesLength       = 300
	maxCommentLength     = 500
	maxSessionTagsLength = 500

	// Client-supplied completion timestamps may trail the server clock by a
	// day (a session finished offline) but never lead it beyond clock skew.
	maxCompletedAtSkew     = 5 * time.Minute
	maxCompletedAtBackdate = 24 * time.Hour
)

// ValidateSessionInput checks the user-supplied fields of a session draft.
// Returns the list of field errors; an empty slice means valid input.
func ValidateSessionInput(title string, durationMinutes int, difficulty, privacy, tags string) []string {
	var errs []string

	if strings.TrimSpace(title) == "" {
		errs = append(errs, "title is required")
	} else if len(title) > maxTitleLength {
		errs = append(errs, fmt.Sprintf("title must not exceed %d characters", maxTitleLength))
	}

	if durationMinutes <= 0 {
		errs = append(errs, "duration_minutes must be positive")
	} else if durationMinutes > maxDurationMinutes {
		errs = append(errs, fmt.Sprintf("duration_minutes must not exceed %d", maxDurationMinutes))
	}

	if difficulty != "" && !models.ValidDifficulty(difficulty) {
		errs = append(errs, "difficulty must be beginner, intermediate or advanced")
	}

	if privacy != "" && privacy != models.SessionPrivacyPublic && privacy != models.SessionPrivacyPrivate {
		errs = append(errs, "privacy must be public or private")
	}

	if len(tags) > maxSessionTagsLength {
		errs = append(errs, fmt.Sprintf("tags must not exceed %d characters", maxSessionTagsLength))
	}

	return errs
}

// ValidateCompletionInput checks the user-supplied fields of a completion record.
func ValidateCompletionInput(durationCompleted, completionPercentage int, moodBefore, moodAfter, notes string) []string {
	var errs []string

	if durationCompleted <= 0 {
		errs = append(errs, "duration_completed must be positive")
	}

	if completionPercentage < 0 || completionPercentage > 100 {
		errs = append(errs, "completion_percentage must be between 0 and 100")
	}

	if !models.ValidMoodBefore(moodBefore) {
		errs = append(errs, "mood_before is not a recognized mood")
	}
	if !models.ValidMoodAfter(moodAfter) {
		errs = append(errs, "mood_after is not a recognized mood")
	}

	if len(notes) > maxNotesLength {
		errs = append(errs, fmt.Sprintf("notes must not exceed %d characters", maxNotesLength))
	}

	return errs
}

// ValidateCompletedAt checks a client-supplied completion timestamp against
// the server clock. Streaks and activity series are derived from this value,
// so future or deeply backdated timestamps are rejected rather than stored.
func ValidateCompletedAt(completedAt, now time.Time) error {
	if completedAt.After(now.Add(maxCompletedAtSkew)) {
		return fmt.Errorf("completed_at cannot be in the future")
	}
	if completedAt.Before(now.Add(-maxCompletedAtBackdate)) {
		return fmt.Errorf("completed_at cannot be more than %d hours in the past", int(maxCompletedAtBackdate.Hours()))
	}
	return nil
}

// ValidateCommentContent checks a comment body.
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("comment content is required")
	}
	if len(content) > maxCommentLength {
		return fmt.Errorf("comment content must not exceed %d characters", maxCommentLength)
	}
	return nil
}
