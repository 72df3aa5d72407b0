package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateSessionInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		title      string
		duration   int
		difficulty string
		privacy    string
		tags       string
		wantErrs   int
	}{
		{"Valid", "Morning Yoga Flow", 30, "beginner", "public", "yoga,morning", 0},
		{"Valid Defaults Empty", "Evening Meditation", 15, "", "", "", 0},
		{"Missing Title", "  ", 30, "beginner", "public", "", 1},
		{"Title Too Long", strings.Repeat("t", 151), 30, "beginner", "public", "", 1},
		{"Zero Duration", "HIIT Circuit", 0, "advanced", "public", "", 1},
		{"Excessive Duration", "Ultra Marathon", 301, "advanced", "public", "", 1},
		{"Bad Difficulty", "Core Blast", 20, "impossible", "public", "", 1},
		{"Bad Privacy", "Core Blast", 20, "beginner", "friends-only", "", 1},
		{"Everything Wrong", "", 0, "nope", "nope", strings.Repeat("x", 501), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateSessionInput(tt.title, tt.duration, tt.difficulty, tt.privacy, tt.tags)
			assert.Len(t, errs, tt.wantErrs)
		})
	}
}

func TestValidateCompletionInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		duration   int
		percentage int
		moodBefore string
		moodAfter  string
		notes      string
		wantErrs   int
	}{
		{"Valid", 30, 100, "tired", "energized", "felt great", 0},
		{"Valid Without Moods", 30, 80, "", "", "", 0},
		{"Zero Duration", 0, 100, "", "", "", 1},
		{"Percentage Over", 30, 101, "", "", "", 1},
		{"Percentage Under", 30, -1, "", "", "", 1},
		{"Unknown Mood Before", 30, 100, "euphoric", "", "", 1},
		{"Post Mood Used As Pre", 30, 100, "energized", "", "", 1},
		{"Notes Too Long", 30, 100, "", "", strings.Repeat("n", 301), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCompletionInput(tt.duration, tt.percentage, tt.moodBefore, tt.moodAfter, tt.notes)
			assert.Len(t, errs, tt.wantErrs)
		})
	}
}

func TestValidateCompletedAt(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		completedAt time.Time
		wantErr     bool
	}{
		{"Now", now, false},
		{"Earlier Today", now.Add(-6 * time.Hour), false},
		{"Yesterday Within Bound", now.Add(-23 * time.Hour), false},
		{"Slight Clock Skew", now.Add(2 * time.Minute), false},
		{"Future", now.Add(time.Hour), true},
		{"Far Future", now.Add(30 * 24 * time.Hour), true},
		{"Past Backdate Bound", now.Add(-25 * time.Hour), true},
		{"Deep Backdate", now.Add(-9 * 24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCompletedAt(tt.completedAt, now)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateCommentContent(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateCommentContent("nice session"))
	assert.Error(t, ValidateCommentContent("   "))
	assert.Error(t, ValidateCommentContent(strings.Repeat("c", 501)))
}
