package service

import (
	"context"
	"time"

	"wellspring/internal/repository"
)

// streakScanLimit bounds how many completion records the streak calculation
// reads. 500 daily completions is well past a year of history.
const streakScanLimit = 500

// StreakService computes a user's current daily completion streak.
type StreakService struct {
	trackingRepo repository.TrackingRepository
}

// NewStreakService returns a new StreakService.
func NewStreakService(trackingRepo repository.TrackingRepository) *StreakService {
	return &StreakService{trackingRepo: trackingRepo}
}

// CurrentStreak returns the number of consecutive UTC calendar days, ending
// today or yesterday, on which the user completed at least one session. A
// streak whose latest day is yesterday still counts; one that ended two or
// more days ago is 0.
func (s *StreakService) CurrentStreak(ctx context.Context, userID uint, now time.Time) (int, error) {
	times, err := s.trackingRepo.CompletionTimes(ctx, userID, streakScanLimit)
	if err != nil {
		return 0, err
	}
	return streakFromTimes(times, now), nil
}

// streakFromTimes walks completion timestamps (descending) as distinct UTC
// days. The cursor starts at today; if today has no completion it is allowed
// to start at yesterday. Each matching day extends the streak and moves the
// cursor back one day; any larger gap ends the scan.
func streakFromTimes(times []time.Time, now time.Time) int {
	if len(times) == 0 {
		return 0
	}

	cursor := dayUTC(now)
	streak := 0

	for _, t := range times {
		day := dayUTC(t)
		if day.Equal(cursor) {
			streak++
			cursor = cursor.AddDate(0, 0, -1)
			continue
		}
		if day.After(cursor) {
			// Duplicate completion on an already-counted day.
			continue
		}
		if streak == 0 && day.Equal(cursor.AddDate(0, 0, -1)) {
			// No completion yet today; anchor the streak at yesterday.
			streak = 1
			cursor = day.AddDate(0, 0, -1)
			continue
		}
		break
	}
	return streak
}

func dayUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
