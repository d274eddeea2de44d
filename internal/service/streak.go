package service

import (
	"time"

	"github.com/fitkz/fitcoach/internal/domain"
)

// advanceStreak applies the per-day streak transition to u and reports the
// outcome. today must be a dateOnly value.
//
// Same day again: no-op. Yesterday: streak continues. Anything older (or no
// workout yet): streak restarts at 1 — a single gap day breaks it.
func advanceStreak(u *domain.User, today time.Time) domain.StreakInfo {
	oldStreak := u.CurrentStreak

	if u.LastWorkoutDate != nil && u.LastWorkoutDate.Equal(today) {
		return domain.StreakInfo{
			Streak:    u.CurrentStreak,
			Increased: false,
			NewRecord: false,
			Best:      u.BestStreak,
		}
	}

	yesterday := today.AddDate(0, 0, -1)
	if u.LastWorkoutDate != nil && u.LastWorkoutDate.Equal(yesterday) {
		u.CurrentStreak++
	} else {
		u.CurrentStreak = 1
	}
	u.LastWorkoutDate = &today

	newRecord := false
	if u.CurrentStreak > u.BestStreak {
		u.BestStreak = u.CurrentStreak
		newRecord = true
	}

	return domain.StreakInfo{
		Streak:    u.CurrentStreak,
		Increased: u.CurrentStreak > oldStreak,
		NewRecord: newRecord,
		Best:      u.BestStreak,
	}
}
