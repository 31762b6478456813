package domain

import "time"

// Status is the derived display state of a goal. It is never stored.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed" // current period only, not lifetime
	StatusExpired   Status = "expired"
)

// DeriveStatus picks the first matching state in the order paused, expired, completed, active.
func DeriveStatus(isActive bool, endDate *time.Time, currentPeriodCompleted bool, now time.Time) Status {
	switch {
	case !isActive:
		return StatusPaused
	case endDate != nil && now.After(*endDate):
		return StatusExpired
	case currentPeriodCompleted:
		return StatusCompleted
	default:
		return StatusActive
	}
}

// CountStreak counts consecutive completed periods backward from the most recent one.
// completed must hold only completed records ordered by PeriodStart descending. A record
// whose PeriodEnd is not exactly the previous record's PeriodStart ends the streak, so a
// missing or incomplete period shows up as a gap.
func CountStreak(completed []GoalProgress) int {
	if len(completed) == 0 {
		return 0
	}

	streak := 1
	previousStart := completed[0].PeriodStart
	for _, p := range completed[1:] {
		if !previousStart.Equal(p.PeriodEnd) {
			break
		}
		streak++
		previousStart = p.PeriodStart
	}
	return streak
}
