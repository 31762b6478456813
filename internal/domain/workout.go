package domain

import (
	"time"
)

// WorkoutSummary is produced by the workout recorder once all sets of a session are final.
// MetricTotals maps exercise id -> metric name -> value summed over the workout.
// Only goals owned by UserID are credited.
type WorkoutSummary struct {
	UserID       string                        `json:"userId"`
	ExerciseIDs  []string                      `json:"exerciseIds"`
	MetricTotals map[string]map[string]float64 `json:"metricTotals"`
	CompletedAt  time.Time                     `json:"completedAt"`
}

// sessionContribution is what one completed workout adds to a sessions goal.
const sessionContribution = 1.0

// Contribution returns how much the workout adds to the goal's current period.
// Zero means the goal is not affected.
func Contribution(goal *Goal, workout WorkoutSummary) float64 {
	matched := make([]string, 0, len(workout.ExerciseIDs))
	seen := make(map[string]struct{}, len(workout.ExerciseIDs))
	for _, id := range workout.ExerciseIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if goal.TracksExercise(id) {
			matched = append(matched, id)
		}
	}

	switch goal.Metric {
	case MetricSessions:
		// A goal without linked exercises counts every workout.
		if len(goal.LinkedExerciseIDs) == 0 || len(matched) > 0 {
			return sessionContribution
		}
		return 0
	case MetricDistance, MetricDuration, MetricReps, MetricSets, MetricVolume:
		var total float64
		for _, id := range matched {
			total += workout.MetricTotals[id][string(goal.Metric)]
		}
		return total
	default:
		return 0
	}
}
