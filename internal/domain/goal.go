package domain

import (
	"time"
)

// Metric is the quantity a goal measures.
type Metric string

const (
	MetricDistance Metric = "distance"
	MetricDuration Metric = "duration"
	MetricReps     Metric = "reps"
	MetricSets     Metric = "sets"
	MetricVolume   Metric = "volume"
	MetricSessions Metric = "sessions"
)

func (m Metric) IsValid() bool {
	switch m {
	case MetricDistance, MetricDuration, MetricReps, MetricSets, MetricVolume, MetricSessions:
		return true
	default:
		return false
	}
}

// Frequency is the length of the period over which a goal's progress resets.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	default:
		return false
	}
}

// Goal is a recurring fitness target owned by one user.
type Goal struct {
	ID                string     `bson:"_id" json:"id"`
	OwnerID           string     `bson:"ownerId" json:"ownerId"`
	Name              string     `bson:"name" json:"name"`
	Description       string     `bson:"description,omitempty" json:"description,omitempty"`
	LinkedExerciseIDs []string   `bson:"linkedExerciseIds" json:"linkedExerciseIds"` // empty is valid for session goals
	Metric            Metric     `bson:"metric" json:"metric"`
	TargetValue       float64    `bson:"targetValue" json:"targetValue"`
	TargetUnit        string     `bson:"targetUnit,omitempty" json:"targetUnit,omitempty"` // display only
	Frequency         Frequency  `bson:"frequency" json:"frequency"`
	StartDate         time.Time  `bson:"startDate" json:"startDate"`
	EndDate           *time.Time `bson:"endDate,omitempty" json:"endDate,omitempty"` // nil means ongoing
	IsActive          bool       `bson:"isActive" json:"isActive"`
	AutoTrack         bool       `bson:"autoTrack" json:"autoTrack"`
	CreatedAt         time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// TracksExercise reports whether the goal is linked to the given exercise.
func (g *Goal) TracksExercise(exerciseID string) bool {
	for _, id := range g.LinkedExerciseIDs {
		if id == exerciseID {
			return true
		}
	}
	return false
}

// GoalProgress is the accumulated value of one goal within one period.
// (GoalID, PeriodStart) is the natural key.
type GoalProgress struct {
	GoalID       string    `bson:"goalId" json:"goalId"`
	PeriodStart  time.Time `bson:"periodStart" json:"periodStart"`
	PeriodEnd    time.Time `bson:"periodEnd" json:"periodEnd"`
	CurrentValue float64   `bson:"currentValue" json:"currentValue"`
	IsCompleted  bool      `bson:"isCompleted" json:"isCompleted"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// GoalWithProgress is the read model handed to presentation layers.
// It is assembled on every read and never persisted.
type GoalWithProgress struct {
	Goal
	PeriodStart            time.Time `json:"periodStart"`
	PeriodEnd              time.Time `json:"periodEnd"`
	CurrentPeriodValue     float64   `json:"currentPeriodValue"`
	CurrentPeriodCompleted bool      `json:"currentPeriodCompleted"`
	ProgressPercent        float64   `json:"progressPercent"`
	Status                 Status    `json:"status"`
	StreakCount            int       `json:"streakCount"`
}

// ProgressPercent returns value relative to target as a percentage capped at 100.
func ProgressPercent(value, target float64) float64 {
	if target <= 0 || value <= 0 {
		return 0
	}
	pct := value / target * 100
	if pct > 100 {
		return 100
	}
	return pct
}
