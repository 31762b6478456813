package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SourceWorkout = "workout"
	SourceManual  = "manual"
)

type Manager struct {
	// counters
	CounterWorkoutsProcessed   prometheus.Counter
	CounterProgressUpdates     *prometheus.CounterVec
	CounterGoalUpdateFailures  prometheus.Counter
	CounterSkippedContribution prometheus.Counter

	// histograms
	HistWorkoutProcessingDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("fitness_goals", "test", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitness_goals", "test", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterWorkoutsProcessed := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_processed",
		Help:      "The total number of completed workouts processed",
	})
	counterProgressUpdates := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "goal_progress_updates",
		Help:      "The total number of goal progress increments",
	}, []string{"source"})
	counterGoalUpdateFailures := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "goal_update_failures",
		Help:      "The total number of goals that failed to receive workout progress",
	})
	counterSkippedContribution := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "skipped_contributions",
		Help:      "The total number of goals skipped because the workout contributed nothing",
	})

	histWorkoutProcessingDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0001, 0.0005, 0.001, 0.005, 0.01,
				0.05, 0.1, 0.5, 1, 5, 10,
			},
			Name: "workout_processing_duration_seconds",
			Help: "Duration of processing one completed workout in seconds",
		},
	)

	return &Manager{
		CounterWorkoutsProcessed:      counterWorkoutsProcessed,
		CounterProgressUpdates:        counterProgressUpdates,
		CounterGoalUpdateFailures:     counterGoalUpdateFailures,
		CounterSkippedContribution:    counterSkippedContribution,
		HistWorkoutProcessingDuration: histWorkoutProcessingDuration,
	}
}
