package service

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/metrics"
	"alcyxob/fitness-goals/internal/repository"
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=mocks/workout_processor.go -package=mocks

// ProcessResult summarizes one workout fan-out. Err aggregates the per-goal failures.
type ProcessResult struct {
	Evaluated int   `json:"evaluated"`
	Updated   int   `json:"updated"`
	Skipped   int   `json:"skipped"`
	Failed    int   `json:"failed"`
	Err       error `json:"-"`
}

type WorkoutProcessor interface {
	// ProcessWorkoutCompletion credits a finished workout to every active auto-tracking goal
	// of summary.UserID. A failing goal does not stop the others; only invalid input and a
	// failure to list the goals are returned.
	ProcessWorkoutCompletion(ctx context.Context, summary domain.WorkoutSummary) (ProcessResult, error)
}

type workoutProcessor struct {
	goalRepo    repository.GoalRepository
	accumulator *progressAccumulator
	clock       Clock
	metrics     *metrics.Manager
}

func NewWorkoutProcessor(
	goalRepo repository.GoalRepository,
	progressRepo repository.ProgressRepository,
	clock Clock,
	metricsManager *metrics.Manager,
) WorkoutProcessor {
	return &workoutProcessor{
		goalRepo:    goalRepo,
		accumulator: &progressAccumulator{progressRepo: progressRepo, clock: clock},
		clock:       clock,
		metrics:     metricsManager,
	}
}

func (p *workoutProcessor) ProcessWorkoutCompletion(ctx context.Context, summary domain.WorkoutSummary) (ProcessResult, error) {
	if summary.UserID == "" {
		return ProcessResult{}, fmt.Errorf("%w: workout has no user", ErrInvalidArgument)
	}
	if len(summary.ExerciseIDs) == 0 {
		return ProcessResult{}, fmt.Errorf("%w: workout has no exercises", ErrInvalidArgument)
	}

	timer := prometheus.NewTimer(p.metrics.HistWorkoutProcessingDuration)
	defer timer.ObserveDuration()

	goals, err := p.goalRepo.ListActiveAutoTrack(ctx, summary.UserID)
	if err != nil {
		return ProcessResult{}, &StoreError{Op: "list auto-track goals", Err: err}
	}

	at := summary.CompletedAt
	if at.IsZero() {
		at = p.clock.Now()
	}

	var result ProcessResult
	for i := range goals {
		goal := &goals[i]
		result.Evaluated++

		value := domain.Contribution(goal, summary)
		if value <= 0 {
			result.Skipped++
			p.metrics.CounterSkippedContribution.Inc()
			continue
		}

		progress, err := p.accumulator.add(ctx, goal, value, at)
		if err != nil {
			result.Failed++
			result.Err = multierr.Append(result.Err, fmt.Errorf("goal %s: %w", goal.ID, err))
			p.metrics.CounterGoalUpdateFailures.Inc()
			log.WithFields(log.Fields{
				"goal_id": goal.ID,
				"value":   value,
			}).WithError(err).Error("failed to apply workout progress")
			continue
		}

		result.Updated++
		p.metrics.CounterProgressUpdates.WithLabelValues(metrics.SourceWorkout).Inc()
		log.WithFields(log.Fields{
			"goal_id":   goal.ID,
			"value":     value,
			"total":     progress.CurrentValue,
			"completed": progress.IsCompleted,
		}).Debug("workout progress applied")
	}

	p.metrics.CounterWorkoutsProcessed.Inc()
	log.WithFields(log.Fields{
		"user_id":   summary.UserID,
		"evaluated": result.Evaluated,
		"updated":   result.Updated,
		"skipped":   result.Skipped,
		"failed":    result.Failed,
	}).Info("workout completion processed")

	return result, nil
}
