package service

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/metrics"
	"alcyxob/fitness-goals/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks/goal_service.go -package=mocks

// GoalInput carries the user-editable fields of a goal.
type GoalInput struct {
	Name              string
	Description       string
	LinkedExerciseIDs []string
	Metric            domain.Metric
	TargetValue       float64
	TargetUnit        string
	Frequency         domain.Frequency
	StartDate         *time.Time // nil means now on create, unchanged on update
	EndDate           *time.Time
	IsActive          *bool // nil means true on create, unchanged on update
	AutoTrack         bool
}

// --- Service Interface ---
// Every operation acts on the goals of ownerID only; another user's goal is ErrGoalNotFound.
type GoalService interface {
	CreateGoal(ctx context.Context, ownerID string, input GoalInput) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, ownerID, id string, input GoalInput) (*domain.Goal, error)
	SetActive(ctx context.Context, ownerID, id string, active bool) (*domain.Goal, error)
	CloneGoal(ctx context.Context, ownerID, sourceID string) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, ownerID, id string) error

	GetGoal(ctx context.Context, ownerID, id string) (*domain.GoalWithProgress, error)
	ListGoals(ctx context.Context, ownerID string) ([]domain.GoalWithProgress, error)
	ProgressHistory(ctx context.Context, ownerID, id string) ([]domain.GoalProgress, error)

	// AddProgress adds value to the period of the goal containing at. A zero at means now.
	AddProgress(ctx context.Context, ownerID, goalID string, value float64, at time.Time) (*domain.GoalProgress, error)
	CalculateStreak(ctx context.Context, ownerID, goalID string) (int, error)
}

// --- Service Implementation ---

// progressAccumulator applies contributions to the per-period progress rows.
// It is shared by manual entry and workout processing.
type progressAccumulator struct {
	progressRepo repository.ProgressRepository
	clock        Clock
}

func (a *progressAccumulator) add(ctx context.Context, goal *domain.Goal, value float64, at time.Time) (*domain.GoalProgress, error) {
	start, end := domain.PeriodBounds(goal.Frequency, at)
	progress, err := a.progressRepo.Increment(ctx, repository.ProgressIncrement{
		GoalID:      goal.ID,
		PeriodStart: start,
		PeriodEnd:   end,
		Delta:       value,
		Target:      goal.TargetValue,
		UpdatedAt:   a.clock.Now(),
	})
	if err != nil {
		return nil, fromRepository("increment progress", err)
	}
	return progress, nil
}

// goalService implements the GoalService interface.
type goalService struct {
	goalRepo     repository.GoalRepository
	progressRepo repository.ProgressRepository
	accumulator  *progressAccumulator
	clock        Clock
	ids          IDGenerator
	metrics      *metrics.Manager
}

// NewGoalService creates a new instance of goalService.
func NewGoalService(
	goalRepo repository.GoalRepository,
	progressRepo repository.ProgressRepository,
	clock Clock,
	ids IDGenerator,
	metricsManager *metrics.Manager,
) GoalService {
	return &goalService{
		goalRepo:     goalRepo,
		progressRepo: progressRepo,
		accumulator:  &progressAccumulator{progressRepo: progressRepo, clock: clock},
		clock:        clock,
		ids:          ids,
		metrics:      metricsManager,
	}
}

func validateGoal(goal *domain.Goal) error {
	if goal.OwnerID == "" {
		return fmt.Errorf("%w: owner is required", ErrInvalidArgument)
	}
	if goal.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidArgument)
	}
	if !goal.Metric.IsValid() {
		return fmt.Errorf("%w: unknown metric %q", ErrInvalidArgument, goal.Metric)
	}
	if !goal.Frequency.IsValid() {
		return fmt.Errorf("%w: unknown frequency %q", ErrInvalidArgument, goal.Frequency)
	}
	if goal.TargetValue <= 0 {
		return fmt.Errorf("%w: target value must be positive", ErrInvalidArgument)
	}
	if goal.EndDate != nil && goal.EndDate.Before(goal.StartDate) {
		return fmt.Errorf("%w: end date is before start date", ErrInvalidArgument)
	}
	return nil
}

// applyInput copies the editable fields onto goal.
func applyInput(goal *domain.Goal, input GoalInput) {
	goal.Name = strings.TrimSpace(input.Name)
	goal.Description = input.Description
	goal.LinkedExerciseIDs = normalizeExerciseIDs(input.LinkedExerciseIDs)
	goal.Metric = input.Metric
	goal.TargetValue = input.TargetValue
	goal.TargetUnit = input.TargetUnit
	goal.Frequency = input.Frequency
	goal.AutoTrack = input.AutoTrack
	if input.StartDate != nil {
		goal.StartDate = input.StartDate.UTC()
	}
	goal.EndDate = nil
	if input.EndDate != nil {
		end := input.EndDate.UTC()
		goal.EndDate = &end
	}
	if input.IsActive != nil {
		goal.IsActive = *input.IsActive
	}
}

// normalizeExerciseIDs drops blanks and duplicates, keeping the first occurrence order.
func normalizeExerciseIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// CreateGoal validates the input and stores a new goal.
func (s *goalService) CreateGoal(ctx context.Context, ownerID string, input GoalInput) (*domain.Goal, error) {
	now := s.clock.Now()
	goal := &domain.Goal{
		ID:        s.ids.NewID(),
		OwnerID:   ownerID,
		StartDate: now,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyInput(goal, input)
	if err := validateGoal(goal); err != nil {
		return nil, err
	}

	if err := s.goalRepo.Create(ctx, goal); err != nil {
		return nil, &StoreError{Op: "create goal", Err: err}
	}
	log.WithFields(log.Fields{
		"goal_id":   goal.ID,
		"owner_id":  ownerID,
		"metric":    goal.Metric,
		"frequency": goal.Frequency,
	}).Debug("goal created")
	return goal, nil
}

// UpdateGoal replaces the editable fields of an existing goal.
func (s *goalService) UpdateGoal(ctx context.Context, ownerID, id string, input GoalInput) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fromRepository("get goal", err)
	}

	applyInput(goal, input)
	if err := validateGoal(goal); err != nil {
		return nil, err
	}
	goal.UpdatedAt = s.clock.Now()

	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, fromRepository("update goal", err)
	}
	return goal, nil
}

// SetActive pauses or resumes a goal.
func (s *goalService) SetActive(ctx context.Context, ownerID, id string, active bool) (*domain.Goal, error) {
	goal, err := s.goalRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fromRepository("get goal", err)
	}
	if goal.IsActive == active {
		return goal, nil
	}

	goal.IsActive = active
	goal.UpdatedAt = s.clock.Now()
	if err := s.goalRepo.Update(ctx, goal); err != nil {
		return nil, fromRepository("update goal", err)
	}
	return goal, nil
}

// CloneGoal copies the definition of a goal into a new active goal starting now.
// The end date and the progress history are not copied.
func (s *goalService) CloneGoal(ctx context.Context, ownerID, sourceID string) (*domain.Goal, error) {
	source, err := s.goalRepo.GetByID(ctx, ownerID, sourceID)
	if err != nil {
		return nil, fromRepository("get goal", err)
	}

	now := s.clock.Now()
	clone := *source
	clone.ID = s.ids.NewID()
	clone.LinkedExerciseIDs = append([]string{}, source.LinkedExerciseIDs...)
	clone.StartDate = now
	clone.EndDate = nil
	clone.IsActive = true
	clone.CreatedAt = now
	clone.UpdatedAt = now

	if err := s.goalRepo.Create(ctx, &clone); err != nil {
		return nil, &StoreError{Op: "create goal", Err: err}
	}
	log.WithFields(log.Fields{"goal_id": clone.ID, "source_id": sourceID}).Debug("goal cloned")
	return &clone, nil
}

// DeleteGoal removes a goal and its progress history.
func (s *goalService) DeleteGoal(ctx context.Context, ownerID, id string) error {
	return fromRepository("delete goal", s.goalRepo.Delete(ctx, ownerID, id))
}

// GetGoal returns the goal joined with its current period progress.
func (s *goalService) GetGoal(ctx context.Context, ownerID, id string) (*domain.GoalWithProgress, error) {
	goal, err := s.goalRepo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, fromRepository("get goal", err)
	}
	return s.withProgress(ctx, *goal, s.clock.Now())
}

// ListGoals returns the read model of every goal of the owner, newest first.
func (s *goalService) ListGoals(ctx context.Context, ownerID string) ([]domain.GoalWithProgress, error) {
	goals, err := s.goalRepo.List(ctx, ownerID)
	if err != nil {
		return nil, &StoreError{Op: "list goals", Err: err}
	}

	now := s.clock.Now()
	result := make([]domain.GoalWithProgress, 0, len(goals))
	for _, goal := range goals {
		view, err := s.withProgress(ctx, goal, now)
		if err != nil {
			return nil, err
		}
		result = append(result, *view)
	}
	return result, nil
}

func (s *goalService) withProgress(ctx context.Context, goal domain.Goal, now time.Time) (*domain.GoalWithProgress, error) {
	start, end := domain.PeriodBounds(goal.Frequency, now)
	view := &domain.GoalWithProgress{
		Goal:        goal,
		PeriodStart: start,
		PeriodEnd:   end,
	}

	current, err := s.progressRepo.GetForPeriod(ctx, goal.ID, start)
	switch {
	case err == nil:
		view.CurrentPeriodValue = current.CurrentValue
		view.CurrentPeriodCompleted = current.IsCompleted
	case !errors.Is(err, repository.ErrNotFound):
		return nil, &StoreError{Op: "get progress", Err: err}
	}

	streak, err := s.streak(ctx, goal.ID)
	if err != nil {
		return nil, err
	}

	view.ProgressPercent = domain.ProgressPercent(view.CurrentPeriodValue, goal.TargetValue)
	view.Status = domain.DeriveStatus(goal.IsActive, goal.EndDate, view.CurrentPeriodCompleted, now)
	view.StreakCount = streak
	return view, nil
}

// ProgressHistory returns every progress record of a goal, newest period first.
func (s *goalService) ProgressHistory(ctx context.Context, ownerID, id string) ([]domain.GoalProgress, error) {
	if _, err := s.goalRepo.GetByID(ctx, ownerID, id); err != nil {
		return nil, fromRepository("get goal", err)
	}

	records, err := s.progressRepo.ListByGoal(ctx, id)
	if err != nil {
		return nil, &StoreError{Op: "list progress", Err: err}
	}
	return records, nil
}

// AddProgress records a manual contribution.
func (s *goalService) AddProgress(ctx context.Context, ownerID, goalID string, value float64, at time.Time) (*domain.GoalProgress, error) {
	goal, err := s.goalRepo.GetByID(ctx, ownerID, goalID)
	if err != nil {
		return nil, fromRepository("get goal", err)
	}
	if at.IsZero() {
		at = s.clock.Now()
	}

	progress, err := s.accumulator.add(ctx, goal, value, at)
	if err != nil {
		return nil, err
	}
	s.metrics.CounterProgressUpdates.WithLabelValues(metrics.SourceManual).Inc()
	return progress, nil
}

// CalculateStreak returns the number of consecutive completed periods ending at the latest one.
func (s *goalService) CalculateStreak(ctx context.Context, ownerID, goalID string) (int, error) {
	if _, err := s.goalRepo.GetByID(ctx, ownerID, goalID); err != nil {
		return 0, fromRepository("get goal", err)
	}
	return s.streak(ctx, goalID)
}

func (s *goalService) streak(ctx context.Context, goalID string) (int, error) {
	completed, err := s.progressRepo.ListCompleted(ctx, goalID)
	if err != nil {
		return 0, &StoreError{Op: "list completed progress", Err: err}
	}
	return domain.CountStreak(completed), nil
}
