package repository

import (
	"alcyxob/fitness-goals/internal/domain"
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mocks/mocks.go -package=mocks

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// GoalRepository defines the interface for interacting with goal data.
// Every lookup is scoped to the owner; a goal of another owner is reported as ErrNotFound.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	GetByID(ctx context.Context, ownerID, id string) (*domain.Goal, error)
	List(ctx context.Context, ownerID string) ([]domain.Goal, error)
	ListActiveAutoTrack(ctx context.Context, ownerID string) ([]domain.Goal, error)
	// Update matches on both goal.ID and goal.OwnerID.
	Update(ctx context.Context, goal *domain.Goal) error
	// Delete removes the goal together with all of its progress records.
	Delete(ctx context.Context, ownerID, id string) error
}

// ProgressIncrement describes one additive contribution to a goal period.
type ProgressIncrement struct {
	GoalID      string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Delta       float64
	Target      float64 // completion threshold evaluated against the new total
	UpdatedAt   time.Time
}

// ProgressRepository defines the interface for interacting with per-period goal progress.
type ProgressRepository interface {
	// Increment creates or updates the (GoalID, PeriodStart) record in one atomic step:
	// currentValue += Delta, isCompleted = currentValue >= Target.
	Increment(ctx context.Context, inc ProgressIncrement) (*domain.GoalProgress, error)
	GetForPeriod(ctx context.Context, goalID string, periodStart time.Time) (*domain.GoalProgress, error)
	// ListByGoal returns all records of a goal, newest period first.
	ListByGoal(ctx context.Context, goalID string) ([]domain.GoalProgress, error)
	// ListCompleted returns the completed records of a goal, newest period first.
	ListCompleted(ctx context.Context, goalID string) ([]domain.GoalProgress, error)
}
