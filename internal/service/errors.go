package service

import (
	"alcyxob/fitness-goals/internal/repository"
	"errors"
	"fmt"
)

// --- Error Definitions ---
var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidArgument = errors.New("invalid argument")
)

// StoreError wraps a persistence failure that is not a missing goal.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// fromRepository maps repository errors onto the service taxonomy.
func fromRepository(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalNotFound
	}
	return &StoreError{Op: op, Err: err}
}
