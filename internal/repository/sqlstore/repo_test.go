package sqlstore

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/repository"
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBSetup(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "goals.db")
	db, err := Open(DriverSQLite, path+"?_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = Close(db)
	})

	require.NoError(t, RunMigrations(db.DB, DriverSQLite))
	return db
}

const testOwner = "user-1"

func newTestGoal(name string, createdAt time.Time) *domain.Goal {
	return &domain.Goal{
		ID:                uuid.NewString(),
		OwnerID:           testOwner,
		Name:              name,
		LinkedExerciseIDs: []string{"squat", "lunge"},
		Metric:            domain.MetricReps,
		TargetValue:       100,
		TargetUnit:        "reps",
		Frequency:         domain.FrequencyWeekly,
		StartDate:         createdAt,
		IsActive:          true,
		AutoTrack:         true,
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

func TestGoalRepository_CRUD(t *testing.T) {
	db := testDBSetup(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 6, 10, 30, 0, 0, time.UTC)
	goal := newTestGoal("Leg day", now)
	end := now.AddDate(0, 2, 0)
	goal.EndDate = &end
	goal.Description = "Squats and lunges"
	require.NoError(t, repo.Create(ctx, goal))

	got, err := repo.GetByID(ctx, testOwner, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, testOwner, got.OwnerID)
	assert.Equal(t, goal.Name, got.Name)
	assert.Equal(t, goal.Description, got.Description)
	assert.Equal(t, []string{"squat", "lunge"}, got.LinkedExerciseIDs)
	assert.Equal(t, domain.MetricReps, got.Metric)
	assert.Equal(t, domain.FrequencyWeekly, got.Frequency)
	assert.True(t, got.StartDate.Equal(now))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(end))
	assert.True(t, got.IsActive)
	assert.True(t, got.AutoTrack)

	got.Name = "Leg day v2"
	got.IsActive = false
	got.EndDate = nil
	got.LinkedExerciseIDs = nil
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, testOwner, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Leg day v2", updated.Name)
	assert.False(t, updated.IsActive)
	assert.Nil(t, updated.EndDate)
	assert.Empty(t, updated.LinkedExerciseIDs)

	_, err = repo.GetByID(ctx, testOwner, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	missing := newTestGoal("ghost", now)
	assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, testOwner, missing.ID), repository.ErrNotFound)
}

func TestGoalRepository_ListOrderAndAutoTrackFilter(t *testing.T) {
	db := testDBSetup(t)
	repo := NewGoalRepository(db)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	older := newTestGoal("older", base)
	newer := newTestGoal("newer", base.Add(time.Hour))
	paused := newTestGoal("paused", base.Add(2*time.Hour))
	paused.IsActive = false
	manual := newTestGoal("manual", base.Add(3*time.Hour))
	manual.AutoTrack = false

	for _, g := range []*domain.Goal{older, newer, paused, manual} {
		require.NoError(t, repo.Create(ctx, g))
	}

	all, err := repo.List(ctx, testOwner)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "manual", all[0].Name)
	assert.Equal(t, "older", all[3].Name)

	tracked, err := repo.ListActiveAutoTrack(ctx, testOwner)
	require.NoError(t, err)
	require.Len(t, tracked, 2)
	assert.Equal(t, "newer", tracked[0].Name)
	assert.Equal(t, "older", tracked[1].Name)
}

func TestProgressRepository_Increment(t *testing.T) {
	db := testDBSetup(t)
	goals := NewGoalRepository(db)
	progress := NewProgressRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	goal := newTestGoal("reps", now)
	require.NoError(t, goals.Create(ctx, goal))

	start, end := domain.PeriodBounds(goal.Frequency, now)
	inc := repository.ProgressIncrement{
		GoalID:      goal.ID,
		PeriodStart: start,
		PeriodEnd:   end,
		Delta:       60,
		Target:      100,
		UpdatedAt:   now,
	}

	first, err := progress.Increment(ctx, inc)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, first.CurrentValue, 1e-9)
	assert.False(t, first.IsCompleted)
	assert.True(t, first.PeriodStart.Equal(start))
	assert.True(t, first.PeriodEnd.Equal(end))

	inc.Delta = 40
	second, err := progress.Increment(ctx, inc)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, second.CurrentValue, 1e-9)
	assert.True(t, second.IsCompleted)

	// A single contribution that reaches the target on insert.
	nextStart, nextEnd := domain.NextPeriod(goal.Frequency, start)
	big, err := progress.Increment(ctx, repository.ProgressIncrement{
		GoalID: goal.ID, PeriodStart: nextStart, PeriodEnd: nextEnd, Delta: 150, Target: 100, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.True(t, big.IsCompleted)

	got, err := progress.GetForPeriod(ctx, goal.ID, start)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, got.CurrentValue, 1e-9)

	_, err = progress.GetForPeriod(ctx, goal.ID, start.Add(-time.Hour))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	records, err := progress.ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].PeriodStart.Equal(nextStart))
	assert.True(t, records[1].PeriodStart.Equal(start))
}

func TestProgressRepository_ConcurrentIncrements(t *testing.T) {
	db := testDBSetup(t)
	goals := NewGoalRepository(db)
	progress := NewProgressRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	goal := newTestGoal("sessions", now)
	goal.Metric = domain.MetricSessions
	goal.TargetValue = 30
	require.NoError(t, goals.Create(ctx, goal))

	start, end := domain.PeriodBounds(goal.Frequency, now)
	inc := repository.ProgressIncrement{GoalID: goal.ID, PeriodStart: start, PeriodEnd: end, Delta: 1, Target: 30, UpdatedAt: now}

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := progress.Increment(ctx, inc)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := progress.GetForPeriod(ctx, goal.ID, start)
	require.NoError(t, err)
	assert.InDelta(t, 25.0, got.CurrentValue, 1e-9)
	assert.False(t, got.IsCompleted)
}

func TestProgressRepository_ListCompletedAndCascadeDelete(t *testing.T) {
	db := testDBSetup(t)
	goals := NewGoalRepository(db)
	progress := NewProgressRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	goal := newTestGoal("weekly", now)
	require.NoError(t, goals.Create(ctx, goal))

	start, end := domain.PeriodBounds(goal.Frequency, now)
	deltas := []float64{100, 20, 120} // current week, previous, two weeks back
	for _, delta := range deltas {
		_, err := progress.Increment(ctx, repository.ProgressIncrement{
			GoalID: goal.ID, PeriodStart: start, PeriodEnd: end, Delta: delta, Target: goal.TargetValue, UpdatedAt: now,
		})
		require.NoError(t, err)
		start, end = domain.PreviousPeriod(goal.Frequency, start)
	}

	completed, err := progress.ListCompleted(ctx, goal.ID)
	require.NoError(t, err)
	require.Len(t, completed, 2)
	assert.True(t, completed[0].PeriodStart.After(completed[1].PeriodStart))
	assert.Equal(t, 1, domain.CountStreak(completed))

	require.NoError(t, goals.Delete(ctx, testOwner, goal.ID))
	records, err := progress.ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestMigrateDown(t *testing.T) {
	db := testDBSetup(t)
	require.NoError(t, MigrateDown(db.DB, DriverSQLite))

	_, err := NewGoalRepository(db).List(context.Background(), testOwner)
	assert.Error(t, err)
}

func TestGoalRepository_OwnerIsolation(t *testing.T) {
	db := testDBSetup(t)
	repo := NewGoalRepository(db)
	progress := NewProgressRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	alice := newTestGoal("alice sessions", now)
	bob := newTestGoal("bob sessions", now.Add(time.Minute))
	bob.OwnerID = "user-2"
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	start, end := domain.PeriodBounds(alice.Frequency, now)
	_, err := progress.Increment(ctx, repository.ProgressIncrement{
		GoalID: alice.ID, PeriodStart: start, PeriodEnd: end, Delta: 5, Target: alice.TargetValue, UpdatedAt: now,
	})
	require.NoError(t, err)

	_, err = repo.GetByID(ctx, "user-2", alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	listed, err := repo.List(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, bob.ID, listed[0].ID)

	tracked, err := repo.ListActiveAutoTrack(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, tracked, 1)
	assert.Equal(t, bob.ID, tracked[0].ID)

	hijacked := *alice
	hijacked.OwnerID = "user-2"
	hijacked.Name = "renamed"
	assert.ErrorIs(t, repo.Update(ctx, &hijacked), repository.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "user-2", alice.ID), repository.ErrNotFound)
	kept, err := repo.GetByID(ctx, testOwner, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice sessions", kept.Name)
	records, err := progress.ListByGoal(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestProgressRepository_IncrementRequiresExistingGoal(t *testing.T) {
	db := testDBSetup(t)
	progress := NewProgressRepository(db)
	ctx := context.Background()

	now := time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)
	start, end := domain.PeriodBounds(domain.FrequencyWeekly, now)
	_, err := progress.Increment(ctx, repository.ProgressIncrement{
		GoalID: "no-such-goal", PeriodStart: start, PeriodEnd: end, Delta: 1, Target: 3, UpdatedAt: now,
	})
	assert.Error(t, err)

	records, err := progress.ListByGoal(ctx, "no-such-goal")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "goals.db?_pragma=foreign_keys(1)", sqliteDSN("goals.db"))
	assert.Equal(t, "goals.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)",
		sqliteDSN("goals.db?_pragma=busy_timeout(5000)"))
	assert.Equal(t, "goals.db?_pragma=foreign_keys(0)", sqliteDSN("goals.db?_pragma=foreign_keys(0)"))
}
