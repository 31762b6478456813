package service

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/metrics"
	"alcyxob/fitness-goals/internal/repository"
	"alcyxob/fitness-goals/internal/repository/mocks"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// Wednesday.
var testNow = time.Date(2024, 3, 6, 12, 0, 0, 0, time.UTC)

const (
	testUser  = "user-1"
	otherUser = "user-2"
)

type goalServiceFixture struct {
	store   *memStore
	clock   *fixedClock
	metrics *metrics.Manager
	svc     GoalService
}

func newGoalServiceFixture() *goalServiceFixture {
	f := &goalServiceFixture{
		store:   newMemStore(),
		clock:   newFixedClock(testNow),
		metrics: metrics.NewTestManager(),
	}
	f.svc = NewGoalService(f.store, f.store, f.clock, &sequentialIDs{prefix: "goal"}, f.metrics)
	return f
}

func boolPtr(b bool) *bool { return &b }

func weeklyDistanceInput() GoalInput {
	return GoalInput{
		Name:              "Run 25 km",
		LinkedExerciseIDs: []string{"run"},
		Metric:            domain.MetricDistance,
		TargetValue:       25,
		TargetUnit:        "km",
		Frequency:         domain.FrequencyWeekly,
		AutoTrack:         true,
	}
}

func TestCreateGoal_Defaults(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	input := weeklyDistanceInput()
	input.Name = "  Run 25 km  "
	input.LinkedExerciseIDs = []string{"run", "", "run", "bike"}

	goal, err := f.svc.CreateGoal(ctx, testUser, input)
	require.NoError(t, err)
	assert.Equal(t, "goal-1", goal.ID)
	assert.Equal(t, "Run 25 km", goal.Name)
	assert.Equal(t, []string{"run", "bike"}, goal.LinkedExerciseIDs)
	assert.True(t, goal.IsActive)
	assert.True(t, goal.StartDate.Equal(testNow))
	assert.True(t, goal.CreatedAt.Equal(testNow))
	assert.Nil(t, goal.EndDate)

	stored, err := f.store.GetByID(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, *goal, *stored)
}

func TestCreateGoal_Validation(t *testing.T) {
	start := testNow
	before := testNow.Add(-time.Hour)

	tests := []struct {
		name   string
		modify func(in *GoalInput)
	}{
		{"empty name", func(in *GoalInput) { in.Name = "   " }},
		{"zero target", func(in *GoalInput) { in.TargetValue = 0 }},
		{"negative target", func(in *GoalInput) { in.TargetValue = -3 }},
		{"unknown metric", func(in *GoalInput) { in.Metric = "calories" }},
		{"unknown frequency", func(in *GoalInput) { in.Frequency = "hourly" }},
		{"end before start", func(in *GoalInput) {
			in.StartDate = &start
			in.EndDate = &before
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGoalServiceFixture()
			input := weeklyDistanceInput()
			tt.modify(&input)

			_, err := f.svc.CreateGoal(context.Background(), testUser, input)
			assert.ErrorIs(t, err, ErrInvalidArgument)

			goals, _ := f.store.List(context.Background(), testUser)
			assert.Empty(t, goals)
		})
	}
}

func TestUpdateGoalAndSetActive(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	goal, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
	require.NoError(t, err)

	f.clock.Set(testNow.Add(time.Hour))
	input := weeklyDistanceInput()
	input.TargetValue = 30
	input.Frequency = domain.FrequencyMonthly
	end := testNow.AddDate(0, 3, 0)
	input.EndDate = &end

	updated, err := f.svc.UpdateGoal(ctx, testUser, goal.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 30.0, updated.TargetValue)
	assert.Equal(t, domain.FrequencyMonthly, updated.Frequency)
	assert.True(t, updated.StartDate.Equal(testNow), "start date is kept when not supplied")
	assert.True(t, updated.UpdatedAt.Equal(testNow.Add(time.Hour)))
	require.NotNil(t, updated.EndDate)
	assert.True(t, updated.IsActive)

	input.TargetValue = 0
	_, err = f.svc.UpdateGoal(ctx, testUser, goal.ID, input)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = f.svc.UpdateGoal(ctx, testUser, "missing", weeklyDistanceInput())
	assert.ErrorIs(t, err, ErrGoalNotFound)

	paused, err := f.svc.SetActive(ctx, testUser, goal.ID, false)
	require.NoError(t, err)
	assert.False(t, paused.IsActive)

	resumed, err := f.svc.SetActive(ctx, testUser, goal.ID, true)
	require.NoError(t, err)
	assert.True(t, resumed.IsActive)

	input = weeklyDistanceInput()
	input.IsActive = boolPtr(false)
	updated, err = f.svc.UpdateGoal(ctx, testUser, goal.ID, input)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	_, err = f.svc.SetActive(ctx, testUser, "missing", true)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestAddProgress_AccumulatesWithinWeek(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	goal, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
	require.NoError(t, err)

	first, err := f.svc.AddProgress(ctx, testUser, goal.ID, 10, testNow)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, first.CurrentValue, 1e-9)
	assert.False(t, first.IsCompleted)

	second, err := f.svc.AddProgress(ctx, testUser, goal.ID, 16, testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.InDelta(t, 26.0, second.CurrentValue, 1e-9)
	assert.True(t, second.IsCompleted)

	wantStart, wantEnd := domain.PeriodBounds(domain.FrequencyWeekly, testNow)
	assert.True(t, second.PeriodStart.Equal(wantStart))
	assert.True(t, second.PeriodEnd.Equal(wantEnd))

	history, err := f.svc.ProgressHistory(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	assert.Equal(t, 2.0, testutil.ToFloat64(f.metrics.CounterProgressUpdates.WithLabelValues(metrics.SourceManual)))
}

func TestAddProgress_ZeroTimeUsesClock(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	goal, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
	require.NoError(t, err)

	f.clock.Set(testNow.AddDate(0, 0, 7))
	progress, err := f.svc.AddProgress(ctx, testUser, goal.ID, 5, time.Time{})
	require.NoError(t, err)

	wantStart, _ := domain.PeriodBounds(domain.FrequencyWeekly, testNow.AddDate(0, 0, 7))
	assert.True(t, progress.PeriodStart.Equal(wantStart))
	assert.True(t, progress.UpdatedAt.Equal(testNow.AddDate(0, 0, 7)))
}

func TestAddProgress_NonPositiveValueIsApplied(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	goal, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
	require.NoError(t, err)

	_, err = f.svc.AddProgress(ctx, testUser, goal.ID, 10, testNow)
	require.NoError(t, err)
	progress, err := f.svc.AddProgress(ctx, testUser, goal.ID, -4, testNow)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, progress.CurrentValue, 1e-9)
}

func TestAddProgress_ConcurrentCallsAreNotLost(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	input := weeklyDistanceInput()
	input.TargetValue = 40
	goal, err := f.svc.CreateGoal(ctx, testUser, input)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.AddProgress(ctx, testUser, goal.ID, 1, testNow)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	view, err := f.svc.GetGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, view.CurrentPeriodValue, 1e-9)
	assert.True(t, view.CurrentPeriodCompleted)
}

func TestAddProgress_MissingGoal(t *testing.T) {
	f := newGoalServiceFixture()

	_, err := f.svc.AddProgress(context.Background(), testUser, "missing", 1, testNow)
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestAddProgress_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	goalRepo := mocks.NewMockGoalRepository(ctrl)
	progressRepo := mocks.NewMockProgressRepository(ctrl)
	svc := NewGoalService(goalRepo, progressRepo, newFixedClock(testNow), &sequentialIDs{prefix: "goal"}, metrics.NewTestManager())

	dbErr := errors.New("connection reset")
	goal := &domain.Goal{ID: "g-1", OwnerID: testUser, Metric: domain.MetricReps, TargetValue: 10, Frequency: domain.FrequencyDaily, IsActive: true}
	goalRepo.EXPECT().GetByID(gomock.Any(), testUser, "g-1").Return(goal, nil)
	progressRepo.EXPECT().Increment(gomock.Any(), gomock.Any()).Return(nil, dbErr)

	_, err := svc.AddProgress(context.Background(), testUser, "g-1", 5, testNow)
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "increment progress", storeErr.Op)
	assert.ErrorIs(t, err, dbErr)
}

// completeWeeks marks count consecutive weeks as completed, starting at the week containing from
// and walking backwards.
func completeWeeks(t *testing.T, svc GoalService, goalID string, from time.Time, count int, value float64) time.Time {
	t.Helper()
	start, _ := domain.PeriodBounds(domain.FrequencyWeekly, from)
	for i := 0; i < count; i++ {
		_, err := svc.AddProgress(context.Background(), testUser, goalID, value, start.Add(time.Hour))
		require.NoError(t, err)
		start, _ = domain.PreviousPeriod(domain.FrequencyWeekly, start)
	}
	return start
}

func TestCalculateStreak(t *testing.T) {
	ctx := context.Background()

	t.Run("no completed periods", func(t *testing.T) {
		f := newGoalServiceFixture()
		goal, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
		require.NoError(t, err)
		_, err = f.svc.AddProgress(ctx, testUser, goal.ID, 5, testNow)
		require.NoError(t, err)

		streak, err := f.svc.CalculateStreak(ctx, testUser, goal.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, streak)
	})

	t.Run("three weeks then an incomplete week", func(t *testing.T) {
		f := newGoalServiceFixture()
		goal, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
		require.NoError(t, err)

		next := completeWeeks(t, f.svc, goal.ID, testNow, 3, 30)
		_, err = f.svc.AddProgress(ctx, testUser, goal.ID, 5, next.Add(time.Hour))
		require.NoError(t, err)
		// A completed week before the gap does not extend the streak.
		before, _ := domain.PreviousPeriod(domain.FrequencyWeekly, next)
		_, err = f.svc.AddProgress(ctx, testUser, goal.ID, 30, before.Add(time.Hour))
		require.NoError(t, err)

		streak, err := f.svc.CalculateStreak(ctx, testUser, goal.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, streak)
	})

	t.Run("three weeks then a missing week", func(t *testing.T) {
		f := newGoalServiceFixture()
		goal, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
		require.NoError(t, err)

		completeWeeks(t, f.svc, goal.ID, testNow, 3, 25)

		streak, err := f.svc.CalculateStreak(ctx, testUser, goal.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, streak)
	})

	t.Run("missing goal", func(t *testing.T) {
		f := newGoalServiceFixture()
		_, err := f.svc.CalculateStreak(ctx, testUser, "missing")
		assert.ErrorIs(t, err, ErrGoalNotFound)
	})
}

func TestGetGoal_ReadModel(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	goal, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
	require.NoError(t, err)

	view, err := f.svc.GetGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, goal.ID, view.ID)
	assert.Zero(t, view.CurrentPeriodValue)
	assert.False(t, view.CurrentPeriodCompleted)
	assert.Equal(t, domain.StatusActive, view.Status)
	assert.Equal(t, 0, view.StreakCount)

	_, err = f.svc.AddProgress(ctx, testUser, goal.ID, 10, testNow)
	require.NoError(t, err)
	view, err = f.svc.GetGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, view.ProgressPercent, 1e-9)
	assert.Equal(t, domain.StatusActive, view.Status)

	_, err = f.svc.AddProgress(ctx, testUser, goal.ID, 20, testNow)
	require.NoError(t, err)
	view, err = f.svc.GetGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, view.Status)
	assert.Equal(t, 100.0, view.ProgressPercent)
	assert.Equal(t, 1, view.StreakCount)

	// Paused wins over a completed current period.
	_, err = f.svc.SetActive(ctx, testUser, goal.ID, false)
	require.NoError(t, err)
	view, err = f.svc.GetGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaused, view.Status)

	// A new week starts empty.
	_, err = f.svc.SetActive(ctx, testUser, goal.ID, true)
	require.NoError(t, err)
	f.clock.Set(testNow.AddDate(0, 0, 7))
	view, err = f.svc.GetGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.Zero(t, view.CurrentPeriodValue)
	assert.Equal(t, domain.StatusActive, view.Status)

	_, err = f.svc.GetGoal(ctx, testUser, "missing")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestGetGoal_Expired(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	input := weeklyDistanceInput()
	end := testNow.AddDate(0, 0, 1)
	input.EndDate = &end
	goal, err := f.svc.CreateGoal(ctx, testUser, input)
	require.NoError(t, err)

	f.clock.Set(testNow.AddDate(0, 0, 2))
	view, err := f.svc.GetGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusExpired, view.Status)
}

func TestListGoals(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	first, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
	require.NoError(t, err)
	f.clock.Set(testNow.Add(time.Minute))
	second, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
	require.NoError(t, err)
	_, err = f.svc.AddProgress(ctx, testUser, first.ID, 12, time.Time{})
	require.NoError(t, err)

	views, err := f.svc.ListGoals(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].ID)
	assert.Equal(t, first.ID, views[1].ID)
	assert.InDelta(t, 12.0, views[1].CurrentPeriodValue, 1e-9)
}

func TestListGoals_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	goalRepo := mocks.NewMockGoalRepository(ctrl)
	progressRepo := mocks.NewMockProgressRepository(ctrl)
	svc := NewGoalService(goalRepo, progressRepo, newFixedClock(testNow), &sequentialIDs{prefix: "goal"}, metrics.NewTestManager())

	goalRepo.EXPECT().List(gomock.Any(), testUser).Return(nil, errors.New("timeout"))

	_, err := svc.ListGoals(context.Background(), testUser)
	var storeErr *StoreError
	assert.ErrorAs(t, err, &storeErr)
}

func TestCloneGoal(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	input := weeklyDistanceInput()
	end := testNow.AddDate(0, 1, 0)
	input.EndDate = &end
	source, err := f.svc.CreateGoal(ctx, testUser, input)
	require.NoError(t, err)
	completeWeeks(t, f.svc, source.ID, testNow, 2, 30)
	_, err = f.svc.SetActive(ctx, testUser, source.ID, false)
	require.NoError(t, err)

	cloneTime := testNow.AddDate(0, 0, 10)
	f.clock.Set(cloneTime)
	clone, err := f.svc.CloneGoal(ctx, testUser, source.ID)
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, clone.ID)
	assert.Equal(t, source.Name, clone.Name)
	assert.Equal(t, source.Metric, clone.Metric)
	assert.Equal(t, source.TargetValue, clone.TargetValue)
	assert.Equal(t, source.LinkedExerciseIDs, clone.LinkedExerciseIDs)
	assert.True(t, clone.StartDate.Equal(cloneTime))
	assert.Nil(t, clone.EndDate)
	assert.True(t, clone.IsActive)

	history, err := f.svc.ProgressHistory(ctx, testUser, clone.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	sourceHistory, err := f.svc.ProgressHistory(ctx, testUser, source.ID)
	require.NoError(t, err)
	assert.Len(t, sourceHistory, 2)

	_, err = f.svc.CloneGoal(ctx, testUser, "missing")
	assert.ErrorIs(t, err, ErrGoalNotFound)
}

func TestDeleteGoal_CascadesProgress(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	goal, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
	require.NoError(t, err)
	_, err = f.svc.AddProgress(ctx, testUser, goal.ID, 5, testNow)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteGoal(ctx, testUser, goal.ID))

	_, err = f.svc.GetGoal(ctx, testUser, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	records, err := f.store.ListByGoal(ctx, goal.ID)
	require.NoError(t, err)
	assert.Empty(t, records)

	assert.ErrorIs(t, f.svc.DeleteGoal(ctx, testUser, goal.ID), ErrGoalNotFound)
}

func TestDeleteGoal_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	goalRepo := mocks.NewMockGoalRepository(ctrl)
	svc := NewGoalService(goalRepo, mocks.NewMockProgressRepository(ctrl), newFixedClock(testNow), &sequentialIDs{prefix: "goal"}, metrics.NewTestManager())

	goalRepo.EXPECT().Delete(gomock.Any(), testUser, "g-1").Return(repository.ErrDeleteFailed)

	err := svc.DeleteGoal(context.Background(), testUser, "g-1")
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, repository.ErrDeleteFailed)
}

func TestGoalOwnership(t *testing.T) {
	f := newGoalServiceFixture()
	ctx := context.Background()

	goal, err := f.svc.CreateGoal(ctx, testUser, weeklyDistanceInput())
	require.NoError(t, err)
	assert.Equal(t, testUser, goal.OwnerID)
	_, err = f.svc.AddProgress(ctx, testUser, goal.ID, 10, testNow)
	require.NoError(t, err)

	_, err = f.svc.GetGoal(ctx, otherUser, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	_, err = f.svc.UpdateGoal(ctx, otherUser, goal.ID, weeklyDistanceInput())
	assert.ErrorIs(t, err, ErrGoalNotFound)
	_, err = f.svc.SetActive(ctx, otherUser, goal.ID, false)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	_, err = f.svc.CloneGoal(ctx, otherUser, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	_, err = f.svc.AddProgress(ctx, otherUser, goal.ID, 10, testNow)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	_, err = f.svc.ProgressHistory(ctx, otherUser, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	_, err = f.svc.CalculateStreak(ctx, otherUser, goal.ID)
	assert.ErrorIs(t, err, ErrGoalNotFound)
	assert.ErrorIs(t, f.svc.DeleteGoal(ctx, otherUser, goal.ID), ErrGoalNotFound)

	views, err := f.svc.ListGoals(ctx, otherUser)
	require.NoError(t, err)
	assert.Empty(t, views)

	view, err := f.svc.GetGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, view.CurrentPeriodValue, 1e-9)
	assert.True(t, view.IsActive)

	clone, err := f.svc.CloneGoal(ctx, testUser, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, testUser, clone.OwnerID)
}

func TestCreateGoal_RequiresOwner(t *testing.T) {
	f := newGoalServiceFixture()

	_, err := f.svc.CreateGoal(context.Background(), "", weeklyDistanceInput())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
