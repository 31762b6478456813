package sqlstore

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/repository"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

type progressRow struct {
	GoalID       string  `db:"goal_id"`
	PeriodStart  int64   `db:"period_start"`
	PeriodEnd    int64   `db:"period_end"`
	CurrentValue float64 `db:"current_value"`
	IsCompleted  bool    `db:"is_completed"`
	UpdatedAt    int64   `db:"updated_at"`
}

const progressColumns = `goal_id, period_start, period_end, current_value, is_completed, updated_at`

func (row progressRow) toDomain() domain.GoalProgress {
	return domain.GoalProgress{
		GoalID:       row.GoalID,
		PeriodStart:  fromMillis(row.PeriodStart),
		PeriodEnd:    fromMillis(row.PeriodEnd),
		CurrentValue: row.CurrentValue,
		IsCompleted:  row.IsCompleted,
		UpdatedAt:    fromMillis(row.UpdatedAt),
	}
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) repository.ProgressRepository {
	return &progressRepository{db: db}
}

// Increment is a single INSERT .. ON CONFLICT statement, so concurrent contributions to the
// same period are applied one after another by the database and none is lost.
func (r *progressRepository) Increment(ctx context.Context, inc repository.ProgressIncrement) (*domain.GoalProgress, error) {
	if inc.GoalID == "" {
		return nil, errors.New("goal ID is required for progress")
	}

	query := `INSERT INTO goal_progress (` + progressColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (goal_id, period_start) DO UPDATE
	          SET current_value = goal_progress.current_value + excluded.current_value,
	              is_completed = goal_progress.current_value + excluded.current_value >= $7,
	              period_end = excluded.period_end,
	              updated_at = excluded.updated_at
	          RETURNING ` + progressColumns

	var row progressRow
	err := r.db.QueryRowxContext(ctx, query,
		inc.GoalID,
		toMillis(inc.PeriodStart),
		toMillis(inc.PeriodEnd),
		inc.Delta,
		inc.Delta >= inc.Target,
		toMillis(inc.UpdatedAt),
		inc.Target,
	).StructScan(&row)
	if err != nil {
		return nil, err
	}

	progress := row.toDomain()
	return &progress, nil
}

func (r *progressRepository) GetForPeriod(ctx context.Context, goalID string, periodStart time.Time) (*domain.GoalProgress, error) {
	var row progressRow
	query := `SELECT ` + progressColumns + ` FROM goal_progress WHERE goal_id = $1 AND period_start = $2`

	err := r.db.GetContext(ctx, &row, query, goalID, toMillis(periodStart))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	progress := row.toDomain()
	return &progress, nil
}

func (r *progressRepository) ListByGoal(ctx context.Context, goalID string) ([]domain.GoalProgress, error) {
	return r.selectProgress(ctx, `SELECT `+progressColumns+` FROM goal_progress
		WHERE goal_id = $1 ORDER BY period_start DESC`, goalID)
}

func (r *progressRepository) ListCompleted(ctx context.Context, goalID string) ([]domain.GoalProgress, error) {
	return r.selectProgress(ctx, `SELECT `+progressColumns+` FROM goal_progress
		WHERE goal_id = $1 AND is_completed = $2 ORDER BY period_start DESC`, goalID, true)
}

func (r *progressRepository) selectProgress(ctx context.Context, query string, args ...any) ([]domain.GoalProgress, error) {
	var rows []progressRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	records := make([]domain.GoalProgress, len(rows))
	for i, row := range rows {
		records[i] = row.toDomain()
	}
	return records, nil
}
