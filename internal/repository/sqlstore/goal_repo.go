package sqlstore

import (
	"alcyxob/fitness-goals/internal/domain"
	"alcyxob/fitness-goals/internal/repository"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// goalRow is the goals table layout. Times are stored as unix milliseconds (UTC).
type goalRow struct {
	ID                string        `db:"id"`
	OwnerID           string        `db:"owner_id"`
	Name              string        `db:"name"`
	Description       string        `db:"description"`
	LinkedExerciseIDs string        `db:"linked_exercise_ids"` // JSON array
	Metric            string        `db:"metric"`
	TargetValue       float64       `db:"target_value"`
	TargetUnit        string        `db:"target_unit"`
	Frequency         string        `db:"frequency"`
	StartDate         int64         `db:"start_date"`
	EndDate           sql.NullInt64 `db:"end_date"`
	IsActive          bool          `db:"is_active"`
	AutoTrack         bool          `db:"auto_track"`
	CreatedAt         int64         `db:"created_at"`
	UpdatedAt         int64         `db:"updated_at"`
}

const goalColumns = `id, owner_id, name, description, linked_exercise_ids, metric, target_value, target_unit,
	frequency, start_date, end_date, is_active, auto_track, created_at, updated_at`

func newGoalRow(goal *domain.Goal) (*goalRow, error) {
	linked := goal.LinkedExerciseIDs
	if linked == nil {
		linked = []string{}
	}
	linkedJSON, err := json.Marshal(linked)
	if err != nil {
		return nil, fmt.Errorf("marshal linked exercises: %w", err)
	}

	row := &goalRow{
		ID:                goal.ID,
		OwnerID:           goal.OwnerID,
		Name:              goal.Name,
		Description:       goal.Description,
		LinkedExerciseIDs: string(linkedJSON),
		Metric:            string(goal.Metric),
		TargetValue:       goal.TargetValue,
		TargetUnit:        goal.TargetUnit,
		Frequency:         string(goal.Frequency),
		StartDate:         toMillis(goal.StartDate),
		IsActive:          goal.IsActive,
		AutoTrack:         goal.AutoTrack,
		CreatedAt:         toMillis(goal.CreatedAt),
		UpdatedAt:         toMillis(goal.UpdatedAt),
	}
	if goal.EndDate != nil {
		row.EndDate = sql.NullInt64{Int64: toMillis(*goal.EndDate), Valid: true}
	}
	return row, nil
}

func (row *goalRow) toDomain() (domain.Goal, error) {
	linked := []string{}
	if row.LinkedExerciseIDs != "" {
		if err := json.Unmarshal([]byte(row.LinkedExerciseIDs), &linked); err != nil {
			return domain.Goal{}, fmt.Errorf("unmarshal linked exercises of goal %s: %w", row.ID, err)
		}
	}

	goal := domain.Goal{
		ID:                row.ID,
		OwnerID:           row.OwnerID,
		Name:              row.Name,
		Description:       row.Description,
		LinkedExerciseIDs: linked,
		Metric:            domain.Metric(row.Metric),
		TargetValue:       row.TargetValue,
		TargetUnit:        row.TargetUnit,
		Frequency:         domain.Frequency(row.Frequency),
		StartDate:         fromMillis(row.StartDate),
		IsActive:          row.IsActive,
		AutoTrack:         row.AutoTrack,
		CreatedAt:         fromMillis(row.CreatedAt),
		UpdatedAt:         fromMillis(row.UpdatedAt),
	}
	if row.EndDate.Valid {
		end := fromMillis(row.EndDate.Int64)
		goal.EndDate = &end
	}
	return goal, nil
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) repository.GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	if goal.ID == "" || goal.OwnerID == "" || goal.Name == "" {
		return errors.New("goal requires id, owner and name")
	}
	row, err := newGoalRow(goal)
	if err != nil {
		return err
	}

	query := `INSERT INTO goals (` + goalColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	_, err = r.db.ExecContext(ctx, query,
		row.ID,
		row.OwnerID,
		row.Name,
		row.Description,
		row.LinkedExerciseIDs,
		row.Metric,
		row.TargetValue,
		row.TargetUnit,
		row.Frequency,
		row.StartDate,
		row.EndDate,
		row.IsActive,
		row.AutoTrack,
		row.CreatedAt,
		row.UpdatedAt,
	)
	return err
}

func (r *goalRepository) GetByID(ctx context.Context, ownerID, id string) (*domain.Goal, error) {
	var row goalRow
	query := `SELECT ` + goalColumns + ` FROM goals WHERE id = $1 AND owner_id = $2`

	err := r.db.GetContext(ctx, &row, query, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	goal, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

func (r *goalRepository) List(ctx context.Context, ownerID string) ([]domain.Goal, error) {
	return r.selectGoals(ctx, `SELECT `+goalColumns+` FROM goals
		WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
}

func (r *goalRepository) ListActiveAutoTrack(ctx context.Context, ownerID string) ([]domain.Goal, error) {
	return r.selectGoals(ctx, `SELECT `+goalColumns+` FROM goals
		WHERE owner_id = $1 AND is_active = $2 AND auto_track = $3 ORDER BY created_at DESC`, ownerID, true, true)
}

func (r *goalRepository) selectGoals(ctx context.Context, query string, args ...any) ([]domain.Goal, error) {
	var rows []goalRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	goals := make([]domain.Goal, 0, len(rows))
	for i := range rows {
		goal, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		goals = append(goals, goal)
	}
	return goals, nil
}

func (r *goalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	row, err := newGoalRow(goal)
	if err != nil {
		return err
	}

	query := `UPDATE goals
	          SET name = $1, description = $2, linked_exercise_ids = $3, metric = $4, target_value = $5,
	              target_unit = $6, frequency = $7, start_date = $8, end_date = $9, is_active = $10,
	              auto_track = $11, updated_at = $12
	          WHERE id = $13 AND owner_id = $14`

	result, err := r.db.ExecContext(ctx, query,
		row.Name,
		row.Description,
		row.LinkedExerciseIDs,
		row.Metric,
		row.TargetValue,
		row.TargetUnit,
		row.Frequency,
		row.StartDate,
		row.EndDate,
		row.IsActive,
		row.AutoTrack,
		row.UpdatedAt,
		row.ID,
		row.OwnerID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes the goal and its progress in one transaction.
func (r *goalRepository) Delete(ctx context.Context, ownerID, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM goal_progress
		WHERE goal_id IN (SELECT id FROM goals WHERE id = $1 AND owner_id = $2)`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete progress: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM goals WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}

	return tx.Commit()
}
