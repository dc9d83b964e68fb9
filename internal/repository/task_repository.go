package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"planshare/internal/domain"
	"strings"

	"github.com/jmoiron/sqlx"
)

// TaskRepository читает и изменяет задачи внешнего Task Store. Создание и
// завершение задач — не наша зона ответственности.
type TaskRepository struct {
	db *sqlx.DB
}

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) GetByID(ctx context.Context, taskID string) (*domain.Task, error) {
	var task domain.Task
	query := `SELECT * FROM tasks WHERE id = $1`
	if err := r.db.GetContext(ctx, &task, query, taskID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task by id: %w", err)
	}
	return &task, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	query := `
        SELECT * FROM tasks
        WHERE owner_id = $1
        ORDER BY scheduled_at ASC`

	var tasks []domain.Task
	if err := r.db.SelectContext(ctx, &tasks, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list tasks by owner: %w", err)
	}
	return tasks, nil
}

// UpdateFields применяет только заполненные поля патча одним UPDATE.
// Список колонок фиксирован типом TaskPatch.
func (r *TaskRepository) UpdateFields(ctx context.Context, taskID string, patch *domain.TaskPatch) (*domain.Task, error) {
	set := make([]string, 0, 7)
	args := make([]interface{}, 0, 8)
	args = append(args, taskID)

	addField := func(column string, value interface{}) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		addField("title", *patch.Title)
	}
	if patch.Category != nil {
		addField("category", *patch.Category)
	}
	if patch.Priority != nil {
		addField("priority", *patch.Priority)
	}
	if patch.Timer != nil {
		addField("timer", *patch.Timer)
	}
	if patch.ScheduledAt != nil {
		addField("scheduled_at", *patch.ScheduledAt)
	}
	if patch.Notes != nil {
		addField("notes", *patch.Notes)
	}
	if patch.YoutubeURL != nil {
		addField("youtube_url", *patch.YoutubeURL)
	}

	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	query := fmt.Sprintf(`
        UPDATE tasks
        SET %s
        WHERE id = $1
        RETURNING *`, strings.Join(set, ", "))

	var task domain.Task
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&task); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update task fields: %w", err)
	}

	return &task, nil
}

func (r *TaskRepository) Delete(ctx context.Context, taskID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}
