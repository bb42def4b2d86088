package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/punchdesk/attendance-backend-go/internal/domain/task"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}

// Create implements task.TaskRepository.
func (r *taskRepository) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (user_id, assigned_by, title, description, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		t.UserID,
		t.AssignedBy,
		t.Title,
		t.Description,
		t.DueDate,
		t.Status,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		return task.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return t, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepository) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, assigned_by, title, description, due_date, status,
		       created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var t task.Task
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.UserID, &t.AssignedBy, &t.Title, &t.Description,
		&t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	return t, nil
}

// ListByUser implements task.TaskRepository.
func (r *taskRepository) ListByUser(ctx context.Context, userID string) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.user_id, t.assigned_by, t.title, t.description, t.due_date,
		       t.status, t.created_at, t.updated_at,
		       u.username, a.username
		FROM tasks t
		LEFT JOIN users u ON u.id = t.user_id
		LEFT JOIN users a ON a.id = t.assigned_by
		WHERE t.user_id = $1
		ORDER BY t.created_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(
			&t.ID, &t.UserID, &t.AssignedBy, &t.Title, &t.Description,
			&t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt,
			&t.Username, &t.AssignedByName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, t)
	}

	return tasks, rows.Err()
}

// Update implements task.TaskRepository.
func (r *taskRepository) Update(ctx context.Context, t task.Task) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = $2, description = $3, due_date = $4, status = $5, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, t.ID, t.Title, t.Description, t.DueDate, t.Status)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// Delete implements task.TaskRepository.
func (r *taskRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}
