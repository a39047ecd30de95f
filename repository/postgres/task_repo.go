package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

// ORDER BY clauses are picked from this table so no user input reaches the query text.
var taskOrder = map[domain.TaskSort]string{
	domain.SortNewest:        "created_at DESC",
	domain.SortPriorityAsc:   "priority ASC, created_at DESC",
	domain.SortPriorityDesc:  "priority DESC, created_at DESC",
	domain.SortStartTimeAsc:  "start_time ASC, created_at DESC",
	domain.SortStartTimeDesc: "start_time DESC, created_at DESC",
	domain.SortEndTimeAsc:    "end_time ASC, created_at DESC",
	domain.SortEndTimeDesc:   "end_time DESC, created_at DESC",
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (string, error) {
	if task == nil {
		return "", domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, owner_email, title, start_time, end_time, priority, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, COALESCE($8, NOW()), COALESCE($9, NOW()))
	RETURNING created_at, updated_at
	`

	if err := r.pool.QueryRow(ctx, query,
		task.ID,
		task.OwnerEmail,
		task.Title,
		task.StartTime,
		task.EndTime,
		task.Priority,
		task.Status,
		nullTime(task.CreatedAt),
		nullTime(task.UpdatedAt),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return "", domain.Unavailable("insert task", err)
	}
	return task.ID, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	order, ok := taskOrder[filter.Sort]
	if !ok {
		order = taskOrder[domain.SortNewest]
	}

	query := `
	SELECT id, owner_email, title, start_time, end_time, priority, status, created_at, updated_at
	FROM tasks
	WHERE owner_email = $1
	  AND ($2 = '' OR status = $2)
	ORDER BY ` + order

	rows, err := r.pool.Query(ctx, query, filter.OwnerEmail, filter.StatusFilter())
	if err != nil {
		return nil, domain.Unavailable("list tasks", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Unavailable("list tasks", err)
	}
	return tasks, nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var task domain.Task
	if err := row.Scan(
		&task.ID,
		&task.OwnerEmail,
		&task.Title,
		&task.StartTime,
		&task.EndTime,
		&task.Priority,
		&task.Status,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		return nil, domain.Unavailable("scan task", err)
	}
	return &task, nil
}
