package task

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
	now    func() time.Time
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// CreateTask validates and stores a task, returning the inserted identifier.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (string, error) {
	if task == nil {
		return "", domain.ErrInvalidPayload
	}
	task.OwnerEmail = normalizeOwner(task.OwnerEmail)
	task.Status = domain.NormalizeStatus(task.Status)
	if err := task.Validate(); err != nil {
		return "", err
	}

	now := uc.now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	id, err := uc.tasks.Create(ctx, task)
	if err != nil {
		uc.logger.Error("failed to store task", zap.String("owner", task.OwnerEmail), zap.Error(err))
		return "", err
	}
	return id, nil
}

// ListTasks returns the owner's tasks matching the status filter in the requested order.
func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	filter.OwnerEmail = normalizeOwner(filter.OwnerEmail)
	if filter.OwnerEmail == "" {
		return nil, domain.ErrOwnerRequired
	}
	if !filter.Sort.Valid() {
		return nil, domain.NewError(domain.ErrCodeInvalid, "unsupported sort key "+string(filter.Sort))
	}
	if status := filter.StatusFilter(); status != "" && !domain.IsValidStatus(status) {
		// An unknown literal status simply matches nothing.
		return []domain.Task{}, nil
	}
	return uc.tasks.List(ctx, filter)
}

// Owner emails are stored lower-cased, the same way user emails are.
func normalizeOwner(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
