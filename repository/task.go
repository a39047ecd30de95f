package repository

import (
	"context"
	"strings"

	"github.com/fastygo/taskmanager/domain"
)

type TaskFilter struct {
	OwnerEmail string
	Status     string
	Sort       domain.TaskSort
}

// StatusFilter returns the normalized status to match, or "" when every status matches.
func (f TaskFilter) StatusFilter() string {
	status := strings.TrimSpace(f.Status)
	if status == "" || strings.EqualFold(status, domain.StatusAll) {
		return ""
	}
	return domain.NormalizeStatus(status)
}

type TaskRepository interface {
	// Create stores the task and returns its identifier.
	Create(ctx context.Context, task *domain.Task) (string, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
}
