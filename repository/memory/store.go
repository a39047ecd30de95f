// Package memory provides mutex-guarded in-process repositories for tests and local development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

// NewStore returns a repository.Store whose repositories share nothing but the process.
func NewStore() *repository.Store {
	return &repository.Store{
		Users:   NewUserRepository(),
		Tasks:   NewTaskRepository(),
		Resorts: NewResortRepository(),
		Ping:    func(context.Context) error { return nil },
		Close:   func(context.Context) error { return nil },
	}
}

type userRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string
}

func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[emailKey(email)]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	if user == nil || user.Email == "" {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	key := emailKey(user.Email)
	if _, exists := r.byEmail[key]; exists {
		return domain.ErrEmailTaken
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Touch(time.Now().UTC())

	clone := *user
	r.byID[user.ID] = &clone
	r.byEmail[key] = user.ID
	return nil
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type taskRepository struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

func NewTaskRepository() repository.TaskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(_ context.Context, task *domain.Task) (string, error) {
	if task == nil {
		return "", domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	r.tasks = append(r.tasks, *task)
	return task.ID, nil
}

func (r *taskRepository) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	status := filter.StatusFilter()

	r.mu.RLock()
	tasks := make([]domain.Task, 0, len(r.tasks))
	for _, task := range r.tasks {
		if task.OwnerEmail != filter.OwnerEmail {
			continue
		}
		if status != "" && task.Status != status {
			continue
		}
		tasks = append(tasks, task)
	}
	r.mu.RUnlock()

	sortTasks(tasks, filter.Sort)
	return tasks, nil
}

func sortTasks(tasks []domain.Task, order domain.TaskSort) {
	field, desc := order.Field()
	less := func(a, b *domain.Task) bool { return a.CreatedAt.After(b.CreatedAt) }
	switch field {
	case "priority":
		less = func(a, b *domain.Task) bool { return a.Priority < b.Priority }
	case "startTime":
		less = func(a, b *domain.Task) bool { return a.StartTime.Before(b.StartTime) }
	case "endTime":
		less = func(a, b *domain.Task) bool { return a.EndTime.Before(b.EndTime) }
	}
	sort.SliceStable(tasks, func(i, j int) bool {
		if desc {
			return less(&tasks[j], &tasks[i])
		}
		return less(&tasks[i], &tasks[j])
	})
}

type resortRepository struct {
	mu      sync.Mutex
	resorts []domain.Resort
}

func NewResortRepository() repository.ResortRepository {
	return &resortRepository{}
}

func (r *resortRepository) Create(_ context.Context, resort *domain.Resort) error {
	if resort == nil {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if resort.ID == "" {
		resort.ID = uuid.NewString()
	}
	if resort.CreatedAt.IsZero() {
		resort.CreatedAt = time.Now().UTC()
	}
	r.resorts = append(r.resorts, *resort)
	return nil
}

// Resorts returns a copy of the stored resorts.
func Resorts(repo repository.ResortRepository) []domain.Resort {
	r, ok := repo.(*resortRepository)
	if !ok {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Resort(nil), r.resorts...)
}

// UserCount returns the number of stored users.
func UserCount(repo repository.UserRepository) int {
	r, ok := repo.(*userRepository)
	if !ok {
		return 0
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
