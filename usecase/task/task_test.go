package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
	"github.com/fastygo/taskmanager/repository/memory"
)

func validTask() *domain.Task {
	return &domain.Task{
		Title:      "Buy milk",
		StartTime:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:    time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Priority:   3,
		Status:     "Pending",
		OwnerEmail: "a@b.com",
	}
}

func TestCreateTask(t *testing.T) {
	uc := New(memory.NewTaskRepository(), nil)
	task := validTask()

	id, err := uc.CreateTask(context.Background(), task)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, domain.StatusPending, task.Status)
	assert.False(t, task.CreatedAt.IsZero())
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestCreateTask_PriorityOutOfRange(t *testing.T) {
	uc := New(memory.NewTaskRepository(), nil)

	for _, priority := range []int{-1, 0, 6, 100} {
		for _, status := range []string{"pending", "finished", "bogus"} {
			task := validTask()
			task.Priority = priority
			task.Status = status

			_, err := uc.CreateTask(context.Background(), task)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid), "priority %d status %s", priority, status)
		}
	}
}

func TestCreateTask_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Task)
		want   error
	}{
		{name: "no owner", mutate: func(t *domain.Task) { t.OwnerEmail = "  " }, want: domain.ErrOwnerRequired},
		{name: "no title", mutate: func(t *domain.Task) { t.Title = "" }},
		{name: "no start", mutate: func(t *domain.Task) { t.StartTime = time.Time{} }},
		{name: "bad status", mutate: func(t *domain.Task) { t.Status = "done" }},
	}

	uc := New(memory.NewTaskRepository(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(task)
			_, err := uc.CreateTask(context.Background(), task)
			assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestListTasks_StatusFilter(t *testing.T) {
	uc := New(memory.NewTaskRepository(), nil)
	ctx := context.Background()

	for _, status := range []string{"pending", "finished", "pending"} {
		task := validTask()
		task.Status = status
		_, err := uc.CreateTask(ctx, task)
		require.NoError(t, err)
	}
	other := validTask()
	other.OwnerEmail = "x@y.com"
	_, err := uc.CreateTask(ctx, other)
	require.NoError(t, err)

	tests := []struct {
		status string
		want   int
	}{
		{status: "All", want: 3},
		{status: "", want: 3},
		{status: "pending", want: 2},
		{status: "Finished", want: 1},
		{status: "archived", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			tasks, err := uc.ListTasks(ctx, repository.TaskFilter{OwnerEmail: "a@b.com", Status: tt.status})
			require.NoError(t, err)
			assert.Len(t, tasks, tt.want)
			for _, task := range tasks {
				assert.Equal(t, "a@b.com", task.OwnerEmail)
			}
		})
	}
}

func TestOwnerEmailIsCaseInsensitive(t *testing.T) {
	uc := New(memory.NewTaskRepository(), nil)
	ctx := context.Background()

	task := validTask()
	task.OwnerEmail = " Alice@X.com "
	_, err := uc.CreateTask(ctx, task)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", task.OwnerEmail)

	for _, owner := range []string{"alice@x.com", "ALICE@x.com"} {
		tasks, err := uc.ListTasks(ctx, repository.TaskFilter{OwnerEmail: owner, Status: domain.StatusAll})
		require.NoError(t, err)
		assert.Len(t, tasks, 1, owner)
	}
}

func TestListTasks_RejectsBadInput(t *testing.T) {
	uc := New(memory.NewTaskRepository(), nil)

	_, err := uc.ListTasks(context.Background(), repository.TaskFilter{OwnerEmail: "a@b.com", Sort: "title"})
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	_, err = uc.ListTasks(context.Background(), repository.TaskFilter{})
	assert.ErrorIs(t, err, domain.ErrOwnerRequired)
}
