package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
	"github.com/fastygo/taskmanager/repository/memory"
)

func TestUserRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUserRepository()

	first := &domain.User{Email: "a@b.com", Name: "A"}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	err := repo.Create(ctx, &domain.User{Email: "A@B.com ", Name: "Other"})
	assert.True(t, errors.Is(err, domain.ErrEmailTaken))

	found, err := repo.GetByEmail(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	assert.Equal(t, "A", found.Name)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := memory.NewUserRepository()

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.GetByEmail(context.Background(), "missing@b.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestTaskRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTaskRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seed := []domain.Task{
		{Title: "one", OwnerEmail: "a@b.com", Status: domain.StatusPending, Priority: 3, StartTime: base.Add(2 * time.Hour), EndTime: base.Add(5 * time.Hour), CreatedAt: base},
		{Title: "two", OwnerEmail: "a@b.com", Status: domain.StatusFinished, Priority: 1, StartTime: base, EndTime: base.Add(9 * time.Hour), CreatedAt: base.Add(time.Minute)},
		{Title: "three", OwnerEmail: "a@b.com", Status: domain.StatusPending, Priority: 5, StartTime: base.Add(time.Hour), EndTime: base.Add(2 * time.Hour), CreatedAt: base.Add(2 * time.Minute)},
		{Title: "other", OwnerEmail: "c@d.com", Status: domain.StatusPending, Priority: 2, StartTime: base, EndTime: base.Add(time.Hour), CreatedAt: base},
	}
	for i := range seed {
		id, err := repo.Create(ctx, &seed[i])
		require.NoError(t, err)
		require.NotEmpty(t, id)
	}

	tests := []struct {
		name   string
		filter repository.TaskFilter
		want   []string
	}{
		{
			name:   "all statuses newest first",
			filter: repository.TaskFilter{OwnerEmail: "a@b.com", Status: domain.StatusAll},
			want:   []string{"three", "two", "one"},
		},
		{
			name:   "empty status means all",
			filter: repository.TaskFilter{OwnerEmail: "a@b.com"},
			want:   []string{"three", "two", "one"},
		},
		{
			name:   "pending only",
			filter: repository.TaskFilter{OwnerEmail: "a@b.com", Status: "Pending"},
			want:   []string{"three", "one"},
		},
		{
			name:   "finished only",
			filter: repository.TaskFilter{OwnerEmail: "a@b.com", Status: domain.StatusFinished},
			want:   []string{"two"},
		},
		{
			name:   "priority descending",
			filter: repository.TaskFilter{OwnerEmail: "a@b.com", Sort: domain.SortPriorityDesc},
			want:   []string{"three", "one", "two"},
		},
		{
			name:   "start time ascending",
			filter: repository.TaskFilter{OwnerEmail: "a@b.com", Sort: domain.SortStartTimeAsc},
			want:   []string{"two", "three", "one"},
		},
		{
			name:   "end time descending",
			filter: repository.TaskFilter{OwnerEmail: "a@b.com", Sort: domain.SortEndTimeDesc},
			want:   []string{"two", "one", "three"},
		},
		{
			name:   "unknown owner",
			filter: repository.TaskFilter{OwnerEmail: "nobody@b.com"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tasks, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)

			titles := make([]string, 0, len(tasks))
			for _, task := range tasks {
				titles = append(titles, task.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestResortRepository_Create(t *testing.T) {
	repo := memory.NewResortRepository()
	resort := &domain.Resort{OwnerID: "u1", ResortName: "Sea", Location: "Coast"}

	require.NoError(t, repo.Create(context.Background(), resort))
	assert.NotEmpty(t, resort.ID)

	stored := memory.Resorts(repo)
	require.Len(t, stored, 1)
	assert.Equal(t, "Sea", stored[0].ResortName)
}
