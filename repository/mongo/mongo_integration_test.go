//go:build integration

package mongo_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/internal/config"
	mongoInfra "github.com/fastygo/taskmanager/internal/infrastructure/mongo"
	"github.com/fastygo/taskmanager/repository"
	"github.com/fastygo/taskmanager/repository/mongo"
)

type MongoSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	db        *mongodriver.Database
	store     *repository.Store
}

func TestMongoSuite(t *testing.T) {
	suite.Run(t, new(MongoSuite))
}

func (s *MongoSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	host, err := container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := container.MappedPort(s.ctx, "27017")
	s.Require().NoError(err)

	s.db, err = mongoInfra.Connect(s.ctx, config.MongoConfig{
		URI:      fmt.Sprintf("mongodb://%s:%s", host, port.Port()),
		Database: "reunion_test",
	}, nil)
	s.Require().NoError(err)
	s.Require().NoError(mongo.EnsureIndexes(s.ctx, s.db))
	s.store = mongo.NewStore(s.db)
}

func (s *MongoSuite) TearDownSuite() {
	if s.store != nil {
		_ = s.store.Close(s.ctx)
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *MongoSuite) SetupTest() {
	for _, name := range []string{"users", "tasks", "reunions"} {
		_, err := s.db.Collection(name).DeleteMany(s.ctx, map[string]any{})
		s.Require().NoError(err)
	}
}

func (s *MongoSuite) TestUsers() {
	user := &domain.User{Email: "a@b.com", PasswordHash: "hash", Name: "Ann", Provider: domain.ProviderCredentials}
	s.Require().NoError(s.store.Users.Create(s.ctx, user))
	s.NotEmpty(user.ID)

	got, err := s.store.Users.GetByID(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal("a@b.com", got.Email)

	err = s.store.Users.Create(s.ctx, &domain.User{Email: "a@b.com", Name: "Dup"})
	s.ErrorIs(err, domain.ErrEmailTaken)

	_, err = s.store.Users.GetByEmail(s.ctx, "nobody@b.com")
	s.ErrorIs(err, domain.ErrUserNotFound)

	_, err = s.store.Users.GetByID(s.ctx, "not-an-object-id")
	s.ErrorIs(err, domain.ErrUserNotFound)
}

func (s *MongoSuite) TestTasks() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, status := range []string{domain.StatusPending, domain.StatusFinished, domain.StatusPending} {
		_, err := s.store.Tasks.Create(s.ctx, &domain.Task{
			Title:      fmt.Sprintf("task-%d", i),
			StartTime:  base.Add(time.Duration(i) * time.Hour),
			EndTime:    base.Add(time.Duration(i+1) * time.Hour),
			Priority:   i + 1,
			Status:     status,
			OwnerEmail: "a@b.com",
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			UpdatedAt:  base,
		})
		s.Require().NoError(err)
	}

	all, err := s.store.Tasks.List(s.ctx, repository.TaskFilter{OwnerEmail: "a@b.com", Status: domain.StatusAll})
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal("task-2", all[0].Title)

	finished, err := s.store.Tasks.List(s.ctx, repository.TaskFilter{OwnerEmail: "a@b.com", Status: "finished", Sort: domain.SortStartTimeAsc})
	s.Require().NoError(err)
	s.Require().Len(finished, 1)
	s.Equal("task-1", finished[0].Title)
}

func (s *MongoSuite) TestResortsAndPing() {
	s.NoError(s.store.Resorts.Create(s.ctx, &domain.Resort{OwnerID: "owner", ResortName: "Sea View", Location: "Beach"}))
	count, err := s.db.Collection("reunions").CountDocuments(s.ctx, map[string]any{})
	s.Require().NoError(err)
	s.EqualValues(1, count)
	s.NoError(s.store.Ping(s.ctx))
}
