// Package mongo implements the repositories over a MongoDB database.
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

// EnsureIndexes creates the unique email index and the task listing index.
func EnsureIndexes(ctx context.Context, db *mongodriver.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return domain.Unavailable("create users index", err)
	}
	_, err = db.Collection(tasksCollection).Indexes().CreateOne(ctx, mongodriver.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "status", Value: 1}},
	})
	if err != nil {
		return domain.Unavailable("create tasks index", err)
	}
	return nil
}

// NewStore wires every Mongo repository onto db. Close disconnects the owning client.
func NewStore(db *mongodriver.Database) *repository.Store {
	client := db.Client()
	return &repository.Store{
		Users:   NewUserRepository(db),
		Tasks:   NewTaskRepository(db),
		Resorts: NewResortRepository(db),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
		Close: client.Disconnect,
	}
}
