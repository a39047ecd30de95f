package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

type taskRepository struct {
	coll *mongodriver.Collection
}

// NewTaskRepository returns a repository over the "tasks" collection.
func NewTaskRepository(db *mongodriver.Database) repository.TaskRepository {
	return &taskRepository{coll: db.Collection(tasksCollection)}
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (string, error) {
	if task == nil {
		return "", domain.ErrInvalidPayload
	}
	res, err := r.coll.InsertOne(ctx, newTaskDocument(task))
	if err != nil {
		return "", domain.Unavailable("insert task", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		task.ID = oid.Hex()
	}
	return task.ID, nil
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := bson.M{"email": filter.OwnerEmail}
	if status := filter.StatusFilter(); status != "" {
		query["status"] = status
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(sortDocument(filter.Sort)))
	if err != nil {
		return nil, domain.Unavailable("list tasks", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.Unavailable("decode tasks", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toDomain())
	}
	return tasks, nil
}

func sortDocument(order domain.TaskSort) bson.D {
	field, desc := order.Field()
	newest := bson.E{Key: "createdAt", Value: -1}
	if field == "" {
		return bson.D{newest}
	}
	direction := 1
	if desc {
		direction = -1
	}
	return bson.D{{Key: field, Value: direction}, newest}
}
