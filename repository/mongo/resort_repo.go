package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

type resortRepository struct {
	coll *mongodriver.Collection
}

func NewResortRepository(db *mongodriver.Database) repository.ResortRepository {
	return &resortRepository{coll: db.Collection(resortsCollection)}
}

func (r *resortRepository) Create(ctx context.Context, resort *domain.Resort) error {
	if resort == nil {
		return domain.ErrInvalidPayload
	}
	if resort.CreatedAt.IsZero() {
		resort.CreatedAt = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, resortDocument{
		OwnerID:    resort.OwnerID,
		ResortName: resort.ResortName,
		Location:   resort.Location,
		CreatedAt:  resort.CreatedAt,
	})
	if err != nil {
		return domain.Unavailable("insert resort", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		resort.ID = oid.Hex()
	}
	return nil
}
