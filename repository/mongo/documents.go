package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/fastygo/taskmanager/domain"
)

const (
	usersCollection   = "users"
	tasksCollection   = "tasks"
	resortsCollection = "reunions"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Password  string             `bson:"password,omitempty"`
	Name      string             `bson:"name"`
	Image     string             `bson:"image,omitempty"`
	UserType  string             `bson:"userType,omitempty"`
	Provider  string             `bson:"provider"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func newUserDocument(u *domain.User) userDocument {
	return userDocument{
		Email:     u.Email,
		Password:  u.PasswordHash,
		Name:      u.Name,
		Image:     u.Image,
		UserType:  u.UserType,
		Provider:  u.Provider,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		PasswordHash: d.Password,
		Name:         d.Name,
		Image:        d.Image,
		UserType:     d.UserType,
		Provider:     d.Provider,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

type taskDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	StartTime time.Time          `bson:"startTime"`
	EndTime   time.Time          `bson:"endTime"`
	Priority  int                `bson:"priority"`
	Status    string             `bson:"status"`
	Email     string             `bson:"email"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func newTaskDocument(t *domain.Task) taskDocument {
	return taskDocument{
		Title:     t.Title,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
		Priority:  t.Priority,
		Status:    t.Status,
		Email:     t.OwnerEmail,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func (d taskDocument) toDomain() domain.Task {
	return domain.Task{
		ID:         d.ID.Hex(),
		Title:      d.Title,
		StartTime:  d.StartTime.UTC(),
		EndTime:    d.EndTime.UTC(),
		Priority:   d.Priority,
		Status:     d.Status,
		OwnerEmail: d.Email,
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

type resortDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID    string             `bson:"ownerId"`
	ResortName string             `bson:"resortName"`
	Location   string             `bson:"location"`
	CreatedAt  time.Time          `bson:"createdAt"`
}
