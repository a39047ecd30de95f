package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskmanager/domain"
	"github.com/fastygo/taskmanager/repository"
)

type resortRepository struct {
	pool *pgxpool.Pool
}

func NewResortRepository(pool *pgxpool.Pool) repository.ResortRepository {
	return &resortRepository{pool: pool}
}

func (r *resortRepository) Create(ctx context.Context, resort *domain.Resort) error {
	if resort == nil {
		return domain.ErrInvalidPayload
	}
	if resort.ID == "" {
		resort.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO reunions (id, owner_id, resort_name, location)
	VALUES ($1, $2, $3, $4)
	RETURNING created_at
	`
	if err := r.pool.QueryRow(ctx, query, resort.ID, resort.OwnerID, resort.ResortName, resort.Location).Scan(&resort.CreatedAt); err != nil {
		return domain.Unavailable("insert resort", err)
	}
	return nil
}
