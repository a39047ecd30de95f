package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/taskmanager/repository"
)

// NewStore wires every Postgres repository onto one pool. Close releases the pool.
func NewStore(pool *pgxpool.Pool) *repository.Store {
	return &repository.Store{
		Users:   NewUserRepository(pool),
		Tasks:   NewTaskRepository(pool),
		Resorts: NewResortRepository(pool),
		Ping:    pool.Ping,
		Close: func(context.Context) error {
			pool.Close()
			return nil
		},
	}
}
