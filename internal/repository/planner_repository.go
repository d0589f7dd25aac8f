package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-platform/internal/domain"
)

// PlannerRepository manages planner note persistence.
type PlannerRepository interface {
	Create(ctx context.Context, planner *domain.Planner) error
	Update(ctx context.Context, planner *domain.Planner) error
	GetByID(ctx context.Context, id int64) (*domain.Planner, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Planner, error)
	Delete(ctx context.Context, id int64) error
}

type plannerRepository struct {
	pool *pgxpool.Pool
}

// NewPlannerRepository builds the repository.
func NewPlannerRepository(pool *pgxpool.Pool) PlannerRepository {
	return &plannerRepository{pool: pool}
}

func (r *plannerRepository) Create(ctx context.Context, planner *domain.Planner) error {
	const query = `
        INSERT INTO planners (title, note, event_id, created_by)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		planner.Title,
		planner.Note,
		planner.EventID,
		planner.CreatedBy,
	).Scan(&planner.ID, &planner.CreatedAt, &planner.UpdatedAt)
}

func (r *plannerRepository) Update(ctx context.Context, planner *domain.Planner) error {
	const query = `
        UPDATE planners SET title=$1, note=$2, created_by=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		planner.Title,
		planner.Note,
		planner.CreatedBy,
		planner.ID,
	).Scan(&planner.UpdatedAt)
}

func (r *plannerRepository) GetByID(ctx context.Context, id int64) (*domain.Planner, error) {
	const query = `
        SELECT id, title, note, event_id, created_by, created_at, updated_at
        FROM planners WHERE id=$1`
	var planner domain.Planner
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&planner.ID,
		&planner.Title,
		&planner.Note,
		&planner.EventID,
		&planner.CreatedBy,
		&planner.CreatedAt,
		&planner.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &planner, nil
}

func (r *plannerRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Planner, error) {
	const query = `
        SELECT id, title, note, event_id, created_by, created_at, updated_at
        FROM planners WHERE event_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Planner, 0)
	for rows.Next() {
		var planner domain.Planner
		if err := rows.Scan(
			&planner.ID,
			&planner.Title,
			&planner.Note,
			&planner.EventID,
			&planner.CreatedBy,
			&planner.CreatedAt,
			&planner.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, planner)
	}
	return result, rows.Err()
}

func (r *plannerRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM planners WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
