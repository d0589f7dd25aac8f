package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-platform/internal/domain"
)

// RegistrationRepository manages event registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	Exists(ctx context.Context, userEmail string, eventID int64) (bool, error)
	ListByUser(ctx context.Context, userEmail string) ([]domain.Registration, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Registration, error)
	CountByEvent(ctx context.Context, eventID int64) (int64, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository builds the repository.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	const query = `
        INSERT INTO registration (user_email, event_id, registered_at)
        VALUES ($1,$2,$3)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, reg.UserEmail, reg.EventID, reg.RegisteredAt).Scan(&reg.ID)
}

func (r *registrationRepository) Exists(ctx context.Context, userEmail string, eventID int64) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM registration WHERE user_email=$1 AND event_id=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, userEmail, eventID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *registrationRepository) ListByUser(ctx context.Context, userEmail string) ([]domain.Registration, error) {
	const query = `
        SELECT id, user_email, event_id, registered_at
        FROM registration WHERE user_email=$1 ORDER BY registered_at DESC, id DESC`
	return r.list(ctx, query, userEmail)
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Registration, error) {
	const query = `
        SELECT id, user_email, event_id, registered_at
        FROM registration WHERE event_id=$1 ORDER BY registered_at, id`
	return r.list(ctx, query, eventID)
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM registration WHERE event_id=$1`, eventID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *registrationRepository) list(ctx context.Context, query string, arg any) ([]domain.Registration, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Registration, 0)
	for rows.Next() {
		var reg domain.Registration
		if err := rows.Scan(&reg.ID, &reg.UserEmail, &reg.EventID, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		result = append(result, reg)
	}
	return result, rows.Err()
}
