package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-platform/internal/domain"
)

// FeedbackRepository manages event feedback.
type FeedbackRepository interface {
	Create(ctx context.Context, fb *domain.Feedback) error
	Update(ctx context.Context, fb *domain.Feedback) error
	GetByID(ctx context.Context, id int64) (*domain.Feedback, error)
	List(ctx context.Context) ([]domain.Feedback, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Feedback, error)
	Delete(ctx context.Context, id int64) error
}

type feedbackRepository struct {
	pool *pgxpool.Pool
}

// NewFeedbackRepository builds the repository.
func NewFeedbackRepository(pool *pgxpool.Pool) FeedbackRepository {
	return &feedbackRepository{pool: pool}
}

const feedbackColumns = `id, stars, message, user_email, event_id, created_at, updated_at`

func (r *feedbackRepository) Create(ctx context.Context, fb *domain.Feedback) error {
	const query = `
        INSERT INTO feedback (stars, message, user_email, event_id)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		fb.Stars,
		fb.Message,
		fb.UserEmail,
		fb.EventID,
	).Scan(&fb.ID, &fb.CreatedAt, &fb.UpdatedAt)
}

func (r *feedbackRepository) Update(ctx context.Context, fb *domain.Feedback) error {
	const query = `
        UPDATE feedback SET stars=$1, message=$2, event_id=$3, updated_at=NOW()
        WHERE id=$4
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, fb.Stars, fb.Message, fb.EventID, fb.ID).Scan(&fb.UpdatedAt)
}

func (r *feedbackRepository) GetByID(ctx context.Context, id int64) (*domain.Feedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM feedback WHERE id=$1`
	var fb domain.Feedback
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&fb.ID,
		&fb.Stars,
		&fb.Message,
		&fb.UserEmail,
		&fb.EventID,
		&fb.CreatedAt,
		&fb.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepository) List(ctx context.Context) ([]domain.Feedback, error) {
	return r.list(ctx, `SELECT `+feedbackColumns+` FROM feedback ORDER BY id`)
}

func (r *feedbackRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Feedback, error) {
	return r.list(ctx, `SELECT `+feedbackColumns+` FROM feedback WHERE event_id=$1 ORDER BY id`, eventID)
}

func (r *feedbackRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *feedbackRepository) list(ctx context.Context, query string, args ...any) ([]domain.Feedback, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Feedback, 0)
	for rows.Next() {
		var fb domain.Feedback
		if err := rows.Scan(&fb.ID, &fb.Stars, &fb.Message, &fb.UserEmail, &fb.EventID, &fb.CreatedAt, &fb.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, fb)
	}
	return result, rows.Err()
}
