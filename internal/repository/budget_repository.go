package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/event-platform/internal/domain"
)

// BudgetRepository manages budget line persistence.
type BudgetRepository interface {
	Create(ctx context.Context, budget *domain.Budget) error
	Update(ctx context.Context, budget *domain.Budget) error
	GetByID(ctx context.Context, id int64) (*domain.Budget, error)
	ListByEvent(ctx context.Context, eventID int64) ([]domain.Budget, error)
	Delete(ctx context.Context, id int64) error
}

type budgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository builds the repository.
func NewBudgetRepository(pool *pgxpool.Pool) BudgetRepository {
	return &budgetRepository{pool: pool}
}

func (r *budgetRepository) Create(ctx context.Context, budget *domain.Budget) error {
	const query = `
        INSERT INTO budgets (event_id, description, cost)
        VALUES ($1,$2,$3)
        RETURNING id`
	return r.pool.QueryRow(ctx, query, budget.EventID, budget.Description, budget.Cost).Scan(&budget.ID)
}

func (r *budgetRepository) Update(ctx context.Context, budget *domain.Budget) error {
	const query = `UPDATE budgets SET event_id=$1, description=$2, cost=$3 WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, budget.EventID, budget.Description, budget.Cost, budget.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *budgetRepository) GetByID(ctx context.Context, id int64) (*domain.Budget, error) {
	const query = `SELECT id, event_id, description, cost FROM budgets WHERE id=$1`
	var budget domain.Budget
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&budget.ID,
		&budget.EventID,
		&budget.Description,
		&budget.Cost,
	); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *budgetRepository) ListByEvent(ctx context.Context, eventID int64) ([]domain.Budget, error) {
	const query = `SELECT id, event_id, description, cost FROM budgets WHERE event_id=$1 ORDER BY id`
	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Budget, 0)
	for rows.Next() {
		var budget domain.Budget
		if err := rows.Scan(&budget.ID, &budget.EventID, &budget.Description, &budget.Cost); err != nil {
			return nil, err
		}
		result = append(result, budget)
	}
	return result, rows.Err()
}

func (r *budgetRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
