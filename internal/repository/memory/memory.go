// Package memory provides in-process repository implementations used when no
// Postgres DSN is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/event-platform/internal/domain"
	"github.com/spec-kit/event-platform/internal/repository"
)

var errUnique = &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}

// store keeps rows keyed by id with a monotonically increasing sequence.
type store[T any] struct {
	mu   sync.RWMutex
	rows map[int64]T
	seq  int64
}

func newStore[T any]() *store[T] {
	return &store[T]{rows: make(map[int64]T)}
}

func (s *store[T]) insert(build func(id int64) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	row := build(s.seq)
	s.rows[s.seq] = row
	return row
}

func (s *store[T]) get(id int64) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	row, ok := s.rows[id]
	if !ok {
		var zero T
		return zero, pgx.ErrNoRows
	}
	return row, nil
}

func (s *store[T]) put(id int64, row T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	s.rows[id] = row
	return nil
}

func (s *store[T]) remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(s.rows, id)
	return nil
}

// filter returns matching rows ordered by id.
func (s *store[T]) filter(keep func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.rows))
	for id, row := range s.rows {
		if keep == nil || keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]T, 0, len(ids))
	for _, id := range ids {
		result = append(result, s.rows[id])
	}
	return result
}

type userRepository struct {
	mu    sync.Mutex
	users *store[domain.User]
}

// NewUserRepository returns an in-memory UserRepository.
func NewUserRepository() repository.UserRepository {
	return &userRepository{users: newStore[domain.User]()}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.users.filter(func(u domain.User) bool { return u.Email == user.Email })) > 0 {
		return errUnique
	}
	now := time.Now().UTC()
	*user = r.users.insert(func(id int64) domain.User {
		u := *user
		u.ID, u.CreatedAt, u.UpdatedAt = id, now, now
		return u
	})
	return nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	matches := r.users.filter(func(u domain.User) bool { return u.Email == email })
	if len(matches) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &matches[0], nil
}

type eventRepository struct {
	events *store[domain.Event]
}

// NewEventRepository returns an in-memory EventRepository.
func NewEventRepository() repository.EventRepository {
	return &eventRepository{events: newStore[domain.Event]()}
}

func (r *eventRepository) Create(_ context.Context, event *domain.Event) error {
	now := time.Now().UTC()
	*event = r.events.insert(func(id int64) domain.Event {
		e := *event
		e.ID, e.CreatedAt, e.UpdatedAt = id, now, now
		return e
	})
	return nil
}

func (r *eventRepository) Update(_ context.Context, event *domain.Event) error {
	event.UpdatedAt = time.Now().UTC()
	return r.events.put(event.ID, *event)
}

func (r *eventRepository) UpdateBudget(_ context.Context, id int64, budget *float64) error {
	r.events.mu.Lock()
	defer r.events.mu.Unlock()
	event, ok := r.events.rows[id]
	if !ok {
		return pgx.ErrNoRows
	}
	event.Budget = budget
	event.UpdatedAt = time.Now().UTC()
	r.events.rows[id] = event
	return nil
}

func (r *eventRepository) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	event, err := r.events.get(id)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(_ context.Context) ([]domain.Event, error) {
	return r.events.filter(nil), nil
}

func (r *eventRepository) Delete(_ context.Context, id int64) error {
	return r.events.remove(id)
}

type budgetRepository struct {
	budgets *store[domain.Budget]
}

// NewBudgetRepository returns an in-memory BudgetRepository.
func NewBudgetRepository() repository.BudgetRepository {
	return &budgetRepository{budgets: newStore[domain.Budget]()}
}

func (r *budgetRepository) Create(_ context.Context, budget *domain.Budget) error {
	*budget = r.budgets.insert(func(id int64) domain.Budget {
		b := *budget
		b.ID = id
		return b
	})
	return nil
}

func (r *budgetRepository) Update(_ context.Context, budget *domain.Budget) error {
	return r.budgets.put(budget.ID, *budget)
}

func (r *budgetRepository) GetByID(_ context.Context, id int64) (*domain.Budget, error) {
	budget, err := r.budgets.get(id)
	if err != nil {
		return nil, err
	}
	return &budget, nil
}

func (r *budgetRepository) ListByEvent(_ context.Context, eventID int64) ([]domain.Budget, error) {
	return r.budgets.filter(func(b domain.Budget) bool { return b.EventID == eventID }), nil
}

func (r *budgetRepository) Delete(_ context.Context, id int64) error {
	return r.budgets.remove(id)
}

type plannerRepository struct {
	planners *store[domain.Planner]
}

// NewPlannerRepository returns an in-memory PlannerRepository.
func NewPlannerRepository() repository.PlannerRepository {
	return &plannerRepository{planners: newStore[domain.Planner]()}
}

func (r *plannerRepository) Create(_ context.Context, planner *domain.Planner) error {
	now := time.Now().UTC()
	*planner = r.planners.insert(func(id int64) domain.Planner {
		p := *planner
		p.ID, p.CreatedAt, p.UpdatedAt = id, now, now
		return p
	})
	return nil
}

func (r *plannerRepository) Update(_ context.Context, planner *domain.Planner) error {
	planner.UpdatedAt = time.Now().UTC()
	return r.planners.put(planner.ID, *planner)
}

func (r *plannerRepository) GetByID(_ context.Context, id int64) (*domain.Planner, error) {
	planner, err := r.planners.get(id)
	if err != nil {
		return nil, err
	}
	return &planner, nil
}

func (r *plannerRepository) ListByEvent(_ context.Context, eventID int64) ([]domain.Planner, error) {
	return r.planners.filter(func(p domain.Planner) bool { return p.EventID == eventID }), nil
}

func (r *plannerRepository) Delete(_ context.Context, id int64) error {
	return r.planners.remove(id)
}

type registrationRepository struct {
	mu   sync.Mutex
	regs *store[domain.Registration]
}

// NewRegistrationRepository returns an in-memory RegistrationRepository.
func NewRegistrationRepository() repository.RegistrationRepository {
	return &registrationRepository{regs: newStore[domain.Registration]()}
}

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if exists, _ := r.Exists(ctx, reg.UserEmail, reg.EventID); exists {
		return errUnique
	}
	*reg = r.regs.insert(func(id int64) domain.Registration {
		stored := *reg
		stored.ID = id
		return stored
	})
	return nil
}

func (r *registrationRepository) Exists(_ context.Context, userEmail string, eventID int64) (bool, error) {
	matches := r.regs.filter(func(reg domain.Registration) bool {
		return reg.UserEmail == userEmail && reg.EventID == eventID
	})
	return len(matches) > 0, nil
}

// ListByUser returns the newest registrations first.
func (r *registrationRepository) ListByUser(_ context.Context, userEmail string) ([]domain.Registration, error) {
	regs := r.regs.filter(func(reg domain.Registration) bool { return reg.UserEmail == userEmail })
	sort.SliceStable(regs, func(i, j int) bool { return registeredBefore(regs[j], regs[i]) })
	return regs, nil
}

func (r *registrationRepository) ListByEvent(_ context.Context, eventID int64) ([]domain.Registration, error) {
	regs := r.regs.filter(func(reg domain.Registration) bool { return reg.EventID == eventID })
	sort.SliceStable(regs, func(i, j int) bool { return registeredBefore(regs[i], regs[j]) })
	return regs, nil
}

// registeredBefore orders by registered_at, then id.
func registeredBefore(a, b domain.Registration) bool {
	if !a.RegisteredAt.Equal(b.RegisteredAt) {
		return a.RegisteredAt.Before(b.RegisteredAt)
	}
	return a.ID < b.ID
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	list, err := r.ListByEvent(ctx, eventID)
	return int64(len(list)), err
}

type feedbackRepository struct {
	items *store[domain.Feedback]
}

// NewFeedbackRepository returns an in-memory FeedbackRepository.
func NewFeedbackRepository() repository.FeedbackRepository {
	return &feedbackRepository{items: newStore[domain.Feedback]()}
}

func (r *feedbackRepository) Create(_ context.Context, fb *domain.Feedback) error {
	now := time.Now().UTC()
	*fb = r.items.insert(func(id int64) domain.Feedback {
		f := *fb
		f.ID, f.CreatedAt, f.UpdatedAt = id, now, now
		return f
	})
	return nil
}

func (r *feedbackRepository) Update(_ context.Context, fb *domain.Feedback) error {
	fb.UpdatedAt = time.Now().UTC()
	return r.items.put(fb.ID, *fb)
}

func (r *feedbackRepository) GetByID(_ context.Context, id int64) (*domain.Feedback, error) {
	fb, err := r.items.get(id)
	if err != nil {
		return nil, err
	}
	return &fb, nil
}

func (r *feedbackRepository) List(_ context.Context) ([]domain.Feedback, error) {
	return r.items.filter(nil), nil
}

func (r *feedbackRepository) ListByEvent(_ context.Context, eventID int64) ([]domain.Feedback, error) {
	return r.items.filter(func(f domain.Feedback) bool { return f.EventID == eventID }), nil
}

func (r *feedbackRepository) Delete(_ context.Context, id int64) error {
	return r.items.remove(id)
}
