package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/event-platform/internal/clients/eventclient"
	"github.com/spec-kit/event-platform/internal/domain"
	"github.com/spec-kit/event-platform/internal/events"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.Email] = *user
	return nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

type fakeEventRepo struct {
	events map[int64]domain.Event
	nextID int64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[int64]domain.Event{}}
}

func (r *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	r.nextID++
	event.ID = r.nextID
	r.events[event.ID] = *event
	return nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *domain.Event) error {
	if _, ok := r.events[event.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.events[event.ID] = *event
	return nil
}

func (r *fakeEventRepo) UpdateBudget(_ context.Context, id int64, budget *float64) error {
	event, ok := r.events[id]
	if !ok {
		return pgx.ErrNoRows
	}
	event.Budget = budget
	r.events[id] = event
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &event, nil
}

func (r *fakeEventRepo) List(_ context.Context) ([]domain.Event, error) {
	result := make([]domain.Event, 0, len(r.events))
	for _, event := range r.events {
		result = append(result, event)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.events[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.events, id)
	return nil
}

type fakeBudgetRepo struct {
	budgets map[int64]domain.Budget
	nextID  int64
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{budgets: map[int64]domain.Budget{}}
}

func (r *fakeBudgetRepo) Create(_ context.Context, budget *domain.Budget) error {
	r.nextID++
	budget.ID = r.nextID
	r.budgets[budget.ID] = *budget
	return nil
}

func (r *fakeBudgetRepo) Update(_ context.Context, budget *domain.Budget) error {
	if _, ok := r.budgets[budget.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.budgets[budget.ID] = *budget
	return nil
}

func (r *fakeBudgetRepo) GetByID(_ context.Context, id int64) (*domain.Budget, error) {
	budget, ok := r.budgets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &budget, nil
}

func (r *fakeBudgetRepo) ListByEvent(_ context.Context, eventID int64) ([]domain.Budget, error) {
	result := make([]domain.Budget, 0)
	for _, budget := range r.budgets {
		if budget.EventID == eventID {
			result = append(result, budget)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeBudgetRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.budgets[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.budgets, id)
	return nil
}

type fakePlannerRepo struct {
	planners map[int64]domain.Planner
	nextID   int64
}

func newFakePlannerRepo() *fakePlannerRepo {
	return &fakePlannerRepo{planners: map[int64]domain.Planner{}}
}

func (r *fakePlannerRepo) Create(_ context.Context, planner *domain.Planner) error {
	r.nextID++
	planner.ID = r.nextID
	r.planners[planner.ID] = *planner
	return nil
}

func (r *fakePlannerRepo) Update(_ context.Context, planner *domain.Planner) error {
	if _, ok := r.planners[planner.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.planners[planner.ID] = *planner
	return nil
}

func (r *fakePlannerRepo) GetByID(_ context.Context, id int64) (*domain.Planner, error) {
	planner, ok := r.planners[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &planner, nil
}

func (r *fakePlannerRepo) ListByEvent(_ context.Context, eventID int64) ([]domain.Planner, error) {
	result := make([]domain.Planner, 0)
	for _, planner := range r.planners {
		if planner.EventID == eventID {
			result = append(result, planner)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakePlannerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.planners[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.planners, id)
	return nil
}

type fakeRegistrationRepo struct {
	regs []domain.Registration
	// skipExists simulates a concurrent insert slipping past the pre-check.
	skipExists bool
}

func (r *fakeRegistrationRepo) Create(_ context.Context, reg *domain.Registration) error {
	for _, existing := range r.regs {
		if existing.UserEmail == reg.UserEmail && existing.EventID == reg.EventID {
			return &pgconn.PgError{Code: "23505"}
		}
	}
	reg.ID = int64(len(r.regs) + 1)
	r.regs = append(r.regs, *reg)
	return nil
}

func (r *fakeRegistrationRepo) Exists(_ context.Context, userEmail string, eventID int64) (bool, error) {
	if r.skipExists {
		return false, nil
	}
	for _, reg := range r.regs {
		if reg.UserEmail == userEmail && reg.EventID == eventID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRegistrationRepo) ListByUser(_ context.Context, userEmail string) ([]domain.Registration, error) {
	result := make([]domain.Registration, 0)
	for _, reg := range r.regs {
		if reg.UserEmail == userEmail {
			result = append(result, reg)
		}
	}
	return result, nil
}

func (r *fakeRegistrationRepo) ListByEvent(_ context.Context, eventID int64) ([]domain.Registration, error) {
	result := make([]domain.Registration, 0)
	for _, reg := range r.regs {
		if reg.EventID == eventID {
			result = append(result, reg)
		}
	}
	return result, nil
}

func (r *fakeRegistrationRepo) CountByEvent(ctx context.Context, eventID int64) (int64, error) {
	list, _ := r.ListByEvent(ctx, eventID)
	return int64(len(list)), nil
}

type fakeFeedbackRepo struct {
	items  map[int64]domain.Feedback
	nextID int64
}

func newFakeFeedbackRepo() *fakeFeedbackRepo {
	return &fakeFeedbackRepo{items: map[int64]domain.Feedback{}}
}

func (r *fakeFeedbackRepo) Create(_ context.Context, fb *domain.Feedback) error {
	r.nextID++
	fb.ID = r.nextID
	r.items[fb.ID] = *fb
	return nil
}

func (r *fakeFeedbackRepo) Update(_ context.Context, fb *domain.Feedback) error {
	if _, ok := r.items[fb.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.items[fb.ID] = *fb
	return nil
}

func (r *fakeFeedbackRepo) GetByID(_ context.Context, id int64) (*domain.Feedback, error) {
	fb, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &fb, nil
}

func (r *fakeFeedbackRepo) List(_ context.Context) ([]domain.Feedback, error) {
	result := make([]domain.Feedback, 0, len(r.items))
	for _, fb := range r.items {
		result = append(result, fb)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *fakeFeedbackRepo) ListByEvent(ctx context.Context, eventID int64) ([]domain.Feedback, error) {
	all, _ := r.List(ctx)
	result := make([]domain.Feedback, 0)
	for _, fb := range all {
		if fb.EventID == eventID {
			result = append(result, fb)
		}
	}
	return result, nil
}

func (r *fakeFeedbackRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type fakeEventLookup struct {
	events        map[int64]eventclient.Event
	err           error
	authorization string
}

func (f *fakeEventLookup) GetEvent(_ context.Context, id int64, authorization string) (*eventclient.Event, error) {
	f.authorization = authorization
	if f.err != nil {
		return nil, f.err
	}
	event, ok := f.events[id]
	if !ok {
		return nil, &eventclient.UpstreamError{Status: 404, Body: "not found"}
	}
	return &event, nil
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	result := make([]events.EventType, 0, len(d.published))
	for _, e := range d.published {
		result = append(result, e.Type)
	}
	return result
}
