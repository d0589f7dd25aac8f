package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/event-platform/internal/domain"
	"github.com/spec-kit/event-platform/internal/repository"
)

func TestUserRepositoryUniqueEmail(t *testing.T) {
	repo := NewUserRepository()
	ctx := context.Background()
	user := &domain.User{Email: "a@x.com", Role: domain.RoleUser}
	if err := repo.Create(ctx, user); err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID != 1 || user.CreatedAt.IsZero() {
		t.Fatalf("ids not assigned: %+v", user)
	}
	if err := repo.Create(ctx, &domain.User{Email: "a@x.com"}); !repository.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "b@x.com"); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestEventRepositoryCRUD(t *testing.T) {
	repo := NewEventRepository()
	ctx := context.Background()
	for _, name := range []string{"b", "a"} {
		if err := repo.Create(ctx, &domain.Event{Name: name}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	list, _ := repo.List(ctx)
	if len(list) != 2 || list[0].Name != "b" || list[1].ID != 2 {
		t.Fatalf("list should be ordered by id: %+v", list)
	}

	budget := 10.0
	if err := repo.UpdateBudget(ctx, 1, &budget); err != nil {
		t.Fatalf("update budget: %v", err)
	}
	got, _ := repo.GetByID(ctx, 1)
	if got.Budget == nil || *got.Budget != 10 {
		t.Fatalf("budget not stored: %+v", got)
	}
	if err := repo.Update(ctx, &domain.Event{ID: 7, Name: "x"}); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
	if err := repo.Delete(ctx, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, 1); !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("expected ErrNoRows, got %v", err)
	}
}

func TestRegistrationRepositoryUniquePair(t *testing.T) {
	repo := NewRegistrationRepository()
	ctx := context.Background()
	now := time.Now()
	if err := repo.Create(ctx, &domain.Registration{UserEmail: "a@x.com", EventID: 1, RegisteredAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, &domain.Registration{UserEmail: "a@x.com", EventID: 1, RegisteredAt: now}); !repository.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
	if err := repo.Create(ctx, &domain.Registration{UserEmail: "b@x.com", EventID: 1, RegisteredAt: now}); err != nil {
		t.Fatalf("create: %v", err)
	}
	count, _ := repo.CountByEvent(ctx, 1)
	mine, _ := repo.ListByUser(ctx, "a@x.com")
	if count != 2 || len(mine) != 1 {
		t.Fatalf("count=%d mine=%d", count, len(mine))
	}
}

func TestRegistrationRepositoryOrdering(t *testing.T) {
	repo := NewRegistrationRepository()
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	regs := []domain.Registration{
		{UserEmail: "a@x.com", EventID: 1, RegisteredAt: base.Add(time.Minute)},
		{UserEmail: "a@x.com", EventID: 2, RegisteredAt: base.Add(3 * time.Minute)},
		{UserEmail: "a@x.com", EventID: 3, RegisteredAt: base.Add(2 * time.Minute)},
		{UserEmail: "b@x.com", EventID: 1, RegisteredAt: base},
		{UserEmail: "c@x.com", EventID: 1, RegisteredAt: base},
	}
	for i := range regs {
		if err := repo.Create(ctx, &regs[i]); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	mine, err := repo.ListByUser(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("list by user: %v", err)
	}
	var events []int64
	for _, reg := range mine {
		events = append(events, reg.EventID)
	}
	if len(events) != 3 || events[0] != 2 || events[1] != 3 || events[2] != 1 {
		t.Fatalf("ListByUser event order = %v, want [2 3 1]", events)
	}

	byEvent, err := repo.ListByEvent(ctx, 1)
	if err != nil {
		t.Fatalf("list by event: %v", err)
	}
	var users []string
	for _, reg := range byEvent {
		users = append(users, reg.UserEmail)
	}
	if len(users) != 3 || users[0] != "b@x.com" || users[1] != "c@x.com" || users[2] != "a@x.com" {
		t.Fatalf("ListByEvent user order = %v, want [b@x.com c@x.com a@x.com]", users)
	}
}
