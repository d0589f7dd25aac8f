package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/event-platform/internal/auth"
	"github.com/spec-kit/event-platform/internal/domain"
	"github.com/spec-kit/event-platform/internal/events"
	"github.com/spec-kit/event-platform/internal/ratelimit"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newAuthService(t *testing.T, limiter LoginThrottle) (*AuthService, *auth.TokenManager, *recordingDispatcher) {
	t.Helper()
	tokens, err := auth.NewTokenManager(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(AuthDependencies{
		UserRepo:   newFakeUserRepo(),
		Tokens:     tokens,
		Limiter:    limiter,
		Dispatcher: dispatcher,
		BcryptCost: 4,
	})
	return svc, tokens, dispatcher
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, tokens, dispatcher := newAuthService(t, nil)
	ctx := context.Background()

	result, err := svc.Register(ctx, RegisterInput{Name: "Ann", Email: "Ann@X.com", Password: "pw", Role: "manager"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.Email != "ann@x.com" || result.User.Role != domain.RoleManager {
		t.Fatalf("unexpected user: %+v", result.User)
	}
	if result.User.PasswordHash == "pw" {
		t.Fatal("password stored in clear")
	}
	principal, err := tokens.Verify(result.Token.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if principal.Subject != "ann@x.com" || principal.Authority() != "ROLE_MANAGER" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
	if got := dispatcher.types(); len(got) != 1 || got[0] != events.EventUserRegistered {
		t.Fatalf("published %v", got)
	}

	_, err = svc.Register(ctx, RegisterInput{Email: "ann@x.com", Password: "other"})
	assertDomainError(t, err, http.StatusBadRequest, "The email already exists")
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newAuthService(t, nil)
	tests := []struct {
		name  string
		input RegisterInput
	}{
		{name: "missing email", input: RegisterInput{Password: "pw"}},
		{name: "bad email", input: RegisterInput{Email: "nope", Password: "pw"}},
		{name: "missing password", input: RegisterInput{Email: "a@x.com"}},
		{name: "unknown role", input: RegisterInput{Email: "a@x.com", Password: "pw", Role: "root"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			assertDomainError(t, err, http.StatusBadRequest, "")
		})
	}
}

func TestRegisterDefaultsRoleToUser(t *testing.T) {
	svc, _, _ := newAuthService(t, nil)
	result, err := svc.Register(context.Background(), RegisterInput{Email: "u@x.com", Password: "pw"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if result.User.Role != domain.RoleUser {
		t.Fatalf("role = %s", result.User.Role)
	}
}

func TestLoginOutcomes(t *testing.T) {
	svc, tokens, _ := newAuthService(t, nil)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw", Role: "ADMIN"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(ctx, "missing@x.com", "pw", "")
	assertDomainError(t, err, http.StatusNotFound, "User not found")

	_, err = svc.Login(ctx, "a@x.com", "wrong", "")
	assertDomainError(t, err, http.StatusBadRequest, "Invalid password")

	result, err := svc.Login(ctx, "A@x.com", "pw", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	principal, err := tokens.Verify(result.Token.Token)
	if err != nil || principal.Authority() != "ROLE_ADMIN" {
		t.Fatalf("verify: %+v %v", principal, err)
	}
}

func TestLoginThrottledAfterRepeatedFailures(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	limiter := ratelimit.NewLoginLimiter(rdb, ratelimit.Config{MaxAttempts: 2, Cooldown: time.Minute})

	svc, _, _ := newAuthService(t, limiter)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, "a@x.com", "wrong", "10.0.0.1")
		assertDomainError(t, err, http.StatusBadRequest, "Invalid password")
	}
	_, err := svc.Login(ctx, "a@x.com", "pw", "10.0.0.1")
	assertDomainError(t, err, http.StatusTooManyRequests, "")

	mr.FastForward(2 * time.Minute)
	if _, err := svc.Login(ctx, "a@x.com", "pw", "10.0.0.1"); err != nil {
		t.Fatalf("login after cooldown: %v", err)
	}
}

func TestLoginFailsOpenWhenLimiterUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	svc, _, _ := newAuthService(t, ratelimit.NewLoginLimiter(rdb, ratelimit.Config{}))
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Email: "a@x.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Login(ctx, "a@x.com", "pw", "10.0.0.1"); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestGetUserAccess(t *testing.T) {
	svc, _, _ := newAuthService(t, nil)
	ctx := context.Background()
	if _, err := svc.Register(ctx, RegisterInput{Email: "u@x.com", Password: "pw"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	self := &auth.Principal{Subject: "u@x.com", Role: domain.RoleUser}
	if user, err := svc.GetUser(ctx, self, "u@x.com"); err != nil || user.Email != "u@x.com" {
		t.Fatalf("self lookup: %+v %v", user, err)
	}

	other := &auth.Principal{Subject: "o@x.com", Role: domain.RoleUser}
	_, err := svc.GetUser(ctx, other, "u@x.com")
	assertDomainError(t, err, http.StatusForbidden, "")

	admin := &auth.Principal{Subject: "a@x.com", Role: domain.RoleAdmin}
	if _, err := svc.GetUser(ctx, admin, "u@x.com"); err != nil {
		t.Fatalf("admin lookup: %v", err)
	}
	_, err = svc.GetUser(ctx, admin, "ghost@x.com")
	assertDomainError(t, err, http.StatusNotFound, "User not found")
}
