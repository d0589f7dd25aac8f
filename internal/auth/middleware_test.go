package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/event-platform/internal/domain"
	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

func newGuardedApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(apperrors.NewEnvelope(de, c.Path(), time.Now()))
		},
	})
	app.Use(NewAuthMiddleware(tm, nil).Handle)

	whoami := func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.JSON(fiber.Map{"anonymous": true})
		}
		fromCtx, ok := PrincipalFromCtx(c.UserContext())
		if !ok || fromCtx != principal {
			return apperrors.NewInternalError(nil)
		}
		return c.JSON(fiber.Map{"subject": principal.Subject, "authority": principal.Authority()})
	}

	app.Get("/open", whoami)
	app.Get("/staff", RequireStaff(), whoami)
	app.Get("/any", RequireAnyRole(), whoami)
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authorization string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()
	body := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return resp.StatusCode, body
}

func TestAuthMiddlewareAndGates(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	tm := newTestManager(t, testSecret, time.Hour, clock)

	adminToken, err := tm.Issue("a@x.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	userToken, err := tm.Issue("u@x.com", domain.RoleUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	foreign := newTestManager(t, otherSecret, time.Hour, clock)
	foreignToken, err := foreign.Issue("a@x.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	app := newGuardedApp(t, tm)

	tests := []struct {
		name          string
		path          string
		authorization string
		wantStatus    int
		wantAuthority string
		wantAnonymous bool
		wantMessage   string
	}{
		{name: "anonymous open route", path: "/open", wantStatus: http.StatusOK},
		{name: "non bearer header is anonymous", path: "/open", authorization: "Basic dXNlcjpwYXNz", wantStatus: http.StatusOK},
		{name: "lowercase scheme is anonymous", path: "/any", authorization: "bearer " + adminToken.Token, wantStatus: http.StatusUnauthorized},
		{name: "anonymous gated route", path: "/staff", wantStatus: http.StatusUnauthorized, wantMessage: MsgAuthenticationRequired},
		{name: "invalid token on open route", path: "/open", authorization: "Bearer garbage", wantStatus: http.StatusUnauthorized, wantMessage: MsgInvalidToken},
		{name: "bare bearer scheme is anonymous", path: "/open", authorization: "Bearer ", wantStatus: http.StatusOK, wantAnonymous: true},
		{name: "bare bearer scheme on gated route", path: "/any", authorization: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "foreign key", path: "/any", authorization: "Bearer " + foreignToken.Token, wantStatus: http.StatusUnauthorized},
		{name: "admin on staff route", path: "/staff", authorization: "Bearer " + adminToken.Token, wantStatus: http.StatusOK, wantAuthority: "ROLE_ADMIN"},
		{name: "user on staff route", path: "/staff", authorization: "Bearer " + userToken.Token, wantStatus: http.StatusForbidden, wantMessage: MsgInsufficientRole},
		{name: "user on any route", path: "/any", authorization: "Bearer " + userToken.Token, wantStatus: http.StatusOK, wantAuthority: "ROLE_USER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doRequest(t, app, tt.path, tt.authorization)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %v)", status, tt.wantStatus, body)
			}
			if tt.wantAuthority != "" && body["authority"] != tt.wantAuthority {
				t.Fatalf("authority = %v, want %s", body["authority"], tt.wantAuthority)
			}
			if tt.wantMessage != "" && body["message"] != tt.wantMessage {
				t.Fatalf("message = %v, want %q", body["message"], tt.wantMessage)
			}
			if tt.wantAnonymous && body["anonymous"] != true {
				t.Fatalf("expected anonymous caller, got %v", body)
			}
			if status >= 400 {
				if body["status"] != float64(status) || body["message"] == "" || body["timestamp"] == nil {
					t.Fatalf("expected error envelope, got %v", body)
				}
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header    string
		wantToken string
		wantOK    bool
	}{
		{header: "", wantOK: false},
		{header: "Bearer", wantOK: false},
		{header: "bearer abc", wantOK: false},
		{header: "Basic abc", wantOK: false},
		{header: "Bearer ", wantToken: "", wantOK: true},
		{header: "Bearer abc.def.ghi", wantToken: "abc.def.ghi", wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			if token != tt.wantToken || ok != tt.wantOK {
				t.Fatalf("bearerToken(%q) = (%q, %v), want (%q, %v)", tt.header, token, ok, tt.wantToken, tt.wantOK)
			}
		})
	}
}

func TestAuthMiddlewareRejectsExpiredToken(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	tm := newTestManager(t, testSecret, time.Hour, clock)
	app := newGuardedApp(t, tm)

	issued, err := tm.Issue("a@x.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if status, _ := doRequest(t, app, "/staff", "Bearer "+issued.Token); status != http.StatusOK {
		t.Fatalf("status before expiry = %d", status)
	}

	clock.Advance(2 * time.Hour)
	status, body := doRequest(t, app, "/open", "Bearer "+issued.Token)
	if status != http.StatusUnauthorized {
		t.Fatalf("status after expiry = %d", status)
	}
	if body["message"] != MsgInvalidToken {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestRequireRolesWithoutRolesAllowsAnyPrincipal(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	tm := newTestManager(t, testSecret, time.Hour, clock)
	app := fiber.New()
	app.Use(NewAuthMiddleware(tm, nil).Handle)
	app.Get("/x", RequireRoles(), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })

	issued, _ := tm.Issue("u@x.com", domain.RoleUser)
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestPrincipalHasRole(t *testing.T) {
	p := &Principal{Subject: "a@x.com", Role: domain.RoleManager}
	if !p.HasRole(StaffRoles...) || p.HasRole(domain.RoleUser) {
		t.Fatal("unexpected HasRole result")
	}
	var missing *Principal
	if missing.HasRole(AllRoles...) {
		t.Fatal("nil principal has no roles")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", 4)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := ComparePassword(hash, "s3cret-pass"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := ComparePassword(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch")
	}
}
