package errorutil

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

func TestToDomainError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "domain error passes through", err: NewForbidden("nope"), wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "wrapped domain error", err: fmt.Errorf("ctx: %w", NewNotFound("Event not found")), wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "no rows", err: pgx.ErrNoRows, wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "unknown", err: errors.New("boom"), wantStatus: http.StatusInternalServerError, wantCode: "INTERNAL_ERROR"},
		{name: "upstream", err: NewUpstreamError("event service unavailable", errors.New("dial")), wantStatus: http.StatusBadGateway, wantCode: "UPSTREAM_FAILURE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToDomainError(tt.err)
			if got.HTTPStatus != tt.wantStatus {
				t.Fatalf("status = %d, want %d", got.HTTPStatus, tt.wantStatus)
			}
			if got.Code != tt.wantCode {
				t.Fatalf("code = %s, want %s", got.Code, tt.wantCode)
			}
		})
	}
	if ToDomainError(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}

func TestNewEnvelope(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	env := NewEnvelope(ToDomainError(NewUnauthorized("Invalid token")), "/api/events", now)

	if env.Status != http.StatusUnauthorized || env.Error != "Unauthorized" {
		t.Fatalf("unexpected status/reason: %d %q", env.Status, env.Error)
	}
	if env.Message != "Invalid token" || env.Path != "/api/events" || !env.Timestamp.Equal(now) {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}
