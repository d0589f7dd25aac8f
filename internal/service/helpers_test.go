package service

import (
	"testing"

	apperrors "github.com/spec-kit/event-platform/pkg/util/errorutil"
)

func ptr(v float64) *float64 { return &v }

func assertDomainError(t *testing.T, err error, wantStatus int, wantMessage string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d", wantStatus)
	}
	de := apperrors.ToDomainError(err)
	if de.HTTPStatus != wantStatus {
		t.Fatalf("status = %d, want %d (%v)", de.HTTPStatus, wantStatus, err)
	}
	if wantMessage != "" && de.Message != wantMessage {
		t.Fatalf("message = %q, want %q", de.Message, wantMessage)
	}
}
