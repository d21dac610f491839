package pkg

import (
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_ToHTTPErrorHidesCause(t *testing.T) {
	cause := errors.New("pq: relation \"jobs\" does not exist")
	appErr := NewDomainError("INTERNAL_ERROR", "An internal error occurred", cause, http.StatusInternalServerError)

	body := appErr.ToHTTPError()
	if body.Code != "INTERNAL_ERROR" || body.Message != "An internal error occurred" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if strings.Contains(body.Message, "pq:") {
		t.Fatalf("cause leaked into message: %q", body.Message)
	}
	if !errors.Is(appErr, cause) {
		t.Fatalf("expected cause to be unwrappable")
	}
	if !strings.Contains(appErr.Error(), "pq:") {
		t.Fatalf("expected Error() to keep cause for logs, got %q", appErr.Error())
	}
}

func TestAppError_Simple(t *testing.T) {
	appErr := NewDomainErrorSimple("JOB_NOT_FOUND", "Job not found", http.StatusNotFound)
	if appErr.Unwrap() != nil {
		t.Fatalf("expected nil cause")
	}
	if appErr.Error() != "JOB_NOT_FOUND: Job not found" {
		t.Fatalf("unexpected Error(): %q", appErr.Error())
	}
}
