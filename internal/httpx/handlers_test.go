package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// Every order read goes through the identity gate before any storage is
// touched, so a zero handler is enough to exercise the rejects.

func TestGetStatus_RequiresIdentity(t *testing.T) {
	router := NewRouter()
	(&OrdersHandler{}).Register(router)

	req := httptest.NewRequest(http.MethodGet, "/orders/abc/status", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestCheckout_RequiresIdentity(t *testing.T) {
	router := NewRouter()
	(&OrdersHandler{}).Register(router)

	req := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestActorFrom(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := actorFrom(req); ok {
		t.Error("expected no actor without X-User-Id")
	}

	req.Header.Set("X-User-Id", "u-1")
	req.Header.Set("X-User-Roles", "buyer,support")
	actor, ok := actorFrom(req)
	if !ok {
		t.Fatal("expected actor")
	}
	if actor.UserID != "u-1" {
		t.Errorf("user id = %q, want u-1", actor.UserID)
	}
	if !actor.Staff() {
		t.Error("expected staff actor from support role")
	}
}
