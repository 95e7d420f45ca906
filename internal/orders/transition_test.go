package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/sparemart/sparemart/internal/identity"
)

func staffActor() identity.Actor {
	return identity.Actor{
		UserID: "support-1",
		Roles:  identity.Roles{identity.RoleSupport: {}},
	}
}

// Both guards run before any database work, so a zero Repo suffices.

func TestTransition_RejectsUnknownStatus(t *testing.T) {
	r := &Repo{}
	_, err := r.Transition(context.Background(), "order-1", Status("refunded"), staffActor(), "")
	if !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

// Cancelling through the generic transition would skip the reason
// requirement, the cancelled_by/cancelled_at stamp and the buyer
// notification; it must be refused outright.
func TestTransition_RejectsCancelledTarget(t *testing.T) {
	r := &Repo{}
	_, err := r.Transition(context.Background(), "order-1", StatusCancelled, staffActor(), "customer asked")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
