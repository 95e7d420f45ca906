package orders

import "testing"

func TestCanTransition_ForwardPath(t *testing.T) {
	steps := []struct{ from, to Status }{
		{StatusPending, StatusProcessing},
		{StatusProcessing, StatusShipped},
		{StatusShipped, StatusDelivered},
	}
	for _, s := range steps {
		if !CanTransition(s.from, s.to) {
			t.Errorf("expected %s -> %s to be allowed", s.from, s.to)
		}
	}
}

func TestCanTransition_CancellationPaths(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusProcessing, StatusShipped} {
		if !CanTransition(from, StatusCancelled) {
			t.Errorf("expected %s -> cancelled to be allowed", from)
		}
	}
}

func TestCanTransition_TerminalStatesAreDeadEnds(t *testing.T) {
	all := []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled}
	for _, from := range []Status{StatusDelivered, StatusCancelled} {
		for _, to := range all {
			if CanTransition(from, to) {
				t.Errorf("expected no transition out of %s, got %s -> %s", from, from, to)
			}
		}
	}
}

func TestCanTransition_NoSkippingOrBacktracking(t *testing.T) {
	illegal := []struct{ from, to Status }{
		{StatusPending, StatusShipped},
		{StatusPending, StatusDelivered},
		{StatusProcessing, StatusPending},
		{StatusProcessing, StatusDelivered},
		{StatusShipped, StatusProcessing},
		{StatusShipped, StatusPending},
	}
	for _, s := range illegal {
		if CanTransition(s.from, s.to) {
			t.Errorf("expected %s -> %s to be rejected", s.from, s.to)
		}
	}
}

func TestCanTransition_NoSelfTransition(t *testing.T) {
	for from := range validNext {
		if CanTransition(from, from) {
			t.Errorf("expected %s -> %s to be rejected", from, from)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	for _, s := range []Status{"", "paid", "PENDING", "refunded"} {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestStatusTerminal(t *testing.T) {
	if !StatusDelivered.Terminal() || !StatusCancelled.Terminal() {
		t.Error("delivered and cancelled must be terminal")
	}
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped} {
		if s.Terminal() {
			t.Errorf("expected %s to be non-terminal", s)
		}
	}
}

func TestBuyerCancellable(t *testing.T) {
	if !buyerCancellable(StatusPending) || !buyerCancellable(StatusProcessing) {
		t.Error("buyers must be able to cancel pending and processing orders")
	}
	for _, s := range []Status{StatusShipped, StatusDelivered, StatusCancelled} {
		if buyerCancellable(s) {
			t.Errorf("expected buyer cancellation from %s to be rejected", s)
		}
	}
}
