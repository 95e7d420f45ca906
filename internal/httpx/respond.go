package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sparemart/sparemart/internal/cart"
	"github.com/sparemart/sparemart/internal/catalog"
	"github.com/sparemart/sparemart/internal/identity"
	"github.com/sparemart/sparemart/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr maps subsystem errors onto the error taxonomy: validation 400,
// conflict 409, not-found 404, ownership 403, in-flight checkout 429,
// anything else a generic 500.
func writeErr(w http.ResponseWriter, err error) {
	var ve *orders.ValidationError
	switch {
	case errors.As(err, &ve),
		errors.Is(err, orders.ErrEmptyCart),
		errors.Is(err, orders.ErrUnknownStatus),
		errors.Is(err, orders.ErrReasonRequired),
		errors.Is(err, cart.ErrInvalidQty):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, orders.ErrStockChanged),
		errors.Is(err, orders.ErrPartInactive),
		errors.Is(err, orders.ErrOrderTerminal),
		errors.Is(err, orders.ErrInvalidTransition),
		errors.Is(err, orders.ErrCancelTooLate),
		errors.Is(err, cart.ErrLowStock),
		errors.Is(err, cart.ErrPartHidden):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, orders.ErrCheckoutInFlight):
		writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": err.Error()})
	case errors.Is(err, orders.ErrOrderNotFound),
		errors.Is(err, cart.ErrNotInCart),
		errors.Is(err, cart.ErrUnknownPart),
		errors.Is(err, catalog.ErrPartNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, orders.ErrNotOrderOwner):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

// actorFrom reads the identity the session layer resolved upstream. This
// subsystem trusts those claims; authorization happened at the boundary.
func actorFrom(r *http.Request) (identity.Actor, bool) {
	uid := r.Header.Get("X-User-Id")
	if uid == "" {
		return identity.Actor{}, false
	}
	return identity.Actor{
		UserID: uid,
		Roles:  identity.ParseRoles(r.Header.Get("X-User-Roles")),
	}, true
}
