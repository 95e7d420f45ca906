package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sparemart/sparemart/internal/identity"
)

// buyerCancellable tells whether a buyer may still self-cancel from the
// given status. Buyers lose the option once the order ships.
func buyerCancellable(s Status) bool {
	return s == StatusPending || s == StatusProcessing
}

// CancelByBuyer is self-service cancellation. No reason is collected and
// stock is not restored; the decrement from checkout stands.
func (r *Repo) CancelByBuyer(ctx context.Context, orderID, buyerID string) (Order, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.BuyerID != buyerID {
		return Order{}, ErrNotOrderOwner
	}
	if o.Status.Terminal() {
		return Order{}, fmt.Errorf("%w: %s", ErrOrderTerminal, o.Status)
	}
	if !buyerCancellable(o.Status) {
		return Order{}, fmt.Errorf("%w: status is %s", ErrCancelTooLate, o.Status)
	}

	now := time.Now().UTC()
	actor := identity.Actor{UserID: buyerID, Roles: identity.Roles{identity.RoleBuyer: {}}}
	if err := applyTransition(ctx, tx, orderID, StatusCancelled, actor, "cancelled by buyer", now); err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}

	o.Status = StatusCancelled
	o.UpdatedAt = now
	return o, nil
}

// CancelByStaff terminates any non-terminal order. A reason is mandatory
// and is stamped onto the order row itself (cancelled_by, cancel_reason,
// cancelled_at) on top of the usual history entry.
func (r *Repo) CancelByStaff(ctx context.Context, orderID string, actor identity.Actor, reason string) (Order, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Order{}, ErrReasonRequired
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	o, err := lockOrder(ctx, tx, orderID)
	if err != nil {
		return Order{}, err
	}
	if o.Status.Terminal() {
		return Order{}, fmt.Errorf("%w: %s", ErrOrderTerminal, o.Status)
	}

	now := time.Now().UTC()
	role := actor.Roles.StaffRole()
	if _, err := tx.Exec(ctx, `
		UPDATE orders SET cancelled_by=$2, cancel_reason=$3, cancelled_at=$4 WHERE id=$1`,
		orderID, role, reason, now); err != nil {
		return Order{}, fmt.Errorf("stamp cancellation: %w", err)
	}
	if err := applyTransition(ctx, tx, orderID, StatusCancelled, actor, reason, now); err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}

	o.Status = StatusCancelled
	o.CancelledBy = role
	o.CancelReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now
	return o, nil
}
