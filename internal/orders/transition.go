package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sparemart/sparemart/internal/identity"
)

// Transition moves an order one step along the status path and appends the
// matching audit entry. Row update and history insert commit together, so
// the displayed status can never disagree with the trail.
func (r *Repo) Transition(ctx context.Context, orderID string, to Status, actor identity.Actor, notes string) (Order, error) {
	if !to.Valid() {
		return Order{}, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	// Cancellation carries extra obligations (reason, cancelled_by stamp,
	// buyer notification) and has its own operations; it cannot ride the
	// generic transition.
	if to == StatusCancelled {
		return Order{}, fmt.Errorf("%w: %s must go through cancellation", ErrInvalidTransition, to)
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
	if !CanTransition(o.Status, to) {
		return Order{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.Status, to)
	}

	now := time.Now().UTC()
	if err := applyTransition(ctx, tx, orderID, to, actor, notes, now); err != nil {
		return Order{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}

	o.Status = to
	o.UpdatedAt = now
	return o, nil
}

func lockOrder(ctx context.Context, tx pgx.Tx, orderID string) (Order, error) {
	return scanOrder(tx.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1 FOR UPDATE`, orderID))
}

// applyTransition writes the status change and its one history row inside
// the caller's transaction. Callers have already vetted the transition.
func applyTransition(ctx context.Context, tx pgx.Tx, orderID string, to Status, actor identity.Actor, notes string, now time.Time) error {
	if _, err := tx.Exec(ctx, `
		UPDATE orders SET status=$2, updated_at=$3 WHERE id=$1`, orderID, to, now); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	role := identity.RoleBuyer
	if actor.Staff() {
		role = actor.Roles.StaffRole()
	}
	if _, err := tx.Exec(ctx, `
		INSERT INTO order_status_history(order_id, status, actor_id, actor_role, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`, orderID, to, actor.UserID, role, notes, now); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}
