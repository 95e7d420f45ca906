package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/sparemart/sparemart/internal/cart"
	"github.com/sparemart/sparemart/internal/catalog"
	"github.com/sparemart/sparemart/internal/identity"
)

// Checkout turns the buyer's cart into an order. One transaction covers the
// whole conversion: part rows are re-locked and re-checked (stock may have
// moved since the cart page rendered), the order and its items are inserted,
// stock is decremented and the cart cleared. Any failure rolls the lot back,
// leaving cart and stock exactly as they were.
func (r *Repo) Checkout(ctx context.Context, buyerID string, ship ShippingDetails) (Order, error) {
	if err := ValidateShipping(ship); err != nil {
		return Order{}, err
	}

	// Cheap pre-check so an empty cart never opens a transaction. The cart
	// is read again inside the transaction; this is only a fast reject.
	var n int
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM cart_items WHERE buyer_id=$1`, buyerID).Scan(&n); err != nil {
		return Order{}, fmt.Errorf("count cart: %w", err)
	}
	if n == 0 {
		return Order{}, ErrEmptyCart
	}

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Order{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Ordered by part_id so concurrent checkouts lock part rows in the
	// same sequence.
	rows, err := tx.Query(ctx, `
		SELECT part_id, qty FROM cart_items WHERE buyer_id=$1 ORDER BY part_id`, buyerID)
	if err != nil {
		return Order{}, err
	}
	type cartLine struct {
		partID string
		qty    int
	}
	var cl []cartLine
	for rows.Next() {
		var l cartLine
		if err := rows.Scan(&l.partID, &l.qty); err != nil {
			rows.Close()
			return Order{}, err
		}
		cl = append(cl, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Order{}, err
	}
	if len(cl) == 0 {
		return Order{}, ErrEmptyCart
	}

	lines := make([]PricedLine, 0, len(cl))
	for _, l := range cl {
		price, stock, status, err := catalog.LockPart(ctx, tx, l.partID)
		if err != nil {
			return Order{}, fmt.Errorf("lock part %s: %w", l.partID, err)
		}
		if status != catalog.PartActive {
			return Order{}, fmt.Errorf("part %s: %w", l.partID, ErrPartInactive)
		}
		if l.qty > stock {
			return Order{}, &StockError{PartID: l.partID, Requested: l.qty, Available: stock}
		}
		lines = append(lines, PricedLine{PartID: l.partID, Qty: l.qty, UnitPrice: price})
	}

	totals := ComputeTotals(lines, r.ShippingFee, r.TaxRatePct)
	now := time.Now().UTC()

	o := Order{
		ID:          uuid.NewString(),
		BuyerID:     buyerID,
		TotalAmount: totals.Total,
		Status:      StatusPending,
		Shipping:    ship,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO orders(id, buyer_id, total_amount, status,
			ship_name, ship_email, ship_phone, ship_address, ship_city, ship_state, ship_zip, ship_country,
			created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$13)`,
		o.ID, o.BuyerID, o.TotalAmount, o.Status,
		ship.FullName, ship.Email, ship.Phone, ship.Address, ship.City, ship.State, ship.Zip, ship.Country,
		now)
	if err != nil {
		return Order{}, fmt.Errorf("insert order: %w", err)
	}

	// The initial pending status gets its own audit row so history is
	// complete from the first entry.
	_, err = tx.Exec(ctx, `
		INSERT INTO order_status_history(order_id, status, actor_id, actor_role, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		o.ID, StatusPending, buyerID, identity.RoleBuyer, "order placed", now)
	if err != nil {
		return Order{}, fmt.Errorf("insert history: %w", err)
	}

	for _, l := range lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items(order_id, part_id, qty, unit_price)
			VALUES ($1,$2,$3,$4)`, o.ID, l.PartID, l.Qty, l.UnitPrice)
		if err != nil {
			return Order{}, fmt.Errorf("insert item: %w", err)
		}
		if err := catalog.DecrementStock(ctx, tx, l.PartID, l.Qty); err != nil {
			return Order{}, err
		}
	}

	if err := cart.ClearTx(ctx, tx, buyerID); err != nil {
		return Order{}, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Order{}, err
	}
	return o, nil
}
