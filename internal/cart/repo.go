package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotInCart   = errors.New("part not in cart")
	ErrPartHidden  = errors.New("part is not purchasable")
	ErrLowStock    = errors.New("not enough stock")
	ErrInvalidQty  = errors.New("quantity must be positive")
	ErrUnknownPart = errors.New("part not found")
)

type Repo struct{ DB *pgxpool.Pool }

// Add puts qty units of a part into the buyer's cart, accumulating onto an
// existing line. The stock check here is advisory; the binding check runs
// under row locks during checkout.
func (r *Repo) Add(ctx context.Context, buyerID, partID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQty
	}

	var stock int
	var status string
	err := r.DB.QueryRow(ctx, `SELECT stock, status FROM parts WHERE id=$1`, partID).
		Scan(&stock, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUnknownPart
	}
	if err != nil {
		return err
	}
	if status != "active" {
		return ErrPartHidden
	}

	var existing int
	err = r.DB.QueryRow(ctx, `
		SELECT qty FROM cart_items WHERE buyer_id=$1 AND part_id=$2`, buyerID, partID).
		Scan(&existing)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if existing+qty > stock {
		return fmt.Errorf("%w: part %s has %d, cart would hold %d", ErrLowStock, partID, stock, existing+qty)
	}

	_, err = r.DB.Exec(ctx, `
		INSERT INTO cart_items(buyer_id, part_id, qty, added_at)
		VALUES ($1,$2,$3,NOW())
		ON CONFLICT (buyer_id, part_id) DO UPDATE SET qty = cart_items.qty + EXCLUDED.qty`,
		buyerID, partID, qty)
	return err
}

func (r *Repo) UpdateQty(ctx context.Context, buyerID, partID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQty
	}
	ct, err := r.DB.Exec(ctx, `
		UPDATE cart_items SET qty=$3 WHERE buyer_id=$1 AND part_id=$2`,
		buyerID, partID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotInCart
	}
	return nil
}

func (r *Repo) Remove(ctx context.Context, buyerID, partID string) error {
	ct, err := r.DB.Exec(ctx, `
		DELETE FROM cart_items WHERE buyer_id=$1 AND part_id=$2`, buyerID, partID)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrNotInCart
	}
	return nil
}

// List returns the buyer's cart joined with live part data, oldest line first.
func (r *Repo) List(ctx context.Context, buyerID string) ([]Line, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT ci.part_id, p.name, p.seller_id, ci.qty, p.unit_price, p.stock, p.status
		FROM cart_items ci
		JOIN parts p ON p.id = ci.part_id
		WHERE ci.buyer_id = $1
		ORDER BY ci.added_at`, buyerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Line
	for rows.Next() {
		var l Line
		if err := rows.Scan(&l.PartID, &l.PartName, &l.SellerID, &l.Qty, &l.UnitPrice, &l.Stock, &l.Status); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// ClearTx empties the buyer's cart inside the caller's transaction, so the
// clear commits or rolls back together with order creation.
func ClearTx(ctx context.Context, tx pgx.Tx, buyerID string) error {
	_, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE buyer_id=$1`, buyerID)
	return err
}
