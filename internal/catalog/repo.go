package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrPartNotFound = errors.New("part not found")

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) GetPart(ctx context.Context, partID string) (Part, error) {
	var p Part
	err := r.DB.QueryRow(ctx, `
		SELECT id, seller_id, name, unit_price, stock, status, created_at, updated_at
		FROM parts WHERE id=$1`, partID).
		Scan(&p.ID, &p.SellerID, &p.Name, &p.UnitPrice, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Part{}, ErrPartNotFound
	}
	if err != nil {
		return Part{}, err
	}
	return p, nil
}

func (r *Repo) ListActive(ctx context.Context) ([]Part, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, seller_id, name, unit_price, stock, status, created_at, updated_at
		FROM parts WHERE status='active' ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Part
	for rows.Next() {
		var p Part
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.UnitPrice, &p.Stock, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// LockPart re-reads a part's price, stock and status inside the caller's
// transaction, locking the row so concurrent checkouts of the same part
// serialize on it.
func LockPart(ctx context.Context, tx pgx.Tx, partID string) (unitPrice int64, stock int, status PartStatus, err error) {
	err = tx.QueryRow(ctx, `
		SELECT unit_price, stock, status FROM parts WHERE id=$1 FOR UPDATE`, partID).
		Scan(&unitPrice, &stock, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		err = ErrPartNotFound
	}
	return
}

// DecrementStock reduces a part's stock within the caller's transaction.
// Callers must have validated qty <= stock under LockPart first; the
// stock >= 0 check is still enforced here as a last line.
func DecrementStock(ctx context.Context, tx pgx.Tx, partID string, qty int) error {
	ct, err := tx.Exec(ctx, `
		UPDATE parts SET stock = stock - $2, updated_at = NOW()
		WHERE id=$1 AND stock >= $2`, partID, qty)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return fmt.Errorf("decrement stock for part %s: no row updated", partID)
	}
	return nil
}
