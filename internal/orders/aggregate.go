package orders

import "context"

// SellerLine is one purchased line annotated with the seller who owns the
// part, as loaded for the per-seller order view.
type SellerLine struct {
	SellerID  string `json:"seller_id"`
	PartID    string `json:"part_id"`
	PartName  string `json:"part_name"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unit_price"`
}

// SellerGroup is one seller's slice of an order.
type SellerGroup struct {
	SellerID string       `json:"seller_id"`
	Lines    []SellerLine `json:"lines"`
	Subtotal int64        `json:"subtotal"`
}

// GroupBySeller buckets order lines per seller, preserving first-seen
// seller order, and subtotals each bucket. Pure; no database access.
func GroupBySeller(lines []SellerLine) []SellerGroup {
	idx := map[string]int{}
	var out []SellerGroup
	for _, l := range lines {
		i, ok := idx[l.SellerID]
		if !ok {
			i = len(out)
			idx[l.SellerID] = i
			out = append(out, SellerGroup{SellerID: l.SellerID})
		}
		out[i].Lines = append(out[i].Lines, l)
		out[i].Subtotal += l.UnitPrice * int64(l.Qty)
	}
	return out
}

// ItemsTotal sums all seller subtotals: the order's goods value before
// shipping and tax.
func ItemsTotal(groups []SellerGroup) int64 {
	var t int64
	for _, g := range groups {
		t += g.Subtotal
	}
	return t
}

// SellerBreakdown loads an order's items with their sellers and groups
// them. Read-only; prices come from the frozen order_items copies, never
// the live listing.
func (r *Repo) SellerBreakdown(ctx context.Context, orderID string) ([]SellerGroup, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT p.seller_id, oi.part_id, p.name, oi.qty, oi.unit_price
		FROM order_items oi
		JOIN parts p ON p.id = oi.part_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []SellerLine
	for rows.Next() {
		var l SellerLine
		if err := rows.Scan(&l.SellerID, &l.PartID, &l.PartName, &l.Qty, &l.UnitPrice); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return GroupBySeller(lines), nil
}
