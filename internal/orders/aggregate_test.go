package orders

import "testing"

func breakdownLines() []SellerLine {
	return []SellerLine{
		{SellerID: "seller-1", PartID: "brake-pad", Qty: 2, UnitPrice: 500},
		{SellerID: "seller-2", PartID: "oil-filter", Qty: 1, UnitPrice: 300},
		{SellerID: "seller-1", PartID: "air-filter", Qty: 3, UnitPrice: 150},
	}
}

func TestGroupBySeller(t *testing.T) {
	groups := GroupBySeller(breakdownLines())
	if len(groups) != 2 {
		t.Fatalf("expected 2 seller groups, got %d", len(groups))
	}

	// First-seen order is preserved.
	if groups[0].SellerID != "seller-1" || groups[1].SellerID != "seller-2" {
		t.Errorf("unexpected group order: %s, %s", groups[0].SellerID, groups[1].SellerID)
	}
	if len(groups[0].Lines) != 2 {
		t.Errorf("seller-1 should have 2 lines, got %d", len(groups[0].Lines))
	}
	if groups[0].Subtotal != 2*500+3*150 {
		t.Errorf("seller-1 subtotal = %d, want %d", groups[0].Subtotal, 2*500+3*150)
	}
	if groups[1].Subtotal != 300 {
		t.Errorf("seller-2 subtotal = %d, want 300", groups[1].Subtotal)
	}
}

func TestGroupBySeller_Empty(t *testing.T) {
	if got := GroupBySeller(nil); len(got) != 0 {
		t.Errorf("expected no groups, got %d", len(got))
	}
}

// The sum of per-seller subtotals must equal the order total minus shipping
// and tax, i.e. exactly the goods subtotal the checkout computed.
func TestGroupBySeller_ConsistentWithTotals(t *testing.T) {
	lines := breakdownLines()

	priced := make([]PricedLine, len(lines))
	for i, l := range lines {
		priced[i] = PricedLine{PartID: l.PartID, SellerID: l.SellerID, Qty: l.Qty, UnitPrice: l.UnitPrice}
	}
	totals := ComputeTotals(priced, 99, 8)

	groups := GroupBySeller(lines)
	if got := ItemsTotal(groups); got != totals.Total-totals.Shipping-totals.Tax {
		t.Errorf("items total %d != order total %d - shipping %d - tax %d",
			got, totals.Total, totals.Shipping, totals.Tax)
	}
}
