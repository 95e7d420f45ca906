package orders

import "testing"

func TestComputeTotals(t *testing.T) {
	// Two parts at 500 x2 and 300 x1, flat shipping 99, 8% tax:
	// subtotal 1300, tax 104, total 1503.
	lines := []PricedLine{
		{PartID: "part-a", Qty: 2, UnitPrice: 500},
		{PartID: "part-b", Qty: 1, UnitPrice: 300},
	}
	got := ComputeTotals(lines, 99, 8)
	if got.Subtotal != 1300 {
		t.Errorf("subtotal = %d, want 1300", got.Subtotal)
	}
	if got.Tax != 104 {
		t.Errorf("tax = %d, want 104", got.Tax)
	}
	if got.Shipping != 99 {
		t.Errorf("shipping = %d, want 99", got.Shipping)
	}
	if got.Total != 1503 {
		t.Errorf("total = %d, want 1503", got.Total)
	}
}

func TestComputeTotals_TaxRoundsDown(t *testing.T) {
	lines := []PricedLine{{PartID: "p", Qty: 1, UnitPrice: 149}}
	got := ComputeTotals(lines, 0, 8)
	// 149 * 8 / 100 = 11.92 -> 11
	if got.Tax != 11 {
		t.Errorf("tax = %d, want 11", got.Tax)
	}
	if got.Total != 160 {
		t.Errorf("total = %d, want 160", got.Total)
	}
}

func TestComputeTotals_NoLines(t *testing.T) {
	got := ComputeTotals(nil, 99, 8)
	if got.Subtotal != 0 || got.Tax != 0 {
		t.Errorf("expected zero subtotal and tax, got %+v", got)
	}
	if got.Total != 99 {
		t.Errorf("total = %d, want shipping only (99)", got.Total)
	}
}

func TestComputeTotals_TotalIdentity(t *testing.T) {
	lines := []PricedLine{
		{PartID: "a", Qty: 3, UnitPrice: 1250},
		{PartID: "b", Qty: 7, UnitPrice: 80},
		{PartID: "c", Qty: 1, UnitPrice: 99999},
	}
	got := ComputeTotals(lines, 49, 12)
	if got.Total != got.Subtotal+got.Shipping+got.Tax {
		t.Errorf("total %d != subtotal %d + shipping %d + tax %d",
			got.Total, got.Subtotal, got.Shipping, got.Tax)
	}
}
