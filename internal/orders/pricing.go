package orders

// PricedLine is one cart line with its price fixed for totaling.
type PricedLine struct {
	PartID    string
	SellerID  string
	Qty       int
	UnitPrice int64
}

// Totals breaks an order's amount into its parts. All values are in the
// smallest currency unit; tax is floor(subtotal * rate / 100).
type Totals struct {
	Subtotal int64
	Shipping int64
	Tax      int64
	Total    int64
}

func ComputeTotals(lines []PricedLine, shippingFee, taxRatePct int64) Totals {
	var sub int64
	for _, l := range lines {
		sub += l.UnitPrice * int64(l.Qty)
	}
	tax := sub * taxRatePct / 100
	return Totals{
		Subtotal: sub,
		Shipping: shippingFee,
		Tax:      tax,
		Total:    sub + shippingFee + tax,
	}
}
