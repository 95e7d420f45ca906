package cart

import "time"

// Item is one line in a buyer's cart. Unique per (buyer, part).
type Item struct {
	BuyerID string    `json:"buyer_id"`
	PartID  string    `json:"part_id"`
	Qty     int       `json:"qty"`
	AddedAt time.Time `json:"added_at"`
}

// Line is a cart item joined with the part's live listing data, as shown
// on the cart page and as fed into checkout.
type Line struct {
	PartID    string `json:"part_id"`
	PartName  string `json:"part_name"`
	SellerID  string `json:"seller_id"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unit_price"`
	Stock     int    `json:"stock"`
	Status    string `json:"status"`
}
