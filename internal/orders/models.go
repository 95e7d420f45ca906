package orders

import (
	"time"

	"github.com/sparemart/sparemart/internal/identity"
)

// ShippingDetails is the address snapshot frozen onto the order at checkout.
type ShippingDetails struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Zip      string `json:"zip"`
	Country  string `json:"country"`
}

// Order is the durable record of one checkout. TotalAmount is computed once
// at creation (items + shipping + tax) and never recomputed; Status moves
// only through the transition rules in status.go.
type Order struct {
	ID          string          `json:"id"`
	BuyerID     string          `json:"buyer_id"`
	TotalAmount int64           `json:"total_amount"`
	Status      Status          `json:"status"`
	Shipping    ShippingDetails `json:"shipping"`

	CancelledBy  identity.Role `json:"cancelled_by,omitempty"`
	CancelReason string        `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time    `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is one purchased line. UnitPrice is the part's price at the moment
// of checkout; later listing changes never touch it.
type Item struct {
	ID        int64  `json:"id"`
	OrderID   string `json:"order_id"`
	PartID    string `json:"part_id"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unit_price"`
}

// HistoryEntry is one row of the append-only status audit trail.
type HistoryEntry struct {
	OrderID   string        `json:"order_id"`
	Status    Status        `json:"status"`
	ActorID   string        `json:"actor_id"`
	ActorRole identity.Role `json:"actor_role"`
	Notes     string        `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
