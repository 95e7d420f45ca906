package catalog

import "time"

type PartStatus string

const (
	PartActive PartStatus = "active"
	PartHidden PartStatus = "hidden"
)

// Part carries the inventory-relevant fields of a listed vehicle part.
// UnitPrice is in the smallest currency unit.
type Part struct {
	ID        string
	SellerID  string
	Name      string
	UnitPrice int64
	Stock     int
	Status    PartStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
