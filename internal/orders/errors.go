package orders

import "errors"

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrPartInactive      = errors.New("part is no longer available")
	ErrStockChanged      = errors.New("stock changed")
	ErrCheckoutInFlight  = errors.New("a checkout is already in progress")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderTerminal     = errors.New("order is in a terminal state")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnknownStatus     = errors.New("unknown status")
	ErrNotOrderOwner     = errors.New("order belongs to another buyer")
	ErrReasonRequired    = errors.New("cancellation reason required")
	ErrCancelTooLate     = errors.New("order can no longer be cancelled by the buyer")
)

// StockError reports the line that made a checkout abort. It wraps
// ErrStockChanged so callers can match with errors.Is.
type StockError struct {
	PartID    string
	Requested int
	Available int
}

func (e *StockError) Error() string {
	return "stock changed for part " + e.PartID
}

func (e *StockError) Unwrap() error { return ErrStockChanged }
